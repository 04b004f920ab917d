package animation

import (
	"fmt"
	"math"

	"github.com/ivlev/motionclip/internal/errdefs"
	"github.com/ivlev/motionclip/internal/interp"
)

// Timing places a keyframe either at an absolute position or relative to the
// previous keyframe. Seconds convert to frames as floor(seconds * fps).
type Timing struct {
	relative  bool
	frames    uint64
	seconds   float64
	inSeconds bool
}

// Abs places a keyframe at an absolute time in seconds.
func Abs(seconds float64) Timing { return Timing{seconds: seconds, inSeconds: true} }

// Rel places a keyframe seconds after the previous keyframe.
func Rel(seconds float64) Timing { return Timing{relative: true, seconds: seconds, inSeconds: true} }

// AbsFrame places a keyframe at an absolute frame.
func AbsFrame(frame uint64) Timing { return Timing{frames: frame} }

// RelFrame places a keyframe frames after the previous keyframe.
func RelFrame(frames uint64) Timing { return Timing{relative: true, frames: frames} }

func (t Timing) frameCount(fps float64) uint64 {
	if !t.inSeconds {
		return t.frames
	}
	return SecondsToFrames(t.seconds, fps)
}

// SecondsToFrames converts seconds to a frame count, flooring. Negative
// values clamp to zero.
func SecondsToFrames(seconds, fps float64) uint64 {
	f := math.Floor(seconds * fps)
	if f <= 0 {
		return 0
	}
	return uint64(f)
}

// Builder accumulates keyframes fluently. The first authoring error is kept
// and reported by Build; later calls are ignored.
type Builder[T any] struct {
	fps        float64
	lerp       interp.Func[T]
	initial    T
	hasInitial bool
	keyframes  []Keyframe[T]
	err        error
}

// NewBuilder returns a builder that converts seconds at fps and blends with
// lerp.
func NewBuilder[T any](fps float64, lerp interp.Func[T]) *Builder[T] {
	return &Builder[T]{fps: fps, lerp: lerp}
}

// Float is a builder for float64 properties.
func Float(fps float64) *Builder[float64] {
	return NewBuilder(fps, interp.Float[float64])
}

// For is a builder for composite values such as interp.Vec2 or interp.Color.
func For[T interp.Interpolator[T]](fps float64) *Builder[T] {
	return NewBuilder(fps, interp.Method[T])
}

// From sets the value at frame 0.
func (b *Builder[T]) From(v T) *Builder[T] {
	b.initial = v
	b.hasInitial = true
	return b
}

func (b *Builder[T]) lastFrame() uint64 {
	if len(b.keyframes) == 0 {
		return 0
	}
	return b.keyframes[len(b.keyframes)-1].Frame
}

func (b *Builder[T]) lastValue() T {
	if len(b.keyframes) == 0 {
		return b.initial
	}
	return b.keyframes[len(b.keyframes)-1].Value
}

// Keyframe appends a keyframe. A keyframe resolving to frame 0 replaces the
// initial value instead.
func (b *Builder[T]) Keyframe(at Timing, easing interp.Easing, v T) *Builder[T] {
	if b.err != nil {
		return b
	}
	frame := at.frameCount(b.fps)
	if at.relative {
		frame += b.lastFrame()
	}
	if frame == 0 && (!at.relative || len(b.keyframes) == 0) {
		return b.From(v)
	}
	if frame <= b.lastFrame() {
		b.err = fmt.Errorf("%w: keyframe at frame %d does not follow frame %d",
			errdefs.ErrAuthoring, frame, b.lastFrame())
		return b
	}
	b.keyframes = append(b.keyframes, Keyframe[T]{Frame: frame, Easing: easing, Value: v})
	return b
}

// Hold keeps the current value for the given number of seconds.
func (b *Builder[T]) Hold(seconds float64) *Builder[T] {
	return b.HoldFrames(SecondsToFrames(seconds, b.fps))
}

// HoldFrames keeps the current value for n frames.
func (b *Builder[T]) HoldFrames(n uint64) *Builder[T] {
	if b.err != nil || n == 0 {
		return b
	}
	if !b.hasInitial && len(b.keyframes) == 0 {
		b.err = fmt.Errorf("%w: hold before any value is known", errdefs.ErrAuthoring)
		return b
	}
	return b.Keyframe(RelFrame(n), interp.Linear, b.lastValue())
}

// Build returns the finished property.
func (b *Builder[T]) Build() (*Property[T], error) {
	if b.err != nil {
		return nil, b.err
	}
	if !b.hasInitial {
		return nil, fmt.Errorf("%w: animation has no initial value", errdefs.ErrAuthoring)
	}
	return New(b.initial, b.lerp, b.keyframes...)
}

// MustBuild is Build for animations defined in code, where an authoring
// error is a programming error.
func (b *Builder[T]) MustBuild() *Property[T] {
	p, err := b.Build()
	if err != nil {
		panic(err)
	}
	return p
}
