// Package animation evaluates keyframed properties at integer frame indices.
package animation

import (
	"fmt"

	"github.com/ivlev/motionclip/internal/errdefs"
	"github.com/ivlev/motionclip/internal/interp"
)

// Keyframe pins Value at Frame. Easing shapes the transition that ends at
// this keyframe; nil means linear.
type Keyframe[T any] struct {
	Frame  uint64
	Easing interp.Easing
	Value  T
}

// Property is a value of type T that changes over frames. It is immutable
// once built and safe for concurrent reads.
type Property[T any] struct {
	initial   T
	keyframes []Keyframe[T]
	lerp      interp.Func[T]
}

// New builds a property from keyframes already expressed in frames. Frames
// must be strictly increasing and greater than zero; frame 0 belongs to
// initial.
func New[T any](initial T, lerp interp.Func[T], keyframes ...Keyframe[T]) (*Property[T], error) {
	if len(keyframes) > 0 && lerp == nil {
		return nil, fmt.Errorf("%w: animated property without an interpolation function", errdefs.ErrAuthoring)
	}
	var prev uint64
	for i, kf := range keyframes {
		if kf.Frame <= prev {
			return nil, fmt.Errorf("%w: keyframe %d at frame %d does not follow frame %d",
				errdefs.ErrAuthoring, i, kf.Frame, prev)
		}
		prev = kf.Frame
	}
	return &Property[T]{
		initial:   initial,
		keyframes: append([]Keyframe[T](nil), keyframes...),
		lerp:      lerp,
	}, nil
}

// Static returns a property that evaluates to v at every frame.
func Static[T any](v T) *Property[T] {
	return &Property[T]{initial: v}
}

func (p *Property[T]) Initial() T { return p.initial }

// Keyframes returns a copy of the keyframe list.
func (p *Property[T]) Keyframes() []Keyframe[T] {
	return append([]Keyframe[T](nil), p.keyframes...)
}

// Animated reports whether the property has any keyframes.
func (p *Property[T]) Animated() bool { return len(p.keyframes) > 0 }

// LastFrame is the frame of the final keyframe, or 0.
func (p *Property[T]) LastFrame() uint64 {
	if len(p.keyframes) == 0 {
		return 0
	}
	return p.keyframes[len(p.keyframes)-1].Frame
}

// Evaluate returns the value at frame.
//
// Before the first keyframe the value moves from initial toward it, after the
// last keyframe it holds the last value.
func (p *Property[T]) Evaluate(frame uint64) T {
	if len(p.keyframes) == 0 {
		return p.initial
	}

	first := p.keyframes[0]
	if frame <= first.Frame {
		if first.Frame == 0 {
			return p.initial
		}
		return p.blend(p.initial, first, frame, 0)
	}

	for i := 1; i < len(p.keyframes); i++ {
		prev, next := p.keyframes[i-1], p.keyframes[i]
		if frame >= prev.Frame && frame < next.Frame {
			return p.blend(prev.Value, next, frame, prev.Frame)
		}
	}
	return p.keyframes[len(p.keyframes)-1].Value
}

func (p *Property[T]) blend(from T, to Keyframe[T], frame, start uint64) T {
	span := to.Frame - start
	if span == 0 {
		return to.Value
	}
	e := to.Easing
	if e == nil {
		e = interp.Linear
	}
	t := float64(frame-start) / float64(span)
	return p.lerp(from, to.Value, e(t))
}
