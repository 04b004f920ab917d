package timeline

import (
	"time"

	"github.com/ivlev/motionclip/internal/animation"
)

// Point is a position on a clip's time axis that converts to frames.
type Point interface {
	Frames(fps float64) uint64
}

// Frames is a point given in frames.
type Frames uint64

func (f Frames) Frames(float64) uint64 { return uint64(f) }

// Seconds is a point given in seconds, floored to frames.
type Seconds float64

func (s Seconds) Frames(fps float64) uint64 { return animation.SecondsToFrames(float64(s), fps) }

// Dur is a point given as a duration, floored to frames.
type Dur time.Duration

func (d Dur) Frames(fps float64) uint64 {
	return animation.SecondsToFrames(time.Duration(d).Seconds(), fps)
}

// Range is a half-open window [Start, End) in the parent's local time. A nil
// Start is the parent's start, a nil End is the parent's end.
type Range struct {
	Start, End Point
}

// Span is [start, end).
func Span(start, end Point) Range { return Range{Start: start, End: end} }

// From is [start, parent end).
func From(start Point) Range { return Range{Start: start} }

// Until is [parent start, end).
func Until(end Point) Range { return Range{End: end} }

// All covers the whole parent.
func All() Range { return Range{} }
