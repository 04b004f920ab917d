// Package effects provides the built-in effect kinds: filled rectangles, QR
// codes and raster images.
package effects

import (
	"github.com/ivlev/motionclip/internal/animation"
	"github.com/ivlev/motionclip/internal/interp"
)

var (
	white = interp.RGBA(1, 1, 1, 1)
	black = interp.RGBA(0, 0, 0, 1)
)

// value evaluates p at frame, or returns def when p is unset.
func value[T any](p *animation.Property[T], frame uint64, def T) T {
	if p == nil {
		return def
	}
	return p.Evaluate(frame)
}
