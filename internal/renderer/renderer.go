// Package renderer turns the per-frame event list into pixels.
package renderer

import (
	"image"

	"cogentcore.org/core/math32"

	"github.com/ivlev/motionclip/internal/effect"
	"github.com/ivlev/motionclip/internal/timeline"
)

// Renderer consumes resolved frames.
type Renderer interface {
	// RegisterBackends constructs one backend per kind. It is called once,
	// after the timeline is harvested and before the first frame.
	RegisterBackends(kinds []effect.Kind) error

	// ScreenMatrix maps the timeline's coordinate space to the output.
	ScreenMatrix() *math32.Matrix4

	// Render executes the events of one frame. It returns the finished
	// frame when the renderer reads pixels back, nil otherwise. The frame
	// stays valid until the next call.
	//
	// Batches follow runs of consecutive pushes of one kind, not whole
	// kinds: pushes a1 a2 b1 a3 render kind a twice, keeping painter's
	// order across kinds.
	Render(events []timeline.Event) (*image.RGBA, error)
}
