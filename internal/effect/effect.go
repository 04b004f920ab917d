// Package effect defines how effect types plug into rendering: the
// capability interface every effect implements, the per-kind batching
// backend, and the registry that gives every effect type a dense kind id.
package effect

import (
	"log/slog"

	"cogentcore.org/core/math32"
)

// KindID identifies an effect type within one Registry. Ids are dense and
// assigned from 0 in first-seen order.
type KindID int

// Instance is the per-frame record an effect resolves to. Its concrete type
// is fixed per effect type and is what that type's Backend accepts.
type Instance any

// Effect is implemented by every effect type.
type Effect interface {
	// Evaluate resolves the animated fields at the clip-local frame.
	Evaluate(frame uint64) Instance

	// NewBackend constructs the backend shared by all instances of the
	// effect's type. It is called once per kind and must not depend on the
	// receiver's field values.
	NewBackend(rc *RenderContext) (Backend, error)
}

// Backend accumulates instance records for one kind and draws them in one
// submission.
//
// Within a frame, Push is called for the instances of the kind in traversal
// order, then Render drains exactly the records pushed since the previous
// Render.
type Backend interface {
	Push(inst Instance, xf *math32.Matrix4) error
	Render(dc *DrawContext) error
}

// RenderContext is handed to backend factories.
type RenderContext struct {
	Width, Height int
	FPS           float64
	Log           *slog.Logger
}
