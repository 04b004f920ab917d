package timeline

import (
	"cogentcore.org/core/math32"

	"github.com/ivlev/motionclip/internal/effect"
)

// Event is one command of the ordered per-frame list handed to a renderer.
// It is one of SetTransform, WriteBuffer or EffectPush.
type Event interface {
	isEvent()
}

// SetTransform sets the transform applied to the pushes that follow.
type SetTransform struct {
	Matrix math32.Matrix4
}

// WriteBuffer writes Data into the named renderer buffer at Offset.
type WriteBuffer struct {
	Target string
	Offset int
	Data   []byte
}

// EffectPush asks the backend of Kind to record Effect evaluated at the
// clip-local Frame.
type EffectPush struct {
	Kind   effect.KindID
	Effect effect.Effect
	Frame  uint64
}

func (SetTransform) isEvent() {}
func (WriteBuffer) isEvent()  {}
func (EffectPush) isEvent()   {}
