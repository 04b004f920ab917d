package effects

import (
	"image/color"

	"github.com/ivlev/motionclip/internal/animation"
	"github.com/ivlev/motionclip/internal/effect"
	"github.com/ivlev/motionclip/internal/interp"
)

// Rect is a filled rectangle centered at Position.
type Rect struct {
	Position *animation.Property[interp.Vec2]
	Size     *animation.Property[interp.Vec2]
	Color    *animation.Property[interp.Color]
}

// RectInstance is a Rect resolved at one frame.
type RectInstance struct {
	Center interp.Vec2
	Size   interp.Vec2
	Color  color.NRGBA
}

func (r *Rect) Evaluate(frame uint64) effect.Instance {
	return RectInstance{
		Center: value(r.Position, frame, interp.Vec2{}),
		Size:   value(r.Size, frame, interp.Vec2{}),
		Color:  value(r.Color, frame, white).NRGBA(),
	}
}

func (*Rect) NewBackend(*effect.RenderContext) (effect.Backend, error) {
	return effect.NewBatch(drawRects), nil
}

func drawRects(dc *effect.DrawContext, items []effect.Item[RectInstance]) error {
	for i := range items {
		it := &items[i]
		if it.Value.Color.A == 0 || it.Value.Size.X == 0 || it.Value.Size.Y == 0 {
			continue
		}
		dc.FillRect(&it.Transform, it.Value.Center.X, it.Value.Center.Y, it.Value.Size.X, it.Value.Size.Y, it.Value.Color)
	}
	return nil
}
