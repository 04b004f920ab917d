package effects

import (
	"fmt"
	"image/color"

	"github.com/skip2/go-qrcode"

	"github.com/ivlev/motionclip/internal/animation"
	"github.com/ivlev/motionclip/internal/effect"
	"github.com/ivlev/motionclip/internal/interp"
)

// QRCode draws Content as a QR code filling Size, centered at Position.
// Light modules are left transparent.
type QRCode struct {
	Content  string
	Level    qrcode.RecoveryLevel
	Position *animation.Property[interp.Vec2]
	Size     *animation.Property[interp.Vec2]
	Color    *animation.Property[interp.Color]
}

type QRCodeInstance struct {
	Content string
	Level   qrcode.RecoveryLevel
	Center  interp.Vec2
	Size    interp.Vec2
	Color   color.NRGBA
}

func (q *QRCode) Evaluate(frame uint64) effect.Instance {
	return QRCodeInstance{
		Content: q.Content,
		Level:   q.Level,
		Center:  value(q.Position, frame, interp.Vec2{}),
		Size:    value(q.Size, frame, interp.V2(256, 256)),
		Color:   value(q.Color, frame, black).NRGBA(),
	}
}

type qrKey struct {
	content string
	level   qrcode.RecoveryLevel
}

// qrBackend keeps the module bitmap of every code it has drawn.
type qrBackend struct {
	bitmaps map[qrKey][][]bool
}

func (*QRCode) NewBackend(*effect.RenderContext) (effect.Backend, error) {
	b := &qrBackend{bitmaps: make(map[qrKey][][]bool)}
	return effect.NewBatch(b.draw), nil
}

func (b *qrBackend) bitmap(content string, level qrcode.RecoveryLevel) ([][]bool, error) {
	key := qrKey{content, level}
	if bm, ok := b.bitmaps[key]; ok {
		return bm, nil
	}
	q, err := qrcode.New(content, level)
	if err != nil {
		return nil, fmt.Errorf("qr code %q: %w", content, err)
	}
	bm := q.Bitmap()
	b.bitmaps[key] = bm
	return bm, nil
}

func (b *qrBackend) draw(dc *effect.DrawContext, items []effect.Item[QRCodeInstance]) error {
	for i := range items {
		it := &items[i]
		bm, err := b.bitmap(it.Value.Content, it.Value.Level)
		if err != nil {
			return err
		}
		dc.FillQuads(&it.Transform, moduleQuads(bm, it.Value.Center, it.Value.Size), it.Value.Color)
	}
	return nil
}

// moduleQuads lays the dark modules of bm out over the rectangle. Row 0 is
// the top of the code.
func moduleQuads(bm [][]bool, center, size interp.Vec2) [][4][2]float64 {
	n := len(bm)
	if n == 0 {
		return nil
	}
	cw, ch := size.X/float64(n), size.Y/float64(n)
	left, top := center.X-size.X/2, center.Y+size.Y/2

	var quads [][4][2]float64
	for y, row := range bm {
		for x, dark := range row {
			if !dark {
				continue
			}
			cx := left + (float64(x)+0.5)*cw
			cy := top - (float64(y)+0.5)*ch
			quads = append(quads, effect.RectQuad(cx, cy, cw, ch))
		}
	}
	return quads
}
