package effects

import (
	"fmt"
	"image"

	"github.com/ivlev/motionclip/internal/animation"
	"github.com/ivlev/motionclip/internal/effect"
	"github.com/ivlev/motionclip/internal/interp"
	"github.com/ivlev/motionclip/internal/source"
)

// Image draws one page of a PDF or an image file scaled to Size, centered
// at Position.
type Image struct {
	Path     string
	Page     int
	DPI      int
	Position *animation.Property[interp.Vec2]
	Size     *animation.Property[interp.Vec2]
	Opacity  *animation.Property[float64]
}

type ImageInstance struct {
	Path    string
	Page    int
	DPI     int
	Center  interp.Vec2
	Size    interp.Vec2
	Opacity float64
}

func (im *Image) Evaluate(frame uint64) effect.Instance {
	return ImageInstance{
		Path:    im.Path,
		Page:    im.Page,
		DPI:     im.DPI,
		Center:  value(im.Position, frame, interp.Vec2{}),
		Size:    value(im.Size, frame, interp.Vec2{}),
		Opacity: value(im.Opacity, frame, 1.0),
	}
}

type pageKey struct {
	path      string
	page, dpi int
}

// imageBackend renders every page once and keeps it for later frames.
type imageBackend struct {
	open  func(path string) (source.Source, error)
	pages map[pageKey]image.Image
}

func (*Image) NewBackend(*effect.RenderContext) (effect.Backend, error) {
	b := &imageBackend{open: source.Open, pages: make(map[pageKey]image.Image)}
	return effect.NewBatch(b.draw), nil
}

func (b *imageBackend) page(k pageKey) (image.Image, error) {
	if img, ok := b.pages[k]; ok {
		return img, nil
	}
	src, err := b.open(k.path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	img, err := src.Page(k.page, k.dpi)
	if err != nil {
		return nil, fmt.Errorf("%s page %d: %w", k.path, k.page, err)
	}
	b.pages[k] = img
	return img, nil
}

func (b *imageBackend) draw(dc *effect.DrawContext, items []effect.Item[ImageInstance]) error {
	for i := range items {
		it := &items[i]
		img, err := b.page(pageKey{it.Value.Path, it.Value.Page, it.Value.DPI})
		if err != nil {
			return err
		}
		size := it.Value.Size
		if size.X == 0 && size.Y == 0 {
			r := img.Bounds()
			size = interp.V2(float64(r.Dx()), float64(r.Dy()))
		}
		dc.DrawImage(&it.Transform, img, it.Value.Center.X, it.Value.Center.Y, size.X, size.Y, it.Value.Opacity)
	}
	return nil
}
