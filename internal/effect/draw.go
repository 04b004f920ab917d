package effect

import (
	"image"
	"image/color"

	"cogentcore.org/core/math32"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/vector"
)

// DrawContext is what a Backend draws into during Render.
type DrawContext struct {
	Target *image.RGBA
	Frame  uint64

	buffers map[string][]byte
	raster  *vector.Rasterizer
}

func NewDrawContext(target *image.RGBA) *DrawContext {
	return &DrawContext{Target: target, buffers: make(map[string][]byte)}
}

// WriteBuffer copies data into the named buffer at offset, growing it as
// needed.
func (dc *DrawContext) WriteBuffer(name string, offset int, data []byte) {
	buf := dc.buffers[name]
	if need := offset + len(data); need > len(buf) {
		buf = append(buf, make([]byte, need-len(buf))...)
	}
	copy(buf[offset:], data)
	dc.buffers[name] = buf
}

// Buffer returns the contents of a named buffer, or nil.
func (dc *DrawContext) Buffer(name string) []byte {
	return dc.buffers[name]
}

// FillRect fills the axis-aligned rectangle centered at (cx, cy) in local
// units after mapping its corners through xf.
func (dc *DrawContext) FillRect(xf *math32.Matrix4, cx, cy, w, h float64, c color.Color) {
	dc.FillQuad(xf, RectQuad(cx, cy, w, h), c)
}

// FillQuad fills the polygon spanned by four local points mapped through xf.
func (dc *DrawContext) FillQuad(xf *math32.Matrix4, pts [4][2]float64, c color.Color) {
	dc.FillQuads(xf, [][4][2]float64{pts}, c)
}

// FillQuads fills several quads with one color in a single rasterization
// pass.
func (dc *DrawContext) FillQuads(xf *math32.Matrix4, quads [][4][2]float64, c color.Color) {
	if len(quads) == 0 {
		return
	}
	b := dc.Target.Bounds()
	if dc.raster == nil {
		dc.raster = vector.NewRasterizer(b.Dx(), b.Dy())
	} else {
		dc.raster.Reset(b.Dx(), b.Dy())
	}
	for _, q := range quads {
		for i, p := range q {
			x, y := apply(xf, p[0], p[1])
			if i == 0 {
				dc.raster.MoveTo(x, y)
			} else {
				dc.raster.LineTo(x, y)
			}
		}
		dc.raster.ClosePath()
	}
	dc.raster.Draw(dc.Target, b, image.NewUniform(c), image.Point{})
}

// RectQuad returns the corners of the w×h rectangle centered at (cx, cy).
func RectQuad(cx, cy, w, h float64) [4][2]float64 {
	x0, y0 := cx-w/2, cy-h/2
	x1, y1 := cx+w/2, cy+h/2
	return [4][2]float64{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
}

// DrawImage draws src scaled into the w×h rectangle centered at (cx, cy),
// with the top row of src at the top of the rectangle, mapped through xf.
func (dc *DrawContext) DrawImage(xf *math32.Matrix4, src image.Image, cx, cy, w, h, opacity float64) {
	sr := src.Bounds()
	if sr.Empty() || opacity <= 0 {
		return
	}
	ox, oy := apply64(xf, 0, 0)
	exX, exY := apply64(xf, 1, 0)
	eyX, eyY := apply64(xf, 0, 1)
	exX, exY = exX-ox, exY-oy
	eyX, eyY = eyX-ox, eyY-oy

	kx := w / float64(sr.Dx())
	ky := h / float64(sr.Dy())
	left := cx - w/2 - kx*float64(sr.Min.X)
	top := cy + h/2 + ky*float64(sr.Min.Y)

	s2d := f64.Aff3{
		exX * kx, -eyX * ky, ox + exX*left + eyX*top,
		exY * kx, -eyY * ky, oy + exY*left + eyY*top,
	}
	var opts *xdraw.Options
	if opacity < 1 {
		opts = &xdraw.Options{SrcMask: image.NewUniform(color.Alpha{A: uint8(opacity*255 + 0.5)})}
	}
	xdraw.BiLinear.Transform(dc.Target, s2d, src, sr, xdraw.Over, opts)
}

func apply(xf *math32.Matrix4, x, y float64) (float32, float32) {
	v := math32.Vec3(float32(x), float32(y), 0)
	if xf != nil {
		v = v.MulMatrix4AsVector4(xf, 1)
	}
	return v.X, v.Y
}

func apply64(xf *math32.Matrix4, x, y float64) (float64, float64) {
	px, py := apply(xf, x, y)
	return float64(px), float64(py)
}
