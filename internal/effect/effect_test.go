package effect

import (
	"image"
	"image/color"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/motionclip/internal/errdefs"
)

type dot struct{ size float64 }

func (d dot) Evaluate(frame uint64) Instance { return d.size * float64(frame) }

func (dot) NewBackend(*RenderContext) (Backend, error) {
	return NewBatch(func(*DrawContext, []Item[float64]) error { return nil }), nil
}

type label struct{ text string }

func (l *label) Evaluate(uint64) Instance { return l.text }

func (*label) NewBackend(*RenderContext) (Backend, error) {
	return NewBatch(func(*DrawContext, []Item[string]) error { return nil }), nil
}

func TestRegistrySharesKindPerType(t *testing.T) {
	r := NewRegistry()

	a, err := r.KindOf(dot{size: 1})
	require.NoError(t, err)
	b, err := r.KindOf(dot{size: 2})
	require.NoError(t, err)
	c, err := r.KindOf(&label{text: "x"})
	require.NoError(t, err)

	assert.Equal(t, KindID(0), a)
	assert.Equal(t, a, b)
	assert.Equal(t, KindID(1), c)
	assert.Equal(t, 2, r.Len())

	k, ok := r.Kind(c)
	require.True(t, ok)
	assert.Equal(t, "*effect.label", k.Name)
	_, ok = r.Kind(5)
	assert.False(t, ok)
}

func TestRegistryFrozen(t *testing.T) {
	r := NewRegistry()
	_, err := r.KindOf(dot{})
	require.NoError(t, err)
	r.Freeze()
	assert.True(t, r.Frozen())

	id, err := r.KindOf(dot{size: 3})
	require.NoError(t, err)
	assert.Equal(t, KindID(0), id)

	_, err = r.KindOf(&label{})
	assert.ErrorIs(t, err, errdefs.ErrInternalConsistency)

	_, err = r.KindOf(nil)
	assert.ErrorIs(t, err, errdefs.ErrAuthoring)
}

func TestBatchDrainsPerRender(t *testing.T) {
	var flushed [][]float64
	b := NewBatch(func(_ *DrawContext, items []Item[float64]) error {
		var vals []float64
		for _, it := range items {
			vals = append(vals, it.Value)
		}
		flushed = append(flushed, vals)
		return nil
	})

	require.NoError(t, b.Push(1.0, nil))
	require.NoError(t, b.Push(2.0, math32.Identity4()))
	assert.Equal(t, 2, b.Len())
	require.NoError(t, b.Render(nil))
	require.NoError(t, b.Render(nil))
	require.NoError(t, b.Push(3.0, nil))
	require.NoError(t, b.Render(nil))

	assert.Equal(t, [][]float64{{1, 2}, {3}}, flushed)
	assert.Equal(t, 0, b.Len())
}

func TestBatchRejectsForeignInstance(t *testing.T) {
	b := NewBatch(func(*DrawContext, []Item[float64]) error { return nil })
	err := b.Push("not a float", nil)
	assert.ErrorIs(t, err, errdefs.ErrInternalConsistency)
	assert.Equal(t, 0, b.Len())
}

func TestDrawContextBuffers(t *testing.T) {
	dc := NewDrawContext(image.NewRGBA(image.Rect(0, 0, 4, 4)))
	dc.WriteBuffer("time", 2, []byte{1, 2})
	assert.Equal(t, []byte{0, 0, 1, 2}, dc.Buffer("time"))
	dc.WriteBuffer("time", 0, []byte{9})
	assert.Equal(t, []byte{9, 0, 1, 2}, dc.Buffer("time"))
	assert.Nil(t, dc.Buffer("missing"))
}

func TestFillRect(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 10, 10))
	dc := NewDrawContext(dst)
	red := color.NRGBA{R: 255, A: 255}

	// Identity transform: local units are pixels.
	dc.FillRect(nil, 5, 5, 4, 4, red)
	assert.Equal(t, color.RGBA{R: 255, A: 255}, dst.RGBAAt(5, 5))
	assert.Equal(t, color.RGBA{}, dst.RGBAAt(0, 0))

	var m math32.Matrix4
	var q math32.Quat
	q.SetIdentity()
	m.SetTransform(math32.Vec3(-4, -4, 0), q, math32.Vec3(1, 1, 1))
	dc.FillRect(&m, 5, 5, 2, 2, color.NRGBA{B: 255, A: 255})
	assert.Equal(t, color.RGBA{B: 255, A: 255}, dst.RGBAAt(1, 1))
}

func TestDrawImageScales(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := range src.Pix {
		src.Pix[i] = 255
	}
	dst := image.NewRGBA(image.Rect(0, 0, 8, 8))
	dc := NewDrawContext(dst)
	dc.DrawImage(nil, src, 4, 4, 4, 4, 1)

	assert.Equal(t, color.RGBA{255, 255, 255, 255}, dst.RGBAAt(4, 4))
	assert.Equal(t, color.RGBA{}, dst.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{}, dst.RGBAAt(7, 7))
}
