package system

import (
	"image"
	"sync"
)

// ImagePool reuses *image.RGBA frames of equal bounds to keep allocation
// and GC pressure flat during long exports.
type ImagePool struct {
	mu    sync.RWMutex
	pools map[image.Rectangle]*sync.Pool
}

func NewImagePool() *ImagePool {
	return &ImagePool{pools: make(map[image.Rectangle]*sync.Pool)}
}

func (p *ImagePool) pool(rect image.Rectangle) *sync.Pool {
	p.mu.RLock()
	pool, ok := p.pools[rect]
	p.mu.RUnlock()
	if ok {
		return pool
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if pool, ok = p.pools[rect]; !ok {
		pool = &sync.Pool{New: func() any { return image.NewRGBA(rect) }}
		p.pools[rect] = pool
	}
	return pool
}

// Get returns a frame with the given bounds. Its contents are undefined.
func (p *ImagePool) Get(rect image.Rectangle) *image.RGBA {
	return p.pool(rect).Get().(*image.RGBA)
}

// Copy returns a pooled copy of img.
func (p *ImagePool) Copy(img *image.RGBA) *image.RGBA {
	dst := p.Get(img.Rect)
	if img.Stride == dst.Stride {
		copy(dst.Pix, img.Pix)
		return dst
	}
	for y := img.Rect.Min.Y; y < img.Rect.Max.Y; y++ {
		copy(dst.Pix[dst.PixOffset(img.Rect.Min.X, y):], img.Pix[img.PixOffset(img.Rect.Min.X, y):img.PixOffset(img.Rect.Max.X, y)])
	}
	return dst
}

// Put hands img back for reuse.
func (p *ImagePool) Put(img *image.RGBA) {
	if img == nil {
		return
	}
	p.pool(img.Rect).Put(img)
}
