// Package source opens raster page sources: PDF documents and image files
// or directories of images.
package source

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gen2brain/go-fitz"
)

// Source is a sequence of pages that render to images.
type Source interface {
	PageCount() int
	// PageSize is the page size in the source's own units (points for PDF,
	// pixels for images).
	PageSize(index int) (width, height float64, err error)
	// Page renders a page. dpi is ignored by pixel-based sources.
	Page(index int, dpi int) (image.Image, error)
	Close() error
}

// Open picks the source implementation by path: a .pdf file is rendered
// with MuPDF, anything else is treated as an image file or directory.
func Open(path string) (Source, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return OpenPDF(path)
	}
	return OpenImages(path)
}

func checkIndex(index, count int) error {
	if index < 0 || index >= count {
		return fmt.Errorf("page %d out of range [0, %d)", index, count)
	}
	return nil
}

// PDF renders pages of a PDF document. MuPDF documents are not safe for
// concurrent use, so calls are serialized.
type PDF struct {
	mu   sync.Mutex
	doc  *fitz.Document
	path string
}

func OpenPDF(path string) (*PDF, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	return &PDF{doc: doc, path: path}, nil
}

func (p *PDF) PageCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.doc.NumPage()
}

func (p *PDF) PageSize(index int) (float64, float64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := checkIndex(index, p.doc.NumPage()); err != nil {
		return 0, 0, err
	}
	rect, err := p.doc.Bound(index)
	if err != nil {
		return 0, 0, err
	}
	return float64(rect.Dx()), float64(rect.Dy()), nil
}

func (p *PDF) Page(index int, dpi int) (image.Image, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := checkIndex(index, p.doc.NumPage()); err != nil {
		return nil, err
	}
	if dpi <= 0 {
		dpi = 150
	}
	return p.doc.ImageDPI(index, float64(dpi))
}

func (p *PDF) Close() error {
	return p.doc.Close()
}
