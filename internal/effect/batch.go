package effect

import (
	"fmt"

	"cogentcore.org/core/math32"

	"github.com/ivlev/motionclip/internal/errdefs"
)

// Item is a pushed record together with the transform current at push time.
type Item[I any] struct {
	Value     I
	Transform math32.Matrix4
}

// Batch is a Backend for records of type I. The flush function receives the
// whole batch once per Render.
type Batch[I any] struct {
	items []Item[I]
	flush func(dc *DrawContext, items []Item[I]) error
}

func NewBatch[I any](flush func(dc *DrawContext, items []Item[I]) error) *Batch[I] {
	return &Batch[I]{flush: flush}
}

// Push appends inst. A record of another type means the dispatch table is
// broken and is reported as ErrInternalConsistency.
func (b *Batch[I]) Push(inst Instance, xf *math32.Matrix4) error {
	v, ok := inst.(I)
	if !ok {
		var want I
		return fmt.Errorf("%w: %T pushed to a batch of %T", errdefs.ErrInternalConsistency, inst, want)
	}
	item := Item[I]{Value: v, Transform: *math32.Identity4()}
	if xf != nil {
		item.Transform = *xf
	}
	b.items = append(b.items, item)
	return nil
}

// Render flushes and clears the batch. An empty batch is not flushed.
func (b *Batch[I]) Render(dc *DrawContext) error {
	if len(b.items) == 0 {
		return nil
	}
	items := b.items
	b.items = b.items[:0]
	return b.flush(dc, items)
}

// Len is the number of records waiting for Render.
func (b *Batch[I]) Len() int { return len(b.items) }
