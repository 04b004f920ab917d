// Package timeline holds the clip tree of a video and resolves it, frame by
// frame, into the ordered event list a renderer consumes.
package timeline

import (
	"errors"
	"fmt"
	"math"

	"cogentcore.org/core/math32"

	"github.com/ivlev/motionclip/internal/effect"
	"github.com/ivlev/motionclip/internal/errdefs"
)

type instance struct {
	kind   effect.KindID
	effect effect.Effect
}

// tree is shared by every clip of one timeline.
type tree struct {
	fps       float64
	registry  *effect.Registry
	harvested bool
}

// Clip is a node of the timeline. Start and End are in the parent's local
// frames; nil means unbounded on that side.
type Clip struct {
	tree      *tree
	start     *uint64
	end       *uint64
	transform Transform
	children  []*Clip
	effects   []instance
	err       error
}

// New creates the root clip of a video of duration frames. Effect types are
// registered with reg as they are attached.
func New(fps float64, duration uint64, reg *effect.Registry) *Clip {
	start, end := uint64(0), duration
	return &Clip{
		tree:      &tree{fps: fps, registry: reg},
		start:     &start,
		end:       &end,
		transform: identityTransform(),
	}
}

// NewClip adds a child scoped to r and returns it.
func (c *Clip) NewClip(r Range) *Clip {
	child := &Clip{tree: c.tree, transform: identityTransform()}
	if r.Start != nil {
		s := r.Start.Frames(c.tree.fps)
		child.start = &s
	}
	if r.End != nil {
		e := r.End.Frames(c.tree.fps)
		child.end = &e
	}
	if child.start != nil && child.end != nil && *child.start > *child.end {
		child.fail(fmt.Errorf("%w: clip starts at frame %d after its end %d",
			errdefs.ErrAuthoring, *child.start, *child.end))
	}
	c.children = append(c.children, child)
	return child
}

// Effect attaches e to the clip.
func (c *Clip) Effect(e effect.Effect) *Clip {
	id, err := c.tree.registry.KindOf(e)
	if err != nil {
		c.fail(err)
		return c
	}
	c.effects = append(c.effects, instance{kind: id, effect: e})
	return c
}

// Translate moves the clip's content.
func (c *Clip) Translate(x, y, z float64) *Clip {
	c.transform.Pos = math32.Vec3(float32(x), float32(y), float32(z))
	return c
}

// Rotate rotates the clip's content about the Z axis by degrees,
// counter-clockwise in y-up coordinates.
func (c *Clip) Rotate(degrees float64) *Clip {
	c.transform.Quat = math32.NewQuatAxisAngle(math32.Vec3(0, 0, 1), math32.DegToRad(float32(degrees)))
	return c
}

// Scale scales the clip's content.
func (c *Clip) Scale(x, y, z float64) *Clip {
	c.transform.Scale = math32.Vec3(float32(x), float32(y), float32(z))
	return c
}

func (c *Clip) FPS() float64 { return c.tree.fps }

// Children returns the direct children in insertion order.
func (c *Clip) Children() []*Clip { return append([]*Clip(nil), c.children...) }

// Window returns the clip's bounds in the parent's frames; ok reports
// whether the bound is set.
func (c *Clip) Window() (start uint64, hasStart bool, end uint64, hasEnd bool) {
	if c.start != nil {
		start, hasStart = *c.start, true
	}
	if c.end != nil {
		end, hasEnd = *c.end, true
	}
	return
}

func (c *Clip) fail(err error) {
	if c.err == nil {
		c.err = err
	}
}

// Err returns the authoring errors recorded in the subtree.
func (c *Clip) Err() error {
	var errs []error
	c.walk(func(n *Clip) {
		if n.err != nil {
			errs = append(errs, n.err)
		}
	})
	return errors.Join(errs...)
}

// walk visits c and its descendants, each node before its children.
func (c *Clip) walk(fn func(*Clip)) {
	fn(c)
	for _, child := range c.children {
		child.walk(fn)
	}
}

// Harvest collects the distinct effect kinds of the tree in first-seen
// order and freezes the registry. It runs once per timeline, before the
// first frame.
func (c *Clip) Harvest() ([]effect.Kind, error) {
	if err := c.Err(); err != nil {
		return nil, err
	}
	if c.tree.harvested {
		return nil, fmt.Errorf("%w: timeline harvested twice", errdefs.ErrInternalConsistency)
	}

	seen := make(map[effect.KindID]bool)
	var kinds []effect.Kind
	var err error
	c.walk(func(n *Clip) {
		for _, inst := range n.effects {
			if seen[inst.kind] {
				continue
			}
			seen[inst.kind] = true
			k, ok := c.tree.registry.Kind(inst.kind)
			if !ok && err == nil {
				err = fmt.Errorf("%w: kind %d is not registered", errdefs.ErrInternalConsistency, inst.kind)
				continue
			}
			kinds = append(kinds, k)
		}
	})
	if err != nil {
		return nil, err
	}
	c.tree.registry.Freeze()
	c.tree.harvested = true
	return kinds, nil
}

func (c *Clip) bounds(parentEnd uint64) (start, end uint64) {
	end = parentEnd
	if c.start != nil {
		start = *c.start
	}
	if c.end != nil {
		end = *c.end
	}
	return start, end
}

// Resolve returns the events of the clip at t, where t.ClipFrame is the
// clip's own local frame. Descendants come first, followed by the clip's
// transform and its own effects, so a clip draws in front of its children.
// Frames outside the clip's window yield no events; a clip without an end
// is unbounded.
func (c *Clip) Resolve(t Time, parent *math32.Matrix4) []Event {
	start, end := c.bounds(math.MaxUint64)
	if end < start || t.ClipFrame >= end-start {
		return nil
	}
	var events []Event
	c.resolve(t, end-start, parent, &events)
	return events
}

// resolve appends the events of c. localEnd is the length of c in its own
// frames and is the default end of its children.
func (c *Clip) resolve(t Time, localEnd uint64, parent *math32.Matrix4, events *[]Event) {
	world := c.transform.World(parent)

	for _, child := range c.children {
		start, end := child.bounds(localEnd)
		if t.ClipFrame < start || t.ClipFrame >= end {
			continue
		}
		frame := t.ClipFrame - start
		progress := float64(frame) / float64(end-start)
		ct := t.Push(frame, float64(frame)/c.tree.fps, progress)
		child.resolve(ct, end-start, &world, events)
	}

	if len(c.effects) == 0 {
		return
	}
	*events = append(*events, SetTransform{Matrix: world})
	for _, inst := range c.effects {
		*events = append(*events, EffectPush{Kind: inst.kind, Effect: inst.effect, Frame: t.ClipFrame})
	}
}
