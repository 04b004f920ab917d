// Package director turns scene files into clip trees.
package director

import (
	"errors"
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"

	"github.com/ivlev/motionclip/internal/animation"
	"github.com/ivlev/motionclip/internal/config"
	"github.com/ivlev/motionclip/internal/effect"
	"github.com/ivlev/motionclip/internal/effects"
	"github.com/ivlev/motionclip/internal/engine"
	"github.com/ivlev/motionclip/internal/errdefs"
	"github.com/ivlev/motionclip/internal/interp"
	"github.com/ivlev/motionclip/internal/timeline"
)

// Version is the scene format understood by Build.
const Version = "1.0"

// Settings applies the scene's video block on top of base.
func (s *Scene) Settings(base config.Settings) config.Settings {
	return base.Merge(s.Video)
}

// Build adds the clips of scene under the root of p. All authoring errors
// of the scene are reported together.
func Build(scene *Scene, p *engine.Project) error {
	if scene.Version != "" && scene.Version != Version {
		return fmt.Errorf("%w: scene version %q, expected %q", errdefs.ErrAuthoring, scene.Version, Version)
	}
	b := &builder{settings: p.Settings}
	for i := range scene.Clips {
		b.clip(p.Root(), &scene.Clips[i], fmt.Sprintf("clips[%d]", i))
	}
	return errors.Join(errors.Join(b.errs...), p.Root().Err())
}

type builder struct {
	settings config.Settings
	errs     []error
}

func (b *builder) fail(path string, err error) {
	b.errs = append(b.errs, fmt.Errorf("%s: %w", path, err))
}

func (b *builder) clip(parent *timeline.Clip, c *Clip, path string) {
	if c.Name != "" {
		path += "(" + c.Name + ")"
	}
	r, err := c.span()
	if err != nil {
		b.fail(path, err)
		return
	}
	node := parent.NewClip(r)

	if len(c.Translate) > 0 {
		x, y, z, err := vec3(c.Translate, 0)
		if err != nil {
			b.fail(path+".translate", err)
		} else {
			node.Translate(x, y, z)
		}
	}
	if c.Rotate != 0 {
		node.Rotate(c.Rotate)
	}
	if len(c.Scale) > 0 {
		x, y, z, err := vec3(c.Scale, 1)
		if err != nil {
			b.fail(path+".scale", err)
		} else {
			node.Scale(x, y, z)
		}
	}

	for i := range c.Effects {
		e, err := b.effect(&c.Effects[i])
		if err != nil {
			b.fail(fmt.Sprintf("%s.effects[%d]", path, i), err)
			continue
		}
		node.Effect(e)
	}
	for i := range c.Clips {
		b.clip(node, &c.Clips[i], fmt.Sprintf("%s.clips[%d]", path, i))
	}
}

func (c *Clip) span() (timeline.Range, error) {
	var r timeline.Range
	if c.Start != nil && c.StartFrame != nil {
		return r, fmt.Errorf("%w: both start and start_frame are set", errdefs.ErrAuthoring)
	}
	if c.End != nil && c.EndFrame != nil {
		return r, fmt.Errorf("%w: both end and end_frame are set", errdefs.ErrAuthoring)
	}
	switch {
	case c.StartFrame != nil:
		r.Start = timeline.Frames(*c.StartFrame)
	case c.Start != nil:
		if *c.Start < 0 {
			return r, fmt.Errorf("%w: negative start %v", errdefs.ErrAuthoring, *c.Start)
		}
		r.Start = timeline.Seconds(*c.Start)
	}
	switch {
	case c.EndFrame != nil:
		r.End = timeline.Frames(*c.EndFrame)
	case c.End != nil:
		if *c.End < 0 {
			return r, fmt.Errorf("%w: negative end %v", errdefs.ErrAuthoring, *c.End)
		}
		r.End = timeline.Seconds(*c.End)
	}
	return r, nil
}

func vec3(v []float64, z float64) (float64, float64, float64, error) {
	switch len(v) {
	case 2:
		return v[0], v[1], z, nil
	case 3:
		return v[0], v[1], v[2], nil
	}
	return 0, 0, 0, fmt.Errorf("%w: expected 2 or 3 components, got %d", errdefs.ErrAuthoring, len(v))
}

func (b *builder) effect(e *Effect) (effect.Effect, error) {
	fps := b.settings.FPS
	pos, err := track(fps, e.Position, interp.Method[interp.Vec2], vec2)
	if err != nil {
		return nil, fmt.Errorf("position: %w", err)
	}
	size, err := track(fps, e.Size, interp.Method[interp.Vec2], vec2)
	if err != nil {
		return nil, fmt.Errorf("size: %w", err)
	}
	color, err := track(fps, e.Color, interp.Method[interp.Color], hex)
	if err != nil {
		return nil, fmt.Errorf("color: %w", err)
	}
	opacity, err := track(fps, e.Opacity, interp.Float[float64], same[float64])
	if err != nil {
		return nil, fmt.Errorf("opacity: %w", err)
	}

	switch strings.ToLower(e.Type) {
	case "rect":
		return &effects.Rect{Position: pos, Size: size, Color: color}, nil

	case "qrcode":
		if e.Content == "" {
			return nil, fmt.Errorf("%w: qrcode without content", errdefs.ErrAuthoring)
		}
		level, err := qrLevel(e.Level)
		if err != nil {
			return nil, err
		}
		return &effects.QRCode{Content: e.Content, Level: level, Position: pos, Size: size, Color: color}, nil

	case "image":
		if e.Path == "" {
			return nil, fmt.Errorf("%w: image without path", errdefs.ErrAuthoring)
		}
		if e.Zoom != nil {
			if (pos != nil && pos.Animated()) || (size != nil && size.Animated()) {
				return nil, fmt.Errorf("%w: zoom cannot be combined with animated position or size", errdefs.ErrAuthoring)
			}
			center := interp.Vec2{}
			if pos != nil {
				center = pos.Initial()
			}
			base := interp.V2(float64(b.settings.Width), float64(b.settings.Height))
			if size != nil {
				base = size.Initial()
			}
			frames := animation.SecondsToFrames(e.Zoom.Duration, fps)
			pos, size, err = effects.Zoom(e.Zoom.Mode, center, base, e.Zoom.Speed, frames)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", errdefs.ErrAuthoring, err)
			}
		}
		return &effects.Image{Path: e.Path, Page: e.Page, DPI: e.DPI, Position: pos, Size: size, Opacity: opacity}, nil
	}
	return nil, fmt.Errorf("%w: unknown effect type %q (known: rect, qrcode, image)", errdefs.ErrAuthoring, e.Type)
}

// track builds the property described by tr, converting file values with
// conv. A missing track is a nil property.
func track[V, T any](fps float64, tr *Track[V], lerp interp.Func[T], conv func(V) (T, error)) (*animation.Property[T], error) {
	if tr == nil {
		return nil, nil
	}
	ab := animation.NewBuilder(fps, lerp)
	if tr.Initial != nil {
		v, err := conv(*tr.Initial)
		if err != nil {
			return nil, err
		}
		ab.From(v)
	}
	for i, kf := range tr.Keyframes {
		if kf.Hold != nil {
			if kf.Value != nil || kf.Abs != nil || kf.Rel != nil || kf.Frame != nil {
				return nil, fmt.Errorf("%w: keyframes[%d]: hold takes no value or time", errdefs.ErrAuthoring, i)
			}
			ab.Hold(*kf.Hold)
			continue
		}
		at, err := kf.timing()
		if err != nil {
			return nil, fmt.Errorf("keyframes[%d]: %w", i, err)
		}
		ease, err := interp.EasingByName(kf.Ease)
		if err != nil {
			return nil, fmt.Errorf("%w: keyframes[%d]: %w", errdefs.ErrAuthoring, i, err)
		}
		if kf.Value == nil {
			return nil, fmt.Errorf("%w: keyframes[%d]: missing value", errdefs.ErrAuthoring, i)
		}
		v, err := conv(*kf.Value)
		if err != nil {
			return nil, fmt.Errorf("keyframes[%d]: %w", i, err)
		}
		ab.Keyframe(at, ease, v)
	}
	return ab.Build()
}

func (kf *Keyframe[V]) timing() (animation.Timing, error) {
	n := 0
	var at animation.Timing
	if kf.Abs != nil {
		n++
		at = animation.Abs(*kf.Abs)
	}
	if kf.Rel != nil {
		n++
		at = animation.Rel(*kf.Rel)
	}
	if kf.Frame != nil {
		n++
		at = animation.AbsFrame(*kf.Frame)
	}
	if n != 1 {
		return at, fmt.Errorf("%w: exactly one of abs, rel and frame must be set", errdefs.ErrAuthoring)
	}
	return at, nil
}

func vec2(v [2]float64) (interp.Vec2, error) { return interp.V2(v[0], v[1]), nil }

func same[T any](v T) (T, error) { return v, nil }

func hex(s string) (interp.Color, error) {
	c, err := interp.Hex(s)
	if err != nil {
		return c, fmt.Errorf("%w: %w", errdefs.ErrAuthoring, err)
	}
	return c, nil
}

func qrLevel(s string) (qrcode.RecoveryLevel, error) {
	switch strings.ToLower(s) {
	case "low":
		return qrcode.Low, nil
	case "", "medium":
		return qrcode.Medium, nil
	case "high":
		return qrcode.High, nil
	case "highest":
		return qrcode.Highest, nil
	}
	return 0, fmt.Errorf("%w: unknown qrcode level %q", errdefs.ErrAuthoring, s)
}
