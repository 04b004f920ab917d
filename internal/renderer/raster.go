package renderer

import (
	"fmt"
	"image"
	"image/draw"
	"log/slog"

	"cogentcore.org/core/math32"

	"github.com/ivlev/motionclip/internal/config"
	"github.com/ivlev/motionclip/internal/effect"
	"github.com/ivlev/motionclip/internal/errdefs"
	"github.com/ivlev/motionclip/internal/interp"
	"github.com/ivlev/motionclip/internal/timeline"
)

// Mode selects whether Render hands the frame back.
type Mode int

const (
	// Export reads every frame back for an exporter.
	Export Mode = iota
	// Present draws without readback.
	Present
)

// Raster is a CPU renderer. Timeline units are pixels with the origin at
// the center of the frame and y pointing up.
type Raster struct {
	settings config.Settings
	mode     Mode
	log      *slog.Logger

	canvas     *image.RGBA
	background image.Image
	dc         *effect.DrawContext
	backends   map[effect.KindID]effect.Backend
	names      map[effect.KindID]string
	frame      uint64
}

func NewRaster(s config.Settings, m Mode, log *slog.Logger) (*Raster, error) {
	bg, err := interp.Hex(s.Background)
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}
	canvas := image.NewRGBA(image.Rect(0, 0, s.Width, s.Height))
	return &Raster{
		settings:   s,
		mode:       m,
		log:        log.With(slog.String("component", "raster")),
		canvas:     canvas,
		background: image.NewUniform(bg.NRGBA()),
		dc:         effect.NewDrawContext(canvas),
		backends:   make(map[effect.KindID]effect.Backend),
		names:      make(map[effect.KindID]string),
	}, nil
}

func (r *Raster) RegisterBackends(kinds []effect.Kind) error {
	rc := &effect.RenderContext{
		Width:  r.settings.Width,
		Height: r.settings.Height,
		FPS:    r.settings.FPS,
		Log:    r.log,
	}
	for _, k := range kinds {
		if _, dup := r.backends[k.ID]; dup {
			return fmt.Errorf("%w: backend for kind %d (%s) constructed twice",
				errdefs.ErrInternalConsistency, k.ID, k.Name)
		}
		b, err := k.NewBackend(rc)
		if err != nil {
			return fmt.Errorf("%w: backend %s: %v", errdefs.ErrResource, k.Name, err)
		}
		r.backends[k.ID] = b
		r.names[k.ID] = k.Name
		r.log.Debug("backend registered", slog.Int("kind", int(k.ID)), slog.String("name", k.Name))
	}
	return nil
}

func (r *Raster) ScreenMatrix() *math32.Matrix4 {
	var q math32.Quat
	q.SetIdentity()
	var m math32.Matrix4
	m.SetTransform(
		math32.Vec3(float32(r.settings.Width)/2, float32(r.settings.Height)/2, 0),
		q,
		math32.Vec3(1, -1, 1),
	)
	return &m
}

// Render clears the canvas and executes events in order. Consecutive pushes
// of one kind form a batch; the batch is drawn when the kind changes or the
// list ends, which keeps painter's order across kinds.
func (r *Raster) Render(events []timeline.Event) (*image.RGBA, error) {
	draw.Draw(r.canvas, r.canvas.Bounds(), r.background, image.Point{}, draw.Src)
	r.dc.Frame = r.frame
	r.frame++

	xf := *math32.Identity4()
	pending, hasPending := effect.KindID(0), false
	flush := func() error {
		if !hasPending {
			return nil
		}
		hasPending = false
		if err := r.backends[pending].Render(r.dc); err != nil {
			return fmt.Errorf("%w: render %s: %w", errdefs.ErrResource, r.names[pending], err)
		}
		return nil
	}

	for _, ev := range events {
		switch ev := ev.(type) {
		case timeline.SetTransform:
			xf = ev.Matrix
		case timeline.WriteBuffer:
			r.dc.WriteBuffer(ev.Target, ev.Offset, ev.Data)
		case timeline.EffectPush:
			b, ok := r.backends[ev.Kind]
			if !ok {
				return nil, fmt.Errorf("%w: push for unregistered kind %d", errdefs.ErrInternalConsistency, ev.Kind)
			}
			if hasPending && pending != ev.Kind {
				if err := flush(); err != nil {
					return nil, err
				}
			}
			if err := b.Push(ev.Effect.Evaluate(ev.Frame), &xf); err != nil {
				return nil, err
			}
			pending, hasPending = ev.Kind, true
		default:
			return nil, fmt.Errorf("%w: unknown event %T", errdefs.ErrInternalConsistency, ev)
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}

	if r.mode == Present {
		return nil, nil
	}
	return r.canvas, nil
}

// Canvas is the frame being drawn, regardless of mode.
func (r *Raster) Canvas() *image.RGBA { return r.canvas }
