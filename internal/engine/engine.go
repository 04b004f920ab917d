// Package engine drives a timeline through its frames: it resolves every
// frame into events, hands them to a renderer and passes the pixels to an
// exporter.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cogentcore.org/core/math32"

	"github.com/ivlev/motionclip/internal/config"
	"github.com/ivlev/motionclip/internal/effect"
	"github.com/ivlev/motionclip/internal/errdefs"
	"github.com/ivlev/motionclip/internal/renderer"
	"github.com/ivlev/motionclip/internal/timeline"
	"github.com/ivlev/motionclip/internal/video"
)

// TimeBuffer is the renderer buffer that receives the frame's timing
// context before any other event.
const TimeBuffer = "time"

// Project is one video: its settings, its effect registry and its clip
// tree. Frames are produced strictly one after another.
type Project struct {
	Settings config.Settings
	Registry *effect.Registry

	root     *timeline.Clip
	total    uint64
	prepared bool
	log      *slog.Logger
}

func NewProject(s config.Settings, log *slog.Logger) *Project {
	if log == nil {
		log = slog.Default()
	}
	reg := effect.NewRegistry()
	total := s.Frames()
	return &Project{
		Settings: s,
		Registry: reg,
		root:     timeline.New(s.FPS, total, reg),
		total:    total,
		log:      log.With(slog.String("component", "engine")),
	}
}

// Root is the clip spanning the whole video.
func (p *Project) Root() *timeline.Clip { return p.root }

// Frames is the number of frames of the video.
func (p *Project) Frames() uint64 { return p.total }

// Prepare harvests the timeline and registers its effect kinds with r. It
// must be called once, before the first frame.
func (p *Project) Prepare(r renderer.Renderer) error {
	if p.prepared {
		return fmt.Errorf("%w: project prepared twice", errdefs.ErrInternalConsistency)
	}
	kinds, err := p.root.Harvest()
	if err != nil {
		return err
	}
	if err := r.RegisterBackends(kinds); err != nil {
		return err
	}
	p.prepared = true

	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.Name
	}
	p.log.Debug("timeline harvested", slog.Int("kinds", len(kinds)), slog.Any("names", names))
	return nil
}

// ResolveFrame returns the event list of frame: the timing buffer write,
// then the events of the clip tree.
func (p *Project) ResolveFrame(frame uint64, screen *math32.Matrix4) []timeline.Event {
	t := timeline.VideoTimeAt(frame, p.total, p.Settings.FPS)
	data, _ := t.MarshalBinary()
	events := []timeline.Event{timeline.WriteBuffer{Target: TimeBuffer, Data: data}}
	return append(events, p.root.Resolve(t, screen)...)
}

// Export renders every frame in [0, Frames()) and pushes it to e. Any
// failure ends the job; the exporter is still closed.
func (p *Project) Export(r renderer.Renderer, e video.Exporter) (stats Stats, err error) {
	start := time.Now()
	if !p.prepared {
		if err := p.Prepare(r); err != nil {
			return stats, err
		}
	}
	if err := e.Begin(p.Settings); err != nil {
		return stats, err
	}
	defer func() {
		if endErr := e.End(); err == nil && endErr != nil {
			err = endErr
		}
		stats.Total = time.Since(start)
		p.log.LogAttrs(context.Background(), slog.LevelInfo, "export finished",
			slog.Uint64("frames", stats.Frames),
			slog.Duration("elapsed", stats.Total),
			slog.Bool("ok", err == nil),
		)
	}()

	screen := r.ScreenMatrix()
	progressEvery := max(p.total/10, 1)
	for frame := uint64(0); frame < p.total; frame++ {
		t0 := time.Now()
		events := p.ResolveFrame(frame, screen)
		t1 := time.Now()
		img, err := r.Render(events)
		if err != nil {
			return stats, fmt.Errorf("frame %d: %w", frame, err)
		}
		if img == nil {
			return stats, fmt.Errorf("%w: frame %d: renderer returned no pixels in export mode", errdefs.ErrResource, frame)
		}
		t2 := time.Now()
		if err := e.PushFrame(true, img.Pix); err != nil {
			return stats, fmt.Errorf("frame %d: %w", frame, err)
		}
		t3 := time.Now()

		stats.Frames++
		stats.Resolve += t1.Sub(t0)
		stats.Render += t2.Sub(t1)
		stats.Encode += t3.Sub(t2)
		if (frame+1)%progressEvery == 0 {
			p.log.Info("progress", slog.Uint64("frame", frame+1), slog.Uint64("total", p.total))
		}
	}
	return stats, nil
}

// Preview renders frames at the video's frame rate without reading pixels
// back, wrapping around at the end. It stops after loops passes over the
// video, or when ctx is done if loops is 0.
func (p *Project) Preview(ctx context.Context, r renderer.Renderer, loops int) error {
	if !p.prepared {
		if err := p.Prepare(r); err != nil {
			return err
		}
	}
	if p.total == 0 {
		return nil
	}
	ticker := time.NewTicker(time.Duration(float64(time.Second) / p.Settings.FPS))
	defer ticker.Stop()

	screen := r.ScreenMatrix()
	for i := uint64(0); loops == 0 || i < uint64(loops)*p.total; i++ {
		frame := i % p.total
		if _, err := r.Render(p.ResolveFrame(frame, screen)); err != nil {
			return fmt.Errorf("frame %d: %w", frame, err)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
	return nil
}
