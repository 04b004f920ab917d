package video

import (
	"context"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/motionclip/internal/config"
	"github.com/ivlev/motionclip/internal/errdefs"
	"github.com/ivlev/motionclip/internal/system"
)

// PNGExporter writes frame_000000.png, frame_000001.png, ... into a
// directory, encoding several frames concurrently.
type PNGExporter struct {
	dir     string
	workers int
	pool    *system.ImagePool
	log     *slog.Logger

	settings config.Settings
	group    *errgroup.Group
	ctx      context.Context
	index    int
}

func NewPNGExporter(dir string, opts Options) *PNGExporter {
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	return &PNGExporter{
		dir:     dir,
		workers: opts.Workers,
		pool:    system.NewImagePool(),
		log:     log.With(slog.String("component", "png")),
	}
}

func (e *PNGExporter) Begin(s config.Settings) error {
	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return fmt.Errorf("%w: %v", errdefs.ErrResource, err)
	}
	workers := e.workers
	if workers <= 0 {
		workers = system.Workers(frameSize(s))
	}
	e.settings = s
	e.group, e.ctx = errgroup.WithContext(context.Background())
	e.group.SetLimit(workers)
	e.log.Info("writing frames", slog.String("dir", e.dir), slog.Int("workers", workers))
	return nil
}

// PushFrame copies the frame and queues it for encoding. It blocks while
// all workers are busy.
func (e *PNGExporter) PushFrame(_ bool, rgba []byte) error {
	if err := checkFrame(e.settings, rgba); err != nil {
		return err
	}
	if err := e.ctx.Err(); err != nil {
		// Один из воркеров уже упал.
		return e.group.Wait()
	}

	img := e.pool.Copy(wrap(e.settings, rgba))
	path := filepath.Join(e.dir, fmt.Sprintf("frame_%06d.png", e.index))
	e.index++

	e.group.Go(func() error {
		defer e.pool.Put(img)
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("%w: %v", errdefs.ErrResource, err)
		}
		if err := png.Encode(f, img); err != nil {
			f.Close()
			return fmt.Errorf("%w: encode %s: %v", errdefs.ErrResource, path, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("%w: %v", errdefs.ErrResource, err)
		}
		return nil
	})
	return nil
}

func (e *PNGExporter) End() error {
	if e.group == nil {
		return nil
	}
	if err := e.group.Wait(); err != nil {
		return err
	}
	e.log.Info("frames written", slog.Int("count", e.index))
	return nil
}
