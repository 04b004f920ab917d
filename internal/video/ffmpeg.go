package video

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"

	"github.com/ivlev/motionclip/internal/config"
	"github.com/ivlev/motionclip/internal/errdefs"
	"github.com/ivlev/motionclip/internal/system"
)

// FFmpegExporter pipes raw RGBA frames into an ffmpeg process.
type FFmpegExporter struct {
	ctx     context.Context
	path    string
	opts    Options
	log     *slog.Logger
	command func(ctx context.Context, args ...string) *exec.Cmd

	settings config.Settings
	cmd      *exec.Cmd
	stdin    io.WriteCloser
	stderr   bytes.Buffer
	frames   uint64
}

func NewFFmpegExporter(ctx context.Context, path string, opts Options) *FFmpegExporter {
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	return &FFmpegExporter{
		ctx:  ctx,
		path: path,
		opts: opts,
		log:  log.With(slog.String("component", "ffmpeg")),
		command: func(ctx context.Context, args ...string) *exec.Cmd {
			return exec.CommandContext(ctx, "ffmpeg", args...)
		},
	}
}

func (e *FFmpegExporter) args(s config.Settings, encoder string, quality int) []string {
	args := []string{
		"-y", "-hide_banner", "-loglevel", "error",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", s.Width, s.Height),
		"-framerate", strconv.FormatFloat(s.FPS, 'f', -1, 64),
		"-i", "-",
	}
	if e.opts.Audio != "" {
		args = append(args, "-i", e.opts.Audio, "-map", "0:v", "-map", "1:a", "-c:a", "aac", "-shortest")
	}
	args = append(args, "-pix_fmt", "yuv420p", "-c:v", encoder)

	switch encoder {
	case "h264_videotoolbox":
		// VideoToolbox не везде понимает -q:v, задаём битрейт: 75 -> 7.5 Мбит/с.
		args = append(args, "-b:v", fmt.Sprintf("%dk", quality*100))
	case "h264_nvenc":
		args = append(args, "-cq", strconv.Itoa(quality))
	default:
		args = append(args, "-crf", strconv.Itoa(quality), "-preset", "medium")
	}
	return append(args, e.path)
}

func (e *FFmpegExporter) Begin(s config.Settings) error {
	encoder := e.opts.Encoder
	if encoder == "" {
		encoder = system.GetBestH264Encoder(e.ctx)
	}
	quality := e.opts.Quality
	if quality == 0 {
		quality = system.DefaultQuality(encoder)
	}

	e.settings = s
	e.cmd = e.command(e.ctx, e.args(s, encoder, quality)...)
	e.cmd.Stderr = &e.stderr
	stdin, err := e.cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("%w: ffmpeg stdin: %v", errdefs.ErrResource, err)
	}
	e.stdin = stdin
	if err := e.cmd.Start(); err != nil {
		return fmt.Errorf("%w: ffmpeg start: %v", errdefs.ErrResource, err)
	}
	e.log.Info("encoding", slog.String("output", e.path), slog.String("encoder", encoder), slog.Int("quality", quality))
	return nil
}

func (e *FFmpegExporter) PushFrame(_ bool, rgba []byte) error {
	if err := checkFrame(e.settings, rgba); err != nil {
		return err
	}
	if _, err := e.stdin.Write(rgba); err != nil {
		werr := fmt.Errorf("%w: ffmpeg write frame %d: %v", errdefs.ErrResource, e.frames, err)
		// ffmpeg обычно уже завершился, причина в его stderr.
		if ferr := e.finish(); ferr != nil {
			return errors.Join(werr, ferr)
		}
		return werr
	}
	e.frames++
	return nil
}

func (e *FFmpegExporter) End() error {
	if e.cmd == nil {
		return nil
	}
	if err := e.finish(); err != nil {
		return err
	}
	e.log.Info("encoded", slog.String("output", e.path), slog.Uint64("frames", e.frames))
	return nil
}

// finish closes stdin and waits for ffmpeg. stderr is read only after Wait,
// once exec has stopped copying into it.
func (e *FFmpegExporter) finish() error {
	cmd := e.cmd
	e.cmd = nil
	e.stdin.Close()
	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("%w: ffmpeg: %v: %s", errdefs.ErrResource, err, strings.TrimSpace(e.stderr.String()))
	}
	return nil
}
