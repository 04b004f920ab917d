// Package video hands rendered frames to their destination: an ffmpeg
// encode, a PNG sequence or an MQTT stream.
package video

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/ivlev/motionclip/internal/config"
	"github.com/ivlev/motionclip/internal/errdefs"
)

// Exporter receives the frames of one export job in order.
type Exporter interface {
	Begin(s config.Settings) error
	// PushFrame takes one tightly packed RGBA8 frame. keyframe is true for
	// every frame of an export.
	PushFrame(keyframe bool, rgba []byte) error
	End() error
}

// Options configure the exporters created by To.
type Options struct {
	Encoder string
	Quality int
	Audio   string
	Workers int
	// LEDSize downsamples MQTT frames, e.g. to the size of an LED matrix.
	LEDSize image.Point
	Log     *slog.Logger
}

func frameSize(s config.Settings) int {
	return s.Width * s.Height * 4
}

func checkFrame(s config.Settings, rgba []byte) error {
	if want := frameSize(s); len(rgba) != want {
		return fmt.Errorf("%w: frame of %d bytes, expected %d for %dx%d RGBA",
			errdefs.ErrResource, len(rgba), want, s.Width, s.Height)
	}
	return nil
}

// wrap views a packed RGBA8 buffer as an image without copying.
func wrap(s config.Settings, rgba []byte) *image.RGBA {
	return &image.RGBA{Pix: rgba, Stride: s.Width * 4, Rect: image.Rect(0, 0, s.Width, s.Height)}
}
