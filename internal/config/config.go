package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Settings describes the output video.
type Settings struct {
	FPS        float64       `toml:"fps" yaml:"fps,omitempty"`
	Width      int           `toml:"width" yaml:"width,omitempty"`
	Height     int           `toml:"height" yaml:"height,omitempty"`
	Duration   time.Duration `toml:"duration" yaml:"duration,omitempty"`
	Background string        `toml:"background" yaml:"background,omitempty"`
}

// DefaultSettings: 1080p at 60 FPS, 30 seconds, dark gray background.
func DefaultSettings() Settings {
	return Settings{
		FPS:        60,
		Width:      1920,
		Height:     1080,
		Duration:   30 * time.Second,
		Background: "#171717",
	}
}

// Frames is the total number of output frames, floor(duration * fps).
func (s Settings) Frames() uint64 {
	f := math.Floor(s.Duration.Seconds() * s.FPS)
	if f <= 0 {
		return 0
	}
	return uint64(f)
}

// Merge overrides the fields of s that are set in o.
func (s Settings) Merge(o Settings) Settings {
	if o.FPS > 0 {
		s.FPS = o.FPS
	}
	if o.Width > 0 {
		s.Width = o.Width
	}
	if o.Height > 0 {
		s.Height = o.Height
	}
	if o.Duration > 0 {
		s.Duration = o.Duration
	}
	if o.Background != "" {
		s.Background = o.Background
	}
	return s
}

func (s Settings) Validate() error {
	var errs []error
	if s.FPS <= 0 {
		errs = append(errs, fmt.Errorf("fps must be positive, got %v", s.FPS))
	}
	if s.Width <= 0 || s.Height <= 0 {
		errs = append(errs, fmt.Errorf("invalid resolution %dx%d", s.Width, s.Height))
	}
	if s.Width%2 != 0 || s.Height%2 != 0 {
		// yuv420p требует чётных размеров
		errs = append(errs, fmt.Errorf("resolution %dx%d must be even", s.Width, s.Height))
	}
	if s.Frames() == 0 {
		errs = append(errs, fmt.Errorf("duration %v yields no frames at %v fps", s.Duration, s.FPS))
	}
	return errors.Join(errs...)
}

// Profile is a TOML render profile: output settings plus encoder options.
type Profile struct {
	Video   Settings `toml:"video"`
	Encoder string   `toml:"encoder"`
	Quality int      `toml:"quality"`
	Workers int      `toml:"workers"`
}

// LoadProfile reads a TOML render profile. Undecoded keys are reported as
// errors to catch typos.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p Profile
	md, err := toml.Decode(string(data), &p)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("profile %s: unknown keys %v", path, undecoded)
	}
	return &p, nil
}

// Config holds the options of one CLI invocation.
type Config struct {
	ScenePath    string
	ProfilePath  string
	Output       string
	Preview      bool
	PreviewLoops int
	Video        Settings
	VideoEncoder string
	Quality      int
	Workers      int
	ShowStats    bool
	BuildVersion string
}
