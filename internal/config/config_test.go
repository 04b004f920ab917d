package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFrames(t *testing.T) {
	tests := []struct {
		fps      float64
		duration time.Duration
		want     uint64
	}{
		{60, 30 * time.Second, 1800},
		{60, 2500 * time.Millisecond, 150},
		{30, 999 * time.Millisecond, 29},
		{24, 0, 0},
	}
	for _, tt := range tests {
		s := Settings{FPS: tt.fps, Duration: tt.duration}
		if got := s.Frames(); got != tt.want {
			t.Errorf("%v @ %v fps: expected %d frames, got %d", tt.duration, tt.fps, tt.want, got)
		}
	}
}

func TestMerge(t *testing.T) {
	s := DefaultSettings().Merge(Settings{FPS: 30, Background: "#000000"})
	if s.FPS != 30 || s.Background != "#000000" || s.Width != 1920 || s.Duration != 30*time.Second {
		t.Errorf("unexpected merge result %+v", s)
	}
}

func TestValidate(t *testing.T) {
	if err := DefaultSettings().Validate(); err != nil {
		t.Fatalf("defaults must be valid: %v", err)
	}
	bad := Settings{FPS: 0, Width: 1921, Height: 1080}
	err := bad.Validate()
	if err == nil {
		t.Fatal("expected an error")
	}
	for _, part := range []string{"fps", "even", "no frames"} {
		if !strings.Contains(err.Error(), part) {
			t.Errorf("error %q does not mention %q", err, part)
		}
	}
}

func TestLoadProfile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "render.toml")
	data := `
encoder = "libx264"
quality = 20

[video]
fps = 30.0
width = 1280
height = 720
duration = 5000000000
background = "#101010"
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	p, err := LoadProfile(path)
	if err != nil {
		t.Fatal(err)
	}
	if p.Encoder != "libx264" || p.Quality != 20 {
		t.Errorf("unexpected encoder options %+v", p)
	}
	if p.Video.Frames() != 150 || p.Video.Width != 1280 {
		t.Errorf("unexpected video settings %+v", p.Video)
	}

	typo := filepath.Join(dir, "typo.toml")
	os.WriteFile(typo, []byte("qualty = 3\n"), 0644)
	if _, err := LoadProfile(typo); err == nil || !strings.Contains(err.Error(), "qualty") {
		t.Errorf("expected an unknown key error, got %v", err)
	}
}
