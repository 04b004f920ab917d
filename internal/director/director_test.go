package director

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cogentcore.org/core/math32"
	"github.com/google/go-cmp/cmp"

	"github.com/ivlev/motionclip/internal/config"
	"github.com/ivlev/motionclip/internal/effects"
	"github.com/ivlev/motionclip/internal/engine"
	"github.com/ivlev/motionclip/internal/errdefs"
	"github.com/ivlev/motionclip/internal/interp"
	"github.com/ivlev/motionclip/internal/timeline"
)

const fadeScene = `version: "1.0"
video:
  fps: 60
  width: 320
  height: 240
  duration: 2.5s
clips:
  - name: fade
    start_frame: 60
    end: 3
    translate: [10, 20]
    effects:
      - type: rect
        size: [100, 50]
        color:
          initial: "#ffffff00"
          keyframes:
            - frame: 30
              ease: out_quadratic
              value: "#ffffffff"
`

func writeScene(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func load(t *testing.T, body string) (*engine.Project, error) {
	t.Helper()
	scene, err := ReadScene(writeScene(t, body))
	if err != nil {
		t.Fatalf("ReadScene failed: %v", err)
	}
	p := engine.NewProject(scene.Settings(config.DefaultSettings()), nil)
	return p, Build(scene, p)
}

func pushes(events []timeline.Event) []timeline.EffectPush {
	var out []timeline.EffectPush
	for _, ev := range events {
		if p, ok := ev.(timeline.EffectPush); ok {
			out = append(out, p)
		}
	}
	return out
}

func TestBuildFadeScene(t *testing.T) {
	p, err := load(t, fadeScene)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	want := config.Settings{FPS: 60, Width: 320, Height: 240, Duration: 2500 * time.Millisecond, Background: "#171717"}
	if diff := cmp.Diff(want, p.Settings); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}
	if p.Frames() != 150 {
		t.Errorf("Expected 150 frames, got %d", p.Frames())
	}

	if got := pushes(p.ResolveFrame(59, math32.Identity4())); len(got) != 0 {
		t.Errorf("Expected no pushes before the clip, got %v", got)
	}

	events := p.ResolveFrame(75, math32.Identity4())
	got := pushes(events)
	if len(got) != 1 {
		t.Fatalf("Expected 1 push at frame 75, got %d", len(got))
	}
	if got[0].Frame != 15 {
		t.Errorf("Expected local frame 15, got %d", got[0].Frame)
	}
	inst := got[0].Effect.Evaluate(got[0].Frame).(effects.RectInstance)
	if inst.Color.A != 191 {
		t.Errorf("Expected alpha 191, got %d", inst.Color.A)
	}
	if inst.Size != interp.V2(100, 50) {
		t.Errorf("Expected size 100x50, got %v", inst.Size)
	}

	var xf *timeline.SetTransform
	for _, ev := range events {
		if st, ok := ev.(timeline.SetTransform); ok {
			xf = &st
		}
	}
	if xf == nil {
		t.Fatal("Expected a transform event")
	}
	if xf.Matrix[12] != 10 || xf.Matrix[13] != 20 {
		t.Errorf("Expected translation (10, 20), got (%v, %v)", xf.Matrix[12], xf.Matrix[13])
	}

	// Конец клипа: 3 секунды = кадр 180, вне видео.
	if got := pushes(p.ResolveFrame(149, math32.Identity4())); len(got) != 1 || got[0].Frame != 89 {
		t.Errorf("Expected the clip active at the last frame, got %v", got)
	}
}

func TestBuildHoldAndRelative(t *testing.T) {
	p, err := load(t, `clips:
  - effects:
      - type: image
        path: page.png
        opacity:
          initial: 0
          keyframes:
            - hold: 0.5
            - rel: 0.5
              value: 1
`)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	at := func(frame uint64) float64 {
		got := pushes(p.ResolveFrame(frame, math32.Identity4()))
		return got[0].Effect.Evaluate(got[0].Frame).(effects.ImageInstance).Opacity
	}
	tests := []struct {
		frame uint64
		want  float64
	}{
		{0, 0}, {30, 0}, {45, 0.5}, {60, 1}, {600, 1},
	}
	for _, tt := range tests {
		if got := at(tt.frame); got != tt.want {
			t.Errorf("frame %d: expected opacity %v, got %v", tt.frame, tt.want, got)
		}
	}
}

func TestBuildImageZoom(t *testing.T) {
	p, err := load(t, `video:
  width: 200
  height: 100
clips:
  - effects:
      - type: image
        path: page.pdf
        zoom: {mode: center, speed: 0.01, duration: 1}
`)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	got := pushes(p.ResolveFrame(60, math32.Identity4()))
	inst := got[0].Effect.Evaluate(got[0].Frame).(effects.ImageInstance)
	if diff := cmp.Diff(interp.V2(320, 160), inst.Size); diff != "" {
		t.Errorf("zoomed size mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name  string
		scene string
		want  []string
	}{
		{
			name:  "unknown effect",
			scene: "clips:\n  - effects:\n      - type: circle\n",
			want:  []string{"clips[0].effects[0]", `"circle"`},
		},
		{
			name:  "unknown easing",
			scene: "clips:\n  - effects:\n      - type: rect\n        size: {initial: [1, 1], keyframes: [{abs: 1, ease: wobble, value: [2, 2]}]}\n",
			want:  []string{"size", "wobble"},
		},
		{
			name:  "bad color",
			scene: "clips:\n  - effects:\n      - type: rect\n        color: \"#12\"\n",
			want:  []string{"color", "#12"},
		},
		{
			name:  "two starts",
			scene: "clips:\n  - start: 1\n    start_frame: 60\n",
			want:  []string{"start_frame"},
		},
		{
			name:  "inverted window",
			scene: "clips:\n  - start: 2\n    end: 1\n",
			want:  []string{"after its end"},
		},
		{
			name:  "keyframe out of order",
			scene: "clips:\n  - effects:\n      - type: rect\n        size: {initial: [1, 1], keyframes: [{frame: 20, value: [2, 2]}, {frame: 10, value: [3, 3]}]}\n",
			want:  []string{"does not follow"},
		},
		{
			name:  "several errors",
			scene: "clips:\n  - effects:\n      - type: qrcode\n  - name: logo\n    effects:\n      - type: image\n",
			want:  []string{"clips[0].effects[0]", "without content", "clips[1](logo).effects[0]", "without path"},
		},
		{
			name:  "version",
			scene: "version: \"2.0\"\n",
			want:  []string{"2.0"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(t, tt.scene)
			if !errors.Is(err, errdefs.ErrAuthoring) {
				t.Fatalf("Expected an authoring error, got %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(err.Error(), w) {
					t.Errorf("Expected %q in error %q", w, err)
				}
			}
		})
	}
}

func TestSceneWriteRead(t *testing.T) {
	start := 1.5
	scene := &Scene{
		Version: Version,
		Video:   config.Settings{FPS: 30, Duration: 10 * time.Second},
		Clips: []Clip{{
			Name:  "qr",
			Start: &start,
			Scale: []float64{2, 2},
			Effects: []Effect{{
				Type:     "qrcode",
				Content:  "https://example.com",
				Position: Static([2]float64{0, 0}),
				Color:    Static("#000000ff"),
			}},
		}},
	}
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := WriteScene(scene, path); err != nil {
		t.Fatalf("WriteScene failed: %v", err)
	}
	got, err := ReadScene(path)
	if err != nil {
		t.Fatalf("ReadScene failed: %v", err)
	}
	if diff := cmp.Diff(scene, got); diff != "" {
		t.Errorf("scene mismatch (-want +got):\n%s", diff)
	}
}

func TestReadSceneUnknownField(t *testing.T) {
	tests := []struct {
		name  string
		scene string
		field string
	}{
		{"effect", "clips:\n  - effects:\n      - type: rect\n        colour: \"#fff\"\n", "colour"},
		{"track", "clips:\n  - effects:\n      - type: rect\n        size: {initial: [10, 10], keyframs: [{abs: 1, value: [20, 20]}]}\n", "keyframs"},
		{"keyframe", "clips:\n  - effects:\n      - type: rect\n        size: {initial: [10, 10], keyframes: [{abs: 1, eas: out_cubic, value: [20, 20]}]}\n", "eas"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadScene(writeScene(t, tt.scene))
			if err == nil {
				t.Fatalf("Expected an unknown field error for %s", tt.field)
			}
			// yaml.v3 names the field bare, the track decoder quotes it.
			msg := err.Error()
			if !strings.Contains(msg, " "+tt.field+" ") && !strings.Contains(msg, `"`+tt.field+`"`) {
				t.Errorf("Expected an unknown field error for %s, got %v", tt.field, err)
			}
		})
	}
}
