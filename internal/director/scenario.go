package director

import (
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/motionclip/internal/config"
)

// Scene is a complete video description as stored in a scene file.
type Scene struct {
	Version string          `yaml:"version"`
	Video   config.Settings `yaml:"video,omitempty"`
	Clips   []Clip          `yaml:"clips,omitempty"`
}

// Clip is one node of the clip tree. Bounds are relative to the parent
// clip, either in seconds or in frames but not both.
type Clip struct {
	Name       string   `yaml:"name,omitempty"`
	Start      *float64 `yaml:"start,omitempty"`
	End        *float64 `yaml:"end,omitempty"`
	StartFrame *uint64  `yaml:"start_frame,omitempty"`
	EndFrame   *uint64  `yaml:"end_frame,omitempty"`

	Translate []float64 `yaml:"translate,omitempty"` // x, y[, z]
	Rotate    float64   `yaml:"rotate,omitempty"`    // градусы вокруг Z
	Scale     []float64 `yaml:"scale,omitempty"`     // x, y[, z]

	Effects []Effect `yaml:"effects,omitempty"`
	Clips   []Clip   `yaml:"clips,omitempty"`
}

// Effect is one effect attached to a clip. Which fields apply depends on
// Type: rect uses position, size and color; qrcode adds content and level;
// image uses path, page, dpi, position, size, opacity and zoom.
type Effect struct {
	Type string `yaml:"type"`

	Position *Track[[2]float64] `yaml:"position,omitempty"`
	Size     *Track[[2]float64] `yaml:"size,omitempty"`
	Color    *Track[string]     `yaml:"color,omitempty"`
	Opacity  *Track[float64]    `yaml:"opacity,omitempty"`

	Content string `yaml:"content,omitempty"`
	Level   string `yaml:"level,omitempty"`

	Path string `yaml:"path,omitempty"`
	Page int    `yaml:"page,omitempty"`
	DPI  int    `yaml:"dpi,omitempty"`
	Zoom *Zoom  `yaml:"zoom,omitempty"`
}

// Zoom replaces the position and size tracks of an image with a zoom
// toward one of its corners.
type Zoom struct {
	Mode     string  `yaml:"mode"`
	Speed    float64 `yaml:"speed"`
	Duration float64 `yaml:"duration"` // seconds
}

// Track is an animated value: an initial value and a list of keyframes. A
// bare scalar in the file is read as a static track.
type Track[V any] struct {
	Initial   *V            `yaml:"initial,omitempty"`
	Keyframes []Keyframe[V] `yaml:"keyframes,omitempty"`
}

// Keyframe places Value at abs seconds, rel seconds after the previous
// keyframe or at an absolute frame. A keyframe with only hold keeps the
// current value for that many seconds.
type Keyframe[V any] struct {
	Abs   *float64 `yaml:"abs,omitempty"`
	Rel   *float64 `yaml:"rel,omitempty"`
	Frame *uint64  `yaml:"frame,omitempty"`
	Hold  *float64 `yaml:"hold,omitempty"`
	Ease  string   `yaml:"ease,omitempty"`
	Value *V       `yaml:"value,omitempty"`
}

func (t *Track[V]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		var v V
		if err := node.Decode(&v); err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		t.Initial = &v
		return nil
	}
	if err := knownKeys(node, "initial", "keyframes"); err != nil {
		return err
	}
	return node.Decode((*trackFields[V])(t))
}

func (k *Keyframe[V]) UnmarshalYAML(node *yaml.Node) error {
	if err := knownKeys(node, "abs", "rel", "frame", "hold", "ease", "value"); err != nil {
		return err
	}
	return node.Decode((*keyframeFields[V])(k))
}

// keyframeFields has the fields of Keyframe without its decoding method.
type keyframeFields[V any] Keyframe[V]

// knownKeys rejects mapping keys outside known. Custom unmarshalers decode
// with a fresh decoder, which does not inherit KnownFields.
func knownKeys(node *yaml.Node, known ...string) error {
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		if !slices.Contains(known, key.Value) {
			return fmt.Errorf("line %d: unknown field %q", key.Line, key.Value)
		}
	}
	return nil
}

// trackFields has the fields of Track without its decoding method.
type trackFields[V any] Track[V]

// Static returns a track holding v.
func Static[V any](v V) *Track[V] {
	return &Track[V]{Initial: &v}
}
