package effects

import (
	"fmt"
	"strings"

	"github.com/ivlev/motionclip/internal/animation"
	"github.com/ivlev/motionclip/internal/interp"
)

// ZoomModes lists the anchors accepted by Zoom. "out-" variants start
// zoomed in and return to the base size.
var ZoomModes = []string{
	"center", "top-left", "top-right", "bottom-left", "bottom-right",
	"out-center", "out-top-left", "out-top-right", "out-bottom-left", "out-bottom-right",
}

// Zoom builds position and size tracks that scale a w×h picture centered
// at center by speed per frame over frames, keeping the anchor point of
// the picture in place.
func Zoom(mode string, center, size interp.Vec2, speed float64, frames uint64) (pos, sz *animation.Property[interp.Vec2], err error) {
	mode = strings.ToLower(mode)
	out := strings.HasPrefix(mode, "out-")
	anchor := strings.TrimPrefix(mode, "out-")

	// Смещение якоря от центра в долях размера.
	var ax, ay float64
	switch anchor {
	case "center":
	case "top-left":
		ax, ay = -0.5, 0.5
	case "top-right":
		ax, ay = 0.5, 0.5
	case "bottom-left":
		ax, ay = -0.5, -0.5
	case "bottom-right":
		ax, ay = 0.5, -0.5
	default:
		return nil, nil, fmt.Errorf("unknown zoom mode %q (known: %s)", mode, strings.Join(ZoomModes, ", "))
	}
	if speed <= 0 {
		speed = 0.001
	}

	at := func(z float64) (interp.Vec2, interp.Vec2) {
		p := interp.V2(center.X-ax*size.X*(z-1), center.Y-ay*size.Y*(z-1))
		return p, interp.V2(size.X*z, size.Y*z)
	}
	from, to := 1.0, 1+speed*float64(frames)
	if out {
		from, to = to, from
	}
	p0, s0 := at(from)
	p1, s1 := at(to)

	lerp := interp.Method[interp.Vec2]
	if frames == 0 {
		return animation.Static(p0), animation.Static(s0), nil
	}
	pos, err = animation.New(p0, lerp, animation.Keyframe[interp.Vec2]{Frame: frames, Easing: interp.Linear, Value: p1})
	if err != nil {
		return nil, nil, err
	}
	sz, err = animation.New(s0, lerp, animation.Keyframe[interp.Vec2]{Frame: frames, Easing: interp.Linear, Value: s1})
	if err != nil {
		return nil, nil, err
	}
	return pos, sz, nil
}
