package animation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/motionclip/internal/errdefs"
	"github.com/ivlev/motionclip/internal/interp"
)

func TestBuilderInitialValue(t *testing.T) {
	p, err := Float(60).From(7).Keyframe(Abs(1), interp.Linear, 9).Build()
	require.NoError(t, err)
	assert.Equal(t, 7.0, p.Evaluate(0))
	assert.Equal(t, 7.0, p.Initial())
}

func TestBuilderAbsoluteZeroOverwritesInitial(t *testing.T) {
	p, err := Float(60).From(1).Keyframe(Abs(0), interp.Linear, 5).Build()
	require.NoError(t, err)
	assert.Equal(t, 5.0, p.Evaluate(0))
	assert.Empty(t, p.Keyframes())

	// An absolute zero also counts as the initial value when none was set.
	p, err = Float(60).Keyframe(AbsFrame(0), nil, 2).Keyframe(AbsFrame(10), nil, 4).Build()
	require.NoError(t, err)
	assert.Equal(t, 2.0, p.Evaluate(0))
	assert.InDelta(t, 3.0, p.Evaluate(5), 1e-12)
}

func TestBuilderRelativeTiming(t *testing.T) {
	p, err := Float(60).
		From(0).
		Keyframe(Abs(0.5), interp.Linear, 1).
		Keyframe(Rel(0.25), interp.Linear, 2).
		Keyframe(RelFrame(5), interp.Linear, 3).
		Build()
	require.NoError(t, err)

	var frames []uint64
	for _, kf := range p.Keyframes() {
		frames = append(frames, kf.Frame)
	}
	assert.Equal(t, []uint64{30, 45, 50}, frames)
}

func TestBuilderSecondsFloor(t *testing.T) {
	p, err := Float(30).From(0).Keyframe(Abs(0.99), interp.Linear, 1).Build()
	require.NoError(t, err)
	assert.Equal(t, uint64(29), p.LastFrame())

	assert.Equal(t, uint64(0), SecondsToFrames(-1, 60))
	assert.Equal(t, uint64(18), SecondsToFrames(0.3, 60))
}

func TestBuilderHoldMatchesRelativeKeyframe(t *testing.T) {
	held, err := For[interp.Vec2](60).
		From(interp.V2(0, 0)).
		Keyframe(Abs(0.3), interp.OutQuadratic, interp.V2(10, 20)).
		Hold(0.5).
		Keyframe(Rel(0.3), interp.InQuadratic, interp.V2(0, 0)).
		Build()
	require.NoError(t, err)

	explicit, err := For[interp.Vec2](60).
		From(interp.V2(0, 0)).
		Keyframe(Abs(0.3), interp.OutQuadratic, interp.V2(10, 20)).
		Keyframe(Rel(0.5), interp.Linear, interp.V2(10, 20)).
		Keyframe(Rel(0.3), interp.InQuadratic, interp.V2(0, 0)).
		Build()
	require.NoError(t, err)

	for f := uint64(0); f <= 90; f++ {
		assert.Equal(t, explicit.Evaluate(f), held.Evaluate(f), "frame %d", f)
	}
}

func TestBuilderHoldZeroIsNoop(t *testing.T) {
	p, err := Float(60).From(1).Keyframe(AbsFrame(10), nil, 2).HoldFrames(0).Build()
	require.NoError(t, err)
	assert.Len(t, p.Keyframes(), 1)
}

func TestBuilderErrors(t *testing.T) {
	tests := []struct {
		name  string
		build func() (*Property[float64], error)
	}{
		{"no initial", func() (*Property[float64], error) {
			return Float(60).Keyframe(Abs(1), nil, 1).Build()
		}},
		{"hold without value", func() (*Property[float64], error) {
			return Float(60).Hold(1).From(0).Build()
		}},
		{"non-increasing", func() (*Property[float64], error) {
			return Float(60).From(0).Keyframe(Abs(1), nil, 1).Keyframe(Abs(0.5), nil, 2).Build()
		}},
		{"relative zero after keyframe", func() (*Property[float64], error) {
			return Float(60).From(0).Keyframe(Abs(1), nil, 1).Keyframe(Rel(0), nil, 2).Build()
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := tt.build()
			assert.Nil(t, p)
			assert.ErrorIs(t, err, errdefs.ErrAuthoring)
		})
	}
}

func TestMustBuildPanics(t *testing.T) {
	assert.Panics(t, func() { Float(60).MustBuild() })
}
