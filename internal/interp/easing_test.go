package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEasingEndpoints(t *testing.T) {
	for _, name := range EasingNames() {
		e, err := EasingByName(name)
		require.NoError(t, err)
		assert.InDelta(t, 0, e(0), 1e-9, name)
		assert.InDelta(t, 1, e(1), 1e-9, name)
	}
}

func TestEasingValues(t *testing.T) {
	tests := []struct {
		name string
		e    Easing
		t    float64
		want float64
	}{
		{"linear", Linear, 0.3, 0.3},
		{"out cubic", OutCubic, 0.5, 0.875},
		{"in cubic", InCubic, 0.5, 0.125},
		{"out quadratic", OutQuadratic, 0.5, 0.75},
		{"in quadratic", InQuadratic, 0.5, 0.25},
		{"in quartic", InQuartic, 0.5, 0.0625},
		{"out quartic", OutQuartic, 0.5, 0.9375},
		{"in quintic", InQuintic, 0.5, 0.03125},
		{"out quintic", OutQuintic, 0.5, 0.96875},
		{"in exponential", InExponential, 0.5, 1.0 / 1024},
		{"out exponential", OutExponential, 0.5, 1 - 1.0/1024},
		{"in out quintic first half", InOutQuintic, 0.25, 0.015625},
		{"in out quintic midpoint", InOutQuintic, 0.5, 0.5},
		{"in out quintic second half", InOutQuintic, 0.75, 0.984375},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.e(tt.t), 1e-12)
		})
	}
}

func TestBackOvershoot(t *testing.T) {
	assert.Less(t, InBack(0.2), 0.0)
	assert.Greater(t, OutBack(0.8), 1.0)
	assert.Less(t, InOutBack(0.1), 0.0)
	assert.Greater(t, InOutBack(0.9), 1.0)
}

func TestEasingByName(t *testing.T) {
	e, err := EasingByName("")
	require.NoError(t, err)
	assert.Equal(t, 0.4, e(0.4))

	e, err = EasingByName("OUT_CUBIC")
	require.NoError(t, err)
	assert.InDelta(t, 0.875, e(0.5), 1e-12)

	_, err = EasingByName("wobble")
	assert.ErrorContains(t, err, "wobble")
}
