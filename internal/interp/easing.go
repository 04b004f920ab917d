package interp

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/fogleman/ease"
)

// Easing maps linear progress to eased progress. Every curve satisfies
// e(0) == 0 and e(1) == 1; back curves leave [0, 1] in between.
type Easing func(t float64) float64

var (
	Linear Easing = ease.Linear

	InQuadratic  Easing = ease.InQuad
	OutQuadratic Easing = ease.OutQuad
	InCubic      Easing = ease.InCubic
	OutCubic     Easing = ease.OutCubic
	InQuartic    Easing = ease.InQuart
	OutQuartic   Easing = ease.OutQuart
	InQuintic    Easing = ease.InQuint
	OutQuintic   Easing = ease.OutQuint

	// The exponential pair is the power-10 curve, not the 2^(10t) family.
	InExponential  Easing = inPow(10)
	OutExponential Easing = outPow(10)

	InOutQuintic Easing = ease.InOutQuint

	InBack    Easing = ease.InBack
	OutBack   Easing = ease.OutBack
	InOutBack Easing = ease.InOutBack
)

func inPow(n float64) Easing {
	return func(t float64) float64 { return math.Pow(t, n) }
}

func outPow(n float64) Easing {
	return func(t float64) float64 { return 1 - math.Pow(1-t, n) }
}

var easings = map[string]Easing{
	"linear":          Linear,
	"in_quadratic":    InQuadratic,
	"out_quadratic":   OutQuadratic,
	"in_cubic":        InCubic,
	"out_cubic":       OutCubic,
	"in_quartic":      InQuartic,
	"out_quartic":     OutQuartic,
	"in_quintic":      InQuintic,
	"out_quintic":     OutQuintic,
	"in_exponential":  InExponential,
	"out_exponential": OutExponential,
	"in_out_quintic":  InOutQuintic,
	"in_back":         InBack,
	"out_back":        OutBack,
	"in_out_back":     InOutBack,
}

// EasingByName resolves a snake_case curve name as used in scene files.
// The empty name is Linear.
func EasingByName(name string) (Easing, error) {
	if name == "" {
		return Linear, nil
	}
	e, ok := easings[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown easing %q (known: %s)", name, strings.Join(EasingNames(), ", "))
	}
	return e, nil
}

// EasingNames lists the registered curve names in sorted order.
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for n := range easings {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
