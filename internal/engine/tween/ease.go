package tween

import (
	"sort"

	"github.com/tanema/gween/ease"
)

// DefaultEase is the curve used when none is configured.
const DefaultEase = "out_quad"

var easings = map[string]ease.TweenFunc{
	"linear":       ease.Linear,
	"in_quad":      ease.InQuad,
	"out_quad":     ease.OutQuad,
	"in_out_quad":  ease.InOutQuad,
	"in_cubic":     ease.InCubic,
	"out_cubic":    ease.OutCubic,
	"in_out_cubic": ease.InOutCubic,
	"in_quart":     ease.InQuart,
	"out_quart":    ease.OutQuart,
	"in_sine":      ease.InSine,
	"out_sine":     ease.OutSine,
	"in_out_sine":  ease.InOutSine,
	"out_expo":     ease.OutExpo,
	"out_circ":     ease.OutCirc,
	"out_back":     ease.OutBack,
	"out_bounce":   ease.OutBounce,
	"out_elastic":  ease.OutElastic,

	// Timeline-style names
	"power1.out": ease.OutQuad,
	"power2.out": ease.OutCubic,
	"power3.out": ease.OutQuart,
}

// EaseByName looks up an easing function.
func EaseByName(name string) (ease.TweenFunc, bool) {
	fn, ok := easings[name]
	return fn, ok
}

// EaseNames returns every known easing name, sorted.
func EaseNames() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
