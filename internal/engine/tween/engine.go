// Package tween runs timed color transitions on top of gween.
package tween

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/Faultbox/hoverplane/internal/engine/colorbuf"
)

// ColorTween animates an RGB color with one gween tween per channel.
type ColorTween struct {
	r, g, b  *gween.Tween
	current  colorbuf.Color
	onUpdate func(colorbuf.Color)
	done     bool
}

// Color returns the most recent value.
func (t *ColorTween) Color() colorbuf.Color {
	return t.current
}

// Done reports whether the tween reached its end or was stopped.
func (t *ColorTween) Done() bool {
	return t.done
}

// Stop ends the tween without further callbacks.
func (t *ColorTween) Stop() {
	t.done = true
}

func (t *ColorTween) update(dt float32) {
	r, doneR := t.r.Update(dt)
	g, doneG := t.g.Update(dt)
	b, doneB := t.b.Update(dt)

	t.current = colorbuf.Color{R: r, G: g, B: b}
	if t.onUpdate != nil {
		t.onUpdate(t.current)
	}
	t.done = doneR && doneG && doneB
}

// Engine advances running tweens once per frame.
type Engine struct {
	tweens []*ColorTween
}

// NewEngine creates an empty tween engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Start begins a transition from one color to another over d.
// onUpdate is called on every Update with the current color, including the
// final one. A nil fn falls back to the default curve.
func (e *Engine) Start(from, to colorbuf.Color, d time.Duration, fn ease.TweenFunc, onUpdate func(colorbuf.Color)) *ColorTween {
	if fn == nil {
		fn, _ = EaseByName(DefaultEase)
	}
	secs := float32(d.Seconds())
	t := &ColorTween{
		r:        gween.New(from.R, to.R, secs, fn),
		g:        gween.New(from.G, to.G, secs, fn),
		b:        gween.New(from.B, to.B, secs, fn),
		current:  from,
		onUpdate: onUpdate,
	}
	e.tweens = append(e.tweens, t)
	return t
}

// Update advances every running tween by dt in start order and drops the
// finished ones. Tweens started from a callback run from the next Update.
func (e *Engine) Update(dt time.Duration) {
	if len(e.tweens) == 0 {
		return
	}
	secs := float32(dt.Seconds())

	current := e.tweens
	e.tweens = make([]*ColorTween, 0, len(current))
	for _, t := range current {
		if !t.done {
			t.update(secs)
		}
		if !t.done {
			e.tweens = append(e.tweens, t)
		}
	}
}

// Active returns the number of running tweens.
func (e *Engine) Active() int {
	n := 0
	for _, t := range e.tweens {
		if !t.done {
			n++
		}
	}
	return n
}
