// Package highlight flashes the picked face and fades it back to rest.
package highlight

import (
	"fmt"
	"time"

	"github.com/tanema/gween/ease"
	"go.uber.org/zap"

	"github.com/Faultbox/hoverplane/internal/engine/colorbuf"
	"github.com/Faultbox/hoverplane/internal/engine/grid"
	"github.com/Faultbox/hoverplane/internal/engine/tween"
	"github.com/Faultbox/hoverplane/internal/logger"
)

// Mode selects what happens when a face is picked while a transition is
// still running.
type Mode string

const (
	// ModeStack starts a new transition on every pick. Overlapping
	// transitions on shared vertices resolve last-writer-wins.
	ModeStack Mode = "stack"
	// ModeReplace keeps one transition per face and restarts it.
	ModeReplace Mode = "replace"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeStack, ModeReplace:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown highlight mode %q", s)
	}
}

// Config holds the highlight colors and timing.
type Config struct {
	Hot      colorbuf.Color
	Flash    colorbuf.Color
	Rest     colorbuf.Color
	Duration time.Duration
	Ease     string
	Mode     Mode
}

// DefaultConfig returns the default highlight settings.
func DefaultConfig() Config {
	return Config{
		Hot:      colorbuf.Color{R: 0.1, G: 0.5, B: 0.5},
		Flash:    colorbuf.Color{R: 0.2, G: 1.2, B: 1.6},
		Rest:     colorbuf.Baseline,
		Duration: 500 * time.Millisecond,
		Ease:     tween.DefaultEase,
		Mode:     ModeStack,
	}
}

type slotKey struct {
	buf  *colorbuf.Buffer
	face grid.Face
}

// Animator writes pick highlights into a color buffer.
type Animator struct {
	cfg    Config
	easing ease.TweenFunc
	tweens *tween.Engine

	running []*tween.ColorTween
	slots   map[slotKey]*tween.ColorTween
}

// NewAnimator creates an animator that schedules its transitions on engine.
func NewAnimator(cfg Config, engine *tween.Engine) (*Animator, error) {
	easing, ok := tween.EaseByName(cfg.Ease)
	if !ok {
		return nil, fmt.Errorf("unknown ease %q", cfg.Ease)
	}
	if _, err := ParseMode(string(cfg.Mode)); err != nil {
		return nil, err
	}

	logger.Debug("highlight animator ready",
		zap.String("mode", string(cfg.Mode)),
		zap.String("ease", cfg.Ease),
		zap.Duration("duration", cfg.Duration),
	)

	return &Animator{
		cfg:    cfg,
		easing: easing,
		tweens: engine,
		slots:  make(map[slotKey]*tween.ColorTween),
	}, nil
}

// Mode returns the overlap policy in use.
func (a *Animator) Mode() Mode {
	return a.cfg.Mode
}

// OnPick paints the face hot right away, then starts a transition from the
// flash color to rest on the same three vertices of buf.
func (a *Animator) OnPick(face grid.Face, buf *colorbuf.Buffer) {
	if buf == nil {
		return
	}
	a.prune()

	buf.SetFace(face.A, face.B, face.C, a.cfg.Hot)

	key := slotKey{buf: buf, face: face}
	if a.cfg.Mode == ModeReplace {
		if prev, ok := a.slots[key]; ok {
			prev.Stop()
		}
	}

	t := a.tweens.Start(a.cfg.Flash, a.cfg.Rest, a.cfg.Duration, a.easing, func(c colorbuf.Color) {
		buf.SetFace(face.A, face.B, face.C, c)
	})
	a.running = append(a.running, t)

	if a.cfg.Mode == ModeReplace {
		a.slots[key] = t
	}
}

// Active returns the number of transitions still running.
func (a *Animator) Active() int {
	a.prune()
	return len(a.running)
}

func (a *Animator) prune() {
	running := a.running[:0]
	for _, t := range a.running {
		if !t.Done() {
			running = append(running, t)
		}
	}
	for i := len(running); i < len(a.running); i++ {
		a.running[i] = nil
	}
	a.running = running

	for k, t := range a.slots {
		if t.Done() {
			delete(a.slots, k)
		}
	}
}
