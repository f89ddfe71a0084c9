package config

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"github.com/Faultbox/hoverplane/internal/engine/grid"
	"github.com/Faultbox/hoverplane/internal/engine/highlight"
	"github.com/Faultbox/hoverplane/internal/engine/tween"
	"github.com/Faultbox/hoverplane/internal/logger"
)

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var err error

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		err = multierr.Append(err, fmt.Errorf("window: size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}

	p := c.Plane.Params
	if p.Width < grid.MinSize || p.Width > grid.MaxSize {
		err = multierr.Append(err, fmt.Errorf("plane: width %v outside [%d, %d]", p.Width, grid.MinSize, grid.MaxSize))
	}
	if p.Height < grid.MinSize || p.Height > grid.MaxSize {
		err = multierr.Append(err, fmt.Errorf("plane: height %v outside [%d, %d]", p.Height, grid.MinSize, grid.MaxSize))
	}
	if p.WidthSegments < grid.MinSegments || p.WidthSegments > grid.MaxSegments {
		err = multierr.Append(err, fmt.Errorf("plane: width_segments %d outside [%d, %d]", p.WidthSegments, grid.MinSegments, grid.MaxSegments))
	}
	if p.HeightSegments < grid.MinSegments || p.HeightSegments > grid.MaxSegments {
		err = multierr.Append(err, fmt.Errorf("plane: height_segments %d outside [%d, %d]", p.HeightSegments, grid.MinSegments, grid.MaxSegments))
	}
	if c.Plane.DepthJitter < 0 {
		err = multierr.Append(err, fmt.Errorf("plane: depth_jitter %v is negative", c.Plane.DepthJitter))
	}

	if c.Camera.FovDegrees <= 0 || c.Camera.FovDegrees >= 180 {
		err = multierr.Append(err, fmt.Errorf("camera: fov_degrees %v outside (0, 180)", c.Camera.FovDegrees))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		err = multierr.Append(err, fmt.Errorf("camera: need 0 < near < far, got near=%v far=%v", c.Camera.Near, c.Camera.Far))
	}
	if c.Camera.Distance <= 0 {
		err = multierr.Append(err, fmt.Errorf("camera: distance %v must be positive", c.Camera.Distance))
	}

	if c.Highlight.Duration < 0 {
		err = multierr.Append(err, fmt.Errorf("highlight: duration %v is negative", c.Highlight.Duration))
	}
	if _, ok := tween.EaseByName(c.Highlight.Ease); !ok {
		err = multierr.Append(err, fmt.Errorf("highlight: unknown ease %q (known: %s)",
			c.Highlight.Ease, strings.Join(tween.EaseNames(), ", ")))
	}
	if _, perr := highlight.ParseMode(c.Highlight.Mode); perr != nil {
		err = multierr.Append(err, fmt.Errorf("highlight: %w", perr))
	}

	if _, lerr := logger.ParseLevel(c.Logging.Level); lerr != nil {
		err = multierr.Append(err, fmt.Errorf("logging: %w", lerr))
	}

	return err
}
