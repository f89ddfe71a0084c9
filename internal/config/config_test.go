package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/hoverplane/internal/engine/colorbuf"
	"github.com/Faultbox/hoverplane/internal/engine/grid"
	"github.com/Faultbox/hoverplane/internal/engine/highlight"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Window.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Window.Height)
	}

	p := cfg.Plane.Params
	if p.Width != 16 || p.Height != 9 || p.WidthSegments != 20 || p.HeightSegments != 12 {
		t.Errorf("expected 16x9 plane with 20x12 segments, got %+v", p)
	}
	if cfg.Plane.DepthJitter != 1 {
		t.Errorf("expected depth jitter 1, got %v", cfg.Plane.DepthJitter)
	}
	if cfg.Plane.Baseline.Color() != colorbuf.Baseline {
		t.Errorf("expected baseline %v, got %v", colorbuf.Baseline, cfg.Plane.Baseline)
	}

	if cfg.Camera.FovDegrees != 75 || cfg.Camera.Near != 0.1 || cfg.Camera.Far != 1000 || cfg.Camera.Distance != 5 {
		t.Errorf("unexpected camera defaults %+v", cfg.Camera)
	}

	if cfg.Highlight.Duration != 500*time.Millisecond {
		t.Errorf("expected duration 500ms, got %v", cfg.Highlight.Duration)
	}
	if cfg.Highlight.Ease != "out_quad" {
		t.Errorf("expected ease out_quad, got %s", cfg.Highlight.Ease)
	}
	if cfg.Highlight.Mode != "stack" {
		t.Errorf("expected mode stack, got %s", cfg.Highlight.Mode)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  title: "test"
  width: 1920
  height: 1080

plane:
  width: 4
  height: 6
  width_segments: 8
  height_segments: 3
  depth_jitter: 0.25
  seed: 99

highlight:
  hot: [1, 0, 0]
  duration: 750ms
  ease: linear
  mode: replace

logging:
  level: "debug"
  log_file: "plane.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Width != 1920 || cfg.Window.Title != "test" {
		t.Errorf("window not loaded: %+v", cfg.Window)
	}
	if cfg.Plane.Width != 4 || cfg.Plane.Height != 6 || cfg.Plane.WidthSegments != 8 || cfg.Plane.HeightSegments != 3 {
		t.Errorf("plane params not loaded: %+v", cfg.Plane.Params)
	}
	if cfg.Plane.DepthJitter != 0.25 || cfg.Plane.Seed != 99 {
		t.Errorf("plane generation not loaded: %+v", cfg.Plane)
	}
	// Unset keys keep their defaults
	if cfg.Plane.Baseline.Color() != colorbuf.Baseline {
		t.Errorf("baseline should keep its default, got %v", cfg.Plane.Baseline)
	}

	if cfg.Highlight.Hot != (RGB{1, 0, 0}) {
		t.Errorf("expected hot [1 0 0], got %v", cfg.Highlight.Hot)
	}
	if cfg.Highlight.Duration != 750*time.Millisecond {
		t.Errorf("expected duration 750ms, got %v", cfg.Highlight.Duration)
	}
	if cfg.Highlight.Ease != "linear" || cfg.Highlight.Mode != "replace" {
		t.Errorf("highlight not loaded: %+v", cfg.Highlight)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "plane.log" {
		t.Errorf("expected log file 'plane.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
window:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	t.Setenv("HOME", tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("window:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Window.Width)
				}
				if cfg.Window.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Window.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name:  "seed flag",
			setup: func() { *flagSeed = 1234 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Plane.Seed != 1234 {
					t.Errorf("expected seed 1234, got %d", cfg.Plane.Seed)
				}
			},
			teardown: func() { *flagSeed = 0 },
		},
		{
			name:  "mode flag",
			setup: func() { *flagMode = "replace" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Highlight.Mode != "replace" {
					t.Errorf("expected mode replace, got %s", cfg.Highlight.Mode)
				}
				if cfg.HighlightConfig().Mode != highlight.ModeReplace {
					t.Error("HighlightConfig should carry the mode")
				}
			},
			teardown: func() { *flagMode = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width should be from flag (1920), not file (1600)
	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Window.Width)
	}
	// Height should be from file (900) since no flag override
	if cfg.Window.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Window.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("highlight:\n  ease: wobbly\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected Load to reject an unknown ease")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"plane width", func(c *Config) { c.Plane.Width = 0.5 }, "plane: width"},
		{"plane segments", func(c *Config) { c.Plane.WidthSegments = 21 }, "width_segments"},
		{"jitter", func(c *Config) { c.Plane.DepthJitter = -1 }, "depth_jitter"},
		{"ease", func(c *Config) { c.Highlight.Ease = "wobbly" }, "unknown ease"},
		{"mode", func(c *Config) { c.Highlight.Mode = "queue" }, "highlight mode"},
		{"camera", func(c *Config) { c.Camera.Far = 0.01 }, "near < far"},
		{"window", func(c *Config) { c.Window.Width = 0 }, "window"},
		{"log level", func(c *Config) { c.Logging.Level = "loud" }, "unknown log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateCollectsAll(t *testing.T) {
	cfg := Default()
	cfg.Plane.Height = 50
	cfg.Highlight.Ease = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "height") || !strings.Contains(msg, "ease") {
		t.Errorf("expected both problems reported, got %q", msg)
	}
}

func TestValidateListsKnownEases(t *testing.T) {
	cfg := Default()
	cfg.Highlight.Ease = "wobbly"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "out_quad") || !strings.Contains(err.Error(), "power1.out") {
		t.Errorf("error should list known eases, got %q", err.Error())
	}
}

func TestSaveParamsToKeepsOtherSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	existing := `# local overrides
window:
  title: mine
plane:
  width: 3
  depth_jitter: 0.5
logging:
  level: warn
`
	if err := os.WriteFile(path, []byte(existing), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	p := grid.Params{Width: 12.5, Height: 9, WidthSegments: 17, HeightSegments: 4}
	if err := SaveParamsTo(path, p); err != nil {
		t.Fatalf("SaveParamsTo: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading saved config: %v", err)
	}
	if !strings.Contains(string(data), "# local overrides") {
		t.Errorf("comment lost:\n%s", data)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}
	if loaded.Plane.Params != p {
		t.Errorf("plane params = %+v, want %+v", loaded.Plane.Params, p)
	}
	if loaded.Plane.DepthJitter != 0.5 || loaded.Window.Title != "mine" || loaded.Logging.Level != "warn" {
		t.Errorf("other settings changed: jitter %v, title %q, level %q",
			loaded.Plane.DepthJitter, loaded.Window.Title, loaded.Logging.Level)
	}
}

func TestSaveParamsWritesOnlyPlane(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	// Flag overrides live in the Config but must not reach the file
	cfg := Default()
	cfg.path = path
	cfg.Logging.Level = "debug"
	cfg.Highlight.Mode = "replace"
	cfg.Plane.Seed = 1234

	p := grid.Params{Width: 4, Height: 6, WidthSegments: 8, HeightSegments: 3}
	got, err := cfg.SaveParams(p)
	if err != nil {
		t.Fatalf("SaveParams: %v", err)
	}
	if got != path {
		t.Errorf("SaveParams() wrote %s, want the loaded file %s", got, path)
	}
	if cfg.Plane.Params != p {
		t.Errorf("cfg.Plane.Params = %+v, want %+v", cfg.Plane.Params, p)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading saved config: %v", err)
	}
	var doc map[string]map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("saved config is not valid YAML: %v", err)
	}
	if len(doc) != 1 || len(doc["plane"]) != 4 {
		t.Errorf("saved more than the plane params:\n%s", data)
	}
	for _, unwanted := range []string{"seed", "replace", "debug", "window", "camera"} {
		if strings.Contains(string(data), unwanted) {
			t.Errorf("saved config contains %q:\n%s", unwanted, data)
		}
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}
	if loaded.Plane.Params != p || loaded.Plane.Seed != 0 {
		t.Errorf("reloaded plane = %+v", loaded.Plane)
	}
}

func TestSavePath(t *testing.T) {
	cfg := Default()
	if want := filepath.Join(ConfigDir(), "config.yaml"); cfg.SavePath() != want {
		t.Errorf("SavePath() = %s, want %s", cfg.SavePath(), want)
	}

	cfg.path = "./config.yaml"
	if cfg.SavePath() != "./config.yaml" {
		t.Errorf("SavePath() = %s, want the loaded file", cfg.SavePath())
	}
}

func TestSaveParamsToRejectsNonMapping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("- a\n- b\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	if err := SaveParamsTo(path, grid.DefaultParams()); err == nil {
		t.Error("expected error for a list document, got nil")
	}
}
