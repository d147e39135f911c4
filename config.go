package meadow

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/gobuffalo/envy"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Environment keys read by LoadConfig.
const (
	EnvTitle         = "MEADOW_TITLE"
	EnvWindowWidth   = "MEADOW_WINDOW_WIDTH"
	EnvWindowHeight  = "MEADOW_WINDOW_HEIGHT"
	EnvLogicalWidth  = "MEADOW_LOGICAL_WIDTH"
	EnvLogicalHeight = "MEADOW_LOGICAL_HEIGHT"
	EnvAssetRoot     = "MEADOW_ASSET_ROOT"
	EnvTargetFPS     = "MEADOW_TARGET_FPS"
	EnvLogLevel      = "MEADOW_LOG_LEVEL"
	EnvDebug         = "MEADOW_DEBUG"
	EnvClearColor    = "MEADOW_CLEAR_COLOR"
	EnvScreenshotDir = "MEADOW_SCREENSHOT_DIR"
	EnvShowFPS       = "MEADOW_SHOW_FPS"
	EnvSampleRate    = "MEADOW_SAMPLE_RATE"
)

// Config holds the settings a runtime needs to open a window and find its
// assets.
type Config struct {
	Title string

	// WindowWidth and WindowHeight are the initial window size in pixels.
	WindowWidth, WindowHeight int
	// LogicalWidth and LogicalHeight are the resolution the game draws at.
	// The camera viewport is created with this size.
	LogicalWidth, LogicalHeight int

	// AssetRoot is the directory asset paths are relative to.
	AssetRoot string
	TargetFPS int

	// LogLevel is a logrus level name ("info", "debug", ...).
	LogLevel string
	// Debug lowers the log level to at least debug and enables the FPS
	// overlay.
	Debug bool

	ClearColor    Color
	ScreenshotDir string
	ShowFPS       bool

	// SampleRate is the audio output rate in Hz.
	SampleRate int
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Title:         "meadow",
		WindowWidth:   1280,
		WindowHeight:  720,
		LogicalWidth:  640,
		LogicalHeight: 360,
		AssetRoot:     "assets",
		TargetFPS:     60,
		LogLevel:      "info",
		ClearColor:    ColorBlack,
		ScreenshotDir: "screenshots",
		SampleRate:    44100,
	}
}

// LoadConfig starts from DefaultConfig and overrides it with values from
// the given .env files and then the process environment. Files that do not
// exist are ignored; when a key appears in several files the first one wins.
func LoadConfig(files ...string) (Config, error) {
	fileVals := map[string]string{}
	for _, f := range files {
		vals, err := godotenv.Read(f)
		if errors.Is(err, fs.ErrNotExist) {
			logger.WithField("path", f).Debug("config file not found")
			continue
		}
		if err != nil {
			return Config{}, fmt.Errorf("meadow: config: read %s: %w", f, err)
		}
		for k, v := range vals {
			if _, ok := fileVals[k]; !ok {
				fileVals[k] = v
			}
		}
	}
	envy.Reload()

	r := &envReader{file: fileVals}
	cfg := DefaultConfig()
	cfg.Title = r.str(EnvTitle, cfg.Title)
	cfg.WindowWidth = r.int(EnvWindowWidth, cfg.WindowWidth)
	cfg.WindowHeight = r.int(EnvWindowHeight, cfg.WindowHeight)
	cfg.LogicalWidth = r.int(EnvLogicalWidth, cfg.LogicalWidth)
	cfg.LogicalHeight = r.int(EnvLogicalHeight, cfg.LogicalHeight)
	cfg.AssetRoot = r.str(EnvAssetRoot, cfg.AssetRoot)
	cfg.TargetFPS = r.int(EnvTargetFPS, cfg.TargetFPS)
	cfg.LogLevel = r.str(EnvLogLevel, cfg.LogLevel)
	cfg.Debug = r.bool(EnvDebug, cfg.Debug)
	cfg.ClearColor = r.color(EnvClearColor, cfg.ClearColor)
	cfg.ScreenshotDir = r.str(EnvScreenshotDir, cfg.ScreenshotDir)
	cfg.ShowFPS = r.bool(EnvShowFPS, cfg.ShowFPS)
	cfg.SampleRate = r.int(EnvSampleRate, cfg.SampleRate)
	if r.err != nil {
		return Config{}, r.err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	switch {
	case c.WindowWidth <= 0 || c.WindowHeight <= 0:
		return fmt.Errorf("meadow: config: window size %dx%d: %w", c.WindowWidth, c.WindowHeight, ErrInvalidGeometry)
	case c.LogicalWidth <= 0 || c.LogicalHeight <= 0:
		return fmt.Errorf("meadow: config: logical size %dx%d: %w", c.LogicalWidth, c.LogicalHeight, ErrInvalidGeometry)
	case c.TargetFPS < 0:
		return fmt.Errorf("meadow: config: target fps %d is negative", c.TargetFPS)
	case c.SampleRate <= 0:
		return fmt.Errorf("meadow: config: sample rate %d must be positive", c.SampleRate)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("meadow: config: %w", err)
	}
	return nil
}

// LogicalSize returns the logical resolution as a vector.
func (c Config) LogicalSize() Vec2 {
	return Vec2{float64(c.LogicalWidth), float64(c.LogicalHeight)}
}

// NewLogger builds a text logger at the configured level. Debug raises
// verbosity to at least the debug level.
func (c Config) NewLogger() (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("meadow: config: %w", err)
	}
	if c.Debug && level < logrus.DebugLevel {
		level = logrus.DebugLevel
	}
	l := logrus.New()
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return l, nil
}

// envReader resolves keys from the environment, falling back to values read
// from .env files and then to the supplied default. The first parse error
// is kept.
type envReader struct {
	file map[string]string
	err  error
}

func (r *envReader) str(key, def string) string {
	if v, ok := r.file[key]; ok {
		def = v
	}
	return envy.Get(key, def)
}

func (r *envReader) raw(key string) (string, bool) {
	v := strings.TrimSpace(r.str(key, ""))
	return v, v != ""
}

func (r *envReader) fail(key, v string, err error) {
	if r.err == nil {
		r.err = fmt.Errorf("meadow: config: %s=%q: %w", key, v, err)
	}
}

func (r *envReader) int(key string, def int) int {
	v, ok := r.raw(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.fail(key, v, err)
		return def
	}
	return n
}

func (r *envReader) bool(key string, def bool) bool {
	v, ok := r.raw(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		r.fail(key, v, err)
		return def
	}
	return b
}

func (r *envReader) color(key string, def Color) Color {
	v, ok := r.raw(key)
	if !ok {
		return def
	}
	c, err := ParseHexColor(v)
	if err != nil {
		r.fail(key, v, err)
		return def
	}
	return c
}

// ParseHexColor parses "#RRGGBB" or "#RRGGBBAA". The leading '#' is
// optional.
func ParseHexColor(s string) (Color, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 && len(s) != 8 {
		return Color{}, fmt.Errorf("hex color %q must have 6 or 8 digits", s)
	}
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, err
	}
	if len(s) == 6 {
		n = n<<8 | 0xff
	}
	return ColorFromRGBA8(uint8(n>>24), uint8(n>>16), uint8(n>>8), uint8(n)), nil
}
