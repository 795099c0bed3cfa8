package picking

import (
	jlconfig "github.com/JeremyLoy/config"
	"github.com/rs/zerolog"

	"github.com/phanxgames/picking/report"
)

// Config holds runtime settings. LoadConfig fills it from PICKING_*
// environment variables on top of DefaultConfig.
type Config struct {
	LogLevel  string `config:"PICKING_LOG_LEVEL"`
	PrettyLog bool   `config:"PICKING_PRETTY_LOG"`

	// MaxTouchPointers caps how many touch contacts get pointer entities.
	// Contacts beyond the cap are ignored until they lift.
	MaxTouchPointers int `config:"PICKING_MAX_TOUCH_POINTERS"`

	// ScriptPath, when set, is a JSON pointer script driven through a
	// custom pointer.
	ScriptPath string `config:"PICKING_SCRIPT_PATH"`

	WindowTitle  string `config:"PICKING_WINDOW_TITLE"`
	WindowWidth  int    `config:"PICKING_WINDOW_WIDTH"`
	WindowHeight int    `config:"PICKING_WINDOW_HEIGHT"`
	ShowFPS      bool   `config:"PICKING_SHOW_FPS"`
}

// DefaultConfig returns the settings used when no environment overrides
// are present.
func DefaultConfig() Config {
	return Config{
		LogLevel:         "info",
		MaxTouchPointers: 9,
		WindowTitle:      "picking",
		WindowWidth:      800,
		WindowHeight:     600,
	}
}

// LoadConfig reads DefaultConfig overridden by the environment and
// validates the result.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	if err := jlconfig.FromEnv().To(&cfg); err != nil {
		return Config{}, report.Wrap(err, report.KindInvalidConfig, "read environment")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every field holds a usable value.
func (c Config) Validate() error {
	if c.LogLevel != "" {
		if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
			return report.Wrapf(err, report.KindInvalidConfig, "log level %q", c.LogLevel)
		}
	}
	if c.MaxTouchPointers < 0 {
		return report.Newf(report.KindInvalidConfig, "max touch pointers must be >= 0, got %d", c.MaxTouchPointers)
	}
	if c.WindowWidth <= 0 || c.WindowHeight <= 0 {
		return report.Newf(report.KindInvalidConfig, "window size must be positive, got %dx%d", c.WindowWidth, c.WindowHeight)
	}
	return nil
}
