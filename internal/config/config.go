// Package config handles widget configuration loading and validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// WidgetConfig is the configuration for snowball.
// Loaded from ~/.config/snowball/snowball.toml
type WidgetConfig struct {
	Window    WindowConfig    `toml:"window"`
	Theme     ThemeConfig     `toml:"theme"`
	Countdown CountdownConfig `toml:"countdown"`
	Alarm     AlarmConfig     `toml:"alarm"`
	Weather   WeatherConfig   `toml:"weather"`
}

// WindowConfig controls the widget window.
type WindowConfig struct {
	X       int     `toml:"x"`       // Initial logical x from the left screen edge
	Y       int     `toml:"y"`       // Initial logical y from the top screen edge
	Width   int     `toml:"width"`   // Default width in logical pixels
	Height  int     `toml:"height"`  // Default height in logical pixels
	Opacity float64 `toml:"opacity"` // 0.0-1.0
	Layer   string  `toml:"layer"`   // "top" or "overlay"
	Monitor int     `toml:"monitor"` // 0 = compositor choice, 1+ = specific monitor
}

// Layer is the layer-shell layer the widget lives on.
type Layer string

const (
	LayerTop     Layer = "top"
	LayerOverlay Layer = "overlay"
)

// ThemeConfig contains theme settings.
type ThemeConfig struct {
	Name        string `toml:"name"`         // Theme name without .css extension
	ColorScheme string `toml:"color_scheme"` // "system", "light", or "dark"
}

// ColorScheme represents the color scheme preference.
type ColorScheme string

const (
	ColorSchemeSystem ColorScheme = "system"
	ColorSchemeLight  ColorScheme = "light"
	ColorSchemeDark   ColorScheme = "dark"
)

// ValidColorSchemes returns all valid color scheme values.
func ValidColorSchemes() []ColorScheme {
	return []ColorScheme{ColorSchemeSystem, ColorSchemeLight, ColorSchemeDark}
}

// CountdownConfig contains countdown timer settings.
type CountdownConfig struct {
	Default Duration   `toml:"default"` // Preselected duration
	Presets []Duration `toml:"presets"` // Quick-start buttons
}

// AlarmConfig describes the notification raised when a countdown ends.
type AlarmConfig struct {
	Summary   string `toml:"summary"`
	Body      string `toml:"body"`
	Icon      string `toml:"icon"`
	AppName   string `toml:"app_name"`
	SoundName string `toml:"sound_name"` // Freedesktop sound theme name sent as a hint
	SoundFile string `toml:"sound_file"` // Optional local file played by the widget itself
	Volume    int    `toml:"volume"`     // 0-100
}

// WeatherConfig toggles the weather panel.
type WeatherConfig struct {
	Enabled bool `toml:"enabled"`
}

// DefaultWidgetConfig returns a new WidgetConfig with default values.
func DefaultWidgetConfig() *WidgetConfig {
	return &WidgetConfig{
		Window: WindowConfig{
			X:       40,
			Y:       40,
			Width:   220,
			Height:  120,
			Opacity: 0.9,
			Layer:   string(LayerTop),
			Monitor: 0,
		},
		Theme: ThemeConfig{
			Name:        "default",
			ColorScheme: string(ColorSchemeSystem),
		},
		Countdown: CountdownConfig{
			Default: Duration(25 * time.Minute),
			Presets: []Duration{
				Duration(5 * time.Minute),
				Duration(25 * time.Minute),
				Duration(50 * time.Minute),
			},
		},
		Alarm: AlarmConfig{
			Summary:   "雪球",
			Body:      "定时任务结束！",
			Icon:      "thunderbird",
			AppName:   "thunderbird",
			SoundName: "Alarm",
			SoundFile: "",
			Volume:    80,
		},
		Weather: WeatherConfig{
			Enabled: true,
		},
	}
}

// ConfigDir returns the snowball configuration directory.
func ConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "snowball"), nil
}

// ConfigPath returns the path to the widget config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "snowball.toml"), nil
}

// Load loads the configuration from path, or from ConfigPath when path is
// empty. A missing file yields the defaults.
func Load(path string) (*WidgetConfig, error) {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return nil, fmt.Errorf("failed to get config path: %w", err)
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultWidgetConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults, then overlay with file contents
	cfg := DefaultWidgetConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to path, creating parent directories.
func Save(path string, cfg *WidgetConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write atomically via temp file
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return os.Rename(tmpPath, path)
}

// Validate checks if the configuration is valid.
func (c *WidgetConfig) Validate() error {
	if c.Window.Width < 80 || c.Window.Width > 2000 {
		return fmt.Errorf("%w: width must be between 80 and 2000, got %d", ErrInvalid, c.Window.Width)
	}
	if c.Window.Height < 40 || c.Window.Height > 2000 {
		return fmt.Errorf("%w: height must be between 40 and 2000, got %d", ErrInvalid, c.Window.Height)
	}
	if c.Window.X < 0 || c.Window.Y < 0 {
		return fmt.Errorf("%w: window position must not be negative, got (%d, %d)", ErrInvalid, c.Window.X, c.Window.Y)
	}
	if c.Window.Opacity < 0 || c.Window.Opacity > 1 {
		return fmt.Errorf("%w: opacity must be between 0.0 and 1.0, got %g", ErrInvalid, c.Window.Opacity)
	}
	if c.Window.Monitor < 0 {
		return fmt.Errorf("%w: monitor must be 0 or a 1-based index, got %d", ErrInvalid, c.Window.Monitor)
	}
	switch Layer(c.Window.Layer) {
	case LayerTop, LayerOverlay:
	default:
		return fmt.Errorf("%w: layer %q must be %q or %q", ErrInvalid, c.Window.Layer, LayerTop, LayerOverlay)
	}

	if !slices.Contains(ValidColorSchemes(), ColorScheme(c.Theme.ColorScheme)) {
		return fmt.Errorf("%w: color_scheme %q must be one of: %v", ErrInvalid, c.Theme.ColorScheme, ValidColorSchemes())
	}

	if c.Countdown.Default.Duration() <= 0 {
		return fmt.Errorf("%w: countdown default must be positive", ErrInvalid)
	}
	for _, p := range c.Countdown.Presets {
		if p.Duration() <= 0 {
			return fmt.Errorf("%w: countdown preset %s must be positive", ErrInvalid, p.Duration())
		}
	}

	if c.Alarm.Volume < 0 || c.Alarm.Volume > 100 {
		return fmt.Errorf("%w: volume must be between 0 and 100, got %d", ErrInvalid, c.Alarm.Volume)
	}
	if c.Alarm.Summary == "" {
		return fmt.Errorf("%w: alarm summary must not be empty", ErrInvalid)
	}

	return nil
}
