// Package config handles application configuration management using Viper
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/raykavin/backview"
	"github.com/raykavin/backview/pkg/domain"
	"github.com/raykavin/backview/pkg/logger"
	"github.com/raykavin/backview/pkg/logger/logrus"
	"github.com/raykavin/backview/pkg/logger/zerolog"
	"github.com/raykavin/backview/pkg/viewport"
	"github.com/spf13/viper"
	"github.com/xhit/go-str2duration/v2"
)

// Constants for configuration
const (
	EnvPrefix          = "BACKVIEW"
	DefaultStoragePath = "./backview.db"

	BackendZerolog = "zerolog"
	BackendLogrus  = "logrus"
)

var ErrUnknownBackend = errors.New("unknown log backend")

// Config holds the application configuration
type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Viewport ViewportConfig `mapstructure:"viewport"`
	Server   ServerConfig   `mapstructure:"server"`
	Storage  StorageConfig  `mapstructure:"storage"`
}

// LogConfig selects and configures the logger backend
type LogConfig struct {
	Backend    string `mapstructure:"backend"`
	Level      string `mapstructure:"level"`
	TimeFormat string `mapstructure:"time_format"`
	Colored    bool   `mapstructure:"colored"`
	JSON       bool   `mapstructure:"json"`
}

// ViewportConfig holds the zoom and autoscale settings. MinSpan accepts day
// and week units, e.g. "1d" or "2w3d".
type ViewportConfig struct {
	MinSpan      string  `mapstructure:"min_span"`
	ZoomFactor   float64 `mapstructure:"zoom_factor"`
	PadFraction  float64 `mapstructure:"pad_fraction"`
	FixedPad     float64 `mapstructure:"fixed_pad"`
	ActiveSeries string  `mapstructure:"active_series"`
}

// ServerConfig holds the chart server settings
type ServerConfig struct {
	Port  int  `mapstructure:"port"`
	Debug bool `mapstructure:"debug"`
}

// StorageConfig holds the curve store location
type StorageConfig struct {
	Path string `mapstructure:"path"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.backend", BackendZerolog)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.time_format", "2006-01-02 15:04:05")
	v.SetDefault("log.colored", true)
	v.SetDefault("log.json", false)

	v.SetDefault("viewport.min_span", viewport.DefaultMinSpan.String())
	v.SetDefault("viewport.zoom_factor", viewport.DefaultZoomFactor)
	v.SetDefault("viewport.pad_fraction", domain.DefaultPadFraction)
	v.SetDefault("viewport.fixed_pad", domain.DefaultFixedPad)
	v.SetDefault("viewport.active_series", "")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.debug", false)

	v.SetDefault("storage.path", DefaultStoragePath)
}

// Load reads the configuration from defaults, the optional YAML file at path
// and BACKVIEW_* environment variables, in increasing priority. A missing
// file is created with the defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := saveDefaultConfig(v, path); err != nil {
				return nil, err
			}
		}

		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// saveDefaultConfig writes the default settings to path
func saveDefaultConfig(v *viper.Viper, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("could not create configuration directory: %w", err)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("could not save default configuration: %w", err)
	}

	return nil
}

// Duration parses the viewport min span
func (c ViewportConfig) Duration() (time.Duration, error) {
	span, err := str2duration.ParseDuration(c.MinSpan)
	if err != nil {
		return 0, fmt.Errorf("invalid viewport.min_span %q: %w", c.MinSpan, err)
	}
	return span, nil
}

// EngineOptions converts the viewport settings into engine options
func (c Config) EngineOptions(log logger.Logger) ([]backview.Option, error) {
	span, err := c.Viewport.Duration()
	if err != nil {
		return nil, err
	}

	options := []backview.Option{
		backview.WithLogger(log),
		backview.WithMinSpan(span),
		backview.WithZoomFactor(c.Viewport.ZoomFactor),
		backview.WithPadding(c.Viewport.PadFraction, c.Viewport.FixedPad),
	}
	if c.Viewport.ActiveSeries != "" {
		options = append(options, backview.WithActiveSeries(c.Viewport.ActiveSeries))
	}

	return options, nil
}

// NewLogger builds the configured logger writing to out
func (c LogConfig) NewLogger(out io.Writer) (logger.Logger, error) {
	switch c.Backend {
	case BackendZerolog, "":
		log, err := zerolog.New(zerolog.Options{
			Level:          c.Level,
			DateTimeLayout: c.TimeFormat,
			Colored:        c.Colored,
			JSON:           c.JSON,
			Output:         out,
		})
		if err != nil {
			return nil, err
		}
		return zerolog.NewAdapter(log), nil
	case BackendLogrus:
		log, err := logrus.New(out, c.Level, c.JSON)
		if err != nil {
			return nil, err
		}
		return log, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, c.Backend)
	}
}
