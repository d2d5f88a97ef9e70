// Package config loads editor settings from defaults, an optional file and
// ISOFLOW_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"isoflow/interaction"
	"isoflow/pathfinding"
)

// EnvFile names the variable that points at an explicit config file.
const EnvFile = "ISOFLOW_CONFIG"

// Config is the resolved configuration.
type Config struct {
	Zoom      interaction.ZoomSettings
	History   int
	LogLevel  string
	LogFile   string
	Clipboard string
	Paste     int
	Strategy  pathfinding.RoutingStrategy
	CacheSize int
	Export    ExportConfig
}

// ExportConfig controls PNG rendering.
type ExportConfig struct {
	Padding float64
	Scale   float64
}

// Defaults sets every key's default on v.
func Defaults(v *viper.Viper) {
	v.SetDefault("zoom.min", interaction.DefaultZoom.Min)
	v.SetDefault("zoom.max", interaction.DefaultZoom.Max)
	v.SetDefault("zoom.step", interaction.DefaultZoom.Step)
	v.SetDefault("history.capacity", 100)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.file", "")
	v.SetDefault("clipboard", "system")
	v.SetDefault("paste.offset", 1)
	v.SetDefault("routing.strategy", "horizontal")
	v.SetDefault("routing.cache_size", 512)
	v.SetDefault("export.padding", 40.0)
	v.SetDefault("export.scale", 1.0)
}

// New returns a viper instance with defaults and environment binding. An
// empty path searches ./isoflow.yaml and $HOME/.config/isoflow/isoflow.yaml.
func New(path string) (*viper.Viper, error) {
	v := viper.New()
	Defaults(v)

	if path == "" {
		path = os.Getenv(EnvFile)
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("isoflow")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/isoflow")
	}

	v.SetEnvPrefix("ISOFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return v, nil
}

// Load reads the configuration. See New for the file lookup.
func Load(path string) (Config, error) {
	v, err := New(path)
	if err != nil {
		return Config{}, err
	}
	return FromViper(v)
}

// FromViper decodes and checks the settings held by v.
func FromViper(v *viper.Viper) (Config, error) {
	strategy, err := pathfinding.ParseStrategy(v.GetString("routing.strategy"))
	if err != nil {
		return Config{}, err
	}
	c := Config{
		Zoom: interaction.ZoomSettings{
			Min:  v.GetFloat64("zoom.min"),
			Max:  v.GetFloat64("zoom.max"),
			Step: v.GetFloat64("zoom.step"),
		},
		History:   v.GetInt("history.capacity"),
		LogLevel:  v.GetString("log.level"),
		LogFile:   v.GetString("log.file"),
		Clipboard: strings.ToLower(v.GetString("clipboard")),
		Paste:     v.GetInt("paste.offset"),
		Strategy:  strategy,
		CacheSize: v.GetInt("routing.cache_size"),
		Export: ExportConfig{
			Padding: v.GetFloat64("export.padding"),
			Scale:   v.GetFloat64("export.scale"),
		},
	}
	return c, c.Validate()
}

// Validate rejects settings the editor cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Zoom.Min <= 0 || c.Zoom.Max < c.Zoom.Min {
		errs = append(errs, fmt.Errorf("zoom range [%g, %g] is invalid", c.Zoom.Min, c.Zoom.Max))
	}
	if c.Zoom.Step <= 0 {
		errs = append(errs, fmt.Errorf("zoom.step must be positive"))
	}
	if c.History < 1 {
		errs = append(errs, fmt.Errorf("history.capacity must be at least 1"))
	}
	if c.Clipboard != "system" && c.Clipboard != "memory" {
		errs = append(errs, fmt.Errorf("clipboard must be system or memory, got %q", c.Clipboard))
	}
	if c.CacheSize < 0 {
		errs = append(errs, fmt.Errorf("routing.cache_size must not be negative"))
	}
	if c.Export.Scale <= 0 {
		errs = append(errs, fmt.Errorf("export.scale must be positive"))
	}
	return errors.Join(errs...)
}
