// Package config loads spectree settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/specvital/spectree/pkg/logging"
	"github.com/specvital/spectree/pkg/report"
)

// DefaultFileName is the configuration file looked up in the working directory.
const DefaultFileName = ".spectree.yaml"

// For mocking in tests
var osGetwd = os.Getwd

var (
	ErrInvalidOutput    = errors.New("config: invalid output format")
	ErrInvalidWorkers   = errors.New("config: workers must not be negative")
	ErrInvalidTimeout   = errors.New("config: timeout must not be negative")
	ErrInvalidLogLevel  = errors.New("config: invalid log level")
	ErrInvalidLogFormat = errors.New("config: invalid log format")
)

// Config holds the settings of the spectree CLI.
type Config struct {
	// Specs are doublestar patterns selecting registered specs. Empty selects all.
	Specs []string `yaml:"specs,omitempty"`
	// Workers is the number of specs planned concurrently. Zero means GOMAXPROCS.
	Workers int `yaml:"workers"`
	// Timeout bounds planning of all specs.
	Timeout Duration `yaml:"timeout"`
	// Output is one of table, json or yaml.
	Output string `yaml:"output"`
	// Color enables colored console output. Nil means enabled.
	Color *bool `yaml:"color,omitempty"`
	// ShowTests lists individual tests in the summary table.
	ShowTests bool `yaml:"showTests"`
	// SourceSpans resolves full declaration spans with tree-sitter.
	SourceSpans bool `yaml:"sourceSpans"`
	// MetricsFile, when set, receives prometheus metrics of a run in text format.
	MetricsFile string `yaml:"metricsFile,omitempty"`
	Log         Log    `yaml:"log"`
}

// Log configures the process logger.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Duration is a time.Duration written as a Go duration string in YAML.
type Duration time.Duration

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Timeout: Duration(time.Minute),
		Output:  report.FormatTable,
		Log: Log{
			Level:  "info",
			Format: logging.FormatText,
		},
	}
}

// UseColor reports whether colored output is enabled.
func (c Config) UseColor() bool {
	return c.Color == nil || *c.Color
}

// Load layers the file at path over the defaults. With an empty path the
// default file in the working directory is used if present.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		wd, err := osGetwd()
		if err != nil {
			return Config{}, fmt.Errorf("determine working directory: %w", err)
		}
		path = filepath.Join(wd, DefaultFileName)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return cfg, nil
		}
	}

	overlay, err := loadConfigFromFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("error loading config from %s: %w", path, err)
	}
	cfg = Merge(cfg, overlay)

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func loadConfigFromFile(filePath string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(filePath)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Merge overlays the fields set in overlay onto base.
func Merge(base, overlay Config) Config {
	merged := base

	if len(overlay.Specs) > 0 {
		merged.Specs = append([]string(nil), overlay.Specs...)
	}
	if overlay.Workers != 0 {
		merged.Workers = overlay.Workers
	}
	if overlay.Timeout != 0 {
		merged.Timeout = overlay.Timeout
	}
	if overlay.Output != "" {
		merged.Output = overlay.Output
	}
	if overlay.Color != nil {
		color := *overlay.Color
		merged.Color = &color
	}
	if overlay.ShowTests {
		merged.ShowTests = true
	}
	if overlay.SourceSpans {
		merged.SourceSpans = true
	}
	if overlay.MetricsFile != "" {
		merged.MetricsFile = overlay.MetricsFile
	}
	if overlay.Log.Level != "" {
		merged.Log.Level = overlay.Log.Level
	}
	if overlay.Log.Format != "" {
		merged.Log.Format = overlay.Log.Format
	}

	return merged
}

// Validate checks every field for an allowed value.
func (c Config) Validate() error {
	if !report.ValidFormat(c.Output) {
		return fmt.Errorf("%w: %q", ErrInvalidOutput, c.Output)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, c.Workers)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: %s", ErrInvalidTimeout, time.Duration(c.Timeout))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Log.Level)
	}
	if !logging.ValidFormat(c.Log.Format) {
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Log.Format)
	}
	return nil
}
