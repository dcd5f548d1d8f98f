// Package config loads segmentation settings from files and the environment.
//
// Settings are layered: DefaultConfig, then a config file (TOML, YAML or
// JSON, chosen by extension), then LYRICSEG_* environment variables, then
// command-line flags applied by the caller.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/lyricseg/measure"
	"github.com/randalmurphal/lyricseg/render"
	"github.com/randalmurphal/lyricseg/segment"
	"github.com/randalmurphal/lyricseg/source"
)

// DefaultLimit is the default target line length.
const DefaultLimit = 14

// EnvPrefix prefixes all environment variables read by LoadFromEnv.
const EnvPrefix = "LYRICSEG_"

// Sentinel errors for configuration.
var (
	// ErrInvalidConfig indicates a setting is out of range or unknown.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrUnsupportedFile indicates a config file extension with no decoder.
	ErrUnsupportedFile = errors.New("unsupported config file type")
)

// Config holds settings for segmenting and rendering lyrics.
type Config struct {
	// Limit is the target line length. Must be at least 1.
	Limit int `json:"limit" yaml:"limit" toml:"limit"`

	// Measure selects how length is counted: "runes", "graphemes" or "cells".
	Measure string `json:"measure" yaml:"measure" toml:"measure"`

	// Format selects the output: "text", "json" or "yaml".
	Format string `json:"format" yaml:"format" toml:"format"`

	// Encoding is the IANA charset of input files. Empty detects it.
	Encoding string `json:"encoding" yaml:"encoding" toml:"encoding"`

	// InputFormat is "auto", "text" or "html".
	InputFormat string `json:"input_format" yaml:"input_format" toml:"input_format"`

	// Abbreviations extends the built-in list of non-terminal abbreviations.
	Abbreviations []string `json:"abbreviations" yaml:"abbreviations" toml:"abbreviations"`

	// Spans includes source byte ranges in structured output.
	Spans bool `json:"spans" yaml:"spans" toml:"spans"`

	// Debounce delays re-segmentation after a file change in watch mode.
	Debounce Duration `json:"debounce" yaml:"debounce" toml:"debounce"`

	// PollInterval is the watch fallback interval when file events are
	// unavailable.
	PollInterval Duration `json:"poll_interval" yaml:"poll_interval" toml:"poll_interval"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Limit:        DefaultLimit,
		Measure:      string(measure.Runes),
		Format:       string(render.Text),
		InputFormat:  string(source.Auto),
		Debounce:     Duration(100 * time.Millisecond),
		PollInterval: Duration(500 * time.Millisecond),
	}
}

// LoadFile reads a config file on top of the defaults.
// The decoder is chosen by extension: .toml, .yaml/.yml or .json.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return cfg, fmt.Errorf("parse toml config: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return cfg, fmt.Errorf("%w: unknown key %q in %s", ErrInvalidConfig, undecoded[0].String(), path)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(strings.NewReader(string(data)))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return cfg, fmt.Errorf("parse yaml config: %w", err)
		}
	case ".json":
		dec := json.NewDecoder(strings.NewReader(string(data)))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return cfg, fmt.Errorf("parse json config: %w", err)
		}
	default:
		return cfg, fmt.Errorf("%w: %q", ErrUnsupportedFile, ext)
	}

	return cfg, nil
}

// LoadFromEnv populates config fields from environment variables.
// Environment variables use the LYRICSEG_ prefix and take precedence over
// existing values.
//
// Supported variables:
//   - LYRICSEG_LIMIT: Target line length
//   - LYRICSEG_MEASURE: Measure mode
//   - LYRICSEG_FORMAT: Output format
//   - LYRICSEG_ENCODING: Input charset
//   - LYRICSEG_INPUT_FORMAT: Input format
//   - LYRICSEG_ABBREVIATIONS: Comma-separated extra abbreviations
//   - LYRICSEG_SPANS: Include source spans ("true"/"false")
//   - LYRICSEG_DEBOUNCE: Watch debounce (e.g., "200ms")
//   - LYRICSEG_POLL_INTERVAL: Watch polling interval (e.g., "1s")
func (c *Config) LoadFromEnv() error {
	if v := os.Getenv(EnvPrefix + "LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %sLIMIT=%q", ErrInvalidConfig, EnvPrefix, v)
		}
		c.Limit = n
	}
	if v := os.Getenv(EnvPrefix + "MEASURE"); v != "" {
		c.Measure = v
	}
	if v := os.Getenv(EnvPrefix + "FORMAT"); v != "" {
		c.Format = v
	}
	if v := os.Getenv(EnvPrefix + "ENCODING"); v != "" {
		c.Encoding = v
	}
	if v := os.Getenv(EnvPrefix + "INPUT_FORMAT"); v != "" {
		c.InputFormat = v
	}
	if v := os.Getenv(EnvPrefix + "ABBREVIATIONS"); v != "" {
		c.Abbreviations = nil
		for _, a := range strings.Split(v, ",") {
			if a = strings.TrimSpace(a); a != "" {
				c.Abbreviations = append(c.Abbreviations, a)
			}
		}
	}
	if v := os.Getenv(EnvPrefix + "SPANS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %sSPANS=%q", ErrInvalidConfig, EnvPrefix, v)
		}
		c.Spans = b
	}
	if v := os.Getenv(EnvPrefix + "DEBOUNCE"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %sDEBOUNCE=%q", ErrInvalidConfig, EnvPrefix, v)
		}
		c.Debounce = Duration(d)
	}
	if v := os.Getenv(EnvPrefix + "POLL_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %sPOLL_INTERVAL=%q", ErrInvalidConfig, EnvPrefix, v)
		}
		c.PollInterval = Duration(d)
	}
	return nil
}

// Validate checks that all settings are usable.
func (c *Config) Validate() error {
	if c.Limit < segment.MinLimit {
		return fmt.Errorf("%w: limit must be >= %d, got %d", ErrInvalidConfig, segment.MinLimit, c.Limit)
	}
	if _, err := measure.ParseMode(c.Measure); err != nil {
		return fmt.Errorf("%w: measure: %w", ErrInvalidConfig, err)
	}
	if _, err := render.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("%w: format: %w", ErrInvalidConfig, err)
	}
	if _, err := source.ParseFormat(c.InputFormat); err != nil {
		return fmt.Errorf("%w: input_format: %w", ErrInvalidConfig, err)
	}
	if c.Encoding != "" {
		if _, err := source.LookupEncoding(c.Encoding); err != nil {
			return fmt.Errorf("%w: encoding: %w", ErrInvalidConfig, err)
		}
	}
	if c.Debounce < 0 {
		return fmt.Errorf("%w: debounce must be non-negative", ErrInvalidConfig)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("%w: poll_interval must be positive", ErrInvalidConfig)
	}
	return nil
}

// Counter returns the measure mode and its counter.
func (c *Config) Counter() (measure.Mode, measure.Counter, error) {
	mode, err := measure.ParseMode(c.Measure)
	if err != nil {
		return "", nil, err
	}
	counter, err := measure.New(mode)
	if err != nil {
		return "", nil, err
	}
	return mode, counter, nil
}

// Segmenter builds a segmenter from the measure and abbreviation settings.
func (c *Config) Segmenter() (*segment.Segmenter, error) {
	_, counter, err := c.Counter()
	if err != nil {
		return nil, err
	}
	return segment.New().WithCounter(counter).WithAbbreviations(c.Abbreviations...), nil
}
