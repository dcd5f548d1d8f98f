package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, DefaultLimit, cfg.Limit)
	assert.Equal(t, "runes", cfg.Measure)
	assert.Equal(t, "text", cfg.Format)
	assert.Equal(t, "auto", cfg.InputFormat)
	assert.Equal(t, 100*time.Millisecond, cfg.Debounce.Std())
	assert.NoError(t, cfg.Validate())
}

func TestLoadFile_TOML(t *testing.T) {
	path := writeFile(t, "lyricseg.toml", `
limit = 20
measure = "cells"
format = "json"
abbreviations = ["Capt", "Lt"]
spans = true
debounce = "250ms"
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.Limit)
	assert.Equal(t, "cells", cfg.Measure)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, []string{"Capt", "Lt"}, cfg.Abbreviations)
	assert.True(t, cfg.Spans)
	assert.Equal(t, 250*time.Millisecond, cfg.Debounce.Std())
	assert.Equal(t, 500*time.Millisecond, cfg.PollInterval.Std(), "unset keys keep defaults")
}

func TestLoadFile_TOMLUnknownKey(t *testing.T) {
	path := writeFile(t, "lyricseg.toml", "limt = 20\n")

	_, err := LoadFile(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadFile_YAML(t *testing.T) {
	path := writeFile(t, "lyricseg.yaml", `
limit: 30
measure: graphemes
input_format: html
poll_interval: 2s
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.Limit)
	assert.Equal(t, "graphemes", cfg.Measure)
	assert.Equal(t, "html", cfg.InputFormat)
	assert.Equal(t, 2*time.Second, cfg.PollInterval.Std())
	assert.Equal(t, "text", cfg.Format)
}

func TestLoadFile_YAMLUnknownKey(t *testing.T) {
	path := writeFile(t, "lyricseg.yml", "width: 3\n")

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFile_EmptyYAML(t *testing.T) {
	path := writeFile(t, "lyricseg.yaml", "")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFile_JSON(t *testing.T) {
	path := writeFile(t, "lyricseg.json", `{"limit": 12, "encoding": "latin1", "debounce": "1s"}`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.Limit)
	assert.Equal(t, "latin1", cfg.Encoding)
	assert.Equal(t, time.Second, cfg.Debounce.Std())
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	path := writeFile(t, "lyricseg.ini", "limit=3")
	_, err = LoadFile(path)
	assert.ErrorIs(t, err, ErrUnsupportedFile)

	path = writeFile(t, "lyricseg.json", `{"debounce": 5}`)
	_, err = LoadFile(path)
	assert.Error(t, err)
}

func TestConfig_LoadFromEnv(t *testing.T) {
	t.Setenv("LYRICSEG_LIMIT", "25")
	t.Setenv("LYRICSEG_MEASURE", "cells")
	t.Setenv("LYRICSEG_FORMAT", "yaml")
	t.Setenv("LYRICSEG_ENCODING", "utf-8")
	t.Setenv("LYRICSEG_INPUT_FORMAT", "text")
	t.Setenv("LYRICSEG_ABBREVIATIONS", "Capt, Lt ,")
	t.Setenv("LYRICSEG_SPANS", "true")
	t.Setenv("LYRICSEG_DEBOUNCE", "50ms")
	t.Setenv("LYRICSEG_POLL_INTERVAL", "3s")

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromEnv())

	assert.Equal(t, 25, cfg.Limit)
	assert.Equal(t, "cells", cfg.Measure)
	assert.Equal(t, "yaml", cfg.Format)
	assert.Equal(t, "utf-8", cfg.Encoding)
	assert.Equal(t, "text", cfg.InputFormat)
	assert.Equal(t, []string{"Capt", "Lt"}, cfg.Abbreviations)
	assert.True(t, cfg.Spans)
	assert.Equal(t, 50*time.Millisecond, cfg.Debounce.Std())
	assert.Equal(t, 3*time.Second, cfg.PollInterval.Std())
	assert.NoError(t, cfg.Validate())
}

func TestConfig_LoadFromEnvInvalid(t *testing.T) {
	tests := map[string]string{
		"LYRICSEG_LIMIT":         "many",
		"LYRICSEG_SPANS":         "maybe",
		"LYRICSEG_DEBOUNCE":      "soon",
		"LYRICSEG_POLL_INTERVAL": "later",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			cfg := DefaultConfig()
			assert.ErrorIs(t, cfg.LoadFromEnv(), ErrInvalidConfig)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "zero limit", mutate: func(c *Config) { c.Limit = 0 }, wantErr: true},
		{name: "negative limit", mutate: func(c *Config) { c.Limit = -3 }, wantErr: true},
		{name: "unknown measure", mutate: func(c *Config) { c.Measure = "bytes" }, wantErr: true},
		{name: "unknown format", mutate: func(c *Config) { c.Format = "xml" }, wantErr: true},
		{name: "unknown input format", mutate: func(c *Config) { c.InputFormat = "pdf" }, wantErr: true},
		{name: "unknown encoding", mutate: func(c *Config) { c.Encoding = "klingon" }, wantErr: true},
		{name: "known encoding", mutate: func(c *Config) { c.Encoding = "Shift_JIS" }},
		{name: "negative debounce", mutate: func(c *Config) { c.Debounce = -1 }, wantErr: true},
		{name: "zero poll interval", mutate: func(c *Config) { c.PollInterval = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_Segmenter(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Limit = 20
	cfg.Abbreviations = []string{"Capt"}

	s, err := cfg.Segmenter()
	require.NoError(t, err)

	lines, err := s.Segment("Capt. Hook sailed away. Lt. Smee followed him into the night.", cfg.Limit)
	require.NoError(t, err)
	assert.Equal(t, "Capt. Hook sailed away.", lines[0])

	cfg.Measure = "bogus"
	_, err = cfg.Segmenter()
	assert.Error(t, err)
}

func TestConfig_Counter(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Measure = "cells"

	mode, counter, err := cfg.Counter()
	require.NoError(t, err)
	assert.Equal(t, "cells", string(mode))
	assert.Equal(t, 4, counter.Count("你好"))
}
