// Package config loads huescore settings from TOML files and the
// environment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/setanarut/huescore"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Environment variables that override file values.
const (
	EnvToken   = "HUESCORE_TOKEN"
	EnvBaseURL = "HUESCORE_BASE_URL"
)

type Config struct {
	Analysis Analysis `toml:"analysis"`
	Fetch    Fetch    `toml:"fetch"`
	Upload   Upload   `toml:"upload"`
	Report   Report   `toml:"report"`
}

type Analysis struct {
	MaxSize   int `toml:"max_size"`
	SampleCap int `toml:"sample_cap"`
	Workers   int `toml:"workers"`
	// Concurrent images in batch mode.
	Parallel int `toml:"parallel"`
}

type Fetch struct {
	Timeout Duration `toml:"timeout"`
}

type Upload struct {
	BaseURL string   `toml:"base_url"`
	Token   string   `toml:"token"`
	Timeout Duration `toml:"timeout"`
}

type Report struct {
	BarWidth int  `toml:"bar_width"`
	Color    bool `toml:"color"`
}

// Duration is a time.Duration written as a string ("30s") in TOML.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func Default() Config {
	opt := huescore.DefaultOptions()
	return Config{
		Analysis: Analysis{
			MaxSize:   opt.MaxSize,
			SampleCap: opt.SampleCap,
			Workers:   opt.Workers,
			Parallel:  4,
		},
		Fetch:  Fetch{Timeout: Duration{30 * time.Second}},
		Upload: Upload{Timeout: Duration{30 * time.Second}},
		Report: Report{BarWidth: 30},
	}
}

// Load reads the TOML file at path over the defaults and applies
// environment overrides. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := Decode(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
	}
	cfg.ApplyEnv(os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Decode parses TOML into cfg. Unknown keys are rejected.
func Decode(data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, strict.String())
		}
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

func (c Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}

// ApplyEnv overrides upload settings from the environment.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvToken); ok && v != "" {
		c.Upload.Token = v
	}
	if v, ok := lookup(EnvBaseURL); ok && v != "" {
		c.Upload.BaseURL = v
	}
}

func (c Config) Validate() error {
	switch {
	case c.Analysis.MaxSize < 0:
		return fmt.Errorf("%w: analysis.max_size must not be negative", ErrInvalidConfig)
	case c.Analysis.SampleCap < 0:
		return fmt.Errorf("%w: analysis.sample_cap must not be negative", ErrInvalidConfig)
	case c.Analysis.Workers < 0:
		return fmt.Errorf("%w: analysis.workers must not be negative", ErrInvalidConfig)
	case c.Analysis.Parallel < 1:
		return fmt.Errorf("%w: analysis.parallel must be at least 1", ErrInvalidConfig)
	case c.Fetch.Timeout.Duration < 0, c.Upload.Timeout.Duration < 0:
		return fmt.Errorf("%w: timeouts must not be negative", ErrInvalidConfig)
	case c.Report.BarWidth <= 0:
		return fmt.Errorf("%w: report.bar_width must be positive", ErrInvalidConfig)
	}
	return nil
}

// Options returns the analysis options for the core.
func (c Config) Options() huescore.Options {
	return huescore.Options{
		MaxSize:   c.Analysis.MaxSize,
		SampleCap: c.Analysis.SampleCap,
		Workers:   c.Analysis.Workers,
	}
}
