// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package config loads the configuration of the tokentree command.
//
// Priority: defaults -> YAML file -> command line flags.
// The flags are applied by the caller, see cmd/tokentree.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Config is the complete configuration of the tokentree command.
type Config struct {
	// Corpus controls reading and tokenizing the input files.
	Corpus CorpusConfig `yaml:"corpus"`

	// Log controls the logger.
	Log LogConfig `yaml:"log"`

	// Workers is the number of concurrent file readers.
	Workers int `yaml:"workers"`
}

// CorpusConfig controls reading and tokenizing.
type CorpusConfig struct {
	// Mode: runes or words.
	Mode string `yaml:"mode"`
	// Encoding of the input files: utf-8, latin1 or windows-1252.
	Encoding string `yaml:"encoding"`
	// Normalization form: none, nfc or nfkc.
	Normalize string `yaml:"normalize"`
	// Lowercase folds the case of the input.
	Lowercase bool `yaml:"lowercase"`
	// MaxLen is the n-gram window, every line position starts a
	// sequence of at most MaxLen tokens. 0 inserts whole lines.
	MaxLen int `yaml:"max_len"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	// Level: debug, info, warn, error.
	Level string `yaml:"level"`
	// Format: json, console.
	Format string `yaml:"format"`
}

// Valid values, the first one is the default.
var (
	Modes          = []string{"words", "runes"}
	Encodings      = []string{"utf-8", "latin1", "windows-1252"}
	Normalizations = []string{"nfc", "nfkc", "none"}
	LogLevels      = []string{"info", "debug", "warn", "error"}
	LogFormats     = []string{"console", "json"}
)

// ErrInvalid is wrapped by all validation errors.
var ErrInvalid = errors.New("invalid config")

// Default returns the default configuration.
func Default() Config {
	return Config{
		Corpus: CorpusConfig{
			Mode:      Modes[0],
			Encoding:  Encodings[0],
			Normalize: Normalizations[0],
			Lowercase: false,
			MaxLen:    3,
		},
		Log: LogConfig{
			Level:  LogLevels[0],
			Format: LogFormats[0],
		},
		Workers: 4,
	}
}

// Load returns the defaults overwritten by the YAML file at path.
// An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := Parse(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse overwrites cfg with the YAML document in data and validates the result.
// Unknown keys are rejected, an empty document keeps cfg.
func Parse(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse yaml: %w", err)
	}

	return cfg.Validate()
}

// Validate checks all enumerations and ranges.
func (c Config) Validate() error {
	checks := []struct {
		name  string
		val   string
		valid []string
	}{
		{"corpus.mode", c.Corpus.Mode, Modes},
		{"corpus.encoding", c.Corpus.Encoding, Encodings},
		{"corpus.normalize", c.Corpus.Normalize, Normalizations},
		{"log.level", c.Log.Level, LogLevels},
		{"log.format", c.Log.Format, LogFormats},
	}

	var errs []error
	for _, chk := range checks {
		if !slices.Contains(chk.valid, chk.val) {
			errs = append(errs, fmt.Errorf("%w: %s %q, want one of %v", ErrInvalid, chk.name, chk.val, chk.valid))
		}
	}

	if c.Corpus.MaxLen < 0 {
		errs = append(errs, fmt.Errorf("%w: corpus.max_len %d is negative", ErrInvalid, c.Corpus.MaxLen))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("%w: workers %d, want at least 1", ErrInvalid, c.Workers))
	}

	return errors.Join(errs...)
}

// Marshal returns the YAML representation of cfg.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
