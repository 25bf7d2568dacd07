// SPDX-License-Identifier: MIT

// Package config - YAML run configuration for the wavealign CLI.
//
// Purpose:
//   - One file describes a run: scoring model, pool size, partition
//     strategy, fill deadline and log output.
//   - Missing keys keep their Default value; unknown keys are rejected.
//   - AlignOptions translates a validated Config into nw options.
//
// Example file:
//
//	scoring:
//	  match: 1
//	  mismatch: -1
//	  gap: -2
//	workers: 8
//	strategy: rows
//	timeout: 30s # unit required; 0s disables the deadline
//	log:
//	  level: info
//	  format: text
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/wavealign/nw"
	"github.com/katalvlaran/wavealign/wavefront"
)

// ErrInvalidConfig is returned by Validate for any out-of-domain value.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// DefaultTimeout bounds every CLI fill so a stalled run is reported as a
// liveness failure instead of hanging; "0s" in a file disables it.
const DefaultTimeout = 10 * time.Minute

// Log format names.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config is the root of the YAML document.
type Config struct {
	Scoring  Scoring       `yaml:"scoring"`
	Workers  int           `yaml:"workers"`
	Strategy string        `yaml:"strategy"`
	Timeout  time.Duration `yaml:"timeout"`
	Log      Log           `yaml:"log"`
}

// Scoring mirrors nw.Scoring with YAML keys.
type Scoring struct {
	Match    int `yaml:"match"`
	Mismatch int `yaml:"mismatch"`
	Gap      int `yaml:"gap"`
}

// Log selects the slog handler the CLI builds.
type Log struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Scoring: Scoring{
			Match:    nw.DefaultMatch,
			Mismatch: nw.DefaultMismatch,
			Gap:      nw.DefaultGap,
		},
		Workers:  nw.DefaultWorkers,
		Strategy: wavefront.DefaultStrategy.String(),
		Timeout:  DefaultTimeout,
		Log:      Log{Level: "info", Format: FormatText},
	}
}

// Load reads and validates the file at path over Default.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes a YAML document over Default and validates the result.
// An empty document yields Default. timeout must be a duration string
// such as "30s"; a bare number is rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := checkTimeoutNode(&doc); err != nil {
		return Config{}, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// checkTimeoutNode rejects a numeric timeout: yaml would read 30 as 30ns.
func checkTimeoutNode(doc *yaml.Node) error {
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil
	}
	for k := 0; k+1 < len(root.Content); k += 2 {
		key, val := root.Content[k], root.Content[k+1]
		if key.Value != "timeout" {
			continue
		}
		switch val.ShortTag() {
		case "!!int", "!!float":
			return fmt.Errorf("%w: timeout needs a unit, e.g. %ss (line %d)", ErrInvalidConfig, val.Value, val.Line)
		}
	}

	return nil
}

// Validate checks every field's domain.
func (c Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be >= 1, got %d", ErrInvalidConfig, c.Workers)
	}
	if _, err := wavefront.ParseStrategy(c.Strategy); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: timeout must be >= 0, got %s", ErrInvalidConfig, c.Timeout)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalidConfig, c.Log.Format)
	}

	return nil
}

// SlogLevel parses the level name.
func (l Log) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, l.Level)
	}

	return lvl, nil
}

// NW converts the scoring section.
func (s Scoring) NW() nw.Scoring {
	return nw.Scoring{Match: s.Match, Mismatch: s.Mismatch, Gap: s.Gap}
}

// AlignOptions validates c and returns the matching nw options.
func (c Config) AlignOptions() ([]nw.Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	st, _ := wavefront.ParseStrategy(c.Strategy)

	return []nw.Option{
		nw.WithScoring(c.Scoring.NW()),
		nw.WithWorkers(c.Workers),
		nw.WithStrategy(st),
		nw.WithTimeout(c.Timeout),
	}, nil
}
