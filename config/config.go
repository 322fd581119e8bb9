// SPDX-License-Identifier: MIT

// Package config loads the YAML run configuration consumed by cmd/stochgrid.
//
// Example:
//
//	tree:
//	  depth: 2
//	  branching: 3
//	  stage_length: 24
//	  seed: 42
//	sampling:
//	  compress: true
//	  epsilon: 0.01
//	  policy: ancestor-shared
//	  break_points:
//	    - {period: 24, phase: 0}
//	  source:
//	    file: prices.csv
//	    dir: data
//	regrid:
//	  duration: 24
//	  delay: 0
//	workers: 8
//	log:
//	  level: info
//	  json: false
//
// Fields left out of the file keep the values of Default.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/stochgrid/cluster"
	"github.com/katalvlaran/stochgrid/logging"
	"github.com/katalvlaran/stochgrid/sampling"
)

// ErrInvalid indicates a configuration that fails Validate.
var ErrInvalid = errors.New("config: invalid configuration")

var validate *validator.Validate

func init() {
	validate = validator.New()
	custom := map[string]validator.Func{
		"policy": func(fl validator.FieldLevel) bool {
			_, err := sampling.ParsePolicy(fl.Field().String())
			return err == nil
		},
		"loglevel": func(fl validator.FieldLevel) bool {
			_, err := logging.ParseLevel(fl.Field().String())
			return err == nil
		},
		"onechar": func(fl validator.FieldLevel) bool {
			return utf8.RuneCountInString(fl.Field().String()) <= 1
		},
	}
	for tag, fn := range custom {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("config: register %q validation: %v", tag, err))
		}
	}
}

// Config is the top-level run configuration.
//
// Thread Safety: safe to read concurrently; not safe to modify after Load.
type Config struct {
	Tree     TreeConfig     `json:"tree" yaml:"tree"`
	Sampling SamplingConfig `json:"sampling" yaml:"sampling"`
	Regrid   RegridConfig   `json:"regrid" yaml:"regrid"`
	Workers  int            `json:"workers" yaml:"workers" validate:"gte=0"` // 0 = GOMAXPROCS
	Log      LogConfig      `json:"log" yaml:"log"`
}

// TreeConfig is the tree shape and seed. A nil Seed means "draw one".
type TreeConfig struct {
	Depth       int    `json:"depth" yaml:"depth" validate:"gte=0"`
	Branching   int    `json:"branching" yaml:"branching" validate:"gte=1"`
	StageLength int    `json:"stage_length" yaml:"stage_length" validate:"gte=1"`
	Seed        *int64 `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// SamplingConfig drives one sampling pass.
type SamplingConfig struct {
	Compress    bool                 `json:"compress" yaml:"compress"`
	Epsilon     float64              `json:"epsilon" yaml:"epsilon" validate:"gte=0"`
	Policy      string               `json:"policy" yaml:"policy" validate:"policy"`
	BreakPoints []cluster.BreakPoint `json:"break_points" yaml:"break_points" validate:"omitempty,dive"`
	Source      SourceConfig         `json:"source" yaml:"source"`
}

// SourceConfig names the historical series: a CSV file, or a synthetic path
// when File is empty.
type SourceConfig struct {
	File      string `json:"file" yaml:"file"`
	Dir       string `json:"dir" yaml:"dir"`
	Delimiter string `json:"delimiter" yaml:"delimiter" validate:"onechar"`
	// Synthetic settings apply when File is empty.
	SyntheticLength int   `json:"synthetic_length" yaml:"synthetic_length" validate:"gte=0"`
	SyntheticSeed   int64 `json:"synthetic_seed" yaml:"synthetic_seed"`
}

// RegridConfig is the decision-grid resolution.
type RegridConfig struct {
	Duration int `json:"duration" yaml:"duration" validate:"gte=1"`
	Delay    int `json:"delay" yaml:"delay" validate:"gte=0"`
}

// LogConfig selects the log level and format.
type LogConfig struct {
	Level string `json:"level" yaml:"level" validate:"loglevel"`
	JSON  bool   `json:"json" yaml:"json"`
}

// Default returns a binary tree with two 24-step stages.
func Default() Config {
	return Config{
		Tree: TreeConfig{Depth: 1, Branching: 2, StageLength: 24},
		Sampling: SamplingConfig{
			Compress: true,
			Epsilon:  cluster.DefaultEpsilon,
			Policy:   sampling.AncestorShared.String(),
			Source:   SourceConfig{SyntheticLength: 1000, SyntheticSeed: 1},
		},
		Regrid: RegridConfig{Duration: 24},
		Log:    LogConfig{Level: "info"},
	}
}

// Load reads path over Default and validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML over Default and validates the result. Unknown keys are
// rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
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

// Validate checks field ranges using the validate struct tags.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}
