// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// DefaultWorkers is used when the file leaves workers unset
const DefaultWorkers = 1

// 📚 Config holds the run defaults a command starts from before flags apply
type Config struct {
	Destination string `json:"destination,omitempty" yaml:"destination,omitempty" hcl:"destination,optional"`
	Workers     int    `json:"workers,omitempty" yaml:"workers,omitempty" hcl:"workers,optional"`
	MoveTimeout string `json:"move_timeout,omitempty" yaml:"move_timeout,omitempty" hcl:"move_timeout,optional"` // Go duration, e.g. "30s"
	DryRun      bool   `json:"dry_run,omitempty" yaml:"dry_run,omitempty" hcl:"dry_run,optional"`
	Preset      string `json:"preset,omitempty" yaml:"preset,omitempty" hcl:"preset,optional"`
	Journal     string `json:"journal,omitempty" yaml:"journal,omitempty" hcl:"journal,optional"` // Run journal file, none when empty

	location string
	timeout  time.Duration
}

// 🏭 Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{Workers: DefaultWorkers}
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	// Read config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	// Get parser
	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	// Parse config
	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	cfg.location = path
	return cfg, nil
}

// Location returns the file the config was loaded from, empty for defaults
func (cfg *Config) Location() string {
	return cfg.location
}

// Timeout returns the parsed per-move timeout, zero for no limit
func (cfg *Config) Timeout() time.Duration {
	return cfg.timeout
}

// 🔍 Validate checks if the configuration is valid and fills in defaults
func (cfg *Config) Validate() error {
	if cfg.Workers < 0 {
		return errors.Errorf("workers must not be negative, got %d", cfg.Workers)
	}
	if cfg.Workers == 0 {
		cfg.Workers = DefaultWorkers
	}

	cfg.timeout = 0
	if s := strings.TrimSpace(cfg.MoveTimeout); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return errors.Errorf("move_timeout: %w", err)
		}
		if d < 0 {
			return errors.Errorf("move_timeout must not be negative, got %s", d)
		}
		cfg.timeout = d
	}

	if strings.TrimSpace(cfg.Destination) != "" {
		cfg.Destination = filepath.Clean(strings.TrimSpace(cfg.Destination))
	}

	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	dest := cfg.Destination
	if dest == "" {
		dest = "<unset>"
	}
	s := fmt.Sprintf("-> %s (workers=%d", dest, cfg.Workers)
	if cfg.timeout > 0 {
		s += fmt.Sprintf(", timeout=%s", cfg.timeout)
	}
	if cfg.DryRun {
		s += ", dry-run"
	}
	return s + ")"
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

func (p *YAMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(strings.NewReader(string(data)))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}
	return &cfg, nil
}
