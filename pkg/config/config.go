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
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/imageimporter/pkg/metadata"
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

// DefaultExtensions are the file extensions imported when none are configured.
// Raw camera formats are included so they go through the mtime fallback.
var DefaultExtensions = []string{
	".jpg", ".jpeg", ".png", ".gif", ".heic",
	".dng", ".cr2", ".cr3", ".nef", ".arw", ".raf", ".orf", ".rw2",
}

// 📚 Config represents the import configuration
type Config struct {
	Extensions    []string `json:"extensions,omitempty" yaml:"extensions,omitempty"`         // allow-list, case-insensitive
	Ignore        []string `json:"ignore,omitempty" yaml:"ignore,omitempty"`                 // doublestar patterns to skip
	ExifFields    []string `json:"exif_fields,omitempty" yaml:"exif_fields,omitempty"`       // consulted in order
	PreserveTimes *bool    `json:"preserve_times,omitempty" yaml:"preserve_times,omitempty"` // nil means true
}

// 🏭 Default returns a validated config with every default applied
func Default() *Config {
	cfg := &Config{}
	// defaults always validate
	_ = cfg.Validate()
	return cfg
}

// 🎯 Load loads the configuration from a file. An empty path yields the defaults.
func Load(ctx context.Context, path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

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

	logger.Debug().Str("config", cfg.String()).Msg("configuration loaded")
	return cfg, nil
}

// 🔍 Validate checks the configuration and fills in defaults.
// It is safe to call more than once.
func (cfg *Config) Validate() error {
	if cfg.Extensions == nil {
		cfg.Extensions = append([]string(nil), DefaultExtensions...)
	}
	if len(cfg.Extensions) == 0 {
		return errors.Errorf("extensions must not be empty")
	}

	seen := make(map[string]bool, len(cfg.Extensions))
	exts := make([]string, 0, len(cfg.Extensions))
	for _, ext := range cfg.Extensions {
		norm := NormalizeExtension(ext)
		if norm == "" {
			return errors.Errorf("invalid extension %q", ext)
		}
		if seen[norm] {
			continue
		}
		seen[norm] = true
		exts = append(exts, norm)
	}
	cfg.Extensions = exts

	for _, pattern := range cfg.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("invalid ignore pattern %q", pattern)
		}
	}

	if len(cfg.ExifFields) == 0 {
		cfg.ExifFields = metadata.DefaultFields()
	}
	for _, field := range cfg.ExifFields {
		if !metadata.IsDateField(field) {
			return errors.Errorf("unsupported exif field %q", field)
		}
	}

	return nil
}

// ShouldPreserveTimes reports whether copies keep the source access and modification times
func (cfg *Config) ShouldPreserveTimes() bool {
	return cfg.PreserveTimes == nil || *cfg.PreserveTimes
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("extensions=[%s] ignore=[%s] exif_fields=[%s] preserve_times=%t",
		strings.Join(cfg.Extensions, " "),
		strings.Join(cfg.Ignore, " "),
		strings.Join(cfg.ExifFields, " "),
		cfg.ShouldPreserveTimes(),
	)
}

// NormalizeExtension lower-cases ext and adds a leading dot. Blank input returns "".
func NormalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	ext = strings.TrimLeft(ext, ".")
	if ext == "" || strings.ContainsAny(ext, `/\`) {
		return ""
	}
	return "." + ext
}
