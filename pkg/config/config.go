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
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/minifyrc/pkg/naming"
	"github.com/walteh/minifyrc/pkg/transform"
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

// Defaults applied by Validate
const (
	DefaultWebappSourceDir = "src/main/webapp"
	DefaultWebappTargetDir = "build/webapp"
	DefaultCharset         = "UTF-8"
	DefaultBufferSize      = 4096
	DefaultSuffix          = naming.DefaultSuffix
	DefaultLineBreak       = -1
)

// Bundle types
const (
	TypeCSS = "css"
	TypeJS  = "js"
)

// 📦 Bundle is one group of sources merged into one output file
type Bundle struct {
	Name       string   `json:"name" yaml:"name"`
	Type       string   `json:"type,omitempty" yaml:"type,omitempty"`               // css or js, inferred from OutputFile when empty
	SourceDir  string   `json:"source_dir,omitempty" yaml:"source_dir,omitempty"`   // Relative to the webapp source dir
	Files      []string `json:"files,omitempty" yaml:"files,omitempty"`             // Explicit names, merged first
	Includes   []string `json:"includes,omitempty" yaml:"includes,omitempty"`       // Globs, merged in name order
	Excludes   []string `json:"excludes,omitempty" yaml:"excludes,omitempty"`       // Globs removed from the includes
	OutputDir  string   `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`   // Relative to the webapp target dir
	OutputFile string   `json:"output_file,omitempty" yaml:"output_file,omitempty"` // Merged file name
}

// 📚 Config represents the complete configuration
type Config struct {
	WebappSourceDir string   `json:"webapp_source_dir,omitempty" yaml:"webapp_source_dir,omitempty"`
	WebappTargetDir string   `json:"webapp_target_dir,omitempty" yaml:"webapp_target_dir,omitempty"`
	Charset         string   `json:"charset,omitempty" yaml:"charset,omitempty"`
	BufferSize      int      `json:"buffer_size,omitempty" yaml:"buffer_size,omitempty"`
	Debug           bool     `json:"debug,omitempty" yaml:"debug,omitempty"`
	SkipMerge       bool     `json:"skip_merge,omitempty" yaml:"skip_merge,omitempty"`
	SkipMinify      bool     `json:"skip_minify,omitempty" yaml:"skip_minify,omitempty"`
	NoSuffix        bool     `json:"nosuffix,omitempty" yaml:"nosuffix,omitempty"`
	Suffix          string   `json:"suffix,omitempty" yaml:"suffix,omitempty"`
	LineBreak       *int     `json:"linebreak,omitempty" yaml:"linebreak,omitempty"`
	Async           bool     `json:"async,omitempty" yaml:"async,omitempty"`
	Workers         int      `json:"workers,omitempty" yaml:"workers,omitempty"`
	Bundles         []Bundle `json:"bundles" yaml:"bundles"`

	location string
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
	cfg.location = path

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	logger.Debug().Str("path", path).Int("bundles", len(cfg.Bundles)).Msg("configuration loaded")
	return cfg, nil
}

// Location returns the file the config was loaded from, if any
func (cfg *Config) Location() string {
	return cfg.location
}

// 🔍 Validate checks the configuration and fills in defaults
func (cfg *Config) Validate() error {
	if len(cfg.Bundles) == 0 {
		return errors.Errorf("at least one bundle is required")
	}

	// Set defaults
	if cfg.WebappSourceDir == "" {
		cfg.WebappSourceDir = DefaultWebappSourceDir
	}
	if cfg.WebappTargetDir == "" {
		cfg.WebappTargetDir = DefaultWebappTargetDir
	}
	if cfg.Charset == "" {
		cfg.Charset = DefaultCharset
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = DefaultBufferSize
	}
	if cfg.Suffix == "" {
		cfg.Suffix = DefaultSuffix
	}
	if cfg.LineBreak == nil {
		lb := DefaultLineBreak
		cfg.LineBreak = &lb
	}
	if cfg.Workers < 0 {
		return errors.Errorf("workers must not be negative")
	}

	// Clean up paths
	cfg.WebappSourceDir = filepath.Clean(cfg.WebappSourceDir)
	cfg.WebappTargetDir = filepath.Clean(cfg.WebappTargetDir)

	seen := make(map[string]bool, len(cfg.Bundles))
	for i := range cfg.Bundles {
		b := &cfg.Bundles[i]
		if err := b.validate(); err != nil {
			return errors.Errorf("bundle %d: %w", i, err)
		}
		if seen[b.Name] {
			return errors.Errorf("bundle %q is defined more than once", b.Name)
		}
		seen[b.Name] = true
	}

	return nil
}

func (b *Bundle) validate() error {
	if b.Name == "" {
		return errors.Errorf("name is required")
	}

	b.Type = strings.ToLower(strings.TrimSpace(b.Type))
	if b.Type == "" {
		t, ok := typeForExtension(naming.Extension(b.OutputFile))
		if !ok {
			return errors.Errorf("%s: type is required when output_file is not a stylesheet or script", b.Name)
		}
		b.Type = t
	}
	if b.Type != TypeCSS && b.Type != TypeJS {
		return errors.Errorf("%s: unknown type %q, expected %q or %q", b.Name, b.Type, TypeCSS, TypeJS)
	}

	// Set defaults
	if b.SourceDir == "" {
		b.SourceDir = b.Type
	}
	if b.OutputDir == "" {
		b.OutputDir = b.SourceDir
	}
	if b.OutputFile == "" {
		b.OutputFile = "script.js"
		if b.Type == TypeCSS {
			b.OutputFile = "style.css"
		}
	}
	if strings.ContainsAny(b.OutputFile, `/\`) {
		return errors.Errorf("%s: output_file must be a file name, got %q", b.Name, b.OutputFile)
	}

	return nil
}

// typeForExtension maps a file extension to the bundle type of the minifier
// that handles it
func typeForExtension(ext string) (string, bool) {
	m, err := transform.ForExtension(ext, transform.Options{})
	if err != nil {
		return "", false
	}
	if m.Kind() == transform.KindCSS {
		return TypeCSS, true
	}
	return TypeJS, true
}

// Bundle returns the bundle with the given name
func (cfg *Config) Bundle(name string) (Bundle, bool) {
	i := slices.IndexFunc(cfg.Bundles, func(b Bundle) bool { return b.Name == name })
	if i < 0 {
		return Bundle{}, false
	}
	return cfg.Bundles[i], true
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	names := make([]string, 0, len(cfg.Bundles))
	for _, b := range cfg.Bundles {
		names = append(names, b.Name)
	}
	return fmt.Sprintf("%s -> %s [%s]", cfg.WebappSourceDir, cfg.WebappTargetDir, strings.Join(names, ", "))
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

// 🔍 CanParse checks if this parser can handle the given file
func (p *YAMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

// 📝 Parse parses the config from YAML, expanding ${VAR} references first
func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(strings.NewReader(os.ExpandEnv(string(data))))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}
	return &cfg, nil
}
