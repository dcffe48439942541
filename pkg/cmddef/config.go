// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cmddef loads declarative command definitions from TOML or YAML
// files and turns them into argument sets that can be parsed.
package cmddef

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/yeetrun/argot/pkg/args"
	"gopkg.in/yaml.v3"
)

// Format is a definition file encoding.
type Format string

const (
	TOML Format = "toml"
	YAML Format = "yaml"
)

// FormatOf returns the format for path based on its extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	}
	return "", fmt.Errorf("unsupported definition file %s (expected .toml, .yaml or .yml)", path)
}

// Config is the on-disk form of a command catalog.
type Config struct {
	Engine   EngineConfig    `toml:"engine" yaml:"engine"`
	Commands []CommandConfig `toml:"commands" yaml:"commands"`
}

// EngineConfig holds parser options shared by every command.
type EngineConfig struct {
	Validation        string  `toml:"validation,omitempty" yaml:"validation,omitempty"`
	Separator         *string `toml:"separator,omitempty" yaml:"separator,omitempty"`
	StrictIdentifiers bool    `toml:"strict_identifiers,omitempty" yaml:"strict_identifiers,omitempty"`
}

type CommandConfig struct {
	Name        string           `toml:"name" yaml:"name"`
	Aliases     []string         `toml:"aliases,omitempty" yaml:"aliases,omitempty"`
	Description string           `toml:"description,omitempty" yaml:"description,omitempty"`
	Required    []ArgumentConfig `toml:"required,omitempty" yaml:"required,omitempty"`
	Optional    []OptionalConfig `toml:"optional,omitempty" yaml:"optional,omitempty"`
}

type ArgumentConfig struct {
	Name        string          `toml:"name" yaml:"name"`
	Description string          `toml:"description,omitempty" yaml:"description,omitempty"`
	Type        string          `toml:"type,omitempty" yaml:"type,omitempty"`
	Arity       Arity           `toml:"arity,omitempty" yaml:"arity,omitempty"`
	Default     any             `toml:"default,omitempty" yaml:"default,omitempty"`
	Matchers    []MatcherConfig `toml:"matchers,omitempty" yaml:"matchers,omitempty"`
	// Sanitize names a transformation applied to validated values.
	Sanitize string `toml:"sanitize,omitempty" yaml:"sanitize,omitempty"`
}

type OptionalConfig struct {
	ArgumentConfig  `yaml:",inline"`
	Identifiers     []string `toml:"identifiers" yaml:"identifiers"`
	Flag            *bool    `toml:"flag,omitempty" yaml:"flag,omitempty"`
	AllowDuplicates bool     `toml:"allow_duplicates,omitempty" yaml:"allow_duplicates,omitempty"`
}

// MatcherConfig selects a built-in matcher and its parameters. Only the
// parameters the named matcher uses are read.
type MatcherConfig struct {
	Name    string   `toml:"name" yaml:"name"`
	Value   *float64 `toml:"value,omitempty" yaml:"value,omitempty"`
	Min     *float64 `toml:"min,omitempty" yaml:"min,omitempty"`
	Max     *float64 `toml:"max,omitempty" yaml:"max,omitempty"`
	Choices []string `toml:"choices,omitempty" yaml:"choices,omitempty"`
	Pattern string   `toml:"pattern,omitempty" yaml:"pattern,omitempty"`
	Time    string   `toml:"time,omitempty" yaml:"time,omitempty"`
	// Message replaces the matcher's default failure message.
	Message string `toml:"message,omitempty" yaml:"message,omitempty"`
}

// Arity is args.Arity as written in a definition file: a count, or one
// of "at-least-one" (also "+") and "all-or-default" (also "*").
type Arity args.Arity

func parseArity(s string) (Arity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "1":
		return 0, nil
	case "+", "at-least-one":
		return Arity(args.AtLeastOne), nil
	case "*", "all-or-default":
		return Arity(args.AllOrDefault), nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid arity %q", s)
	}
	return Arity(n), nil
}

func (a *Arity) UnmarshalTOML(v any) error {
	switch v := v.(type) {
	case int64:
		if v < 1 {
			return fmt.Errorf("invalid arity %d", v)
		}
		*a = Arity(v)
		return nil
	case string:
		parsed, err := parseArity(v)
		if err != nil {
			return err
		}
		*a = parsed
		return nil
	}
	return fmt.Errorf("invalid arity %v", v)
}

func (a *Arity) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: arity must be a scalar", n.Line)
	}
	parsed, err := parseArity(n.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	*a = parsed
	return nil
}

// Load reads the definition file at path, choosing the decoder by extension.
func Load(path string) (*Config, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses data in the given format.
func Decode(data []byte, format Format) (*Config, error) {
	var cfg Config
	switch format {
	case TOML:
		md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&cfg)
		if err != nil {
			return nil, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown key %s", undecoded[0])
		}
	case YAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
	return &cfg, nil
}
