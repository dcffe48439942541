// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmddef

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/yeetrun/argot/pkg/args"
	"github.com/yeetrun/argot/pkg/argtype"
	"github.com/yeetrun/argot/pkg/matcher"
)

// sanitizers are the value transformations a definition can name.
var sanitizers = map[string]func(any) any{
	"lower": mapString(strings.ToLower),
	"upper": mapString(strings.ToUpper),
	"trim":  mapString(strings.TrimSpace),
}

// MatcherNames returns the matcher names a definition can use.
func MatcherNames() []string {
	return []string{
		"after", "before", "integer", "max", "max-length", "min", "min-length",
		"not-empty", "one-of", "pattern", "positive", "range",
	}
}

// SanitizerNames returns the sanitizer names a definition can use.
func SanitizerNames() []string {
	names := make([]string, 0, len(sanitizers))
	for name := range sanitizers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func mapString(f func(string) string) func(any) any {
	return func(v any) any {
		if s, ok := v.(string); ok {
			return f(s)
		}
		return v
	}
}

// Options returns the parser options described by the engine section.
func (c *Config) Options() (args.Options, error) {
	mode, err := args.ParseValidationMode(c.Engine.Validation)
	if err != nil {
		return args.Options{}, err
	}
	opts := args.Options{
		Validation:        mode,
		StrictIdentifiers: c.Engine.StrictIdentifiers,
	}
	if c.Engine.Separator != nil {
		opts.Separator = *c.Engine.Separator
	}
	return opts, nil
}

// Build turns every command definition into an argument set and returns
// the catalog, parsing with opts.
func (c *Config) Build(opts args.Options) (*Catalog, error) {
	cmds := make([]*Command, 0, len(c.Commands))
	for i := range c.Commands {
		cmd, err := c.Commands[i].build()
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
	}
	return NewCatalog(opts, cmds...)
}

func (cc *CommandConfig) build() (*Command, error) {
	if cc.Name == "" {
		return nil, fmt.Errorf("command has no name")
	}
	var required []*args.Argument
	for i := range cc.Required {
		a, err := cc.Required[i].argument()
		if err != nil {
			return nil, fmt.Errorf("command %s: %w", cc.Name, err)
		}
		required = append(required, a)
	}
	var optional []*args.Optional
	for i := range cc.Optional {
		oc := &cc.Optional[i]
		a, err := oc.argument()
		if err != nil {
			return nil, fmt.Errorf("command %s: %w", cc.Name, err)
		}
		optional = append(optional, &args.Optional{
			Argument:        *a,
			Identifiers:     oc.Identifiers,
			Flag:            oc.Flag,
			AllowDuplicates: oc.AllowDuplicates,
		})
	}
	set, err := args.NewSet(required, optional)
	if err != nil {
		return nil, fmt.Errorf("command %s: %w", cc.Name, err)
	}
	return &Command{
		Name:        cc.Name,
		Aliases:     cc.Aliases,
		Description: cc.Description,
		Set:         set,
	}, nil
}

func (ac *ArgumentConfig) argument() (*args.Argument, error) {
	a := &args.Argument{
		Name:        ac.Name,
		Description: ac.Description,
		Arity:       args.Arity(ac.Arity),
		Default:     ac.Default,
	}
	if ac.Type != "" {
		t, ok := argtype.Lookup(ac.Type)
		if !ok {
			return nil, fmt.Errorf("argument %s: unknown type %q (expected one of %s)", ac.Name, ac.Type, strings.Join(argtype.Names(), ", "))
		}
		a.Type = t
	}
	// Defaults written as strings go through the argument's type, so
	// `default = "10"` on a number is 10.
	if s, ok := ac.Default.(string); ok && a.Type != nil {
		v, err := a.Type.Convert(s)
		if err != nil {
			return nil, fmt.Errorf("argument %s: default: %w", ac.Name, err)
		}
		a.Default = v
	}
	for _, mc := range ac.Matchers {
		m, err := mc.matcher()
		if err != nil {
			return nil, fmt.Errorf("argument %s: %w", ac.Name, err)
		}
		a.Matchers = append(a.Matchers, m)
	}
	if ac.Sanitize != "" {
		f, ok := sanitizers[ac.Sanitize]
		if !ok {
			return nil, fmt.Errorf("argument %s: unknown sanitizer %q", ac.Name, ac.Sanitize)
		}
		a.Sanitize = f
	}
	return a, nil
}

func (mc MatcherConfig) matcher() (matcher.Matcher, error) {
	need := func(p *float64, field string) (float64, error) {
		if p == nil {
			return 0, fmt.Errorf("matcher %s requires %s", mc.Name, field)
		}
		return *p, nil
	}
	var (
		m   matcher.Matcher
		err error
	)
	switch mc.Name {
	case "min-length", "max-length":
		var n float64
		if n, err = need(mc.Value, "value"); err == nil {
			if mc.Name == "min-length" {
				m = matcher.MinLength(int(n))
			} else {
				m = matcher.MaxLength(int(n))
			}
		}
	case "not-empty":
		m = matcher.NotEmpty()
	case "min":
		var n float64
		if n, err = need(mc.Value, "value"); err == nil {
			m = matcher.Min(n)
		}
	case "max":
		var n float64
		if n, err = need(mc.Value, "value"); err == nil {
			m = matcher.Max(n)
		}
	case "range":
		var lo, hi float64
		if lo, err = need(mc.Min, "min"); err == nil {
			if hi, err = need(mc.Max, "max"); err == nil {
				m = matcher.Range(lo, hi)
			}
		}
	case "integer":
		m = matcher.Integer()
	case "positive":
		m = matcher.Positive()
	case "one-of":
		if len(mc.Choices) == 0 {
			err = fmt.Errorf("matcher one-of requires choices")
		}
		m = matcher.OneOf(mc.Choices...)
	case "pattern":
		var re *regexp.Regexp
		if re, err = regexp.Compile(mc.Pattern); err == nil {
			m = matcher.Pattern(re)
		}
	case "before", "after":
		var t any
		if t, err = argtype.Date.Convert(mc.Time); err == nil {
			if mc.Name == "before" {
				m = matcher.Before(t.(time.Time))
			} else {
				m = matcher.After(t.(time.Time))
			}
		}
	default:
		err = fmt.Errorf("unknown matcher %q", mc.Name)
	}
	if err != nil {
		return matcher.Matcher{}, err
	}
	if mc.Message != "" {
		m = matcher.New(m.Name, m.Test, matcher.Text(mc.Message))
	}
	return m, nil
}
