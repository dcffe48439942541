// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package args

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/yeetrun/argot/pkg/argtype"
	"github.com/yeetrun/argot/pkg/matcher"
	"tailscale.com/util/set"
)

// Arity is the number of value tokens an argument consumes. Positive
// values are exact counts; AllOrDefault and AtLeastOne are the two
// ambiguous markers. The zero value means one.
type Arity int

const (
	// AllOrDefault consumes any number of tokens and substitutes the
	// argument's Default when none were supplied.
	AllOrDefault Arity = -1
	// AtLeastOne consumes one or more tokens.
	AtLeastOne Arity = -2
)

func (a Arity) normalize() Arity {
	if a == 0 {
		return 1
	}
	return a
}

// IsAmbiguous reports whether a is one of the unbounded markers.
func (a Arity) IsAmbiguous() bool {
	a = a.normalize()
	return a == AllOrDefault || a == AtLeastOne
}

func (a Arity) valid() bool {
	a = a.normalize()
	return a > 0 || a == AllOrDefault || a == AtLeastOne
}

// expected describes a for error messages.
func (a Arity) expected() string {
	switch a = a.normalize(); a {
	case AllOrDefault:
		return "any number of arguments"
	case AtLeastOne:
		return "at least one argument"
	case 1:
		return "1 argument"
	}
	return fmt.Sprintf("%d arguments", int(a))
}

func (a Arity) String() string {
	switch a = a.normalize(); a {
	case AllOrDefault:
		return "all-or-default"
	case AtLeastOne:
		return "at-least-one"
	}
	return strconv.Itoa(int(a))
}

// Argument describes one argument. Arguments are built once, before any
// parsing, and must not be modified afterwards.
type Argument struct {
	Name        string
	Description string
	// Type converts raw tokens; nil means argtype.String.
	Type  argtype.Type
	Arity Arity
	// Default is used only with AllOrDefault arity when no token was supplied.
	Default  any
	Matchers []matcher.Matcher
	// Sanitize, if set, is applied to every validated value.
	Sanitize func(v any) any
}

func (a *Argument) valueType() argtype.Type {
	if a.Type == nil {
		return argtype.String
	}
	return a.Type
}

// Optional describes a named argument introduced by one of its identifiers.
type Optional struct {
	Argument
	// Identifiers introduce the argument on the command line, e.g. "--count", "-c".
	Identifiers []string
	// Flag, when set, makes the argument take no value tokens: its presence
	// yields *Flag.
	Flag *bool
	// AllowDuplicates lets the argument appear more than once; later
	// occurrences append their values to the first.
	AllowDuplicates bool
}

// IsFlag reports whether o takes no value tokens.
func (o *Optional) IsFlag() bool {
	return o.Flag != nil
}

// Set is a validated, immutable set of argument schemas for one command.
// Required arguments are consumed in declaration order.
type Set struct {
	required []*Argument
	optional []*Optional
	resolver *Resolver
}

// NewSet validates required and optional and returns the Set. It returns
// a *ConfigError if names or identifiers collide, an optional argument has
// no identifiers, a flag declares an arity, an arity is invalid, or an
// argument lists the same matcher twice.
func NewSet(required []*Argument, optional []*Optional) (*Set, error) {
	names := set.Set[string]{}
	check := func(a *Argument) error {
		if a == nil {
			return &ConfigError{Reason: "nil argument", Err: ErrConfig}
		}
		if a.Name == "" {
			return &ConfigError{Reason: "argument has no name", Err: ErrConfig}
		}
		if names.Contains(a.Name) {
			return &ConfigError{Argument: a.Name, Reason: "name is declared more than once", Err: ErrDuplicateName}
		}
		names.Add(a.Name)
		if !a.Arity.valid() {
			return &ConfigError{Argument: a.Name, Reason: fmt.Sprintf("invalid arity %d", int(a.Arity)), Err: ErrConfig}
		}
		seen := set.Set[string]{}
		for _, m := range a.Matchers {
			if seen.Contains(m.Name) {
				return &ConfigError{Argument: a.Name, Reason: fmt.Sprintf("matcher %q is listed more than once", m.Name), Err: ErrConfig}
			}
			seen.Add(m.Name)
		}
		return nil
	}

	for _, a := range required {
		if err := check(a); err != nil {
			return nil, err
		}
	}
	idents := set.Set[string]{}
	for _, o := range optional {
		if o == nil {
			return nil, &ConfigError{Reason: "nil argument", Err: ErrConfig}
		}
		if err := check(&o.Argument); err != nil {
			return nil, err
		}
		if o.IsFlag() && o.Arity.normalize() != 1 {
			return nil, &ConfigError{Argument: o.Name, Reason: "flag cannot take values", Err: ErrConfig}
		}
		if len(o.Identifiers) == 0 {
			return nil, &ConfigError{Argument: o.Name, Reason: "optional argument has no identifiers", Err: ErrConfig}
		}
		for _, id := range o.Identifiers {
			if id == "" {
				return nil, &ConfigError{Argument: o.Name, Reason: "empty identifier", Err: ErrConfig}
			}
			if idents.Contains(id) {
				return nil, &ConfigError{Argument: o.Name, Reason: fmt.Sprintf("identifier %s is already in use", id), Err: ErrDuplicateIdentifier}
			}
			idents.Add(id)
		}
	}

	return &Set{
		required: slices.Clone(required),
		optional: slices.Clone(optional),
		resolver: NewResolver(optional),
	}, nil
}

// Required returns the required arguments in declaration order.
func (s *Set) Required() []*Argument {
	return slices.Clone(s.required)
}

// Optional returns the optional arguments in declaration order.
func (s *Set) Optional() []*Optional {
	return slices.Clone(s.optional)
}

// Resolver returns the identifier resolver for the set's optional arguments.
func (s *Set) Resolver() *Resolver {
	return s.resolver
}

// Lookup returns the argument with the given name and, for optional
// arguments, its Optional schema.
func (s *Set) Lookup(name string) (*Argument, *Optional, bool) {
	for _, a := range s.required {
		if a.Name == name {
			return a, nil, true
		}
	}
	for _, o := range s.optional {
		if o.Name == name {
			return &o.Argument, o, true
		}
	}
	return nil, nil, false
}
