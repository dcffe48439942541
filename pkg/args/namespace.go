// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package args

import (
	"slices"

	"tailscale.com/util/mak"
)

// Sanitize returns a copy of results in which every value of each
// non-excluded argument with a Sanitize function has been passed through it.
func Sanitize(results []ParsedArgument) []ParsedArgument {
	out := make([]ParsedArgument, len(results))
	for i, pa := range results {
		out[i] = pa
		if pa.Excluded || pa.Schema.Sanitize == nil {
			continue
		}
		vs := pa.List()
		clean := make([]any, len(vs))
		for j, v := range vs {
			clean[j] = pa.Schema.Sanitize(v)
		}
		out[i].Values = clean
	}
	return out
}

// Entry is one argument in a Namespace.
type Entry struct {
	Schema *Argument
	Values any
}

// List returns Values as a list, wrapping a raw default or flag value.
func (e Entry) List() []any {
	return ParsedArgument{Values: e.Values}.List()
}

// Namespace is the name-keyed view of a parse handed to a command.
type Namespace map[string]Entry

// Assemble builds the Namespace for results. The list is folded from the
// end, so if a name occurs twice the earliest entry is the one kept.
func Assemble(results []ParsedArgument) Namespace {
	var ns Namespace
	for i := len(results) - 1; i >= 0; i-- {
		pa := results[i]
		mak.Set(&ns, pa.Schema.Name, Entry{Schema: pa.Schema, Values: pa.Values})
	}
	if ns == nil {
		ns = Namespace{}
	}
	return ns
}

// Has reports whether name is present.
func (ns Namespace) Has(name string) bool {
	_, ok := ns[name]
	return ok
}

// Get returns the entry for name.
func (ns Namespace) Get(name string) (Entry, bool) {
	e, ok := ns[name]
	return e, ok
}

// Values returns the values of name as a list, or nil if name is absent.
func (ns Namespace) Values(name string) []any {
	return ns[name].List()
}

// First returns the first value of name.
func (ns Namespace) First(name string) (any, bool) {
	vs := ns.Values(name)
	if len(vs) == 0 {
		return nil, false
	}
	return vs[0], true
}

// Names returns the argument names in sorted order.
func (ns Namespace) Names() []string {
	names := make([]string, 0, len(ns))
	for name := range ns {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Evaluate parses tokens, validates and sanitizes the results, and
// assembles them into a Namespace.
func (p *Parser) Evaluate(tokens []string) (Namespace, error) {
	results, err := p.Parse(tokens)
	if err != nil {
		return nil, err
	}
	if err := p.Validate(results); err != nil {
		return nil, err
	}
	return Assemble(Sanitize(results)), nil
}
