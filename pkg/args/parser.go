// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package args

import (
	"slices"

	"tailscale.com/types/logger"
	"tailscale.com/util/mak"
	"tailscale.com/util/set"
)

// Options configures a Parser.
type Options struct {
	// Validation selects fail-fast (default) or gather-all validation.
	Validation ValidationMode
	// Separator joins gathered validation messages. Empty means DefaultSeparator.
	Separator string
	// StrictIdentifiers rejects tokens shaped like identifiers ("-x",
	// "--name") that no optional argument declares, instead of treating
	// them as values.
	StrictIdentifiers bool
	// Logf, if set, receives a trace of every token the parser consumes.
	Logf logger.Logf
}

func (o Options) separator() string {
	if o.Separator == "" {
		return DefaultSeparator
	}
	return o.Separator
}

// Parser turns token streams into ParsedArguments for one Set.
//
// A Parser holds no per-call state: every Parse call works on its own
// collectors, so one Parser may be shared between goroutines.
type Parser struct {
	set  *Set
	opts Options
	logf logger.Logf
}

// NewParser returns a Parser for s.
func NewParser(s *Set, opts Options) *Parser {
	logf := opts.Logf
	if logf == nil {
		logf = logger.Discard
	}
	return &Parser{set: s, opts: opts, logf: logf}
}

// Set returns the argument set the parser was built for.
func (p *Parser) Set() *Set {
	return p.set
}

// Parse consumes tokens and returns one ParsedArgument per argument touched,
// in commit order, followed by the defaults of untouched AllOrDefault
// arguments. Parse and conversion errors abort the call immediately.
func (p *Parser) Parse(tokens []string) ([]ParsedArgument, error) {
	st := &parseState{
		Parser:  p,
		touched: set.Set[string]{},
	}
	return st.run(tokens)
}

// parseState is the mutable state of a single Parse call.
type parseState struct {
	*Parser

	reqIdx          int // index of currentRequired in set.required
	currentRequired *Collector
	currentOptional *Collector

	results   []ParsedArgument
	committed map[string]int // argument name -> index in results
	touched   set.Set[string]
}

func (st *parseState) run(tokens []string) ([]ParsedArgument, error) {
	if len(st.set.required) > 0 {
		st.openRequired(0)
	}
	for _, tok := range tokens {
		if err := st.step(tok); err != nil {
			st.logf("parse: %q: %v", tok, err)
			return nil, err
		}
	}
	if err := st.finish(); err != nil {
		st.logf("parse: end of input: %v", err)
		return nil, err
	}
	return st.results, nil
}

func (st *parseState) step(tok string) error {
	r := st.set.resolver
	if r.IsIdentifier(tok) {
		if st.currentOptional != nil {
			if err := st.closeOptional(); err != nil {
				return err
			}
		}
		o, err := r.Resolve(tok)
		if err != nil {
			return err
		}
		if _, dup := st.committed[o.Name]; dup && !o.AllowDuplicates {
			return &ParseError{Kind: DuplicateArgument, Argument: o.Name, Token: tok}
		}
		st.touched.Add(o.Name)
		c := NewCollector(&o.Argument, o)
		if o.IsFlag() {
			st.logf("parse: %q sets flag %s", tok, o.Name)
			return st.commit(c)
		}
		st.logf("parse: %q opens %s (arity %v)", tok, o.Name, o.Arity)
		st.currentOptional = c
		return nil
	}

	if st.opts.StrictIdentifiers && looksLikeIdentifier(tok) {
		return &ParseError{Kind: UnknownIdentifier, Token: tok}
	}

	if c := st.currentOptional; c != nil {
		if err := c.Collect(tok); err != nil {
			return err
		}
		st.logf("parse: %q -> %s", tok, c.schema.Name)
		if c.IsFull() {
			st.currentOptional = nil
			return st.commit(c)
		}
		return nil
	}

	if c := st.currentRequired; c != nil {
		if c.IsFull() {
			if err := st.commit(c); err != nil {
				return err
			}
			st.currentRequired = nil
			if st.reqIdx+1 >= len(st.set.required) {
				return &ParseError{Kind: TooManyArguments, Token: tok}
			}
			st.openRequired(st.reqIdx + 1)
			c = st.currentRequired
		}
		if err := c.Collect(tok); err != nil {
			return err
		}
		st.logf("parse: %q -> %s", tok, c.schema.Name)
		return nil
	}

	return &ParseError{Kind: TooManyArguments, Token: tok}
}

func (st *parseState) openRequired(i int) {
	a := st.set.required[i]
	st.reqIdx = i
	st.currentRequired = NewCollector(a, nil)
	st.touched.Add(a.Name)
}

// closeOptional closes the open optional collector because an identifier
// interrupted it. An unbounded collector that holds at least one value is
// closed early; anything short of its arity is an error.
func (st *parseState) closeOptional() error {
	c := st.currentOptional
	st.currentOptional = nil
	switch {
	case c.IsSpecificAmbiguous(AtLeastOne):
		if c.Len() == 0 {
			return c.tooFew()
		}
		c.ForceFull()
	case !c.IsAmbiguous() && !c.IsFull():
		return c.tooFew()
	}
	return st.commit(c)
}

// finish closes whatever is still open at the end of the input, then
// reports missing required arguments and fills in defaults.
func (st *parseState) finish() error {
	if c := st.currentOptional; c != nil {
		st.currentOptional = nil
		if err := st.commit(c); err != nil {
			return err
		}
	}
	if c := st.currentRequired; c != nil {
		st.currentRequired = nil
		if err := st.commit(c); err != nil {
			return err
		}
	}
	for _, a := range st.set.required {
		if st.touched.Contains(a.Name) || a.Arity.normalize() == AllOrDefault {
			continue
		}
		return &ParseError{Kind: TooFewArguments, Argument: a.Name, Expected: a.Arity.expected()}
	}

	for _, a := range st.set.required {
		if err := st.commitDefault(a, nil); err != nil {
			return err
		}
	}
	for _, o := range st.set.optional {
		if err := st.commitDefault(&o.Argument, o); err != nil {
			return err
		}
	}
	return nil
}

func (st *parseState) commitDefault(a *Argument, o *Optional) error {
	if st.touched.Contains(a.Name) || a.Arity.normalize() != AllOrDefault {
		return nil
	}
	if o != nil && o.IsFlag() {
		return nil
	}
	st.logf("parse: %s defaults to %v", a.Name, a.Default)
	st.touched.Add(a.Name)
	return st.commit(NewCollector(a, o))
}

// commit finalizes c and records the result. A later occurrence of an
// argument that allows duplicates is merged into the first one.
func (st *parseState) commit(c *Collector) error {
	pa, err := c.Finalize()
	if err != nil {
		return err
	}
	name := pa.Schema.Name
	if i, ok := st.committed[name]; ok {
		st.results[i] = merge(st.results[i], pa)
		return nil
	}
	mak.Set(&st.committed, name, len(st.results))
	st.results = append(st.results, pa)
	return nil
}

// merge appends next's values to prev's, preserving input order. Values
// that came from a default or a flag add nothing to real input; real input
// replaces a default.
func merge(prev, next ParsedArgument) ParsedArgument {
	switch {
	case next.Excluded:
		return prev
	case prev.Excluded:
		return next
	}
	prev.Values = append(slices.Clip(prev.List()), next.List()...)
	return prev
}
