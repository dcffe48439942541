// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package args

import (
	"errors"

	"github.com/yeetrun/argot/pkg/argtype"
)

// ParsedArgument is the finalized result for one argument after one parse.
//
// Values is either a []any of converted values, or the argument's raw
// Default or flag value. Excluded is set in the second case: such values
// did not come from real input and skip validation and sanitization.
type ParsedArgument struct {
	Schema *Argument
	// Optional is nil for required arguments.
	Optional *Optional
	Values   any
	Excluded bool
}

// List returns Values as a list. Raw default and flag values are returned
// as a single-element list.
func (p ParsedArgument) List() []any {
	if vs, ok := p.Values.([]any); ok {
		return vs
	}
	if p.Values == nil {
		return nil
	}
	return []any{p.Values}
}

// Collector accumulates the values of one argument during one parse.
// A Collector never holds more values than its arity permits.
type Collector struct {
	schema   *Argument
	optional *Optional
	values   []any
	forced   bool
}

// NewCollector returns an empty collector for a. o is the optional schema
// a belongs to, or nil for a required argument.
func NewCollector(a *Argument, o *Optional) *Collector {
	return &Collector{schema: a, optional: o}
}

// Schema returns the argument the collector is bound to.
func (c *Collector) Schema() *Argument {
	return c.schema
}

// Len returns the number of values collected so far.
func (c *Collector) Len() int {
	return len(c.values)
}

// Collect converts token with the argument's type and appends it.
// It fails with CollectorFull if the collector is full and with a
// *ConversionError if the token does not convert.
func (c *Collector) Collect(token string) error {
	if c.IsFull() {
		return &ParseError{
			Kind:     CollectorFull,
			Argument: c.schema.Name,
			Token:    token,
			Expected: c.schema.Arity.expected(),
			Got:      len(c.values),
		}
	}
	v, err := c.schema.valueType().Convert(token)
	if err != nil {
		var convErr *argtype.ConversionError
		if errors.As(err, &convErr) {
			return &ConversionError{Argument: c.schema.Name, Err: convErr}
		}
		return err
	}
	c.values = append(c.values, v)
	return nil
}

// IsFull reports whether the collector accepts no more tokens: it was
// closed early, or it has an exact arity and holds that many values.
func (c *Collector) IsFull() bool {
	if c.forced {
		return true
	}
	a := c.schema.Arity.normalize()
	return !a.IsAmbiguous() && len(c.values) == int(a)
}

// IsAmbiguous reports whether the argument's arity is unbounded.
func (c *Collector) IsAmbiguous() bool {
	return c.schema.Arity.IsAmbiguous()
}

// IsSpecificAmbiguous reports whether the argument's arity is kind.
func (c *Collector) IsSpecificAmbiguous(kind Arity) bool {
	return kind.IsAmbiguous() && c.schema.Arity.normalize() == kind
}

// ForceFull closes the collector before its arity was reached.
func (c *Collector) ForceFull() {
	c.forced = true
}

// Finalize checks the collected count against the arity and returns the
// result. An AllOrDefault collector with no values yields the argument's
// Default, excluded from validation. Flags yield their flag value.
func (c *Collector) Finalize() (ParsedArgument, error) {
	pa := ParsedArgument{Schema: c.schema, Optional: c.optional}
	if c.optional != nil && c.optional.IsFlag() {
		pa.Values = *c.optional.Flag
		pa.Excluded = true
		return pa, nil
	}
	a := c.schema.Arity.normalize()
	n := len(c.values)
	switch {
	case a == AllOrDefault:
		if n == 0 {
			pa.Values = c.schema.Default
			pa.Excluded = true
			return pa, nil
		}
	case a == AtLeastOne:
		if n == 0 {
			return pa, c.tooFew()
		}
	case n < int(a):
		return pa, c.tooFew()
	case n > int(a):
		return pa, &ParseError{Kind: TooManyArguments, Argument: c.schema.Name, Expected: a.expected(), Got: n}
	}
	pa.Values = c.values
	return pa, nil
}

func (c *Collector) tooFew() error {
	return &ParseError{
		Kind:     TooFewArguments,
		Argument: c.schema.Name,
		Expected: c.schema.Arity.expected(),
		Got:      len(c.values),
	}
}
