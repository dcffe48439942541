// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package args

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yeetrun/argot/pkg/argtype"
)

// Sentinel errors. Every error returned by this package matches one of
// them via errors.Is.
var (
	// ErrParse matches every *ParseError.
	ErrParse = errors.New("parse error")

	ErrTooManyArguments  = errors.New("too many arguments")
	ErrTooFewArguments   = errors.New("too few arguments")
	ErrDuplicateArgument = errors.New("duplicate argument")
	ErrUnknownIdentifier = errors.New("unknown identifier")
	ErrCollectorFull     = errors.New("collector full")

	// ErrValidation matches *ValidationError and *ValidationErrors.
	ErrValidation = errors.New("validation failed")

	// ErrConfig matches every *ConfigError.
	ErrConfig              = errors.New("invalid argument schema")
	ErrDuplicateName       = errors.New("duplicate argument name")
	ErrDuplicateIdentifier = errors.New("duplicate identifier")
)

// ParseErrorKind classifies a ParseError.
type ParseErrorKind int

const (
	TooManyArguments ParseErrorKind = iota + 1
	TooFewArguments
	DuplicateArgument
	UnknownIdentifier
	CollectorFull
)

func (k ParseErrorKind) sentinel() error {
	switch k {
	case TooManyArguments:
		return ErrTooManyArguments
	case TooFewArguments:
		return ErrTooFewArguments
	case DuplicateArgument:
		return ErrDuplicateArgument
	case UnknownIdentifier:
		return ErrUnknownIdentifier
	case CollectorFull:
		return ErrCollectorFull
	}
	return ErrParse
}

func (k ParseErrorKind) String() string {
	return k.sentinel().Error()
}

// ParseError reports a token-sequencing or arity violation.
type ParseError struct {
	Kind     ParseErrorKind
	Argument string // the argument involved, if any
	Token    string // the offending token, if any
	Expected string // e.g. "2 arguments", "at least one argument"
	Got      int
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case TooManyArguments:
		if e.Token != "" {
			return fmt.Sprintf("too many arguments: unexpected %q", e.Token)
		}
		return "too many arguments"
	case TooFewArguments:
		if e.Argument == "" {
			return fmt.Sprintf("too few arguments: expected %s, got %d", e.Expected, e.Got)
		}
		return fmt.Sprintf("too few arguments for %s: expected %s, got %d", e.Argument, e.Expected, e.Got)
	case DuplicateArgument:
		return fmt.Sprintf("duplicate argument %s (%s)", e.Argument, e.Token)
	case UnknownIdentifier:
		return fmt.Sprintf("unknown identifier: %s", e.Token)
	case CollectorFull:
		return fmt.Sprintf("argument %s cannot accept %q: expected %s", e.Argument, e.Token, e.Expected)
	}
	return "parse error"
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse || target == e.Kind.sentinel()
}

// ConversionError reports a token that could not be converted to the
// Value Type of the argument it was attributed to.
type ConversionError struct {
	Argument string
	Err      *argtype.ConversionError
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("argument %s: %v", e.Argument, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// ValidationError reports a single value rejected by a Matcher.
type ValidationError struct {
	Argument string
	Value    any
	Matcher  string
	Message  string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ValidationErrors is the aggregate raised when validation gathers every
// failure instead of stopping at the first.
type ValidationErrors struct {
	Errors    []*ValidationError
	Separator string
}

func (e *ValidationErrors) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, ve := range e.Errors {
		msgs[i] = ve.Message
	}
	return strings.Join(msgs, e.Separator)
}

func (e *ValidationErrors) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i, ve := range e.Errors {
		errs[i] = ve
	}
	return errs
}

func (e *ValidationErrors) Is(target error) bool {
	return target == ErrValidation
}

// ConfigError reports an argument schema set that violates an invariant.
// It is raised while the set is built, never while parsing.
type ConfigError struct {
	Argument string
	Reason   string
	Err      error
}

func (e *ConfigError) Error() string {
	if e.Argument == "" {
		return e.Reason
	}
	return fmt.Sprintf("argument %s: %s", e.Argument, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
