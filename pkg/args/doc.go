// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package args turns the tokens of a command invocation into a validated,
// typed, name-keyed bundle of values.
//
// A command declares its arguments once, as a Set of required (positional)
// and optional (named) schemas. Each parse then runs a small state machine
// over the tokens:
//
//   - A token equal to an identifier of an optional argument closes any open
//     optional argument and opens the named one. Flags commit immediately.
//   - Any other token feeds the open optional argument, if there is one,
//     and otherwise the current required argument. Required arguments fill
//     strictly in declaration order.
//   - A token nothing can accept is an error.
//
// Arity is either an exact count or one of two unbounded markers:
// AtLeastOne, and AllOrDefault, which substitutes the argument's Default
// when no token was given. Omitted AllOrDefault arguments are always
// present in the output.
//
// # Basic Usage
//
//	set, err := args.NewSet(
//	    []*args.Argument{{Name: "name"}},
//	    []*args.Optional{{
//	        Argument:    args.Argument{Name: "age", Type: argtype.Number},
//	        Identifiers: []string{"--age", "-a"},
//	    }},
//	)
//	if err != nil {
//	    return err
//	}
//	ns, err := args.NewParser(set, args.Options{}).Evaluate([]string{"alice", "--age", "30"})
//	// ns["name"].Values == []any{"alice"}, ns["age"].Values == []any{30.0}
//
// Evaluate runs the whole pipeline: Parse, Validate, Sanitize and Assemble.
// The steps are exported for callers that need the intermediate results.
//
// # Errors
//
// Parse and conversion errors abort a parse immediately and are reported as
// *ParseError and *ConversionError. Validation either stops at the first
// rejected value (FailFast) or reports every failure in one
// *ValidationErrors (GatherAll). All errors match the package's sentinel
// errors with errors.Is.
package args
