// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package args

import (
	"fmt"
	"strings"
)

// DefaultSeparator joins gathered validation messages.
const DefaultSeparator = "; "

// ValidationMode selects how validation reports failures.
type ValidationMode int

const (
	// FailFast stops at the first rejected value.
	FailFast ValidationMode = iota
	// GatherAll records every rejected (value, matcher) pair and reports
	// them together.
	GatherAll
)

func (m ValidationMode) String() string {
	switch m {
	case FailFast:
		return "fail-fast"
	case GatherAll:
		return "gather-all"
	}
	return fmt.Sprintf("ValidationMode(%d)", int(m))
}

// ParseValidationMode parses "fail-fast" or "gather-all".
func ParseValidationMode(s string) (ValidationMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fail-fast", "failfast", "first":
		return FailFast, nil
	case "gather-all", "gatherall", "all":
		return GatherAll, nil
	}
	return FailFast, fmt.Errorf("invalid validation mode %q (expected fail-fast or gather-all)", s)
}

// Validate runs every argument's matchers, in order, over each of its
// values. Results marked Excluded are skipped. In FailFast mode the first
// failure is returned as a *ValidationError; in GatherAll mode all
// failures are returned as one *ValidationErrors joined by sep.
func Validate(results []ParsedArgument, mode ValidationMode, sep string) error {
	var failures []*ValidationError
	for _, pa := range results {
		if pa.Excluded || len(pa.Schema.Matchers) == 0 {
			continue
		}
		for _, v := range pa.List() {
			for _, m := range pa.Schema.Matchers {
				if m.Match(v) {
					continue
				}
				ve := &ValidationError{
					Argument: pa.Schema.Name,
					Value:    v,
					Matcher:  m.Name,
					Message:  m.Format(v),
				}
				if mode == FailFast {
					return ve
				}
				failures = append(failures, ve)
			}
		}
	}
	if len(failures) == 0 {
		return nil
	}
	return &ValidationErrors{Errors: failures, Separator: sep}
}

// Validate validates results with the parser's configured mode and separator.
func (p *Parser) Validate(results []ParsedArgument) error {
	return Validate(results, p.opts.Validation, p.opts.separator())
}
