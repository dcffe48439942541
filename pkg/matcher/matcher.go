// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package matcher provides named predicates applied to converted argument
// values, each paired with a message used when the predicate rejects a value.
package matcher

import (
	"fmt"
	"math"
	"regexp"
	"slices"
	"strings"
	"time"
	"unicode/utf8"
)

// Message formats the failure message for a rejected value.
type Message interface {
	Format(v any) string
}

// Text is a Message used verbatim.
type Text string

func (t Text) Format(any) string { return string(t) }

// Formatter is a Message computed from the rejected value.
type Formatter func(v any) string

func (f Formatter) Format(v any) string { return f(v) }

// Matcher is a named predicate over a converted value. Name identifies the
// predicate within a schema; two matchers with the same Name are treated as
// the same predicate.
type Matcher struct {
	Name    string
	Test    func(v any) bool
	Message Message
}

// New returns a Matcher.
func New(name string, test func(v any) bool, msg Message) Matcher {
	return Matcher{Name: name, Test: test, Message: msg}
}

// Match reports whether v satisfies the matcher. A matcher without a
// predicate accepts everything.
func (m Matcher) Match(v any) bool {
	if m.Test == nil {
		return true
	}
	return m.Test(v)
}

// Format returns the failure message for v.
func (m Matcher) Format(v any) string {
	if m.Message == nil {
		return fmt.Sprintf("%v does not satisfy %s", v, m.Name)
	}
	return m.Message.Format(v)
}

// MinLength matches strings, lists and objects with at least n elements.
func MinLength(n int) Matcher {
	return New("min-length", func(v any) bool {
		l, ok := length(v)
		return ok && l >= n
	}, Formatter(func(v any) string {
		return fmt.Sprintf("%v is shorter than %d", v, n)
	}))
}

// MaxLength matches strings, lists and objects with at most n elements.
func MaxLength(n int) Matcher {
	return New("max-length", func(v any) bool {
		l, ok := length(v)
		return ok && l <= n
	}, Formatter(func(v any) string {
		return fmt.Sprintf("%v is longer than %d", v, n)
	}))
}

// NotEmpty matches values with a non-zero length.
func NotEmpty() Matcher {
	return New("not-empty", func(v any) bool {
		l, ok := length(v)
		return ok && l > 0
	}, Text("value must not be empty"))
}

// Min matches numbers greater than or equal to min.
func Min(min float64) Matcher {
	return New("min", func(v any) bool {
		f, ok := number(v)
		return ok && f >= min
	}, Formatter(func(v any) string {
		return fmt.Sprintf("%v is less than %v", v, min)
	}))
}

// Max matches numbers less than or equal to max.
func Max(max float64) Matcher {
	return New("max", func(v any) bool {
		f, ok := number(v)
		return ok && f <= max
	}, Formatter(func(v any) string {
		return fmt.Sprintf("%v is greater than %v", v, max)
	}))
}

// Range matches numbers in [min, max].
func Range(min, max float64) Matcher {
	return New("range", func(v any) bool {
		f, ok := number(v)
		return ok && f >= min && f <= max
	}, Formatter(func(v any) string {
		return fmt.Sprintf("%v is not between %v and %v", v, min, max)
	}))
}

// Integer matches numbers without a fractional part.
func Integer() Matcher {
	return New("integer", func(v any) bool {
		f, ok := number(v)
		return ok && !math.IsInf(f, 0) && f == math.Trunc(f)
	}, Formatter(func(v any) string {
		return fmt.Sprintf("%v is not an integer", v)
	}))
}

// Positive matches numbers greater than zero.
func Positive() Matcher {
	return New("positive", func(v any) bool {
		f, ok := number(v)
		return ok && f > 0
	}, Formatter(func(v any) string {
		return fmt.Sprintf("%v is not positive", v)
	}))
}

// OneOf matches values whose printed form is one of choices.
func OneOf(choices ...string) Matcher {
	choices = slices.Clone(choices)
	return New("one-of", func(v any) bool {
		return slices.Contains(choices, fmt.Sprint(v))
	}, Formatter(func(v any) string {
		return fmt.Sprintf("%v is not one of %s", v, strings.Join(choices, ", "))
	}))
}

// Pattern matches strings accepted by re.
func Pattern(re *regexp.Regexp) Matcher {
	return New("pattern", func(v any) bool {
		s, ok := v.(string)
		return ok && re.MatchString(s)
	}, Formatter(func(v any) string {
		return fmt.Sprintf("%v does not match %s", v, re)
	}))
}

// Before matches dates strictly before t.
func Before(t time.Time) Matcher {
	return New("before", func(v any) bool {
		d, ok := v.(time.Time)
		return ok && d.Before(t)
	}, Formatter(func(v any) string {
		return fmt.Sprintf("%v is not before %s", v, t.Format(time.RFC3339))
	}))
}

// After matches dates strictly after t.
func After(t time.Time) Matcher {
	return New("after", func(v any) bool {
		d, ok := v.(time.Time)
		return ok && d.After(t)
	}, Formatter(func(v any) string {
		return fmt.Sprintf("%v is not after %s", v, t.Format(time.RFC3339))
	}))
}

func length(v any) (int, bool) {
	switch v := v.(type) {
	case string:
		return utf8.RuneCountInString(v), true
	case []any:
		return len(v), true
	case map[string]any:
		return len(v), true
	}
	return 0, false
}

func number(v any) (float64, bool) {
	switch v := v.(type) {
	case float64:
		return v, !math.IsNaN(v)
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case time.Duration:
		return float64(v), true
	}
	return 0, false
}
