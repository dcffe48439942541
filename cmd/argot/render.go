// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/yeetrun/argot/pkg/args"
	"github.com/yeetrun/argot/pkg/cmddef"
)

// result is the outcome of evaluating one invocation.
type result struct {
	Line    int            `json:"line,omitempty"`
	Input   []string       `json:"input"`
	Command string         `json:"command,omitempty"`
	Values  map[string]any `json:"values,omitempty"`
	Error   string         `json:"error,omitempty"`
	Kind    string         `json:"kind,omitempty"`

	err error
}

func evaluate(cat *cmddef.Catalog, tokens []string) result {
	res := result{Input: tokens}
	cmd, ns, err := cat.Evaluate(tokens)
	if cmd != nil {
		res.Command = cmd.Name
	}
	if err != nil {
		res.err = err
		res.Error = err.Error()
		res.Kind = errorKind(err)
		return res
	}
	res.Values = make(map[string]any, len(ns))
	for name, e := range ns {
		res.Values[name] = jsonValue(e.Values)
	}
	return res
}

func errorKind(err error) string {
	var convErr *args.ConversionError
	switch {
	case errors.Is(err, cmddef.ErrNoCommand), errors.Is(err, cmddef.ErrUnknownCommand):
		return "route"
	case errors.Is(err, args.ErrParse):
		return "parse"
	case errors.As(err, &convErr):
		return "conversion"
	case errors.Is(err, args.ErrValidation):
		return "validation"
	}
	return "error"
}

// jsonValue makes v encode readably: durations as strings instead of
// nanosecond counts.
func jsonValue(v any) any {
	switch v := v.(type) {
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = jsonValue(e)
		}
		return out
	case time.Duration:
		return v.String()
	}
	return v
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func formatValue(v any) string {
	switch v := v.(type) {
	case []any:
		parts := make([]string, len(v))
		for i, e := range v {
			parts[i] = formatValue(e)
		}
		return strings.Join(parts, " ")
	case string:
		if v == "" || strings.ContainsAny(v, " \t\"") {
			return fmt.Sprintf("%q", v)
		}
		return v
	case time.Time:
		return v.Format(time.RFC3339)
	case map[string]any, []byte:
		b, err := json.Marshal(v)
		if err == nil {
			return string(b)
		}
	}
	return fmt.Sprint(v)
}

func sortedNames(values map[string]any) []string {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// writeNamespace prints a successful result as an aligned name/value table.
func writeNamespace(w io.Writer, res result) {
	fmt.Fprintln(w, color.New(color.Bold).Sprint(res.Command))
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, name := range sortedNames(res.Values) {
		fmt.Fprintf(tw, "  %s\t%s\n", color.CyanString(name), formatValue(res.Values[name]))
	}
	tw.Flush()
}

// summary renders res on one line, for batch output.
func summary(res result) string {
	if res.Error != "" {
		return color.RedString("%s error: %s", res.Kind, res.Error)
	}
	parts := make([]string, 0, len(res.Values))
	for _, name := range sortedNames(res.Values) {
		parts = append(parts, name+"="+formatValue(res.Values[name]))
	}
	return strings.Join(parts, " ")
}
