// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package args

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/yeetrun/argot/pkg/argtype"
	"tailscale.com/types/ptr"
)

func TestCollectorExactArity(t *testing.T) {
	c := NewCollector(&Argument{Name: "pair", Arity: 2, Type: argtype.Number}, nil)
	if c.IsFull() || c.IsAmbiguous() {
		t.Fatalf("new collector: IsFull=%v IsAmbiguous=%v, want false false", c.IsFull(), c.IsAmbiguous())
	}
	if _, err := c.Finalize(); !errors.Is(err, ErrTooFewArguments) {
		t.Errorf("Finalize() on empty = %v, want ErrTooFewArguments", err)
	}
	for _, tok := range []string{"1", "2"} {
		if err := c.Collect(tok); err != nil {
			t.Fatalf("Collect(%q) error = %v", tok, err)
		}
	}
	if !c.IsFull() {
		t.Error("IsFull() = false after two values, want true")
	}
	err := c.Collect("3")
	if !errors.Is(err, ErrCollectorFull) {
		t.Fatalf("Collect past arity = %v, want ErrCollectorFull", err)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
	pa, err := c.Finalize()
	if err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	if diff := cmp.Diff([]any{1.0, 2.0}, pa.Values); diff != "" || pa.Excluded {
		t.Errorf("Finalize() mismatch (-want +got):\n%s excluded=%v", diff, pa.Excluded)
	}
}

func TestCollectorConversion(t *testing.T) {
	c := NewCollector(&Argument{Name: "on", Type: argtype.Boolean}, nil)
	err := c.Collect("perhaps")
	var convErr *ConversionError
	if !errors.As(err, &convErr) {
		t.Fatalf("Collect() error = %v, want *ConversionError", err)
	}
	if convErr.Argument != "on" {
		t.Errorf("ConversionError.Argument = %q, want %q", convErr.Argument, "on")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d after failed conversion, want 0", c.Len())
	}
}

func TestCollectorAmbiguous(t *testing.T) {
	many := NewCollector(&Argument{Name: "items", Arity: AtLeastOne}, nil)
	if !many.IsAmbiguous() || !many.IsSpecificAmbiguous(AtLeastOne) || many.IsSpecificAmbiguous(AllOrDefault) {
		t.Fatal("AtLeastOne collector arity introspection is wrong")
	}
	if _, err := many.Finalize(); !errors.Is(err, ErrTooFewArguments) {
		t.Errorf("Finalize() on empty AtLeastOne = %v, want ErrTooFewArguments", err)
	}
	for _, tok := range []string{"a", "b", "c"} {
		if err := many.Collect(tok); err != nil {
			t.Fatalf("Collect(%q) error = %v", tok, err)
		}
	}
	if many.IsFull() {
		t.Error("IsFull() = true for unbounded collector")
	}
	many.ForceFull()
	if !many.IsFull() {
		t.Error("IsFull() = false after ForceFull")
	}
	if err := many.Collect("d"); !errors.Is(err, ErrCollectorFull) {
		t.Errorf("Collect after ForceFull = %v, want ErrCollectorFull", err)
	}

	def := NewCollector(&Argument{Name: "mode", Arity: AllOrDefault, Default: "auto"}, nil)
	pa, err := def.Finalize()
	if err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	if pa.Values != "auto" || !pa.Excluded {
		t.Errorf("Finalize() = {%v, %v}, want {auto, true}", pa.Values, pa.Excluded)
	}
}

func TestCollectorFlag(t *testing.T) {
	o := &Optional{Argument: Argument{Name: "dry"}, Identifiers: []string{"--dry"}, Flag: ptr.To(false)}
	pa, err := NewCollector(&o.Argument, o).Finalize()
	if err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	if pa.Values != false || !pa.Excluded || pa.Optional != o {
		t.Errorf("Finalize() = %+v, want flag value false, excluded", pa)
	}
}

func TestParsedArgumentList(t *testing.T) {
	tests := []struct {
		values any
		want   []any
	}{
		{[]any{"a"}, []any{"a"}},
		{"solo", []any{"solo"}},
		{true, []any{true}},
		{nil, nil},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, ParsedArgument{Values: tt.values}.List()); diff != "" {
			t.Errorf("List(%v) mismatch (-want +got):\n%s", tt.values, diff)
		}
	}
}

func TestResolver(t *testing.T) {
	count := &Optional{Argument: Argument{Name: "count"}, Identifiers: []string{"--count", "-c"}}
	r := NewResolver([]*Optional{count})
	for _, id := range []string{"--count", "-c"} {
		if !r.IsIdentifier(id) {
			t.Errorf("IsIdentifier(%q) = false, want true", id)
		}
		got, err := r.Resolve(id)
		if err != nil || got != count {
			t.Errorf("Resolve(%q) = %v, %v; want count", id, got, err)
		}
	}
	if r.IsIdentifier("--Count") {
		t.Error("IsIdentifier is not exact")
	}
	_, err := r.Resolve("-x")
	if !errors.Is(err, ErrUnknownIdentifier) {
		t.Errorf("Resolve(-x) error = %v, want ErrUnknownIdentifier", err)
	}
}
