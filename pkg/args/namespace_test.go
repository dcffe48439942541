// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package args

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAssembleEarliestWins(t *testing.T) {
	a := &Argument{Name: "x"}
	b := &Argument{Name: "y"}
	ns := Assemble([]ParsedArgument{
		{Schema: a, Values: []any{"first"}},
		{Schema: b, Values: []any{"only"}},
		{Schema: a, Values: []any{"second"}},
	})
	if diff := cmp.Diff([]any{"first"}, ns.Values("x")); diff != "" {
		t.Errorf("Values(x) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"x", "y"}, ns.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
}

func TestAssembleEmpty(t *testing.T) {
	ns := Assemble(nil)
	if ns == nil || len(ns) != 0 {
		t.Fatalf("Assemble(nil) = %#v, want empty namespace", ns)
	}
	if ns.Has("x") {
		t.Error("Has(x) = true on empty namespace")
	}
	if _, ok := ns.First("x"); ok {
		t.Error("First(x) ok = true on empty namespace")
	}
}

func TestNamespaceAccessors(t *testing.T) {
	ns, err := NewParser(greetSet(t), Options{}).Evaluate([]string{"bob", "--loud"})
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if !ns.Has("loud") || ns.Has("age") {
		t.Errorf("Has: loud=%v age=%v, want true false", ns.Has("loud"), ns.Has("age"))
	}
	if v, ok := ns.First("loud"); !ok || v != true {
		t.Errorf("First(loud) = %v, %v; want true", v, ok)
	}
	e, ok := ns.Get("name")
	if !ok || e.Schema.Name != "name" {
		t.Fatalf("Get(name) = %+v, %v", e, ok)
	}
	if diff := cmp.Diff([]any{"bob"}, e.List()); diff != "" {
		t.Errorf("name mismatch (-want +got):\n%s", diff)
	}
}

func TestSanitize(t *testing.T) {
	s := mustSet(t,
		[]*Argument{{Name: "tags", Arity: AtLeastOne, Sanitize: func(v any) any {
			return strings.ToLower(v.(string))
		}}},
		[]*Optional{{
			Argument: Argument{Name: "mode", Arity: AllOrDefault, Default: "KEEP", Sanitize: func(v any) any {
				return strings.ToLower(v.(string))
			}},
			Identifiers: []string{"--mode"},
		}},
	)
	p := NewParser(s, Options{})
	results, err := p.Parse([]string{"Web", "API"})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	clean := Sanitize(results)
	got := valuesOf(clean)
	want := map[string]any{
		"tags": []any{"web", "api"},
		"mode": "KEEP",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Sanitize() mismatch (-want +got):\n%s", diff)
	}
	// The input is left untouched.
	if diff := cmp.Diff([]any{"Web", "API"}, valuesOf(results)["tags"]); diff != "" {
		t.Errorf("Sanitize() modified its input (-want +got):\n%s", diff)
	}
}
