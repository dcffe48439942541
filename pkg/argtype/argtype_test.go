// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argtype

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{in: "10", want: 10},
		{in: "-10", want: -10},
		{in: "+3.14", want: 3.14},
		{in: ".5", want: 0.5},
		{in: "5.", want: 5},
		{in: "1e3", want: 1000},
		{in: "2E-2", want: 0.02},
		{in: "  42  ", want: 42},
		{in: "", want: 0},
		{in: "0x1A", want: 26},
		{in: "0o17", want: 15},
		{in: "0b101", want: 5},
		{in: "Infinity", want: math.Inf(1)},
		{in: "-Infinity", want: math.Inf(-1)},
		{in: "1e400", want: math.Inf(1)},
		{in: "abc", wantErr: true},
		{in: "1_000", wantErr: true},
		{in: "inf", wantErr: true},
		{in: "NaN", wantErr: true},
		{in: "0x1p-2", wantErr: true},
		{in: "-0x10", wantErr: true},
		{in: "1e", wantErr: true},
		{in: ".", wantErr: true},
		{in: "12abc", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseNumber(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseNumber(%q) = %v, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseNumber(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseNumber(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestBoolean(t *testing.T) {
	for _, tok := range []string{"true", "TRUE", "1", "y", "Yes"} {
		v, err := Boolean.Convert(tok)
		if err != nil || v != true {
			t.Errorf("Boolean.Convert(%q) = %v, %v; want true", tok, v, err)
		}
	}
	for _, tok := range []string{"false", "False", "0", "N", "no"} {
		v, err := Boolean.Convert(tok)
		if err != nil || v != false {
			t.Errorf("Boolean.Convert(%q) = %v, %v; want false", tok, v, err)
		}
	}
	_, err := Boolean.Convert("maybe")
	if !errors.Is(err, ErrConversion) {
		t.Fatalf("Boolean.Convert(maybe) error = %v, want ErrConversion", err)
	}
	var convErr *ConversionError
	if !errors.As(err, &convErr) || convErr.Type != "boolean" || convErr.Token != "maybe" {
		t.Errorf("ConversionError = %+v", convErr)
	}
	if Boolean.Is("2") {
		t.Error("Boolean.Is(2) = true, want false")
	}
}

func TestDate(t *testing.T) {
	v, err := Date.Convert("2024-03-01")
	if err != nil {
		t.Fatalf("Date.Convert error = %v", err)
	}
	want := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	if got := v.(time.Time); !got.Equal(want) {
		t.Errorf("Date.Convert(2024-03-01) = %v, want %v", got, want)
	}

	v, err = Date.Convert("2024-03-01T10:00:00Z")
	if err != nil {
		t.Fatalf("Date.Convert error = %v", err)
	}
	want = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	if got := v.(time.Time); !got.Equal(want) {
		t.Errorf("Date.Convert(rfc3339) = %v, want %v", got, want)
	}

	v, err = Date.Convert("1700000000000")
	if err != nil {
		t.Fatalf("Date.Convert(epoch) error = %v", err)
	}
	if got := v.(time.Time); got.UnixMilli() != 1700000000000 {
		t.Errorf("Date.Convert(epoch) = %v", got)
	}

	// A four digit token reads as a year before it reads as an epoch.
	v, err = Date.Convert("2020")
	if err != nil {
		t.Fatalf("Date.Convert(2020) error = %v", err)
	}
	if got := v.(time.Time); got.Year() != 2020 || got.Month() != time.January {
		t.Errorf("Date.Convert(2020) = %v, want 2020-01-01", got)
	}

	if Date.Is("not-a-date") {
		t.Error("Date.Is(not-a-date) = true, want false")
	}
}

func TestObject(t *testing.T) {
	v, err := Object.Convert(`{"a":[1,2],"b":"x"}`)
	if err != nil {
		t.Fatalf("Object.Convert error = %v", err)
	}
	want := map[string]any{"a": []any{1.0, 2.0}, "b": "x"}
	if diff := cmp.Diff(want, v); diff != "" {
		t.Errorf("Object.Convert mismatch (-want +got):\n%s", diff)
	}

	_, err = Object.Convert(`{"a":`)
	var convErr *ConversionError
	if !errors.As(err, &convErr) {
		t.Fatalf("Object.Convert error = %v, want *ConversionError", err)
	}
	if convErr.Err == nil {
		t.Error("ConversionError.Err = nil, want wrapped json error")
	}
}

func TestVersionUUIDDuration(t *testing.T) {
	v, err := Version.Convert("1.2.3-beta.1")
	if err != nil {
		t.Fatalf("Version.Convert error = %v", err)
	}
	if got := v.(*semver.Version); got.Major() != 1 || got.Prerelease() != "beta.1" {
		t.Errorf("Version.Convert = %v", got)
	}
	if Version.Is("one.two") {
		t.Error("Version.Is(one.two) = true, want false")
	}

	const id = "6ba7b810-9dad-11d1-80b4-00c04fd430c8"
	v, err = UUID.Convert(id)
	if err != nil {
		t.Fatalf("UUID.Convert error = %v", err)
	}
	if got := v.(uuid.UUID); got.String() != id {
		t.Errorf("UUID.Convert = %v, want %v", got, id)
	}

	v, err = Duration.Convert("1m30s")
	if err != nil {
		t.Fatalf("Duration.Convert error = %v", err)
	}
	if got := v.(time.Duration); got != 90*time.Second {
		t.Errorf("Duration.Convert = %v, want 1m30s", got)
	}
}

func TestConvertAll(t *testing.T) {
	got, err := ConvertAll(Number, []string{"1", "2.5"})
	if err != nil {
		t.Fatalf("ConvertAll error = %v", err)
	}
	if diff := cmp.Diff([]any{1.0, 2.5}, got); diff != "" {
		t.Errorf("ConvertAll mismatch (-want +got):\n%s", diff)
	}
	if _, err := ConvertAll(Number, []string{"1", "x"}); !errors.Is(err, ErrConversion) {
		t.Errorf("ConvertAll error = %v, want ErrConversion", err)
	}
}

func TestLookup(t *testing.T) {
	for name, want := range map[string]Type{
		"string": String, "Number": Number, "bool": Boolean, "json": Object,
		"semver": Version, "uuid": UUID, "duration": Duration, "date": Date,
	} {
		got, ok := Lookup(name)
		if !ok || got != want {
			t.Errorf("Lookup(%q) = %v, %v; want %v", name, got, ok, want.Name())
		}
	}
	if _, ok := Lookup("nope"); ok {
		t.Error("Lookup(nope) ok = true, want false")
	}
	if got := len(Names()); got != 8 {
		t.Errorf("len(Names()) = %d, want 8", got)
	}
}
