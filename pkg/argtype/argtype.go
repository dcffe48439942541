// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package argtype converts raw command tokens into typed values.
//
// Each value kind is a Type. Types are selected once, when an argument
// schema is built, and stored by value on the schema; the parser never
// inspects the dynamic kind of a value to decide how to convert it.
package argtype

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Type converts a single raw token into a typed value.
type Type interface {
	// Name is the lower-case name used in definitions and usage text.
	Name() string
	// Is reports whether token can be converted by Convert.
	Is(token string) bool
	// Convert converts token, returning a *ConversionError on failure.
	Convert(token string) (any, error)
}

// ErrConversion matches every *ConversionError via errors.Is.
var ErrConversion = errors.New("conversion failed")

// ConversionError is returned when a token cannot be converted to a Type.
// Err holds the underlying parse failure, if there was one.
type ConversionError struct {
	Type  string
	Token string
	Err   error
}

func (e *ConversionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot convert %q to %s: %v", e.Token, e.Type, e.Err)
	}
	return fmt.Sprintf("cannot convert %q to %s", e.Token, e.Type)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

func (e *ConversionError) Is(target error) bool {
	return target == ErrConversion
}

func conversionError(t Type, token string, err error) *ConversionError {
	return &ConversionError{Type: t.Name(), Token: token, Err: err}
}

// ConvertAll converts tokens in order and stops at the first failure.
func ConvertAll(t Type, tokens []string) ([]any, error) {
	out := make([]any, 0, len(tokens))
	for _, tok := range tokens {
		v, err := t.Convert(tok)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// The built-in types.
var (
	String   Type = stringType{}
	Number   Type = numberType{}
	Boolean  Type = booleanType{}
	Date     Type = dateType{}
	Object   Type = objectType{}
	Version  Type = versionType{}
	UUID     Type = uuidType{}
	Duration Type = durationType{}
)

var builtins = []Type{String, Number, Boolean, Date, Object, Version, UUID, Duration}

// Lookup returns the built-in type with the given name. Matching is
// case-insensitive; "bool", "int" and "json" are accepted as aliases.
func Lookup(name string) (Type, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "bool":
		name = "boolean"
	case "int", "float":
		name = "number"
	case "json":
		name = "object"
	case "semver":
		name = "version"
	}
	for _, t := range builtins {
		if t.Name() == name {
			return t, true
		}
	}
	return nil, false
}

// Names returns the sorted names of the built-in types.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for _, t := range builtins {
		names = append(names, t.Name())
	}
	slices.Sort(names)
	return names
}

type stringType struct{}

func (stringType) Name() string                      { return "string" }
func (stringType) Is(string) bool                    { return true }
func (stringType) Convert(token string) (any, error) { return token, nil }

type booleanType struct{}

func (booleanType) Name() string { return "boolean" }

func (t booleanType) Is(token string) bool {
	_, ok := parseBool(token)
	return ok
}

func (t booleanType) Convert(token string) (any, error) {
	b, ok := parseBool(token)
	if !ok {
		return nil, conversionError(t, token, nil)
	}
	return b, nil
}

func parseBool(token string) (value, ok bool) {
	switch strings.ToLower(token) {
	case "true", "1", "y", "yes":
		return true, true
	case "false", "0", "n", "no":
		return false, true
	}
	return false, false
}
