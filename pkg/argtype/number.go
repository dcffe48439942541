// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argtype

import (
	"errors"
	"math"
	"math/big"
	"strconv"
	"strings"
)

type numberType struct{}

func (numberType) Name() string { return "number" }

func (numberType) Is(token string) bool {
	_, err := ParseNumber(token)
	return err == nil
}

func (t numberType) Convert(token string) (any, error) {
	f, err := ParseNumber(token)
	if err != nil {
		return nil, conversionError(t, token, err)
	}
	return f, nil
}

var errNotANumber = errors.New("not a number")

// ParseNumber converts s with the same coercion rules as a script
// runtime's numeric conversion of a string: surrounding whitespace is
// ignored, an empty string is zero, "Infinity" is accepted with an optional
// sign, and unsigned 0x, 0o and 0b prefixes select the radix. Go-only
// spellings such as "inf", "NaN", digit separators and hex floats are
// rejected.
func ParseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1), nil
	case "-Infinity":
		return math.Inf(-1), nil
	}
	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			return parseRadix(s[2:], base)
		}
	}
	if !isDecimalLiteral(s) {
		return 0, errNotANumber
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && numErr.Err == strconv.ErrRange {
			// Overflow rounds to ±Inf and underflow to zero, as at runtime.
			return f, nil
		}
		return 0, err
	}
	return f, nil
}

func parseRadix(digits string, base int) (float64, error) {
	if digits == "" || strings.ContainsAny(digits, "_+-") {
		return 0, errNotANumber
	}
	if u, err := strconv.ParseUint(digits, base, 64); err == nil {
		return float64(u), nil
	}
	n, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return 0, errNotANumber
	}
	f, _ := new(big.Float).SetInt(n).Float64()
	return f, nil
}

// isDecimalLiteral reports whether s is [sign] digits [. digits] [e [sign] digits]
// with at least one mantissa digit, e.g. "10", "-3.14", ".5", "5.", "1e3".
func isDecimalLiteral(s string) bool {
	i := 0
	if s[0] == '-' || s[0] == '+' {
		i++
	}
	mantissa := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		mantissa++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			mantissa++
		}
	}
	if mantissa == 0 {
		return false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '-' || s[i] == '+') {
			i++
		}
		exp := 0
		for i < len(s) && isDigit(s[i]) {
			i++
			exp++
		}
		if exp == 0 {
			return false
		}
	}
	return i == len(s)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
