// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argtype

import (
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"
)

type dateType struct{}

type dateLayout struct {
	layout string
	utc    bool // date-only forms are read as UTC, everything else as local time
}

var dateLayouts = []dateLayout{
	{time.RFC3339Nano, false},
	{time.RFC3339, false},
	{"2006-01-02T15:04:05.000", false},
	{"2006-01-02T15:04:05", false},
	{"2006-01-02T15:04", false},
	{"2006-01-02 15:04:05", false},
	{"2006-01-02", true},
	{"2006-01", true},
	{"2006", true},
	{time.RFC1123Z, false},
	{time.RFC1123, false},
	{time.RFC850, false},
	{time.ANSIC, false},
	{time.UnixDate, false},
	{"Jan 2, 2006", false},
	{"January 2, 2006", false},
	{"2 Jan 2006", false},
	{"01/02/2006", false},
	{"1/2/2006", false},
	{"2006/01/02", false},
}

func (dateType) Name() string { return "date" }

func (t dateType) Is(token string) bool {
	_, ok := parseDate(token)
	return ok
}

func (t dateType) Convert(token string) (any, error) {
	d, ok := parseDate(token)
	if !ok {
		return nil, conversionError(t, token, nil)
	}
	return d, nil
}

// parseDate prefers a calendar reading of token and falls back to
// treating it as milliseconds since the Unix epoch.
func parseDate(token string) (time.Time, bool) {
	s := strings.TrimSpace(token)
	if s == "" {
		return time.Time{}, false
	}
	for _, l := range dateLayouts {
		loc := time.Local
		if l.utc {
			loc = time.UTC
		}
		if d, err := time.ParseInLocation(l.layout, s, loc); err == nil {
			return d, true
		}
	}
	ms, err := ParseNumber(s)
	if err != nil || math.IsInf(ms, 0) || math.Abs(ms) > 8.64e15 {
		return time.Time{}, false
	}
	return time.UnixMilli(int64(ms)), true
}

type objectType struct{}

func (objectType) Name() string { return "object" }

func (objectType) Is(token string) bool {
	return json.Valid([]byte(token))
}

func (t objectType) Convert(token string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(token), &v); err != nil {
		return nil, conversionError(t, token, err)
	}
	return v, nil
}

type versionType struct{}

func (versionType) Name() string { return "version" }

func (versionType) Is(token string) bool {
	_, err := semver.NewVersion(token)
	return err == nil
}

func (t versionType) Convert(token string) (any, error) {
	v, err := semver.NewVersion(token)
	if err != nil {
		return nil, conversionError(t, token, err)
	}
	return v, nil
}

type uuidType struct{}

func (uuidType) Name() string { return "uuid" }

func (uuidType) Is(token string) bool {
	return uuid.Validate(token) == nil
}

func (t uuidType) Convert(token string) (any, error) {
	id, err := uuid.Parse(token)
	if err != nil {
		return nil, conversionError(t, token, err)
	}
	return id, nil
}

type durationType struct{}

func (durationType) Name() string { return "duration" }

func (durationType) Is(token string) bool {
	_, err := time.ParseDuration(token)
	return err == nil
}

func (t durationType) Convert(token string) (any, error) {
	d, err := time.ParseDuration(token)
	if err != nil {
		return nil, conversionError(t, token, err)
	}
	return d, nil
}
