// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmddef

import (
	"fmt"

	"github.com/yeetrun/argot/pkg/args"
)

// Environment variables consulted by ApplyEnv and DefsPath.
const (
	EnvDefs       = "ARGOT_DEFS"
	EnvValidation = "ARGOT_VALIDATION"
	EnvSeparator  = "ARGOT_SEPARATOR"
)

// DefsPath returns path, or the value of ARGOT_DEFS if path is empty.
func DefsPath(path string, getenv func(string) string) string {
	if path != "" {
		return path
	}
	return getenv(EnvDefs)
}

// ApplyEnv overrides opts with ARGOT_VALIDATION and ARGOT_SEPARATOR when set.
func ApplyEnv(opts *args.Options, getenv func(string) string) error {
	if v := getenv(EnvValidation); v != "" {
		mode, err := args.ParseValidationMode(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvValidation, err)
		}
		opts.Validation = mode
	}
	if v := getenv(EnvSeparator); v != "" {
		opts.Separator = v
	}
	return nil
}
