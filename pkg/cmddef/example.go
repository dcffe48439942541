// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmddef

import (
	_ "embed"
)

//go:embed example.toml
var exampleTOML []byte

// Example returns the built-in example catalog definition.
func Example() (*Config, error) {
	return Decode(exampleTOML, TOML)
}
