// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package args

import (
	"strings"

	"github.com/yeetrun/argot/pkg/argtype"
	"tailscale.com/util/mak"
)

// Resolver maps identifier tokens back to the optional argument that
// declares them. Identifiers are unique within a Set, so a token resolves
// to at most one argument.
type Resolver struct {
	byIdent map[string]*Optional
}

// NewResolver indexes the identifiers of optional. When two arguments
// declare the same identifier the first one wins; NewSet rejects such sets
// before they reach a resolver.
func NewResolver(optional []*Optional) *Resolver {
	r := &Resolver{}
	for _, o := range optional {
		for _, id := range o.Identifiers {
			if _, ok := r.byIdent[id]; ok {
				continue
			}
			mak.Set(&r.byIdent, id, o)
		}
	}
	return r
}

// IsIdentifier reports whether token is exactly one of the identifiers.
func (r *Resolver) IsIdentifier(token string) bool {
	_, ok := r.byIdent[token]
	return ok
}

// Resolve returns the optional argument that declares token.
func (r *Resolver) Resolve(token string) (*Optional, error) {
	o, ok := r.byIdent[token]
	if !ok {
		return nil, &ParseError{Kind: UnknownIdentifier, Token: token}
	}
	return o, nil
}

// looksLikeIdentifier reports whether token has the shape of an identifier
// ("-x", "--name") rather than a value. Negative numbers are values.
func looksLikeIdentifier(token string) bool {
	if len(token) < 2 || !strings.HasPrefix(token, "-") || token == "--" {
		return false
	}
	return !argtype.Number.Is(token)
}
