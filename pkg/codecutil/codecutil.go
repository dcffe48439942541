// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package codecutil

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
)

// zstdMagic is the frame header every zstd stream starts with.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// OpenInput opens path for reading, or stdin if path is "-". Zstd
// compressed input is detected by its frame header and decompressed
// transparently.
func OpenInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return NewReader(io.NopCloser(os.Stdin))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	rc, err := NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return rc, nil
}

// NewReader wraps rc, decompressing it if it is a zstd stream. Closing the
// returned reader closes rc.
func NewReader(rc io.ReadCloser) (io.ReadCloser, error) {
	br := bufio.NewReader(rc)
	head, err := br.Peek(len(zstdMagic))
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	if !bytes.Equal(head, zstdMagic) {
		return &readCloser{Reader: br, close: rc.Close}, nil
	}
	decoder, err := zstd.NewReader(br)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	return &readCloser{
		Reader: decoder,
		close: func() error {
			decoder.Close()
			return rc.Close()
		},
	}, nil
}

type readCloser struct {
	io.Reader
	close func() error
}

func (r *readCloser) Close() error {
	return r.close()
}
