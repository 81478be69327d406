// Copyright 2026 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package osmisc reads and writes trace files, transparently handling gzip
// compression for paths ending in ".gz".
package osmisc

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"go.uber.org/multierr"
)

const gzipExt = ".gz"

// IsCompressed reports whether path names a gzip-compressed file.
func IsCompressed(path string) bool {
	return strings.HasSuffix(path, gzipExt)
}

// CreateFile creates a file at path, creating any missing parent directories.
func CreateFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.Create(path)
}

// ReadFile returns the contents of path, decompressed if the path ends in ".gz".
func ReadFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if !IsCompressed(path) {
		return io.ReadAll(f)
	}
	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("opening gzip stream %q: %w", path, err)
	}
	defer zr.Close()
	b, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("decompressing %q: %w", path, err)
	}
	return b, nil
}

// WriteFile writes data to path, compressing it if the path ends in ".gz".
// Errors from closing the compressor and the file are reported.
func WriteFile(path string, data []byte) (err error) {
	f, err := CreateFile(path)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	if !IsCompressed(path) {
		_, err = f.Write(data)
		return err
	}
	zw := gzip.NewWriter(f)
	_, err = zw.Write(data)
	return multierr.Append(err, zw.Close())
}
