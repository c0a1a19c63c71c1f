// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache appends pattern/reply records to a line-delimited cache
// file, the same format the converter reads.
package cache

import (
	"fmt"
	"io"
	"os"

	"github.com/pdiddy/cache2config/internal/jsonutil"
	"github.com/pdiddy/cache2config/pkg/types"
)

// Writer encodes cache entries one JSON object per line.
type Writer struct {
	w io.Writer
}

// NewWriter returns a Writer appending to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write encodes e as a single line. Each record is written with one Write
// call so concurrent appenders on an O_APPEND file do not interleave.
func (cw *Writer) Write(e types.CacheEntry) error {
	data, err := jsonutil.Marshal(e, "")
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}
	if _, err := cw.w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return nil
}

// Append validates entries and appends them to the cache file at path,
// creating it if needed.
func Append(path string, entries ...types.CacheEntry) error {
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return err
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening cache %s: %w", path, err)
	}

	w := NewWriter(f)
	for _, e := range entries {
		if err := w.Write(e); err != nil {
			f.Close()
			return err
		}
	}
	return f.Close()
}
