// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns a line-delimited reply cache into a reply
// configuration. Malformed lines are skipped and reported; anything else
// that goes wrong aborts the run.
package convert

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/pdiddy/cache2config/pkg/types"
)

// Result holds the outcome of a conversion run.
type Result struct {
	// Config holds one entry per accepted line, in input order.
	Config types.Config

	// Errors holds one entry per skipped line, in input order.
	Errors []*LineError

	// Lines is the number of input lines read.
	Lines int
}

// Converted returns the number of lines turned into config entries.
func (r *Result) Converted() int {
	return len(r.Config)
}

// ErrorCount returns the number of skipped lines.
func (r *Result) ErrorCount() int {
	return len(r.Errors)
}

// HasErrors reports whether any line was skipped.
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// Converter reads cache lines and collects config entries.
type Converter struct {
	log          *zap.Logger
	maxLineBytes int
}

// NewConverter returns a Converter using cfg.MaxLineBytes as the line cap.
// A nil logger discards diagnostics.
func NewConverter(cfg types.Settings, log *zap.Logger) *Converter {
	if log == nil {
		log = zap.NewNop()
	}
	maxLineBytes := cfg.MaxLineBytes
	if maxLineBytes <= 0 {
		maxLineBytes = types.DefaultMaxLineBytes
	}
	return &Converter{log: log, maxLineBytes: maxLineBytes}
}

// Convert reads r line by line and converts every well-formed cache record.
// Skipped lines are recorded in the result. Read failures, lines longer
// than the configured cap and context cancellation are returned as errors.
func (c *Converter) Convert(ctx context.Context, r io.Reader) (*Result, error) {
	scanner := bufio.NewScanner(r)
	bufSize := 64 * 1024
	if bufSize > c.maxLineBytes {
		bufSize = c.maxLineBytes
	}
	scanner.Buffer(make([]byte, 0, bufSize), c.maxLineBytes)

	res := newResult()
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := c.add(res, scanner.Text()); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, fmt.Errorf("reading line %d: longer than %d bytes: %w", res.Lines+1, c.maxLineBytes, err)
		}
		return nil, fmt.Errorf("reading line %d: %w", res.Lines+1, err)
	}

	c.logTotals(res)
	return res, nil
}

// ConvertLines converts lines already held in memory. Each element is one
// cache line without its terminator.
func (c *Converter) ConvertLines(ctx context.Context, lines []string) (*Result, error) {
	res := newResult()
	for _, line := range lines {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := c.add(res, line); err != nil {
			return nil, err
		}
	}
	c.logTotals(res)
	return res, nil
}

func (c *Converter) logTotals(res *Result) {
	c.log.Info("cache converted",
		zap.Int("lines", res.Lines),
		zap.Int("converted", res.Converted()),
		zap.Int("skipped", res.ErrorCount()))
}

func newResult() *Result {
	// Config is never nil so an empty run serializes as [].
	return &Result{Config: types.Config{}}
}

// add parses one line into res. Only recoverable line errors are absorbed.
func (c *Converter) add(res *Result, line string) error {
	res.Lines++
	entry, err := ParseLine(line)
	if err != nil {
		if !Recoverable(err) {
			return fmt.Errorf("line %d: %w", res.Lines, err)
		}
		lerr := &LineError{Line: res.Lines, Err: err}
		res.Errors = append(res.Errors, lerr)
		c.log.Warn("skipping cache line",
			zap.Int("line", lerr.Line),
			zap.String("kind", lerr.Kind()),
			zap.Error(err))
		return nil
	}
	res.Config = append(res.Config, types.NewConfigEntry(entry))
	return nil
}
