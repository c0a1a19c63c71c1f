// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/pdiddy/cache2config/pkg/types"
)

// Recoverable line error kinds. A line failing with one of these is skipped.
var (
	ErrSyntax     = errors.New("invalid JSON")
	ErrNotObject  = errors.New("not a JSON object")
	ErrMissingKey = errors.New("missing required key")
	ErrFieldType  = errors.New("field is not a string")
	ErrEncoding   = errors.New("invalid UTF-8")
)

var lineKinds = []struct {
	err  error
	name string
}{
	{ErrSyntax, "syntax"},
	{ErrNotObject, "not_object"},
	{ErrMissingKey, "missing_key"},
	{ErrFieldType, "field_type"},
	{ErrEncoding, "encoding"},
}

// LineError records a skipped input line.
type LineError struct {
	// Line is the 1-based line number in the input.
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Kind returns a short name for the error kind, or "unknown".
func (e *LineError) Kind() string {
	for _, k := range lineKinds {
		if errors.Is(e.Err, k.err) {
			return k.name
		}
	}
	return "unknown"
}

// Recoverable reports whether err is a per-line error that should be
// skipped rather than abort the run.
func Recoverable(err error) bool {
	for _, k := range lineKinds {
		if errors.Is(err, k.err) {
			return true
		}
	}
	return false
}

// ParseLine decodes one cache line. The line must be valid UTF-8 and a JSON
// object with "pattern" and "reply" keys; other fields are ignored. Both
// values must be JSON strings: a number, object or null is reported as
// ErrFieldType, since the bot decodes both fields as strings.
func ParseLine(line string) (types.CacheEntry, error) {
	// json.Unmarshal would silently replace invalid bytes with U+FFFD.
	if !utf8.ValidString(line) {
		return types.CacheEntry{}, ErrEncoding
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(line), &fields); err != nil {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.As(err, &syntaxErr):
			return types.CacheEntry{}, fmt.Errorf("%w: %v", ErrSyntax, err)
		case errors.As(err, &typeErr):
			return types.CacheEntry{}, fmt.Errorf("%w: got %s", ErrNotObject, typeErr.Value)
		}
		return types.CacheEntry{}, err
	}
	// "null" decodes into a nil map without error.
	if fields == nil {
		return types.CacheEntry{}, fmt.Errorf("%w: got null", ErrNotObject)
	}

	pattern, err := stringField(fields, "pattern")
	if err != nil {
		return types.CacheEntry{}, err
	}
	reply, err := stringField(fields, "reply")
	if err != nil {
		return types.CacheEntry{}, err
	}
	return types.CacheEntry{Pattern: pattern, Reply: reply}, nil
}

func stringField(fields map[string]json.RawMessage, key string) (string, error) {
	raw, ok := fields[key]
	if !ok {
		return "", fmt.Errorf("%w %q", ErrMissingKey, key)
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return "", fmt.Errorf("%w: %q is null", ErrFieldType, key)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return "", fmt.Errorf("%w: %q is %s", ErrFieldType, key, typeErr.Value)
		}
		return "", err
	}
	return s, nil
}
