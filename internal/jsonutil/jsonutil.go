// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package jsonutil encodes JSON the way cache and config files are written:
// UTF-8 text verbatim, no HTML escaping, no trailing newline.
package jsonutil

import (
	"bytes"
	"encoding/json"
)

var (
	separatorPrefix    = []byte(`\u202`)
	lineSeparator      = []byte("\u2028")
	paragraphSeparator = []byte("\u2029")
)

// Marshal encodes v with HTML escaping disabled and an optional per-level
// indent. encoding/json always escapes U+2028 and U+2029; Marshal writes
// them back as literal characters.
func Marshal(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	data := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
	return unescapeSeparators(data), nil
}

// unescapeSeparators turns the U+2028 and U+2029 escapes of encoded JSON
// back into raw characters. Every backslash in encoder output starts an
// escape, so stepping over whole escapes never mistakes an escaped
// backslash followed by "u2028" for a separator.
func unescapeSeparators(data []byte) []byte {
	if !bytes.Contains(data, separatorPrefix) {
		return data
	}

	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		if data[i] != '\\' || i+1 >= len(data) {
			out = append(out, data[i])
			continue
		}
		if data[i+1] == 'u' && i+6 <= len(data) {
			switch string(data[i+2 : i+6]) {
			case "2028":
				out = append(out, lineSeparator...)
				i += 5
				continue
			case "2029":
				out = append(out, paragraphSeparator...)
				i += 5
				continue
			}
		}
		out = append(out, data[i], data[i+1])
		i++
	}
	return out
}
