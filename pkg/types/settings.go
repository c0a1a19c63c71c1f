// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// DefaultMaxLineBytes caps the length of a single cache line (1 MiB).
const DefaultMaxLineBytes = 1 << 20

// Settings holds the tunables read from the settings file, environment and
// persistent flags.
type Settings struct {
	// MaxLineBytes is the longest cache line accepted. Longer lines abort
	// the run (default 1 MiB).
	MaxLineBytes int `json:"max_line_bytes" yaml:"max_line_bytes" mapstructure:"max_line_bytes"`

	// Indent is the per-level indent of the written config. Empty writes
	// compact JSON.
	Indent string `json:"indent" yaml:"indent" mapstructure:"indent"`

	// LogLevel is the minimum diagnostic level: debug, info, warn or error.
	LogLevel string `json:"log_level" yaml:"log_level" mapstructure:"log_level"`
}
