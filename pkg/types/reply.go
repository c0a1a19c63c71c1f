// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"fmt"
)

// ReplyType tags the payload of a Reply.
type ReplyType string

const (
	// ReplyPlainMessage marks the reply data as unstructured text.
	ReplyPlainMessage ReplyType = "PlainMessage"
)

// Known reports whether t is a reply type the bot understands.
func (t ReplyType) Known() bool {
	switch t {
	case ReplyPlainMessage:
		return true
	}
	return false
}

// Reply is the typed reply object of a configuration entry, serialized as
// {"type":"PlainMessage","data":"<text>"}.
type Reply struct {
	Type ReplyType `json:"type" yaml:"type"`
	Data string    `json:"data" yaml:"data"`
}

// PlainMessage returns a Reply carrying text verbatim.
func PlainMessage(text string) Reply {
	return Reply{Type: ReplyPlainMessage, Data: text}
}

// UnmarshalJSON decodes a tagged reply and rejects unknown types.
func (r *Reply) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type *ReplyType `json:"type"`
		Data *string    `json:"data"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Type == nil {
		return fmt.Errorf("reply: missing type")
	}
	if !raw.Type.Known() {
		return fmt.Errorf("reply: unknown type %q", *raw.Type)
	}
	if raw.Data == nil {
		return fmt.Errorf("reply: missing data for type %s", *raw.Type)
	}
	*r = Reply{Type: *raw.Type, Data: *raw.Data}
	return nil
}

// ConfigEntry is one element of the reply configuration.
type ConfigEntry struct {
	// Patterns lists the patterns that trigger Reply. Entries converted
	// from the cache always hold exactly one pattern.
	Patterns []string `json:"patterns" yaml:"patterns"`

	// Reply is sent when any of Patterns matches.
	Reply Reply `json:"reply" yaml:"reply"`
}

// NewConfigEntry builds the configuration entry for a cache entry.
func NewConfigEntry(e CacheEntry) ConfigEntry {
	return ConfigEntry{
		Patterns: []string{e.Pattern},
		Reply:    PlainMessage(e.Reply),
	}
}

// Config is the ordered reply configuration consumed by the bot.
type Config []ConfigEntry
