// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "errors"

// CacheEntry is one record of the reply cache: a single JSON object per line
// mapping a pattern to the reply text sent when the pattern matches.
type CacheEntry struct {
	// Pattern is the substring the bot matches against incoming messages.
	Pattern string `json:"pattern" yaml:"pattern"`

	// Reply is the plain text sent back when Pattern matches.
	Reply string `json:"reply" yaml:"reply"`
}

// Validate reports whether e can be appended to a cache file. An empty
// pattern would match every message.
func (e CacheEntry) Validate() error {
	if e.Pattern == "" {
		return errors.New("cache entry: pattern is empty")
	}
	if e.Reply == "" {
		return errors.New("cache entry: reply is empty")
	}
	return nil
}
