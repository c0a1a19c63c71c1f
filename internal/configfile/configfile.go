// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package configfile reads and writes reply configuration files: a single
// UTF-8 JSON array of config entries.
package configfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdiddy/cache2config/internal/jsonutil"
	"github.com/pdiddy/cache2config/pkg/types"
)

// Encode writes cfg to w as one JSON array. Non-ASCII text is written
// literally and HTML characters are not escaped. An empty indent produces
// compact output. No trailing newline is written.
func Encode(w io.Writer, cfg types.Config, indent string) error {
	if cfg == nil {
		cfg = types.Config{}
	}

	data, err := jsonutil.Marshal(cfg, indent)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Write encodes cfg and replaces path with the result.
func Write(path string, cfg types.Config, indent string) error {
	p, err := Create(path)
	if err != nil {
		return err
	}
	return p.Commit(cfg, indent)
}

// PendingFile is a config file being written. Content goes to a temporary
// file in the target directory and only replaces the target on Commit, so
// a failed run leaves the previous config in place.
type PendingFile struct {
	f    *os.File
	path string
	mode os.FileMode
}

// Create opens a pending replacement for path. It fails if the directory
// of path is not writable.
func Create(path string) (*PendingFile, error) {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			return nil, fmt.Errorf("creating config %s: is a directory", path)
		}
		mode = info.Mode().Perm()
	}

	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("creating config %s: %w", path, err)
	}
	return &PendingFile{f: f, path: path, mode: mode}, nil
}

// Commit encodes cfg and renames the temporary file over the target.
func (p *PendingFile) Commit(cfg types.Config, indent string) error {
	if err := Encode(p.f, cfg, indent); err != nil {
		p.Abort()
		return err
	}
	if err := p.f.Chmod(p.mode); err != nil {
		p.Abort()
		return fmt.Errorf("writing config %s: %w", p.path, err)
	}
	if err := p.f.Close(); err != nil {
		os.Remove(p.f.Name())
		return fmt.Errorf("writing config %s: %w", p.path, err)
	}
	if err := os.Rename(p.f.Name(), p.path); err != nil {
		os.Remove(p.f.Name())
		return fmt.Errorf("replacing config %s: %w", p.path, err)
	}
	return nil
}

// Abort discards the pending content and leaves the target untouched.
func (p *PendingFile) Abort() {
	p.f.Close()
	os.Remove(p.f.Name())
}

// Decode reads one config array from r. The input must hold exactly one
// array; every entry needs a patterns list and a reply of known type, as
// the bot refuses to start otherwise.
func Decode(r io.Reader) (types.Config, error) {
	dec := json.NewDecoder(r)
	var cfg types.Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("decoding config: unexpected data after array")
	}
	if cfg == nil {
		return nil, errors.New("decoding config: config is null")
	}
	for i, e := range cfg {
		if e.Patterns == nil {
			return nil, fmt.Errorf("decoding config: entry %d has no patterns", i)
		}
		if !e.Reply.Type.Known() {
			return nil, fmt.Errorf("decoding config: entry %d has no reply", i)
		}
	}
	return cfg, nil
}

// Load decodes every file in paths and concatenates the entries in
// argument order.
func Load(paths ...string) (types.Config, error) {
	merged := types.Config{}
	for _, path := range paths {
		cfg, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		merged = append(merged, cfg...)
	}
	return merged, nil
}

func loadFile(path string) (types.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening config %s: %w", path, err)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
