//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Convert builds the CLI and converts a cache file into a config file,
// e.g. `mage convert cache.jsonl reply.json`.
func Convert(input, output string) error {
	mg.Deps(Build)
	return sh.RunV("./bin/cache2config", input, output)
}
