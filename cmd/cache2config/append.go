// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/cache2config/internal/cache"
	"github.com/pdiddy/cache2config/pkg/types"
)

var appendCmd = &cobra.Command{
	Use:   "append <cache> <pattern> <reply...>",
	Short: "Append a pattern/reply record to a cache file",
	Long: `Append writes one {"pattern","reply"} line to the cache file, creating
it if needed. Remaining arguments after the pattern are joined with spaces
to form the reply, matching the bot's "/append <pattern> <reply>" command.`,
	Args: cobra.MinimumNArgs(3),
	RunE: runAppend,
}

func init() {
	rootCmd.AddCommand(appendCmd)
}

func runAppend(cmd *cobra.Command, args []string) error {
	entry := types.CacheEntry{
		Pattern: args[1],
		Reply:   strings.Join(args[2:], " "),
	}
	if err := cache.Append(args[0], entry); err != nil {
		return err
	}
	logger.Info("appended cache entry",
		zap.String("cache", args[0]),
		zap.String("pattern", entry.Pattern),
		zap.String("reply", entry.Reply))
	return nil
}
