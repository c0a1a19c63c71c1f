// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/cache2config/internal/configfile"
)

var mergeCmd = &cobra.Command{
	Use:   "merge <output> <config>...",
	Short: "Concatenate reply config files into one",
	Long: `Merge loads each config file in argument order, rejects replies of
unknown type, and writes the concatenated entries to output. The bot
accepts several config files the same way.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runMerge,
}

func init() {
	rootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	output, inputs := args[0], args[1:]

	cfg, err := configfile.Load(inputs...)
	if err != nil {
		return err
	}
	if err := configfile.Write(output, cfg, settings.Indent); err != nil {
		return err
	}
	logger.Info("merged config files",
		zap.Strings("inputs", inputs),
		zap.String("output", output),
		zap.Int("entries", len(cfg)))
	return nil
}
