// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/cache2config/internal/configfile"
	"github.com/pdiddy/cache2config/internal/convert"
	"github.com/pdiddy/cache2config/pkg/types"
)

func init() {
	rootCmd.Flags().String("summary", "", "write a YAML run summary to this path")
}

func runConvert(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	input, output := args[0], args[1]

	res, err := convertFile(cmd.Context(), input, output, settings, logger)
	if err != nil {
		return err
	}

	summaryPath, _ := cmd.Flags().GetString("summary")
	if summaryPath != "" {
		if err := convert.WriteSummary(summaryPath, convert.NewSummary(input, output, res)); err != nil {
			return err
		}
	}
	return nil
}

// convertFile opens input and then output, converts the cache and replaces
// output with the config. A fatal error leaves any existing output as it
// was. Skipped lines are reported through log and the result.
func convertFile(ctx context.Context, input, output string, settings types.Settings, log *zap.Logger) (*convert.Result, error) {
	in, err := os.Open(input)
	if err != nil {
		return nil, fmt.Errorf("opening input %s: %w", input, err)
	}
	defer in.Close()

	out, err := configfile.Create(output)
	if err != nil {
		return nil, fmt.Errorf("opening output %s: %w", output, err)
	}

	res, err := convert.NewConverter(settings, log.With(zap.String("input", input))).Convert(ctx, in)
	if err != nil {
		out.Abort()
		return nil, fmt.Errorf("converting %s: %w", input, err)
	}

	if err := out.Commit(res.Config, settings.Indent); err != nil {
		return nil, err
	}
	return res, nil
}
