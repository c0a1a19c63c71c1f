// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the cache2config CLI.
//
// cache2config promotes the reply cache a bot appends to at runtime into the
// reply configuration it loads at startup.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/cache2config/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is built in PersistentPreRunE from the configured level.
var logger = zap.NewNop()

// rootCmd converts a cache file into a config file.
var rootCmd = &cobra.Command{
	Use:   "cache2config <input> <output>",
	Short: "Convert a line-delimited reply cache into a reply config file",
	Long: `cache2config reads a cache file holding one {"pattern","reply"} JSON
object per line and writes a single JSON config array where every record
becomes {"patterns":[pattern],"reply":{"type":"PlainMessage","data":reply}}.

Malformed lines are reported on stderr and skipped; they never fail the run.
The command exits nonzero only when a file cannot be opened, read or written.`,
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		l, err := newLogger(settings.LogLevel)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: runConvert,
}

func init() {
	cobra.OnInitialize(initConfig)

	viper.SetDefault("max_line_bytes", types.DefaultMaxLineBytes)
	viper.SetDefault("indent", "")
	viper.SetDefault("log_level", "info")

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "settings file (default: ./cache2config.yaml or ~/.config/cache2config/config.yaml)")
	flags.Int("max-line-bytes", types.DefaultMaxLineBytes, "longest cache line accepted")
	flags.String("indent", "", "indent for the written config (empty writes compact JSON)")
	flags.String("log-level", "info", "diagnostic level: debug, info, warn, error")

	_ = viper.BindPFlag("max_line_bytes", flags.Lookup("max-line-bytes"))
	_ = viper.BindPFlag("indent", flags.Lookup("indent"))
	_ = viper.BindPFlag("log_level", flags.Lookup("log-level"))
}

// initConfig points viper at the settings file and the CACHE2CONFIG_ environment.
func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("cache2config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "cache2config"))
		}
	}

	viper.SetEnvPrefix("CACHE2CONFIG")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadSettings decodes the merged flag, env, file and default values.
func loadSettings() (types.Settings, error) {
	var s types.Settings
	if err := viper.Unmarshal(&s); err != nil {
		return s, fmt.Errorf("decoding settings: %w", err)
	}
	return s, nil
}

// newLogger builds a console logger on stderr at the given level.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	config := zap.NewProductionConfig()
	config.Encoding = "console"
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.DisableStacktrace = true
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return l, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
