// Package main provides the folio CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jajnabi/folio/internal/config"
	"github.com/jajnabi/folio/internal/storage"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// humanOutput controls whether to use human-readable output
	humanOutput bool
	verbose     bool

	logger   = zap.NewNop()
	logLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Academic homepage builder",
	Long: `folio builds an academic homepage from JSON and Markdown records.

Core features:
  - Profile, about, interests, experience, and publications sections
  - Inline citations in experience bullets resolved against publications
  - Publication list filtering (peer-reviewed / preprints) and year sorting
  - Static page rendering and a live preview server
  - BibTeX export and full-text publication search

A site is any directory containing folio.yml.
All commands output JSON by default; use --human for text.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		var err error
		logger, err = newLogger()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.Version = Version
}

// newLogger builds the process logger on stderr. The level starts from
// FOLIO_LOG_LEVEL and is adjusted again once the site config is loaded.
func newLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if humanOutput {
		cfg.Encoding = "console"
		cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	setLogLevel(os.Getenv(config.EnvLogLevel))
	cfg.Level = logLevel
	return cfg.Build()
}

// setLogLevel applies a level name; --verbose always wins.
func setLogLevel(name string) {
	if verbose {
		logLevel.SetLevel(zapcore.DebugLevel)
		return
	}
	if name == "" {
		return
	}
	lvl, err := zapcore.ParseLevel(name)
	if err != nil {
		logger.Warn("ignoring invalid log level", zap.String("level", name))
		return
	}
	logLevel.SetLevel(lvl)
}

// mustFindSite finds the site root, exits on error.
func mustFindSite() string {
	cwd, err := os.Getwd()
	if err != nil {
		exitWithError(ExitError, "getting current directory: %v", err)
	}

	root, err := config.ResolveSite(cwd)
	if err != nil {
		fmt.Fprintln(os.Stderr, config.HelpfulConfigMessage())
		os.Exit(ExitConfigError)
	}
	return root
}

// mustLoadConfig loads and validates folio.yml, exits on error.
func mustLoadConfig(root string) *config.Config {
	cfg, err := config.Load(root)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		exitWithError(ExitConfigError, "invalid config: %v", err)
	}
	setLogLevel(cfg.LogLevel)
	return cfg
}

// mustOpenDatabase opens the SQLite database, exits on error.
// The caller is responsible for calling Close() on the returned DB.
func mustOpenDatabase(root string) *storage.DB {
	if err := os.MkdirAll(config.CachePath(root), 0755); err != nil {
		exitWithError(ExitError, "creating cache directory: %v", err)
	}
	db, err := storage.OpenDB(config.DBPath(root))
	if err != nil {
		exitWithError(ExitError, "opening database: %v", err)
	}
	return db
}
