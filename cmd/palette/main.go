package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/palette/config"
	"github.com/dhamidi/palette/env"
	"github.com/dhamidi/palette/search"
	"github.com/dhamidi/palette/search/grammar"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:          "palette",
		Short:        "Turn typed text into ranked candidate expressions",
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "path to a YAML config file")
	flags.String("env", "", "path to a YAML environment (default: built-in)")
	flags.Int("max-results", search.DefaultMaxResults, "maximum number of candidates, 0 for all")
	flags.CountP("verbose", "v", "increase log verbosity")
	flags.String("log-file", "", "write logs to this file instead of stderr")
	flags.Bool("specials", true, "recognize Infinity and NaN")
	flags.Bool("bare-words", true, "offer unquoted words as strings")

	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newReplCmd())
	rootCmd.AddCommand(newTUICmd())
	rootCmd.AddCommand(newLSPCmd())
	rootCmd.AddCommand(newUICmd())
	rootCmd.AddCommand(newEnvCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// app is everything a command needs to run searches.
type app struct {
	cfg      *config.Config
	env      *env.Environment
	registry *search.Registry
}

func loadApp(cmd *cobra.Command) (*app, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(configPath, cmd.Flags())
	if err != nil {
		return nil, err
	}

	var logFile *string
	if cfg.Logging.File != "" {
		logFile = &cfg.Logging.File
	}
	commonlog.Configure(cfg.Logging.Verbosity, logFile)

	var e *env.Environment
	if cfg.Environment != "" {
		e, err = env.Load(cfg.Environment)
	} else {
		e, err = env.Default()
	}
	if err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	return &app{
		cfg:      cfg,
		env:      e,
		registry: grammar.NewRegistry(cfg.GrammarOptions()),
	}, nil
}

func (a *app) session(env search.Environment) *search.Session {
	return search.NewSession(a.registry, env, a.cfg.SessionOptions()...)
}
