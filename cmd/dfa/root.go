package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/dfa/internal/config"
	"github.com/aretw0/dfa/internal/logging"
	"github.com/spf13/cobra"
)

// Shared state prepared by the root command before any subcommand runs.
var (
	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "dfa",
	Short:         "dfa defines, checks and runs deterministic finite automata",
	Long:          `dfa loads automata from versioned JSON or YAML documents, simulates inputs step by step and enumerates the strings an automaton accepts.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			loaded.Log.Level, _ = cmd.Flags().GetString("log-level")
		}
		if cmd.Flags().Changed("store") {
			loaded.Store.Backend, _ = cmd.Flags().GetString("store")
			if err := loaded.Validate(); err != nil {
				return err
			}
		}

		level, err := logging.ParseLevel(loaded.Log.Level)
		if err != nil {
			return err
		}
		format, err := logging.ParseFormat(loaded.Log.Format)
		if err != nil {
			return err
		}
		cfg = loaded
		logger = logging.NewWriter(cmd.ErrOrStderr(), level, format)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("store", "", "Store backend: memory, file, redis or loam (overrides config)")
}
