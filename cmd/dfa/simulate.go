package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/aretw0/dfa"
	"github.com/aretw0/dfa/internal/cli"
	"github.com/aretw0/dfa/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate AUTOMATON [INPUT...]",
	Short: "Run inputs and show the step-by-step trace",
	Long: `Runs each input through the automaton and prints the visited states.
AUTOMATON is a document path or the name of a stored automaton.
With no INPUT the empty string is simulated.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ref, inputs := args[0], args[1:]
		if len(inputs) == 0 {
			inputs = []string{""}
		}
		jsonMode, _ := cmd.Flags().GetBool("json")
		watchMode, _ := cmd.Flags().GetBool("watch")
		out := cmd.OutOrStdout()

		run := func(ctx context.Context) error {
			eng, err := openEngine(ctx, ref)
			if err != nil {
				return err
			}
			return simulateAll(ctx, eng, inputs, jsonMode, out)
		}

		if !watchMode {
			return run(cmd.Context())
		}
		if !isPath(ref) {
			return fmt.Errorf("--watch needs a document path, got %q", ref)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		if cli.IsTerminal(out) {
			tui.PrintBanner(out)
		}
		return cli.Watch(ctx, ref, logger, func() error {
			cli.PrintSystemMessage(out, "Loaded %s", ref)
			return run(ctx)
		})
	},
}

func simulateAll(ctx context.Context, eng *dfa.Engine, inputs []string, jsonMode bool, out io.Writer) error {
	enc := json.NewEncoder(out)
	for _, input := range inputs {
		res, err := eng.Simulate(ctx, input)
		if err != nil {
			return fmt.Errorf("input %q: %w", input, err)
		}
		if jsonMode {
			if err := enc.Encode(res); err != nil {
				return err
			}
			continue
		}
		if err := cli.PrintTrace(out, input, res); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().Bool("json", false, "Print each trace as a JSON line")
	simulateCmd.Flags().BoolP("watch", "w", false, "Re-run whenever the document changes")
}
