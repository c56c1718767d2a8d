package main

import (
	"fmt"
	"io"
	"os"

	"github.com/aretw0/dfa/pkg/runner"
	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch AUTOMATON [INPUTS_FILE]",
	Short: "Check many inputs and summarize the verdicts",
	Long: `Reads one input per line from INPUTS_FILE, or from stdin when it is omitted or "-".
A line holding only ε stands for the empty string.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := openEngine(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		var src io.Reader = cmd.InOrStdin()
		if len(args) == 2 && args[1] != "-" {
			f, err := os.Open(args[1])
			if err != nil {
				return fmt.Errorf("failed to open inputs: %w", err)
			}
			defer f.Close()
			src = f
		}

		format, _ := cmd.Flags().GetString("format")
		failFast, _ := cmd.Flags().GetBool("fail-fast")

		var handler runner.Handler
		switch format {
		case "text":
			handler = runner.NewTextHandler(cmd.OutOrStdout())
		case "json":
			handler = runner.NewJSONHandler(cmd.OutOrStdout())
		default:
			return fmt.Errorf("unknown format %q: use text or json", format)
		}

		r := runner.New(
			runner.WithHandler(handler),
			runner.WithLogger(logger),
			runner.WithFailFast(failFast),
		)
		_, err = r.Run(cmd.Context(), eng.Automaton(), src)
		return err
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringP("format", "f", "text", "Output format: text or json (NDJSON)")
	batchCmd.Flags().Bool("fail-fast", false, "Stop at the first input that cannot be simulated")
}
