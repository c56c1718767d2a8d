package main

import (
	"errors"
	"fmt"

	"github.com/aretw0/dfa/pkg/automaton"
	"github.com/aretw0/dfa/pkg/codec"
	"github.com/spf13/cobra"
)

var errInvalid = errors.New("one or more automata are invalid")

var validateCmd = &cobra.Command{
	Use:   "validate FILE...",
	Short: "Check automaton documents for completeness",
	Long:  `Loads each document and reports every structural problem found: unknown states, undeclared symbols and missing or extra transitions.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		failed := false
		for _, path := range args {
			a, err := codec.ReadFile(path)
			if err != nil {
				failed = true
				violations := automaton.Violations(err)
				if len(violations) == 0 {
					fmt.Fprintf(out, "%s: %v\n", path, err)
					continue
				}
				fmt.Fprintf(out, "%s: invalid (%d problems)\n", path, len(violations))
				for _, v := range violations {
					fmt.Fprintf(out, "  - %s\n", v.Error())
				}
				continue
			}
			fmt.Fprintf(out, "%s: valid (%d states, %d symbols)\n", path, len(a.States()), len(a.Alphabet()))
		}
		if failed {
			return errInvalid
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
