package main

import (
	"fmt"

	"github.com/aretw0/dfa/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph AUTOMATON",
	Short: "Export the automaton as a Mermaid diagram",
	Long:  `Outputs a Mermaid flowchart (graph LR). With --input, the states visited by that input are highlighted.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := openEngine(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		var overlay *graph.GraphOverlay
		if cmd.Flags().Changed("input") {
			input, _ := cmd.Flags().GetString("input")
			res, err := eng.Simulate(cmd.Context(), input)
			if err != nil {
				return err
			}
			overlay = &graph.GraphOverlay{VisitedStates: res.Path(), CurrentState: res.FinalState}
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(eng.Automaton(), overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().String("input", "", "Highlight the run of this input")
}
