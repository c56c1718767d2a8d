package main

import (
	"encoding/json"

	"github.com/aretw0/dfa/internal/cli"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate AUTOMATON",
	Short: "List accepted strings, shortest first",
	Long:  `Enumerates accepted strings in breadth-first order. Length is counted in characters of the joined string and the empty string prints as ε.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := openEngine(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		limit, maxLength := cfg.Generate.Limit, cfg.Generate.MaxLength
		if cmd.Flags().Changed("limit") {
			limit, _ = cmd.Flags().GetInt("limit")
		}
		if cmd.Flags().Changed("max-length") {
			maxLength, _ = cmd.Flags().GetInt("max-length")
		}

		words, err := eng.Generate(cmd.Context(), limit, maxLength)
		if err != nil {
			return err
		}
		if jsonMode, _ := cmd.Flags().GetBool("json"); jsonMode {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(words)
		}
		return cli.WriteStrings(cmd.OutOrStdout(), words)
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().IntP("limit", "n", 0, "Maximum number of strings (default from config)")
	generateCmd.Flags().IntP("max-length", "l", 0, "Maximum string length in characters (default from config)")
	generateCmd.Flags().Bool("json", false, "Print the strings as a JSON array")
}
