package main

import (
	"fmt"

	"github.com/aretw0/dfa/pkg/codec"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert SRC DST",
	Short: "Rewrite a document in the format of the destination extension",
	Long:  `Loads SRC, checks it and writes it to DST as JSON or YAML depending on the extension. The output always carries the current version tag.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := codec.ReadFile(args[0])
		if err != nil {
			return err
		}
		if err := codec.WriteFile(args[1], a); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s (%s)\n", args[0], args[1], codec.FormatFromPath(args[1]))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
}
