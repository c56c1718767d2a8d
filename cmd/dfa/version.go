package main

import (
	"fmt"

	"github.com/aretw0/dfa"
	"github.com/aretw0/dfa/pkg/codec"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of dfa",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "dfa version %s (document format %s)\n", dfa.Version, codec.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
