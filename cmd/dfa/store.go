package main

import (
	"fmt"

	"github.com/aretw0/dfa/internal/cli"
	"github.com/aretw0/dfa/pkg/codec"
	"github.com/aretw0/dfa/pkg/ports"
	"github.com/spf13/cobra"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage automata in the configured store",
	Long:  `Stores, fetches, lists and removes named automata in the backend selected by store.backend.`,
}

var storePutCmd = &cobra.Command{
	Use:   "put NAME FILE",
	Short: "Store the document at FILE under NAME",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := codec.ReadFile(args[1])
		if err != nil {
			return err
		}
		return withStore(cmd, func(store ports.AutomatonStore) error {
			if err := store.Save(cmd.Context(), args[0], a); err != nil {
				return err
			}
			logger.Info("automaton stored", "name", args[0], "backend", cfg.Store.Backend)
			return nil
		})
	},
}

var storeGetCmd = &cobra.Command{
	Use:   "get NAME",
	Short: "Print a stored automaton",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("format")
		format, err := codec.ParseFormat(name)
		if err != nil {
			return err
		}
		return withStore(cmd, func(store ports.AutomatonStore) error {
			a, err := store.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return codec.Encode(cmd.OutOrStdout(), a, format)
		})
	},
}

var storeDescribeCmd = &cobra.Command{
	Use:   "describe NAME",
	Short: "Print the markdown description kept with a stored automaton",
	Long:  `Only the loam backend keeps descriptions: the body of the Markdown document holding the automaton.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(store ports.AutomatonStore) error {
			desc, err := cli.Describe(cmd.Context(), store, args[0])
			if err != nil {
				return err
			}
			return cli.PrintMarkdown(cmd.OutOrStdout(), desc)
		})
	},
}

var storeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored automata",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(store ports.AutomatonStore) error {
			names, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, n := range names {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		})
	},
}

var storeDeleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Remove a stored automaton",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(store ports.AutomatonStore) error {
			return store.Delete(cmd.Context(), args[0])
		})
	},
}

func withStore(cmd *cobra.Command, fn func(ports.AutomatonStore) error) error {
	store, closeStore, err := cli.OpenStore(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()
	return fn(store)
}

func init() {
	rootCmd.AddCommand(storeCmd)
	storeCmd.AddCommand(storePutCmd, storeGetCmd, storeDescribeCmd, storeListCmd, storeDeleteCmd)

	storeGetCmd.Flags().StringP("format", "f", "json", "Output format: json or yaml")
}
