package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/statecraft/go-statestore/internal/json"
)

var historyCmd = &cobra.Command{
	Use:   "history <key>",
	Short: "Dump the modification history of a key as JSON lines",
	Long:  "Walks the key's revision history on the etcd backend and prints one {tx_id, timestamp, is_delete, value} record per line, newest first.",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistory,
}

func init() {
	addEtcdFlags(historyCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, closeStore, err := newEtcdStore(cmd)
	if err != nil {
		return err
	}
	defer closeStore()

	mods, err := store.History(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to drain history: %w", err)
	}

	for _, mod := range mods {
		line, err := json.Marshal(mod)
		if err != nil {
			return fmt.Errorf("failed to render record: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(line))
	}

	return nil
}
