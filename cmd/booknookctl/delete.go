package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a library",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := uuid.Parse(args[0])
		if err != nil {
			fatal("invalid library id", err)
		}

		store := newStore()
		if err := store.Fetch(context.Background(), nil); err != nil {
			fatal("fetch failed", err)
		}

		if err := store.Delete(context.Background(), id); err != nil {
			fatal("delete failed", err)
		}

		fmt.Printf("deleted %s\n", id)
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
