package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/rileysklar/BookNook/internal/domain"
)

var (
	updateName        string
	updateDescription string
	updatePublic      bool
	updatePrivate     bool
)

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change a library's name, description or visibility",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := uuid.Parse(args[0])
		if err != nil {
			fatal("invalid library id", err)
		}

		var patch domain.UpdateLibraryRequest
		if cmd.Flags().Changed("name") {
			patch.Name = &updateName
		}
		if cmd.Flags().Changed("description") {
			patch.Description = &updateDescription
		}
		if updatePublic {
			v := true
			patch.IsPublic = &v
		}
		if updatePrivate {
			v := false
			patch.IsPublic = &v
		}
		if patch.Name == nil && patch.Description == nil && patch.IsPublic == nil {
			fatal("nothing to update", fmt.Errorf("pass --name, --description, --public or --private"))
		}

		// the store needs the current collection to enforce its
		// known-id precondition
		store := newStore()
		if err := store.Fetch(context.Background(), nil); err != nil {
			fatal("fetch failed", err)
		}

		lib, err := store.Update(context.Background(), id, patch)
		if err != nil {
			fatal("update failed", err)
		}

		fmt.Printf("updated %s (%s)\n", lib.ID, lib.Name)
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
	updateCmd.Flags().StringVar(&updateName, "name", "", "New name")
	updateCmd.Flags().StringVar(&updateDescription, "description", "", "New description")
	updateCmd.Flags().BoolVar(&updatePublic, "public", false, "Make the library public")
	updateCmd.Flags().BoolVar(&updatePrivate, "private", false, "Make the library private")
	updateCmd.MarkFlagsMutuallyExclusive("public", "private")
}
