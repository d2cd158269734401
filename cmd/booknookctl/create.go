package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rileysklar/BookNook/internal/domain"
	"github.com/rileysklar/BookNook/pkg/geo"
)

var (
	createDescription string
	createAt          string
	createPrivate     bool
)

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Register a new library",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		point, err := geo.ParsePoint(createAt)
		if err != nil {
			fatal("invalid --at coordinates", err)
		}

		isPublic := !createPrivate
		lib, err := newStore().Create(context.Background(), domain.CreateLibraryRequest{
			Name:        args[0],
			Description: createDescription,
			Coordinates: point,
			IsPublic:    &isPublic,
		})
		if err != nil {
			fatal("create failed", err)
		}

		fmt.Printf("created %s at %s\n", lib.ID, lib.Coordinates.String())
	},
}

func init() {
	rootCmd.AddCommand(createCmd)
	createCmd.Flags().StringVar(&createAt, "at", "", `Coordinates as "(lng,lat)"`)
	createCmd.Flags().StringVar(&createDescription, "description", "", "Library description")
	createCmd.Flags().BoolVar(&createPrivate, "private", false, "Hide the library from the public map")
	createCmd.MarkFlagRequired("at")
}
