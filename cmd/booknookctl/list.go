package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rileysklar/BookNook/internal/domain"
	"github.com/rileysklar/BookNook/pkg/geo"
)

var (
	listJSON   bool
	listLng    float64
	listLat    float64
	listRadius float64
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List libraries, optionally within a radius of a point",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		var filter *domain.ListLibrariesFilter
		if cmd.Flags().Changed("radius") {
			filter = &domain.ListLibrariesFilter{
				Center:   geo.NewPoint(listLng, listLat),
				RadiusKM: listRadius,
			}
		}

		store := newStore()
		if err := store.Fetch(context.Background(), filter); err != nil {
			fatal("list failed", err)
		}

		libraries := store.Snapshot()
		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(libraries); err != nil {
				fatal("encode failed", err)
			}
			return
		}

		for _, lib := range libraries {
			visibility := "public"
			if !lib.IsPublic {
				visibility = "private"
			}
			fmt.Printf("%s  %-30s %s  %s\n", lib.ID, lib.Name, lib.Coordinates.String(), visibility)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().Float64Var(&listLng, "lng", 0, "Filter center longitude")
	listCmd.Flags().Float64Var(&listLat, "lat", 0, "Filter center latitude")
	listCmd.Flags().Float64Var(&listRadius, "radius", 0, "Filter radius in km (enables the geo filter)")
}
