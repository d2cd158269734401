package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"log/slog"

	"github.com/spf13/cobra"

	"github.com/rileysklar/BookNook/internal/client"
	"github.com/rileysklar/BookNook/internal/domain"
)

var (
	searchRadius   float64
	geocoderURL    string
	geocoderToken  string
	searchNoRecord bool
)

var searchCmd = &cobra.Command{
	Use:   "search <place...>",
	Short: "Geocode a place and list libraries around it",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		query := strings.Join(args, " ")

		geocoder := client.NewGeocoder(geocoderURL, geocoderToken, slog.Default())
		places, err := geocoder.Search(ctx, query)
		if err != nil {
			fatal("geocoding failed", err)
		}
		if len(places) == 0 {
			fmt.Fprintf(os.Stderr, "no places found for %q\n", query)
			os.Exit(1)
		}

		place := places[0]
		fmt.Printf("searching around %s %s\n", place.Name, place.Center.String())

		store := newStore()
		err = store.Fetch(ctx, &domain.ListLibrariesFilter{
			Center:   place.Center,
			RadiusKM: searchRadius,
		})
		if err != nil {
			fatal("list failed", err)
		}

		libraries := store.Snapshot()
		for _, lib := range libraries {
			fmt.Printf("%s  %-30s %s\n", lib.ID, lib.Name, lib.Coordinates.String())
		}
		fmt.Printf("%d libraries within %.1f km\n", len(libraries), searchRadius)

		// the search itself goes to the activity feed, best-effort
		if !searchNoRecord && token != "" {
			_, err := newGateway().RecordSearch(ctx, domain.RecordSearchRequest{
				SearchQuery:  query,
				ResultsCount: len(libraries),
				Coordinates:  &place.Center,
			})
			if err != nil {
				slog.Default().Warn("search activity not recorded", slog.Any("error", err))
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().Float64Var(&searchRadius, "radius", 10, "Search radius in km")
	searchCmd.Flags().StringVar(&geocoderURL, "geocoder", envOr("BOOKNOOK_GEOCODER", "https://api.mapbox.com/geocoding/v5/mapbox.places"), "Geocoder base URL")
	searchCmd.Flags().StringVar(&geocoderToken, "geocoder-token", os.Getenv("BOOKNOOK_GEOCODER_TOKEN"), "Geocoder access token")
	searchCmd.Flags().BoolVar(&searchNoRecord, "no-record", false, "Do not record the search in the activity feed")
}
