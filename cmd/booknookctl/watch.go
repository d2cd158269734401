package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"github.com/spf13/cobra"

	"github.com/rileysklar/BookNook/internal/domain"
	"github.com/rileysklar/BookNook/internal/mapview"
	"github.com/rileysklar/BookNook/pkg/geo"
)

var (
	watchInterval time.Duration
	watchLng      float64
	watchLat      float64
	watchRadius   float64
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the library map from the terminal",
	Long: `Polls the server and prints marker add/remove events as libraries
appear and disappear. Libraries that stay put between polls produce no
output. Ctrl-C tears the map down cleanly.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		var filter *domain.ListLibrariesFilter
		if cmd.Flags().Changed("radius") {
			filter = &domain.ListLibrariesFilter{
				Center:   geo.NewPoint(watchLng, watchLat),
				RadiusKM: watchRadius,
			}
		}

		surface := mapview.NewTerminalSurface(os.Stdout)
		reconciler := mapview.NewReconciler(surface, slog.Default(), func(lib domain.Library) {
			fmt.Printf("  %s: %s\n", lib.Name, lib.Description)
		})
		defer reconciler.Close()

		store := newStore()
		ticker := time.NewTicker(watchInterval)
		defer ticker.Stop()

		for {
			if err := store.Fetch(ctx, filter); err != nil {
				slog.Default().Warn("refresh failed, keeping last view", slog.Any("error", err))
			}
			if err := reconciler.Apply(store.Snapshot()); err != nil {
				fatal("reconcile failed", err)
			}

			select {
			case <-ctx.Done():
				fmt.Println("stopping watch")
				return
			case <-ticker.C:
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 10*time.Second, "Poll interval")
	watchCmd.Flags().Float64Var(&watchLng, "lng", 0, "Filter center longitude")
	watchCmd.Flags().Float64Var(&watchLat, "lat", 0, "Filter center latitude")
	watchCmd.Flags().Float64Var(&watchRadius, "radius", 0, "Filter radius in km (enables the geo filter)")
}
