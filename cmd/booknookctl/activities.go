package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var activitiesJSON bool

var activitiesCmd = &cobra.Command{
	Use:   "activities",
	Short: "Show your recent activity feed",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		acts, err := newGateway().Activities(context.Background())
		if err != nil {
			fatal("activities failed", err)
		}

		if activitiesJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(acts); err != nil {
				fatal("encode failed", err)
			}
			return
		}

		for _, a := range acts {
			fmt.Printf("%s  %-18s %s\n", a.CreatedAt.Format("2006-01-02 15:04"), a.ActivityType, a.Title)
		}
	},
}

func init() {
	rootCmd.AddCommand(activitiesCmd)
	activitiesCmd.Flags().BoolVar(&activitiesJSON, "json", false, "Output in JSON format")
}
