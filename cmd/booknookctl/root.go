package main

import (
	"fmt"
	"os"

	"log/slog"

	"github.com/spf13/cobra"

	"github.com/rileysklar/BookNook/internal/client"
)

var (
	serverURL string
	token     string
	verbose   bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "booknookctl",
	Short: "Command-line client for the BookNook little-library API",
	Long: `booknookctl browses and manages little free libraries against a
BookNook server: list and search libraries, create, update and delete
them, inspect your activity feed, and watch the map from a terminal.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", envOr("BOOKNOOK_SERVER", "http://localhost:8080"), "BookNook server base URL")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("BOOKNOOK_TOKEN"), "Bearer token for authenticated calls")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func newGateway() *client.Gateway {
	return client.NewGateway(serverURL, client.StaticTokenSource(token), slog.Default())
}

func newStore() *client.Store {
	return client.NewStore(newGateway(), client.NewRetrier(3, slog.Default()), slog.Default())
}
