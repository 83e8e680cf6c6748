package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	host   string
	direct bool
)

var rootCmd = &cobra.Command{
	Use:   "kindred-cli",
	Short: "A CLI to interact with the kindred server",
	Long: `A command-line interface for making requests to the kindred server
and for creating swipes and messages the way the app backend does.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&host, "host", "http://localhost:8080", "The host address of the server")
	rootCmd.PersistentFlags().BoolVar(&direct, "direct", false, "Deliver creation events straight to the server's /events endpoint instead of Pub/Sub")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your command '%s'", err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
