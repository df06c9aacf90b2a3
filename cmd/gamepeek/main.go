package main

import (
	"fmt"
	"os"

	"github.com/gamepeek/gamepeek/internal/cli"
	"github.com/gamepeek/gamepeek/internal/cli/client"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "gamepeek",
		Short: "Gamepeek CLI - Steam catalog search",
		Long: `Gamepeek CLI searches the Steam catalog, shows app details, and
reviews your search history.

Environment variables:
  GAMEPEEK_API_URL   API base URL (default: http://localhost:8080)`,
		Version: version,
	}

	rootCmd.PersistentFlags().Bool("output", false, "Output as JSON")
	rootCmd.PersistentFlags().String("api-url", "", "API base URL (overrides env)")
	cli.AddHelpJSONFlag(rootCmd)

	rootCmd.AddCommand(client.SearchCmd())
	rootCmd.AddCommand(client.AppCmd())
	rootCmd.AddCommand(client.HistoryCmd())
	rootCmd.AddCommand(client.RefreshCmd())

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
