package main

import (
	"fmt"
	"os"

	"github.com/gamepeek/gamepeek/internal/cli"
	"github.com/gamepeek/gamepeek/internal/cli/admin"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gamepeekd",
		Short: "Gamepeek daemon and admin CLI",
		Long:  "Gamepeek daemon for running the API server and managing the local catalog cache",
	}

	cli.AddHelpJSONFlag(rootCmd)
	rootCmd.AddCommand(admin.ServeCmd())
	rootCmd.AddCommand(admin.CacheCmd())

	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
