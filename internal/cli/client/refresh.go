package client

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// RefreshResponse represents the catalog refresh API response.
type RefreshResponse struct {
	Count int `json:"count"`
}

// RefreshCmd creates the refresh command.
func RefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Refresh the server's catalog cache",
		Long:  "Asks the server to re-fetch the full catalog listing. This may take a few seconds.",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runRefresh(cmd, outputJSON)
		},
	}
}

func runRefresh(cmd *cobra.Command, outputJSON bool) error {
	api := NewAPIClientWithCmd(cmd)

	resp, err := api.Post("/catalog/refresh", nil)
	if err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}

	var refreshResp RefreshResponse
	if err := json.Unmarshal(resp.Data, &refreshResp); err != nil {
		return fmt.Errorf("failed to parse refresh response: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(refreshResp, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	fmt.Printf("Catalog cache refreshed: %d apps.\n", refreshResp.Count)
	return nil
}
