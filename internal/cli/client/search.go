package client

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// SearchRequest represents the search API request.
type SearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

// SearchResult represents a single catalog match.
type SearchResult struct {
	AppID int    `json:"appid"`
	Name  string `json:"name"`
}

// SearchResponse represents the search API response.
type SearchResponse struct {
	Query       string         `json:"query"`
	Results     []SearchResult `json:"results"`
	ResultCount int            `json:"result_count"`
}

// SearchCmd creates the search command.
func SearchCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <name>",
		Short: "Search the catalog by name",
		Long:  "Searches the cached catalog for apps whose name contains the query, case-insensitively.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runSearch(cmd, args[0], limit, outputJSON)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 15, "Maximum number of results")

	return cmd
}

func runSearch(cmd *cobra.Command, query string, limit int, outputJSON bool) error {
	api := NewAPIClientWithCmd(cmd)

	resp, err := api.Post("/search", SearchRequest{Query: query, Limit: limit})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	var searchResp SearchResponse
	if err := json.Unmarshal(resp.Data, &searchResp); err != nil {
		return fmt.Errorf("failed to parse search results: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(searchResp, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(searchResp.Results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Printf("Found %d results:\n\n", searchResp.ResultCount)
	for i, result := range searchResp.Results {
		fmt.Printf("%2d. %s (appid %d)\n", i+1, result.Name, result.AppID)
	}

	return nil
}
