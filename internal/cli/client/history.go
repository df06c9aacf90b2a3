package client

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// HistoryEntry represents one history API entry; the type field
// selects which of the remaining fields are populated.
type HistoryEntry struct {
	Timestamp   time.Time `json:"timestamp"`
	Type        string    `json:"type"`
	Query       string    `json:"query,omitempty"`
	ResultCount int       `json:"result_count,omitempty"`
	AppID       int       `json:"appid,omitempty"`
	Name        string    `json:"name,omitempty"`
}

// HistoryResponse represents the history API response.
type HistoryResponse struct {
	Entries []HistoryEntry `json:"entries"`
	Count   int            `json:"count"`
}

// HistoryCmd creates the history command.
func HistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent searches and selections",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runHistory(cmd, limit, outputJSON)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of entries")

	return cmd
}

func runHistory(cmd *cobra.Command, limit int, outputJSON bool) error {
	api := NewAPIClientWithCmd(cmd)

	resp, err := api.Get(fmt.Sprintf("/history?limit=%d", limit))
	if err != nil {
		return fmt.Errorf("history lookup failed: %w", err)
	}

	var historyResp HistoryResponse
	if err := json.Unmarshal(resp.Data, &historyResp); err != nil {
		return fmt.Errorf("failed to parse history: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(historyResp, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if historyResp.Count == 0 {
		fmt.Println("No history yet.")
		return nil
	}

	for _, entry := range historyResp.Entries {
		ts := entry.Timestamp.Local().Format("2006-01-02 15:04")
		switch entry.Type {
		case "select":
			fmt.Printf("%s  selected %s (appid %d)\n", ts, entry.Name, entry.AppID)
		default:
			fmt.Printf("%s  searched %q (%d results)\n", ts, entry.Query, entry.ResultCount)
		}
	}

	return nil
}
