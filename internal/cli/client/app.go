package client

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// AppDetailsResponse represents the details API response.
type AppDetailsResponse struct {
	AppID       int    `json:"appid"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsFree      bool   `json:"is_free"`
	Price       string `json:"price"`
	Rating      string `json:"rating"`
	HeaderImage string `json:"header_image"`
	StoreURL    string `json:"steam_url"`
}

// AppCmd creates the app command.
func AppCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "app <appid>",
		Short: "Show details for an app",
		Long:  "Fetches normalized storefront details for the given appid and records the selection in history.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			appID, err := strconv.Atoi(args[0])
			if err != nil || appID <= 0 {
				return fmt.Errorf("invalid appid %q", args[0])
			}
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runApp(cmd, appID, outputJSON)
		},
	}
}

func runApp(cmd *cobra.Command, appID int, outputJSON bool) error {
	api := NewAPIClientWithCmd(cmd)

	resp, err := api.Get(fmt.Sprintf("/apps/%d", appID))
	if err != nil {
		return fmt.Errorf("details lookup failed: %w", err)
	}

	var details AppDetailsResponse
	if err := json.Unmarshal(resp.Data, &details); err != nil {
		return fmt.Errorf("failed to parse details: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(details, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	fmt.Printf("%s (appid %d)\n", details.Name, details.AppID)
	fmt.Printf("  Price:  %s\n", details.Price)
	fmt.Printf("  Rating: %s\n", details.Rating)
	fmt.Printf("  %s\n", details.Description)
	if details.HeaderImage != "" {
		fmt.Printf("  Image:  %s\n", details.HeaderImage)
	}
	fmt.Printf("  Store:  %s\n", details.StoreURL)

	return nil
}
