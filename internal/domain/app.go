package domain

import "fmt"

// App is a single entry in the Steam catalog listing.
type App struct {
	AppID int    `json:"appid"`
	Name  string `json:"name"`
}

// AppDetails is the normalized per-app metadata fetched on demand.
// It is derived from the storefront response and never persisted.
type AppDetails struct {
	AppID       int    `json:"appid"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsFree      bool   `json:"is_free"`
	Price       string `json:"price"`
	Rating      string `json:"rating"`
	HeaderImage string `json:"header_image"`
	StoreURL    string `json:"steam_url"`
}

// StorePageURL returns the canonical storefront page for an app.
func StorePageURL(appID int) string {
	return fmt.Sprintf("https://store.steampowered.com/app/%d", appID)
}
