package admin

import (
	"fmt"

	"github.com/gamepeek/gamepeek/internal/config"
	"github.com/gamepeek/gamepeek/internal/service"
	"github.com/gamepeek/gamepeek/internal/steam"
	"github.com/gamepeek/gamepeek/internal/store"
	"github.com/spf13/cobra"
)

// CacheCmd returns the cache command group
func CacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local catalog cache",
	}

	cmd.AddCommand(cacheRefreshCmd())

	return cmd
}

func cacheRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Fetch the full catalog listing and replace the local cache",
		Long:  "Fetches the complete app listing from the Steam Web API and overwrites the local snapshot. This may take a few seconds.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			catalogStore := store.NewCatalogStore(cfg.CatalogCachePath())
			steamClient := steam.NewClientWithConfig(steam.Config{
				APIBaseURL:   cfg.SteamAPIURL,
				StoreBaseURL: cfg.SteamStoreURL,
			})

			svc := service.NewCatalogService(catalogStore, steamClient)
			count, err := svc.Refresh(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to refresh catalog cache: %w", err)
			}

			fmt.Printf("Catalog cache refreshed: %d apps (%s)\n", count, cfg.CatalogCachePath())
			return nil
		},
	}
}
