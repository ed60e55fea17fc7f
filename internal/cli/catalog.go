package cli

import (
	"github.com/spf13/cobra"

	"github.com/RaimNist/web-larek/internal/api"
	"github.com/RaimNist/web-larek/internal/config"
)

// NewCatalogCommand creates the catalog command: fetch and list the
// product catalog from the configured backend.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Fetch and list the product catalog",
		Long: `Fetch the product catalog from the configured API and list it.

Image references come back prefixed with the configured CDN base.

Example:
  larek catalog
  larek catalog --format json --config larek.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(rootOpts)
			if err != nil {
				return err
			}

			client := api.NewClient(cfg.APIBaseURL, cfg.CDNBaseURL)
			items, err := client.GetItems(cmd.Context())
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to fetch catalog", err)
			}

			if rootOpts.Format == "json" {
				return WriteJSON(cmd.OutOrStdout(), items)
			}
			WriteCatalog(cmd.OutOrStdout(), items)
			return nil
		},
	}

	return cmd
}

// loadConfig resolves the effective configuration: the --config file
// when given, the defaults otherwise.
func loadConfig(rootOpts *RootOptions) (config.Config, error) {
	if rootOpts.Config == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(rootOpts.Config)
	if err != nil {
		return config.Config{}, WrapExitError(ExitCommandError, "failed to load config", err)
	}
	return cfg, nil
}
