package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/asteroid-impact-service/internal/adapter/neows"
	"github.com/couchcryptid/asteroid-impact-service/internal/simulator"
)

func (a *app) newNEOCmd() *cobra.Command {
	var (
		lookup   simulator.Lookup
		maxPages int
		opts     catalogOptions
	)

	cmd := &cobra.Command{
		Use:   "neo",
		Short: "Simulate the impact of a catalogued near-Earth object",
		Long: `Look up an object in NASA NeoWs by id or name and simulate its impact.

The id is tried first when numeric. A name query then goes through the
built-in alias table, a direct id fetch, and finally a scan of the browse
listing bounded by --max-pages.

Examples:
  impactctl neo --id 2000433
  impactctl neo --query apophis
  impactctl neo --query "2010 PK9" --max-pages 20`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if lookup.ID == "" && lookup.Query == "" {
				return errors.New("one of --id or --query is required")
			}
			if maxPages < 1 {
				return fmt.Errorf("--max-pages must be at least 1, got %d", maxPages)
			}

			logger := a.logger(cmd.ErrOrStderr())
			metrics := a.metrics()
			svc := simulator.New(a.newCatalog(opts, metrics, logger), neows.DefaultAliases(), nil, logger, metrics, maxPages)

			res, err := svc.SimulateCatalog(cmd.Context(), lookup)
			if err != nil {
				return fmt.Errorf("simulate neo: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}

	apiKey := os.Getenv("NASA_API_KEY")
	if apiKey == "" {
		apiKey = "DEMO_KEY"
	}

	cmd.Flags().StringVar(&lookup.ID, "id", "", "NeoWs object id")
	cmd.Flags().StringVarP(&lookup.Query, "query", "q", "", "name fragment or alias")
	cmd.Flags().IntVar(&maxPages, "max-pages", 100, "browse pages to scan for a name match")
	cmd.Flags().StringVar(&opts.apiKey, "api-key", apiKey, "NASA API key (default from NASA_API_KEY)")
	cmd.Flags().StringVar(&opts.baseURL, "base-url", neows.DefaultBaseURL, "NeoWs base URL")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "per-request timeout")

	return cmd
}
