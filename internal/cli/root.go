// Package cli provides the impactctl command-line interface.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/asteroid-impact-service/internal/adapter/neows"
	"github.com/couchcryptid/asteroid-impact-service/internal/domain"
	"github.com/couchcryptid/asteroid-impact-service/internal/observability"
)

// Version is set at build time.
var Version = "0.1.0"

// catalogFactory builds the catalog used by the neo command.
type catalogFactory func(opts catalogOptions, metrics *observability.Metrics, logger *slog.Logger) domain.Catalog

type catalogOptions struct {
	apiKey  string
	baseURL string
	timeout time.Duration
}

func liveCatalog(opts catalogOptions, metrics *observability.Metrics, logger *slog.Logger) domain.Catalog {
	return neows.NewClient(opts.apiKey, opts.baseURL, opts.timeout, metrics, logger)
}

type app struct {
	newCatalog catalogFactory
	logLevel   string
	today      string
}

// Execute runs the impactctl root command.
func Execute() error {
	return newRootCmd(liveCatalog).Execute()
}

func newRootCmd(newCatalog catalogFactory) *cobra.Command {
	a := &app{newCatalog: newCatalog}

	root := &cobra.Command{
		Use:   "impactctl",
		Short: "Asteroid impact simulator",
		Long: `impactctl estimates the consequences of an asteroid striking Earth.

It simulates either a catalog object fetched from NASA NeoWs or an impactor
described by density, diameter, velocity and entry angle.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.pinToday()
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			domain.SetClock(nil)
		},
	}
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&a.today, "today", "", "evaluate close approaches as of this date (YYYY-MM-DD)")

	root.AddCommand(
		a.newSimulateCmd(),
		a.newNEOCmd(),
		newAliasesCmd(),
	)
	return root
}

// pinToday freezes the domain clock when --today is given.
func (a *app) pinToday() error {
	if a.today == "" {
		return nil
	}
	day, err := time.Parse(time.DateOnly, a.today)
	if err != nil {
		return fmt.Errorf("invalid --today %q: want YYYY-MM-DD", a.today)
	}
	domain.SetClock(clockwork.NewFakeClockAt(day))
	return nil
}

func (a *app) logger(w io.Writer) *slog.Logger {
	return observability.NewTextLogger(w, a.logLevel)
}

// metrics returns service metrics on a private registry; nothing scrapes the CLI.
func (a *app) metrics() *observability.Metrics {
	return observability.NewMetricsWith(prometheus.NewRegistry())
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
