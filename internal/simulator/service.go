package simulator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/asteroid-impact-service/internal/domain"
	"github.com/couchcryptid/asteroid-impact-service/internal/observability"
)

// ErrMissingLookup is returned when neither an id nor a query is given.
var ErrMissingLookup = errors.New("missing 'id' or 'q' parameter")

// ErrNonFiniteResult is returned when the inputs overflow the impact engine.
var ErrNonFiniteResult = errors.New("simulation result is not finite")

// Result sources.
const (
	SourceCatalog = "catalog"
	SourceCustom  = "custom"
)

// AliasResolver maps well-known names to catalog ids.
type AliasResolver interface {
	Lookup(name string) (string, bool)
}

// Publisher delivers completed simulations to a downstream sink.
type Publisher interface {
	Publish(ctx context.Context, rec SimulationRecord) error
}

// Lookup identifies a catalog object by numeric id, by name fragment, or both.
type Lookup struct {
	ID    string
	Query string
}

// CatalogResult pairs the resolved record with its simulated impact.
type CatalogResult struct {
	NEO      domain.NEO          `json:"neo"`
	Analysis domain.ImpactResult `json:"analysis"`
}

// SimulationRecord is the published form of one completed simulation.
type SimulationRecord struct {
	ID          string               `json:"id"`
	Source      string               `json:"source"`
	NEOID       string               `json:"neo_id,omitempty"`
	NEOName     string               `json:"neo_name,omitempty"`
	Input       *domain.ImpactorSpec `json:"input,omitempty"`
	Result      domain.ImpactResult  `json:"result"`
	SimulatedAt time.Time            `json:"simulated_at"`
}

// Service resolves catalog lookups and runs impact simulations.
type Service struct {
	catalog   domain.Catalog
	aliases   AliasResolver
	publisher Publisher
	logger    *slog.Logger
	metrics   *observability.Metrics
	clock     clockwork.Clock
	maxPages  int

	catalogDown atomic.Bool
}

// New creates a Service. aliases and publisher may be nil.
func New(catalog domain.Catalog, aliases AliasResolver, publisher Publisher, logger *slog.Logger, metrics *observability.Metrics, maxPages int) *Service {
	if publisher != nil {
		metrics.PublisherEnabled.Set(1)
	} else {
		metrics.PublisherEnabled.Set(0)
	}
	return &Service{
		catalog:   catalog,
		aliases:   aliases,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
		clock:     clockwork.NewRealClock(),
		maxPages:  maxPages,
	}
}

// CheckReadiness reports an error while the most recent catalog call failed
// at the transport level. Successful or not-found lookups clear it.
func (s *Service) CheckReadiness(_ context.Context) error {
	if s.catalogDown.Load() {
		return errors.New("catalog unavailable on last lookup")
	}
	return nil
}

// Resolve finds the catalog record for l. A numeric id is tried first. With a
// query, the alias table, a direct id fetch, and a name search follow in that
// order. Not-found answers move on to the next step; transport failures stop
// the chain.
func (s *Service) Resolve(ctx context.Context, l Lookup) (domain.NEO, error) {
	id := strings.TrimSpace(l.ID)
	query := strings.TrimSpace(l.Query)
	if id == "" && query == "" {
		return domain.NEO{}, ErrMissingLookup
	}

	var steps []func() (domain.NEO, error)
	if isDigits(id) {
		steps = append(steps, func() (domain.NEO, error) { return s.catalog.FetchByID(ctx, id) })
	}
	if query != "" {
		if s.aliases != nil {
			if aliasID, ok := s.aliases.Lookup(query); ok {
				steps = append(steps, func() (domain.NEO, error) { return s.catalog.FetchByID(ctx, aliasID) })
			}
		}
		steps = append(steps,
			func() (domain.NEO, error) { return s.catalog.FetchByID(ctx, query) },
			func() (domain.NEO, error) { return s.catalog.SearchByName(ctx, query, s.maxPages) },
		)
	}

	for _, step := range steps {
		neo, err := step()
		if err == nil {
			s.catalogDown.Store(false)
			return neo, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			// A caller that gave up says nothing about catalog health.
			if errors.Is(err, domain.ErrCatalogUnavailable) && ctx.Err() == nil {
				s.catalogDown.Store(true)
			}
			return domain.NEO{}, err
		}
	}
	s.catalogDown.Store(false)
	return domain.NEO{}, fmt.Errorf("lookup id=%q q=%q: %w", id, query, domain.ErrNotFound)
}

// SimulateCatalog resolves l and simulates the impact of the found object.
func (s *Service) SimulateCatalog(ctx context.Context, l Lookup) (CatalogResult, error) {
	start := time.Now()

	neo, err := s.Resolve(ctx, l)
	if err != nil {
		s.metrics.LookupFailures.WithLabelValues(failureReason(err)).Inc()
		s.logger.Warn("catalog lookup failed", "id", l.ID, "query", l.Query, "error", err)
		return CatalogResult{}, err
	}

	result := domain.SimulateFromRecord(neo)
	if !result.Finite() {
		s.logger.Warn("catalog simulation overflowed", "neo_id", neo.ID)
		return CatalogResult{}, fmt.Errorf("neo %s: %w", neo.ID, ErrNonFiniteResult)
	}
	s.observe(SourceCatalog, result, start)
	s.logger.Info("catalog simulation complete",
		"neo_id", neo.ID,
		"neo_name", neo.Name,
		"energy_mt", result.KineticEnergyMt,
	)

	s.publish(ctx, SimulationRecord{
		Source:  SourceCatalog,
		NEOID:   neo.ID,
		NEOName: neo.Name,
		Result:  result,
	})
	return CatalogResult{NEO: neo, Analysis: result}, nil
}

// SimulateCustom runs the custom-parameter path. Input validation belongs to
// the caller; non-positive physical parameters yield an all-zero result.
// Inputs large enough to overflow return ErrNonFiniteResult and are not
// published.
func (s *Service) SimulateCustom(ctx context.Context, spec domain.ImpactorSpec) (domain.ImpactResult, error) {
	start := time.Now()

	result := domain.SimulateCustom(spec.DensityKgM3, spec.DiameterM, spec.VelocityKmS, spec.AngleDeg)
	if !result.Finite() {
		s.logger.Debug("custom simulation overflowed", "diameter_m", spec.DiameterM, "velocity_km_s", spec.VelocityKmS)
		return domain.ImpactResult{}, ErrNonFiniteResult
	}
	s.observe(SourceCustom, result, start)
	s.logger.Debug("custom simulation complete", "diameter_m", spec.DiameterM, "energy_mt", result.KineticEnergyMt)

	s.publish(ctx, SimulationRecord{
		Source: SourceCustom,
		Input:  &spec,
		Result: result,
	})
	return result, nil
}

func (s *Service) observe(source string, result domain.ImpactResult, start time.Time) {
	s.metrics.Simulations.WithLabelValues(source).Inc()
	s.metrics.SimulationDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())
	if result.KineticEnergyMt > 0 {
		s.metrics.ImpactEnergy.Observe(result.KineticEnergyMt)
	}
}

// publish hands rec to the publisher. Failures are logged and counted only.
func (s *Service) publish(ctx context.Context, rec SimulationRecord) {
	if s.publisher == nil {
		return
	}
	rec.ID = uuid.NewString()
	rec.SimulatedAt = s.clock.Now().UTC()

	if err := s.publisher.Publish(ctx, rec); err != nil {
		s.metrics.PublishErrors.Inc()
		s.logger.Error("publish simulation failed", "record_id", rec.ID, "source", rec.Source, "error", err)
		return
	}
	s.metrics.PublishedResults.Inc()
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, ErrMissingLookup):
		return "invalid"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "unavailable"
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
