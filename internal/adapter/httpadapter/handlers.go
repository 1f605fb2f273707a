package httpadapter

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/couchcryptid/asteroid-impact-service/internal/domain"
	"github.com/couchcryptid/asteroid-impact-service/internal/simulator"
)

// maxBodyBytes caps POST /api/simulate bodies.
const maxBodyBytes = 1 << 16

const nonFiniteMessage = "Parameters too large to simulate"

func (s *Server) handleNEO(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, err := s.sim.SimulateCatalog(r.Context(), simulator.Lookup{
		ID:    q.Get("id"),
		Query: q.Get("q"),
	})
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, res)
	case errors.Is(err, simulator.ErrMissingLookup):
		writeError(w, http.StatusBadRequest, "Missing 'id' or 'q' parameter")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Asteroid not found")
	case errors.Is(err, simulator.ErrNonFiniteResult):
		writeError(w, http.StatusUnprocessableEntity, nonFiniteMessage)
	default:
		// The cause stays in the log; upstream errors can carry request details.
		s.logger.Error("neo lookup failed", "error", err)
		writeError(w, http.StatusBadGateway, "Error contacting NASA API")
	}
}

func (s *Server) handleSimulateQuery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	s.simulate(w, r, simulateParams{
		Density:     domain.Numeric(q.Get("density")),
		DiameterM:   domain.Numeric(q.Get("diameter_m")),
		VelocityKmS: domain.Numeric(q.Get("velocity_km_s")),
		AngleDeg:    domain.Numeric(q.Get("angle_deg")),
	})
}

func (s *Server) handleSimulateBody(w http.ResponseWriter, r *http.Request) {
	params, err := decodeSimulateBody(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	s.simulate(w, r, params)
}

func (s *Server) simulate(w http.ResponseWriter, r *http.Request, params simulateParams) {
	spec, err := params.spec()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	res, err := s.sim.SimulateCustom(r.Context(), spec)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, nonFiniteMessage)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	if s.staticDir == "" {
		writeError(w, http.StatusNotFound, "index.html not found")
		return
	}
	content, err := os.ReadFile(filepath.Join(s.staticDir, "index.html"))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Error("read index.html", "dir", s.staticDir, "error", err)
		}
		writeError(w, http.StatusNotFound, "index.html not found")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
}
