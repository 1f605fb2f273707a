package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/asteroid-impact-service/internal/domain"
	"github.com/couchcryptid/asteroid-impact-service/internal/observability"
)

type stubCatalog struct {
	records map[string]domain.NEO
	fetched []string
}

func (s *stubCatalog) FetchByID(_ context.Context, id string) (domain.NEO, error) {
	s.fetched = append(s.fetched, id)
	if neo, ok := s.records[id]; ok {
		return neo, nil
	}
	return domain.NEO{}, fmt.Errorf("neo %s: %w", id, domain.ErrNotFound)
}

func (s *stubCatalog) SearchByName(_ context.Context, _ string, _ int) (domain.NEO, error) {
	return domain.NEO{}, domain.ErrNotFound
}

func run(t *testing.T, cat *stubCatalog, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd(func(_ catalogOptions, _ *observability.Metrics, _ *slog.Logger) domain.Catalog {
		return cat
	})
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestSimulateCommand(t *testing.T) {
	out, err := run(t, nil, "simulate", "--density", "3000", "--diameter", "1000", "--velocity", "20", "--angle", "45")
	require.NoError(t, err)

	var res domain.ImpactResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.InEpsilon(t, 1.5708e12, res.MassKg, 1e-4)
	assert.InEpsilon(t, 3.1416e20, res.KineticEnergyJ, 1e-4)
	assert.True(t, strings.HasPrefix(out, "{\n  \""), "output should be indented")
}

func TestSimulateCommand_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing density", []string{"simulate", "--diameter", "10"}, "density"},
		{"angle zero", []string{"simulate", "--density", "3000", "--diameter", "10", "--angle", "0"}, "--angle"},
		{"angle too steep", []string{"simulate", "--density", "3000", "--diameter", "10", "--angle", "95"}, "--angle"},
		{"not finite", []string{"simulate", "--density", "NaN", "--diameter", "10"}, "--density"},
		{"overflow", []string{"simulate", "--density", "3000", "--diameter", "1e120"}, "too large"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, nil, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestNEOCommand_AliasAndToday(t *testing.T) {
	dMin, dMax := 450.0, 510.0
	cat := &stubCatalog{records: map[string]domain.NEO{
		"101955": {
			ID:                "2101955",
			Name:              "101955 Bennu (1999 RQ36)",
			EstimatedDiameter: domain.EstimatedDiameter{Meters: domain.DiameterRange{Min: &dMin, Max: &dMax}},
			CloseApproachData: []domain.CloseApproach{
				{CloseApproachDate: "2135-09-25", RelativeVelocity: domain.RelativeVelocity{KilometersPerSecond: "4.6"}},
				{CloseApproachDate: "2060-09-23", RelativeVelocity: domain.RelativeVelocity{KilometersPerSecond: "6.2"}},
			},
		},
	}}

	out, err := run(t, cat, "neo", "--query", "Bennu", "--today", "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"101955"}, cat.fetched)

	var body struct {
		NEO      domain.NEO          `json:"neo"`
		Analysis domain.ImpactResult `json:"analysis"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.Equal(t, "2101955", body.NEO.ID)
	assert.InDelta(t, 480, body.Analysis.DiameterAvgM, 1e-9)
	require.NotNil(t, body.Analysis.ApproachDate)
	assert.Equal(t, "2060-09-23", *body.Analysis.ApproachDate)
	assert.InDelta(t, 6.2, body.Analysis.ImpactVelocityKmS, 1e-9)
}

func TestNEOCommand_Errors(t *testing.T) {
	_, err := run(t, &stubCatalog{}, "neo")
	require.ErrorContains(t, err, "--id or --query")

	_, err = run(t, &stubCatalog{}, "neo", "--id", "1", "--max-pages", "0")
	require.ErrorContains(t, err, "--max-pages")

	_, err = run(t, &stubCatalog{}, "neo", "--id", "1", "--today", "01/01/2024")
	require.ErrorContains(t, err, "--today")

	_, err = run(t, &stubCatalog{}, "neo", "--id", "404")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAliasesCommand(t *testing.T) {
	out, err := run(t, nil, "aliases")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 17)
	assert.True(t, strings.HasPrefix(lines[0], "NAME"))
	assert.Contains(t, out, "bennu")
	assert.Contains(t, out, "101955")

	out, err = run(t, nil, "aliases", "--json")
	require.NoError(t, err)
	var list []map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	assert.Len(t, list, 16)
}
