package cli

import (
	"errors"
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/asteroid-impact-service/internal/domain"
)

func (a *app) newSimulateCmd() *cobra.Command {
	var spec domain.ImpactorSpec

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Simulate a custom impactor",
		Long: `Simulate an impactor from explicit physical parameters and print the
result as JSON.

Examples:
  impactctl simulate --density 3000 --diameter 1000 --velocity 20 --angle 45
  impactctl simulate --density 7800 --diameter 50 --velocity 12.8 --angle 30`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkSpec(spec); err != nil {
				return err
			}
			result := domain.SimulateCustom(spec.DensityKgM3, spec.DiameterM, spec.VelocityKmS, spec.AngleDeg)
			if !result.Finite() {
				return errors.New("parameters too large to simulate: result overflows")
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().Float64Var(&spec.DensityKgM3, "density", 0, "bulk density in kg/m^3")
	cmd.Flags().Float64Var(&spec.DiameterM, "diameter", 0, "diameter in meters")
	cmd.Flags().Float64Var(&spec.VelocityKmS, "velocity", domain.DefaultVelocityKmS, "impact velocity in km/s")
	cmd.Flags().Float64Var(&spec.AngleDeg, "angle", domain.DefaultImpactAngleDeg, "entry angle from horizontal in degrees, (0, 90]")
	_ = cmd.MarkFlagRequired("density")
	_ = cmd.MarkFlagRequired("diameter")

	return cmd
}

func checkSpec(s domain.ImpactorSpec) error {
	for name, v := range map[string]float64{
		"density":  s.DensityKgM3,
		"diameter": s.DiameterM,
		"velocity": s.VelocityKmS,
		"angle":    s.AngleDeg,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("--%s must be a finite number", name)
		}
	}
	if s.AngleDeg <= 0 || s.AngleDeg > 90 {
		return fmt.Errorf("--angle must be in (0, 90], got %g", s.AngleDeg)
	}
	return nil
}
