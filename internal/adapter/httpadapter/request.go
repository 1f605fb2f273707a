package httpadapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/couchcryptid/asteroid-impact-service/internal/domain"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		return name
	})
}

// simulateParams are the raw custom-simulation inputs. Values may arrive as
// JSON numbers or numeric strings.
type simulateParams struct {
	Density     domain.Numeric `json:"density"`
	DiameterM   domain.Numeric `json:"diameter_m"`
	VelocityKmS domain.Numeric `json:"velocity_km_s"`
	AngleDeg    domain.Numeric `json:"angle_deg"`
}

// simulateRequest holds parsed parameters. A nil field was missing or not a
// finite number.
type simulateRequest struct {
	Density     *float64 `json:"density" validate:"required"`
	DiameterM   *float64 `json:"diameter_m" validate:"required"`
	VelocityKmS *float64 `json:"velocity_km_s" validate:"required"`
	AngleDeg    *float64 `json:"angle_deg" validate:"required,gt=0,lte=90"`
}

func decodeSimulateBody(r io.Reader) (simulateParams, error) {
	var p simulateParams
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return simulateParams{}, fmt.Errorf("decode simulate body: %w", err)
	}
	return p, nil
}

func (p simulateParams) spec() (domain.ImpactorSpec, error) {
	req := simulateRequest{
		Density:     optionalFloat(p.Density),
		DiameterM:   optionalFloat(p.DiameterM),
		VelocityKmS: optionalFloat(p.VelocityKmS),
		AngleDeg:    optionalFloat(p.AngleDeg),
	}
	if err := validate.Struct(req); err != nil {
		return domain.ImpactorSpec{}, validationMessage(err)
	}
	return domain.ImpactorSpec{
		DensityKgM3: *req.Density,
		DiameterM:   *req.DiameterM,
		VelocityKmS: *req.VelocityKmS,
		AngleDeg:    *req.AngleDeg,
	}, nil
}

func optionalFloat(n domain.Numeric) *float64 {
	v, ok := n.Float()
	if !ok {
		return nil
	}
	return &v
}

func validationMessage(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	var missing, outOfRange []string
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
		} else {
			outOfRange = append(outOfRange, fe.Field())
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("invalid or missing parameters: %s", strings.Join(missing, ", "))
	}
	return fmt.Errorf("parameter out of range: %s (angle_deg must be in (0, 90])", strings.Join(outOfRange, ", "))
}
