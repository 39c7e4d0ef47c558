package sizing

import (
	"errors"
	"fmt"
	"strings"
)

// Engine failures. Both abort the request that raised them; a request no
// stocked tube can satisfy is not an error and is reported through
// Result.SelectedIndex instead.
var (
	ErrUnsupportedRefrigerant     = errors.New("unsupported refrigerant")
	ErrInvalidRefrigeratingEffect = errors.New("refrigerating effect must be positive")
)

// Refrigerant holds the constant property figures the sizing math runs on.
// They are single-point design approximations taken near 40 °F evaporating
// and 105 °F condensing, not temperature-dependent curves.
type Refrigerant struct {
	Code string `json:"code"`

	// Densities, lb/ft³
	VaporDensity  float64 `json:"vapor_density_lb_ft3"`
	LiquidDensity float64 `json:"liquid_density_lb_ft3"`

	// Dynamic viscosity of the vapor, lb/(ft·s)
	VaporViscosity float64 `json:"vapor_viscosity_lb_ft_s"`

	// Refrigerating effect, BTU/lb; converts heat duty to mass flow.
	Effect float64 `json:"refrigerating_effect_btu_lb"`
}

var refrigerants = []Refrigerant{
	{Code: "R22", VaporDensity: 1.10, LiquidDensity: 73.2, VaporViscosity: 8.4e-6, Effect: 69.0},
	{Code: "R134a", VaporDensity: 0.86, LiquidDensity: 76.5, VaporViscosity: 7.6e-6, Effect: 70.0},
	{Code: "R404A", VaporDensity: 1.83, LiquidDensity: 63.4, VaporViscosity: 8.2e-6, Effect: 48.5},
	{Code: "R410A", VaporDensity: 1.85, LiquidDensity: 66.2, VaporViscosity: 8.8e-6, Effect: 72.5},
	{Code: "R507", VaporDensity: 1.92, LiquidDensity: 62.7, VaporViscosity: 8.1e-6, Effect: 46.8},
}

var refrigerantIndex = make(map[string]Refrigerant, len(refrigerants))

func init() {
	for _, r := range refrigerants {
		refrigerantIndex[strings.ToUpper(r.Code)] = r
	}
}

// LookupRefrigerant returns the property record for a refrigerant code.
// Matching is case-insensitive. Unknown codes fail with
// ErrUnsupportedRefrigerant.
func LookupRefrigerant(code string) (Refrigerant, error) {
	r, ok := refrigerantIndex[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return Refrigerant{}, fmt.Errorf("%w: %q", ErrUnsupportedRefrigerant, code)
	}
	return r, nil
}

// Refrigerants lists the supported property records in catalog order.
func Refrigerants() []Refrigerant {
	out := make([]Refrigerant, len(refrigerants))
	copy(out, refrigerants)
	return out
}

// density returns the phase density used for a line type: liquid density
// for liquid lines, vapor density for suction and discharge, which the
// model treats as vapor throughout.
func (r Refrigerant) density(line LineType) float64 {
	if line == LineLiquid {
		return r.LiquidDensity
	}
	return r.VaporDensity
}

// viscosity returns the vapor figure for every line type, liquid lines
// included. The property table carries no liquid viscosity column; the
// coarser approximation is kept on purpose.
func (r Refrigerant) viscosity(LineType) float64 {
	return r.VaporViscosity
}
