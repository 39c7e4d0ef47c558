package sizing

import (
	"fmt"
	"math"
	"strings"
)

// LineType says which leg of the circuit is being sized. The wire tokens
// are the Spanish ones the original calculator was built around.
type LineType string

const (
	LineLiquid    LineType = "liquido"
	LineSuction   LineType = "succion"
	LineDischarge LineType = "descarga"
)

// ParseLineType maps a request token to a LineType. English spellings and
// accented variants are accepted as aliases.
func ParseLineType(s string) (LineType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "liquido", "líquido", "liquid":
		return LineLiquid, nil
	case "succion", "succión", "suction":
		return LineSuction, nil
	case "descarga", "discharge":
		return LineDischarge, nil
	}
	return "", fmt.Errorf("unknown line type %q", s)
}

const (
	// minEquivalentLengthFt replaces zero or negative run lengths so the
	// Darcy term keeps a positive length.
	minEquivalentLengthFt = 1.0

	// gc is the gravitational conversion constant, lbm·ft/(lbf·s²).
	gc = 32.174

	sqInPerSqFt = 144.0

	// reTransition splits the laminar and Blasius friction branches.
	reTransition = 2300.0

	// fpmToMS converts feet per minute to meters per second.
	fpmToMS = 0.3048 / 60.0

	// Velocity criteria. Liquid lines are bounded in ft/min, vapor lines
	// in m/s with a tighter band on vertical risers for oil return.
	liquidMaxFPM    = 300.0
	riserMinMS      = 8.0
	riserMaxMS      = 12.0
	horizontalMinMS = 4.0

	// Equivalent temperature-loss limits, °F.
	liquidTempLossLimitF = 1.0
	vaporTempLossLimitF  = 2.0
)

// AdvisoryNoSelection is what callers surface when no stocked size
// satisfies both criteria. It is a finding, not a failure.
const AdvisoryNoSelection = "no standard size meets the design criteria; review equivalent length, capacity or the criteria themselves"

// Input is one sizing request. Capacity and geometry drive the math; the
// three temperatures ride along untouched for reports and saved runs.
type Input struct {
	Refrigerant        string   `json:"refrigerant"`
	Line               LineType `json:"line_type"`
	CapacityBTUH       float64  `json:"capacity_btu_h"`
	EquivalentLengthFt float64  `json:"equivalent_length_ft"`
	VerticalRiseFt     float64  `json:"vertical_rise_ft"`
	EvaporatingTempF   float64  `json:"evaporating_temp_f,omitempty"`
	CondensingTempF    float64  `json:"condensing_temp_f,omitempty"`
	LiquidTempF        float64  `json:"liquid_temp_f,omitempty"`
}

// Riser reports whether the run includes a vertical rise, which switches
// the vapor-line velocity rules to the riser band.
func (in Input) Riser() bool {
	return in.VerticalRiseFt > 0
}

// Evaluation is the outcome of pushing one request through one tube.
type Evaluation struct {
	Tube            Tube     `json:"tube"`
	MassFlowLbS     float64  `json:"mass_flow_lb_s"`
	VelocityFPM     float64  `json:"velocity_fpm"`
	VelocityMS      float64  `json:"velocity_ms"`
	ReynoldsNumber  float64  `json:"reynolds_number"`
	FrictionFactor  float64  `json:"friction_factor"`
	PressureDropPSI float64  `json:"pressure_drop_psi"`
	TempLossF       float64  `json:"temp_loss_f"`
	Warnings        []string `json:"warnings,omitempty"`
}

// Result lists every catalog candidate in ascending-diameter order plus
// the first one that met both design criteria, if any.
type Result struct {
	Input         Input        `json:"input"`
	Evaluations   []Evaluation `json:"evaluations"`
	SelectedIndex int          `json:"selected_index"`
	Selected      *Evaluation  `json:"selected,omitempty"`
}

// Evaluate runs the fluid-mechanics pass for one request and one tube. It
// is a pure function of its arguments and the static property table.
func Evaluate(in Input, tube Tube) (Evaluation, error) {
	ref, err := LookupRefrigerant(in.Refrigerant)
	if err != nil {
		return Evaluation{}, err
	}
	if ref.Effect <= 0 {
		return Evaluation{}, fmt.Errorf("%w: %s has %.2f BTU/lb", ErrInvalidRefrigeratingEffect, ref.Code, ref.Effect)
	}

	// Heat duty to mass flow: BTU/h → BTU/s, then over the effect.
	massFlow := in.CapacityBTUH / 3600.0 / ref.Effect // lb/s

	density := ref.density(in.Line)
	diameterFt := tube.InnerDiameterIn / 12.0
	area := math.Pi * diameterFt * diameterFt / 4.0 // ft²

	var velocity float64 // ft/s
	if area > 0 {
		velocity = massFlow / density / area
	}
	velocityFPM := velocity * 60.0
	velocityMS := velocityFPM * fpmToMS

	var reynolds float64
	if mu := ref.viscosity(in.Line); mu > 0 {
		reynolds = density * velocity * diameterFt / mu
	}

	friction := frictionFactor(reynolds)

	length := in.EquivalentLengthFt
	if length <= 0 {
		length = minEquivalentLengthFt
	}

	// Darcy-Weisbach in lbf/ft², then over 144 in²/ft² for psi.
	var dropPSF float64
	if diameterFt > 0 {
		dropPSF = friction * (length / diameterFt) * density * velocity * velocity / (2.0 * gc)
	}
	dropPSI := dropPSF / sqInPerSqFt

	return Evaluation{
		Tube:            tube,
		MassFlowLbS:     massFlow,
		VelocityFPM:     velocityFPM,
		VelocityMS:      velocityMS,
		ReynoldsNumber:  reynolds,
		FrictionFactor:  friction,
		PressureDropPSI: dropPSI,
		TempLossF:       dropPSI * tempLossFactor(in.Line),
		Warnings:        velocityWarnings(in.Line, in.Riser(), velocityFPM, velocityMS),
	}, nil
}

// SizeLine evaluates the whole catalog in ascending-diameter order and
// selects the first tube whose temperature loss and velocity both satisfy
// the line-type criteria, which by the catalog ordering is the smallest
// acceptable size. SelectedIndex is -1 when nothing qualifies; callers
// surface that as AdvisoryNoSelection, not as a failure.
func SizeLine(in Input) (Result, error) {
	res := Result{
		Input:         in,
		Evaluations:   make([]Evaluation, 0, len(copperTubes)),
		SelectedIndex: -1,
	}
	for _, tube := range copperTubes {
		ev, err := Evaluate(in, tube)
		if err != nil {
			return Result{}, err
		}
		res.Evaluations = append(res.Evaluations, ev)
	}
	for i := range res.Evaluations {
		if acceptable(in, res.Evaluations[i]) {
			sel := res.Evaluations[i]
			res.SelectedIndex = i
			res.Selected = &sel
			break
		}
	}
	return res, nil
}

// Criteria is the acceptance envelope for one line type and orientation.
// A zero VelocityMin or VelocityMax means that side of the band is open.
type Criteria struct {
	TempLossLimitF float64 `json:"temp_loss_limit_f"`
	VelocityUnit   string  `json:"velocity_unit"`
	VelocityMin    float64 `json:"velocity_min,omitempty"`
	VelocityMax    float64 `json:"velocity_max,omitempty"`
}

const (
	UnitFPM = "ft/min"
	UnitMS  = "m/s"
)

// CriteriaFor returns the selection limits applied to a line type, with
// the riser band when the run is vertical.
func CriteriaFor(line LineType, riser bool) Criteria {
	if line == LineLiquid {
		return Criteria{TempLossLimitF: liquidTempLossLimitF, VelocityUnit: UnitFPM, VelocityMax: liquidMaxFPM}
	}
	if riser {
		return Criteria{TempLossLimitF: vaporTempLossLimitF, VelocityUnit: UnitMS, VelocityMin: riserMinMS, VelocityMax: riserMaxMS}
	}
	return Criteria{TempLossLimitF: vaporTempLossLimitF, VelocityUnit: UnitMS, VelocityMin: horizontalMinMS}
}

// velocity returns the evaluated velocity in the criteria's unit.
func (c Criteria) velocity(ev Evaluation) float64 {
	if c.VelocityUnit == UnitFPM {
		return ev.VelocityFPM
	}
	return ev.VelocityMS
}

// acceptable reports whether one candidate passes both design criteria
// for the request's line type and orientation.
func acceptable(in Input, ev Evaluation) bool {
	c := CriteriaFor(in.Line, in.Riser())
	if ev.TempLossF > c.TempLossLimitF {
		return false
	}
	v := c.velocity(ev)
	if c.VelocityMin > 0 && v < c.VelocityMin {
		return false
	}
	if c.VelocityMax > 0 && v > c.VelocityMax {
		return false
	}
	return true
}

// tempLossFactor converts pressure drop to saturated-temperature change:
// about one °F per psi on suction lines, half that on liquid and
// discharge lines.
func tempLossFactor(line LineType) float64 {
	if line == LineSuction {
		return 1.0
	}
	return 0.5
}

// frictionFactor is piecewise by regime: 64/Re below the transition
// Reynolds number, the Blasius smooth-pipe approximation from there up.
// Blasius only holds for moderate Re in smooth tube, which is the regime
// the criteria are calibrated against.
func frictionFactor(re float64) float64 {
	switch {
	case re <= 0:
		return 0
	case re < reTransition:
		return 64.0 / re
	default:
		return 0.3164 * math.Pow(re, -0.25)
	}
}

// velocityWarnings returns the advisory notes for one evaluated velocity.
// Liquid lines are checked against the flash-gas ceiling; vapor lines
// against the oil-return floor, with the tighter two-sided band on
// vertical risers. Horizontal suction and discharge runs share the same
// floor deliberately.
func velocityWarnings(line LineType, riser bool, fpm, ms float64) []string {
	var warns []string
	if line == LineLiquid {
		if fpm > liquidMaxFPM {
			warns = append(warns, fmt.Sprintf(
				"liquid velocity %.0f ft/min exceeds %.0f ft/min: pressure drop risks flash gas ahead of the expansion device", fpm, liquidMaxFPM))
		}
		return warns
	}
	if riser {
		if ms < riserMinMS {
			warns = append(warns, fmt.Sprintf(
				"riser velocity %.1f m/s is below %.0f m/s: oil may not carry up the vertical run", ms, riserMinMS))
		}
		if ms > riserMaxMS {
			warns = append(warns, fmt.Sprintf(
				"riser velocity %.1f m/s is above %.0f m/s: expect noise and excessive pressure drop", ms, riserMaxMS))
		}
		return warns
	}
	if ms < horizontalMinMS {
		warns = append(warns, fmt.Sprintf(
			"horizontal run velocity %.1f m/s is below %.0f m/s: insufficient for oil return", ms, horizontalMinMS))
	}
	return warns
}
