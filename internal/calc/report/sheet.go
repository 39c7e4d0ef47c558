package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	sizing "github.com/00001120-alt/refrigerante/internal/calc/sizing"
)

const sheetName = "Sizing"

// WriteXLSX exports one sizing run as a workbook: request header rows,
// then one row per catalog candidate.
func WriteXLSX(w io.Writer, res sizing.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet(f.GetSheetName(0)); err != nil {
		return err
	}

	rows := [][]any{
		{"refrigerant", res.Input.Refrigerant},
		{"line_type", string(res.Input.Line)},
		{"capacity_btu_h", res.Input.CapacityBTUH},
		{"equivalent_length_ft", res.Input.EquivalentLengthFt},
		{"vertical_rise_ft", res.Input.VerticalRiseFt},
		{},
		{"nominal", "inner_diameter_in", "velocity_fpm", "velocity_ms",
			"reynolds_number", "friction_factor", "pressure_drop_psi", "temp_loss_f",
			"selected", "warnings"},
	}
	for i, ev := range res.Evaluations {
		selected := ""
		if i == res.SelectedIndex {
			selected = "yes"
		}
		warnings := ""
		for j, warn := range ev.Warnings {
			if j > 0 {
				warnings += "; "
			}
			warnings += warn
		}
		rows = append(rows, []any{
			ev.Tube.Nominal, ev.Tube.InnerDiameterIn, ev.VelocityFPM, ev.VelocityMS,
			ev.ReynoldsNumber, ev.FrictionFactor, ev.PressureDropPSI, ev.TempLossF,
			selected, warnings,
		})
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return err
		}
	}

	if res.SelectedIndex < 0 {
		cell, err := excelize.CoordinatesToCellName(1, len(rows)+2)
		if err != nil {
			return err
		}
		advisory := []any{"advisory", sizing.AdvisoryNoSelection}
		if err := f.SetSheetRow(sheetName, cell, &advisory); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
