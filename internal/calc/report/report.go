package report

import (
	"fmt"
	"io"
	"time"

	"github.com/phpdave11/gofpdf"

	sizing "github.com/00001120-alt/refrigerante/internal/calc/sizing"
)

// Input is a report request: the sizing call to run plus the heading
// fields printed above the results.
type Input struct {
	Project string         `json:"project"`
	Author  string         `json:"author"`
	Title   string         `json:"title"`
	Notes   string         `json:"notes"`
	Sizing  sizing.Request `json:"sizing"`
}

// WritePDF renders one sizing run as a PDF: heading, request summary,
// outcome, and the full candidate table with the selected row shaded.
func WritePDF(w io.Writer, in Input, res sizing.Result) error {
	title := in.Title
	if title == "" {
		title = "Refrigerant Line Sizing Report"
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, title)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Project: %s", in.Project))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Author: %s", in.Author))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", time.Now().Format("2006-01-02")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Request")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Refrigerant: %s    Line: %s", res.Input.Refrigerant, res.Input.Line))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Capacity: %.0f BTU/h    Equivalent length: %.1f ft    Vertical rise: %.1f ft",
		res.Input.CapacityBTUH, res.Input.EquivalentLengthFt, res.Input.VerticalRiseFt))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Outcome")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	if res.Selected != nil {
		sel := res.Selected
		pdf.Cell(0, 6, fmt.Sprintf("Selected tube: %s (%.3f in bore, %.3f mm wall)",
			sel.Tube.Nominal, sel.Tube.InnerDiameterIn, sel.Tube.WallMM))
		pdf.Ln(6)
		pdf.Cell(0, 6, fmt.Sprintf("Velocity: %.0f ft/min (%.2f m/s)    Pressure drop: %.3f psi    Temp loss: %.3f F",
			sel.VelocityFPM, sel.VelocityMS, sel.PressureDropPSI, sel.TempLossF))
		pdf.Ln(6)
		for _, warn := range sel.Warnings {
			pdf.MultiCell(0, 6, "Warning: "+warn, "", "L", false)
		}
	} else {
		pdf.MultiCell(0, 6, "Advisory: "+sizing.AdvisoryNoSelection, "", "L", false)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Candidates")
	pdf.Ln(8)
	writeCandidateTable(pdf, res)

	if in.Notes != "" {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, in.Notes, "", "L", false)
	}

	return pdf.Output(w)
}

var tableColumns = []struct {
	width  float64
	header string
}{
	{20, "Nominal"},
	{18, "ID in"},
	{24, "v ft/min"},
	{18, "v m/s"},
	{28, "Re"},
	{18, "f"},
	{22, "dP psi"},
	{22, "dT F"},
	{12, "Sel"},
}

func writeCandidateTable(pdf *gofpdf.Fpdf, res sizing.Result) {
	pdf.SetFont("Helvetica", "B", 9)
	for _, col := range tableColumns {
		pdf.CellFormat(col.width, 6, col.header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetFillColor(221, 235, 247)
	for i, ev := range res.Evaluations {
		selected := i == res.SelectedIndex
		mark := ""
		if selected {
			mark = "<--"
		}
		cells := []string{
			ev.Tube.Nominal,
			fmt.Sprintf("%.3f", ev.Tube.InnerDiameterIn),
			fmt.Sprintf("%.0f", ev.VelocityFPM),
			fmt.Sprintf("%.2f", ev.VelocityMS),
			fmt.Sprintf("%.0f", ev.ReynoldsNumber),
			fmt.Sprintf("%.4f", ev.FrictionFactor),
			fmt.Sprintf("%.3f", ev.PressureDropPSI),
			fmt.Sprintf("%.3f", ev.TempLossF),
			mark,
		}
		for j, cell := range cells {
			pdf.CellFormat(tableColumns[j].width, 6, cell, "1", 0, "C", selected, 0, "")
		}
		pdf.Ln(-1)
	}
}
