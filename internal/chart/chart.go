package chart

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	sizing "github.com/00001120-alt/refrigerante/internal/calc/sizing"
)

// Kind picks which curve a chart shows.
type Kind string

const (
	KindVelocity Kind = "velocity"
	KindTempLoss Kind = "temp_loss"
)

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindVelocity, "":
		return KindVelocity, nil
	case KindTempLoss:
		return KindTempLoss, nil
	}
	return "", fmt.Errorf("unknown chart kind %q", s)
}

// Data is one sizing run reshaped for plotting: the candidate curves over
// inner diameter plus the criteria they are judged against.
type Data struct {
	Title         string
	Criteria      sizing.Criteria
	DiametersIn   []float64
	Velocities    []float64 // in Criteria.VelocityUnit
	TempLossesF   []float64
	SelectedIndex int
}

// FromResult extracts the plottable series from a sizing result.
func FromResult(res sizing.Result) Data {
	criteria := sizing.CriteriaFor(res.Input.Line, res.Input.VerticalRiseFt > 0)
	d := Data{
		Title: fmt.Sprintf("%s %s, %.0f BTU/h over %.0f ft",
			res.Input.Refrigerant, res.Input.Line, res.Input.CapacityBTUH, res.Input.EquivalentLengthFt),
		Criteria:      criteria,
		DiametersIn:   make([]float64, len(res.Evaluations)),
		Velocities:    make([]float64, len(res.Evaluations)),
		TempLossesF:   make([]float64, len(res.Evaluations)),
		SelectedIndex: res.SelectedIndex,
	}
	for i, ev := range res.Evaluations {
		d.DiametersIn[i] = ev.Tube.InnerDiameterIn
		d.TempLossesF[i] = ev.TempLossF
		if criteria.VelocityUnit == sizing.UnitFPM {
			d.Velocities[i] = ev.VelocityFPM
		} else {
			d.Velocities[i] = ev.VelocityMS
		}
	}
	return d
}

func (d Data) series(kind Kind) ([]float64, string, []float64) {
	if kind == KindTempLoss {
		return d.TempLossesF, "Temperature loss (F)", []float64{d.Criteria.TempLossLimitF}
	}
	var limits []float64
	if d.Criteria.VelocityMin > 0 {
		limits = append(limits, d.Criteria.VelocityMin)
	}
	if d.Criteria.VelocityMax > 0 {
		limits = append(limits, d.Criteria.VelocityMax)
	}
	return d.Velocities, fmt.Sprintf("Velocity (%s)", d.Criteria.VelocityUnit), limits
}

func buildPlot(d Data, kind Kind) (*plot.Plot, error) {
	values, label, limits := d.series(kind)
	if len(values) == 0 {
		return nil, fmt.Errorf("no evaluations to plot")
	}

	p := plot.New()
	p.Title.Text = d.Title
	p.X.Label.Text = "Inner diameter (in)"
	p.Y.Label.Text = label

	pts := make(plotter.XYs, len(values))
	for i := range values {
		pts[i] = plotter.XY{X: d.DiametersIn[i], Y: values[i]}
	}
	curve, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	curve.LineStyle.Width = vg.Points(2)
	curve.LineStyle.Color = color.RGBA{R: 0, G: 90, B: 181, A: 255}
	p.Add(curve)
	p.Legend.Add(label, curve)

	minX := floats.Min(d.DiametersIn)
	maxX := floats.Max(d.DiametersIn)
	for _, limit := range limits {
		line, err := plotter.NewLine(plotter.XYs{
			{X: minX, Y: limit},
			{X: maxX, Y: limit},
		})
		if err != nil {
			return nil, err
		}
		line.LineStyle.Width = vg.Points(1.5)
		line.LineStyle.Color = color.RGBA{R: 255, G: 0, B: 0, A: 255}
		line.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("limit %.1f", limit), line)
	}

	if d.SelectedIndex >= 0 && d.SelectedIndex < len(values) {
		selected, err := plotter.NewScatter(plotter.XYs{
			{X: d.DiametersIn[d.SelectedIndex], Y: values[d.SelectedIndex]},
		})
		if err != nil {
			return nil, err
		}
		selected.GlyphStyle.Color = color.RGBA{R: 0, G: 130, B: 0, A: 255}
		selected.GlyphStyle.Radius = vg.Points(5)
		selected.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(selected)
		p.Legend.Add("selected", selected)
	}

	// Keep the limit lines inside the frame.
	if len(limits) > 0 {
		top := floats.Max(values)
		if m := floats.Max(limits); m > top {
			top = m
		}
		p.Y.Max = top * 1.1
	}

	return p, nil
}

// WriteImage renders one chart to a stream. Format is png, svg or pdf.
func WriteImage(w io.Writer, d Data, kind Kind, format string) error {
	switch format {
	case "png", "svg", "pdf":
	case "":
		format = "png"
	default:
		return fmt.Errorf("unknown chart format %q", format)
	}
	p, err := buildPlot(d, kind)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(8*vg.Inch, 6*vg.Inch, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// Export renders one chart to a file, picking the format from the
// extension and defaulting to PNG.
func Export(d Data, kind Kind, filename string) error {
	p, err := buildPlot(d, kind)
	if err != nil {
		return err
	}

	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		os.MkdirAll(dir, 0755)
	}

	switch filepath.Ext(filename) {
	case ".png", ".svg", ".pdf":
		return p.Save(8*vg.Inch, 6*vg.Inch, filename)
	default:
		return p.Save(8*vg.Inch, 6*vg.Inch, filename+".png")
	}
}
