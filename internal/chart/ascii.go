package chart

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"
)

// DrawASCII renders the chosen curve as a terminal chart. The candidates
// run left to right in catalog order; criteria limits are drawn as flat
// series.
func DrawASCII(d Data, kind Kind) string {
	values, label, limits := d.series(kind)
	if len(values) == 0 {
		return ""
	}

	series := [][]float64{values}
	for _, limit := range limits {
		flat := make([]float64, len(values))
		for i := range flat {
			flat[i] = limit
		}
		series = append(series, flat)
	}

	caption := fmt.Sprintf("%s by catalog position", label)
	if d.Title != "" {
		caption = d.Title + " - " + caption
	}

	var sb strings.Builder
	sb.WriteString(asciigraph.PlotMany(series,
		asciigraph.Height(12),
		asciigraph.Width(64),
		asciigraph.Caption(caption),
	))
	sb.WriteString("\n")
	if d.SelectedIndex >= 0 && d.SelectedIndex < len(d.DiametersIn) {
		sb.WriteString(fmt.Sprintf("selected: position %d, %.3f in bore\n",
			d.SelectedIndex, d.DiametersIn[d.SelectedIndex]))
	} else {
		sb.WriteString("selected: none\n")
	}
	return sb.String()
}
