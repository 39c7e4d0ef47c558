package sizing

import (
	"fmt"
	"sort"
)

const mmPerInch = 25.4

// Tube is one stocked copper size. Diameters are converted to inches; the
// wall stays in the raw millimeter figure the supplier catalog publishes.
type Tube struct {
	Nominal         string  `json:"nominal"`
	OuterDiameterIn float64 `json:"outer_diameter_in"`
	InnerDiameterIn float64 `json:"inner_diameter_in"`
	WallMM          float64 `json:"wall_mm"`
}

// tubeRow is a raw catalog line as published: nominal label, outer
// diameter and wall thickness in millimeters.
type tubeRow struct {
	nominal string
	odMM    float64
	wallMM  float64
}

// Stocked ACR / type-L copper sizes. Nominals repeat where two wall
// thicknesses of the same size are stocked; both stay in the catalog as
// distinct candidates.
var tubeRows = []tubeRow{
	{"1/4", 6.35, 0.762},
	{"3/8", 9.52, 0.813},
	{"3/8", 9.52, 0.889},
	{"1/2", 12.70, 0.813},
	{"1/2", 12.70, 1.016},
	{"5/8", 15.88, 0.889},
	{"5/8", 15.88, 1.067},
	{"3/4", 19.05, 0.889},
	{"3/4", 19.05, 1.143},
	{"7/8", 22.22, 1.143},
	{"7/8", 22.22, 1.270},
	{"1 1/8", 28.58, 1.270},
	{"1 1/8", 28.58, 1.397},
	{"1 3/8", 34.92, 1.397},
	{"1 3/8", 34.92, 1.524},
	{"1 5/8", 41.28, 1.524},
	{"1 5/8", 41.28, 1.778},
	{"2 1/8", 53.98, 1.778},
	{"2 1/8", 53.98, 2.108},
	{"2 5/8", 66.68, 2.032},
	{"3 1/8", 79.38, 2.286},
	{"4 1/8", 104.78, 2.794},
}

var copperTubes = buildCatalog(tubeRows)

// buildCatalog converts raw millimeter rows to inch tubes and orders them
// ascending by inner diameter. First-fit selection scans the result front
// to back, so this ordering is what makes "first match" mean "smallest
// acceptable size". A row whose wall leaves no bore is a data error.
func buildCatalog(rows []tubeRow) []Tube {
	tubes := make([]Tube, 0, len(rows))
	for _, row := range rows {
		id := (row.odMM - 2*row.wallMM) / mmPerInch
		if id <= 0 {
			panic(fmt.Sprintf("sizing: tube %s (%.2f mm OD, %.3f mm wall) has no bore", row.nominal, row.odMM, row.wallMM))
		}
		tubes = append(tubes, Tube{
			Nominal:         row.nominal,
			OuterDiameterIn: row.odMM / mmPerInch,
			InnerDiameterIn: id,
			WallMM:          row.wallMM,
		})
	}
	sort.SliceStable(tubes, func(i, j int) bool {
		return tubes[i].InnerDiameterIn < tubes[j].InnerDiameterIn
	})
	return tubes
}

// CopperTubes returns the candidate catalog ordered by ascending inner
// diameter.
func CopperTubes() []Tube {
	out := make([]Tube, len(copperTubes))
	copy(out, copperTubes)
	return out
}
