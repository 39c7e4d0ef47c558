package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"

	sizing "github.com/00001120-alt/refrigerante/internal/calc/sizing"
)

// Uploaded sheets carry one sizing request per row:
// refrigerant, line_type, capacity_btu_h, equivalent_length_ft,
// vertical_rise_ft, evaporating_temp_f, condensing_temp_f, liquid_temp_f.
// The first four are required, the rest default to zero. Row one is the
// header. CSV files use the same names as column headers.

// parseUpload picks the decoder by file name and returns the parseable
// requests plus the number of rows dropped as malformed.
func parseUpload(filename string, file io.Reader) ([]sizing.Request, int, error) {
	if strings.HasSuffix(strings.ToLower(filename), ".csv") {
		return parseCSV(file)
	}
	return parseXLSX(file)
}

func parseXLSX(file io.Reader) ([]sizing.Request, int, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid file")
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil || len(rows) < 2 {
		return nil, 0, fmt.Errorf("empty sheet")
	}

	var reqs []sizing.Request
	skipped := 0
	for i := 1; i < len(rows); i++ {
		req, err := parseSizingRow(rows[i])
		if err != nil {
			skipped++
			continue
		}
		reqs = append(reqs, req)
	}
	return reqs, skipped, nil
}

// csvRow keeps every cell as text so one bad number drops one row, not
// the whole file.
type csvRow struct {
	Refrigerant        string `csv:"refrigerant"`
	LineType           string `csv:"line_type"`
	CapacityBTUH       string `csv:"capacity_btu_h"`
	EquivalentLengthFt string `csv:"equivalent_length_ft"`
	VerticalRiseFt     string `csv:"vertical_rise_ft"`
	EvaporatingTempF   string `csv:"evaporating_temp_f"`
	CondensingTempF    string `csv:"condensing_temp_f"`
	LiquidTempF        string `csv:"liquid_temp_f"`
}

func parseCSV(file io.Reader) ([]sizing.Request, int, error) {
	var rows []*csvRow
	if err := gocsv.Unmarshal(file, &rows); err != nil {
		return nil, 0, fmt.Errorf("invalid file")
	}
	if len(rows) == 0 {
		return nil, 0, fmt.Errorf("empty sheet")
	}

	var reqs []sizing.Request
	skipped := 0
	for _, row := range rows {
		req, err := parseSizingRow([]string{
			row.Refrigerant, row.LineType, row.CapacityBTUH, row.EquivalentLengthFt,
			row.VerticalRiseFt, row.EvaporatingTempF, row.CondensingTempF, row.LiquidTempF,
		})
		if err != nil {
			skipped++
			continue
		}
		reqs = append(reqs, req)
	}
	return reqs, skipped, nil
}

func parseSizingRow(row []string) (sizing.Request, error) {
	if len(row) < 4 {
		return sizing.Request{}, fmt.Errorf("bad row")
	}
	refrigerant := strings.TrimSpace(row[0])
	lineType := strings.TrimSpace(row[1])
	if refrigerant == "" || lineType == "" {
		return sizing.Request{}, fmt.Errorf("bad row")
	}
	capacity, err := toFloat(row[2])
	if err != nil {
		return sizing.Request{}, err
	}
	length, err := toFloat(row[3])
	if err != nil {
		return sizing.Request{}, err
	}
	rise := 0.0
	if len(row) > 4 && row[4] != "" {
		rise, _ = toFloat(row[4])
	}
	evap := 0.0
	if len(row) > 5 && row[5] != "" {
		evap, _ = toFloat(row[5])
	}
	cond := 0.0
	if len(row) > 6 && row[6] != "" {
		cond, _ = toFloat(row[6])
	}
	liquid := 0.0
	if len(row) > 7 && row[7] != "" {
		liquid, _ = toFloat(row[7])
	}
	return sizing.Request{
		Refrigerant:        refrigerant,
		LineType:           lineType,
		CapacityBTUH:       capacity,
		EquivalentLengthFt: length,
		VerticalRiseFt:     rise,
		EvaporatingTempF:   evap,
		CondensingTempF:    cond,
		LiquidTempF:        liquid,
	}, nil
}

func toFloat(s string) (float64, error) {
	var v float64
	_, err := fmt.Sscanf(strings.TrimSpace(s), "%f", &v)
	return v, err
}
