package report

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	sizing "github.com/00001120-alt/refrigerante/internal/calc/sizing"
)

func liquidExample(t *testing.T) sizing.Result {
	t.Helper()
	res, err := sizing.SizeLine(sizing.Input{
		Refrigerant:        "R134a",
		Line:               sizing.LineLiquid,
		CapacityBTUH:       60000,
		EquivalentLengthFt: 50,
	})
	require.NoError(t, err)
	return res
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	in := Input{Project: "Cold room 3", Author: "mgarcia", Notes: "as-built lengths"}
	require.NoError(t, WritePDF(&buf, in, liquidExample(t)))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")), "not a PDF stream")
	assert.Greater(t, buf.Len(), 1000)
}

func TestWritePDFNoSelection(t *testing.T) {
	res, err := sizing.SizeLine(sizing.Input{
		Refrigerant:        "R134a",
		Line:               sizing.LineSuction,
		CapacityBTUH:       467000,
		EquivalentLengthFt: 50,
		VerticalRiseFt:     12,
	})
	require.NoError(t, err)
	require.Nil(t, res.Selected)

	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, Input{}, res))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestWriteXLSXRoundTrip(t *testing.T) {
	res := liquidExample(t)

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, res))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)

	// 5 request rows, a blank, a header, then one row per candidate.
	require.Len(t, rows, 7+len(res.Evaluations))
	assert.Equal(t, "refrigerant", rows[0][0])
	assert.Equal(t, "R134a", rows[0][1])

	selectedRow := rows[7+res.SelectedIndex]
	assert.Equal(t, "1/2", selectedRow[0])
	assert.Equal(t, "yes", selectedRow[8])
	for i, row := range rows[7:] {
		if i == res.SelectedIndex {
			continue
		}
		if len(row) > 8 {
			assert.NotEqual(t, "yes", row[8], "row %d", i)
		}
	}
}

func TestGenerateEndpoint(t *testing.T) {
	body := `{
		"project": "Cold room 3",
		"title": "Suction line",
		"sizing": {"refrigerant": "R134a", "line_type": "succion", "capacity_btu_h": 60000, "equivalent_length_ft": 50, "vertical_rise_ft": 10}
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/user/tools/sizing/report", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h := &Handler{}
	h.Generate(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "sizing-report.pdf")
	assert.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("%PDF")))
}

func TestGenerateEndpointRejectsBadSizing(t *testing.T) {
	h := &Handler{}

	req := httptest.NewRequest(http.MethodPost, "/api/user/tools/sizing/report",
		strings.NewReader(`{"sizing": {"refrigerant": "R22", "line_type": "gas", "capacity_btu_h": 1}}`))
	rr := httptest.NewRecorder()
	h.Generate(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/user/tools/sizing/report",
		strings.NewReader(`{"sizing": {"refrigerant": "R999", "line_type": "liquido", "capacity_btu_h": 1}}`))
	rr = httptest.NewRecorder()
	h.Generate(rr, req)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestExportEndpoint(t *testing.T) {
	body := `{"sizing": {"refrigerant": "R404A", "line_type": "liquido", "capacity_btu_h": 24000, "equivalent_length_ft": 30}}`
	req := httptest.NewRequest(http.MethodPost, "/api/user/tools/sizing/export", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h := &Handler{}
	h.Export(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "sizing.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(rr.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 7+22)
}
