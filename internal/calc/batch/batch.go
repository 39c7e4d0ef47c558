package batch

import (
	"fmt"

	sizing "github.com/00001120-alt/refrigerante/internal/calc/sizing"
)

type SizingBatchInput struct {
	Items []sizing.Request `json:"items"`
}

// SizingBatchItem is one row's outcome. Exactly one of Error and Result
// is set; rows keep their submitted position via Index.
type SizingBatchItem struct {
	Index    int            `json:"index"`
	Result   *sizing.Result `json:"result,omitempty"`
	Advisory string         `json:"advisory,omitempty"`
	Error    string         `json:"error,omitempty"`
}

type SizingBatchResult struct {
	Count int               `json:"count"`
	Items []SizingBatchItem `json:"items"`
}

// CalculateSizing sizes every row independently. A bad row is reported in
// place and does not stop the rest of the batch; Count is the number of
// rows that sized cleanly.
func CalculateSizing(in SizingBatchInput) (SizingBatchResult, error) {
	if len(in.Items) == 0 {
		return SizingBatchResult{}, fmt.Errorf("no items")
	}
	out := SizingBatchResult{Items: make([]SizingBatchItem, 0, len(in.Items))}
	for i, req := range in.Items {
		item := SizingBatchItem{Index: i}
		input, err := req.ToInput()
		if err != nil {
			item.Error = err.Error()
			out.Items = append(out.Items, item)
			continue
		}
		res, err := sizing.SizeLine(input)
		if err != nil {
			item.Error = err.Error()
			out.Items = append(out.Items, item)
			continue
		}
		item.Result = &res
		if res.SelectedIndex < 0 {
			item.Advisory = sizing.AdvisoryNoSelection
		}
		out.Count++
		out.Items = append(out.Items, item)
	}
	return out, nil
}
