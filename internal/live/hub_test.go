package live

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sizing "github.com/00001120-alt/refrigerante/internal/calc/sizing"
)

func TestHandleSize(t *testing.T) {
	h := NewHub()
	reply := h.handle(Msg{
		Type:    "size",
		Content: `{"refrigerant": "R134a", "line_type": "liquido", "capacity_btu_h": 60000, "equivalent_length_ft": 50}`,
	})

	require.Equal(t, "result", reply.Type)
	var resp sizing.Response
	require.NoError(t, json.Unmarshal([]byte(reply.Content), &resp))
	assert.Len(t, resp.Evaluations, 22)
	assert.Equal(t, 3, resp.SelectedIndex)
	assert.Empty(t, resp.Advisory)
}

func TestHandleSizeNoSelection(t *testing.T) {
	h := NewHub()
	reply := h.handle(Msg{
		Type:    "size",
		Content: `{"refrigerant": "R134a", "line_type": "succion", "capacity_btu_h": 467000, "equivalent_length_ft": 50, "vertical_rise_ft": 12}`,
	})

	require.Equal(t, "result", reply.Type)
	var resp sizing.Response
	require.NoError(t, json.Unmarshal([]byte(reply.Content), &resp))
	assert.Equal(t, -1, resp.SelectedIndex)
	assert.Equal(t, sizing.AdvisoryNoSelection, resp.Advisory)
}

func TestHandleErrors(t *testing.T) {
	h := NewHub()

	reply := h.handle(Msg{Type: "size", Content: "not json"})
	assert.Equal(t, "error", reply.Type)

	reply = h.handle(Msg{Type: "size", Content: `{"refrigerant": "R999", "line_type": "liquido", "capacity_btu_h": 1}`})
	assert.Equal(t, "error", reply.Type)
	assert.Contains(t, reply.Content, "unsupported refrigerant")

	reply = h.handle(Msg{Type: "emergency"})
	assert.Equal(t, "error", reply.Type)
	assert.Contains(t, reply.Content, "no such type")
}

func TestHandleCatalogs(t *testing.T) {
	h := NewHub()

	reply := h.handle(Msg{Type: "refrigerants"})
	require.Equal(t, "refrigerants", reply.Type)
	var refs []sizing.Refrigerant
	require.NoError(t, json.Unmarshal([]byte(reply.Content), &refs))
	assert.Len(t, refs, 5)

	reply = h.handle(Msg{Type: "tubes"})
	require.Equal(t, "tubes", reply.Type)
	var tubes []sizing.Tube
	require.NoError(t, json.Unmarshal([]byte(reply.Content), &tubes))
	assert.Len(t, tubes, 22)
}

// End to end: dial the upgraded endpoint, send a sizing frame, read the
// result frame.
func TestServeWS(t *testing.T) {
	s := NewServer()
	mux := http.NewServeMux()
	mux.HandleFunc("/ws/sizing", s.ServeWS)
	ts := httptest.NewServer(mux)
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/sizing"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	defer conn.Close()

	err = conn.WriteJSON(Msg{
		Type:    "size",
		Content: `{"refrigerant": "R22", "line_type": "descarga", "capacity_btu_h": 30000, "equivalent_length_ft": 25}`,
	})
	require.NoError(t, err)

	var reply Msg
	require.NoError(t, conn.ReadJSON(&reply))
	require.Equal(t, "result", reply.Type)

	var out sizing.Response
	require.NoError(t, json.Unmarshal([]byte(reply.Content), &out))
	assert.Len(t, out.Evaluations, 22)
}
