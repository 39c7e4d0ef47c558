package live

import (
	"encoding/json"
	"fmt"

	log "github.com/sirupsen/logrus"

	sizing "github.com/00001120-alt/refrigerante/internal/calc/sizing"
)

// Msg is one frame in either direction. Content carries a JSON document
// when the type calls for one: a sizing request inbound, a result or
// catalog outbound.
type Msg struct {
	Type    string `json:"type"`
	Content string `json:"content,omitempty"`
}

// Hub serves one connection. Requests come in through msg and replies
// leave through replies in request order.
type Hub struct {
	msg     chan Msg
	replies chan Msg
}

func NewHub() *Hub {
	return &Hub{
		msg:     make(chan Msg, 10),
		replies: make(chan Msg, 10),
	}
}

// run turns requests into replies until the request channel closes, then
// closes the reply channel so the writer drains and exits.
func (h *Hub) run() {
	for msg := range h.msg {
		h.replies <- h.handle(msg)
	}
	close(h.replies)
}

func (h *Hub) handle(msg Msg) Msg {
	switch msg.Type {
	case "size":
		return h.size(msg)
	case "refrigerants":
		return marshalReply("refrigerants", sizing.Refrigerants())
	case "tubes":
		return marshalReply("tubes", sizing.CopperTubes())
	default:
		log.Warn("no such type: ", msg.Type)
		return Msg{Type: "error", Content: fmt.Sprintf("no such type %q", msg.Type)}
	}
}

// size runs one sizing request. Engine trouble comes back as an error
// frame; the no-selection outcome is a normal result with the advisory.
func (h *Hub) size(msg Msg) Msg {
	var req sizing.Request
	if err := json.Unmarshal([]byte(msg.Content), &req); err != nil {
		return Msg{Type: "error", Content: "invalid sizing content"}
	}
	in, err := req.ToInput()
	if err != nil {
		return Msg{Type: "error", Content: err.Error()}
	}
	res, err := sizing.SizeLine(in)
	if err != nil {
		return Msg{Type: "error", Content: err.Error()}
	}
	out := sizing.Response{Result: res}
	if res.SelectedIndex < 0 {
		out.Advisory = sizing.AdvisoryNoSelection
	}
	return marshalReply("result", out)
}

func marshalReply(typ string, v any) Msg {
	data, err := json.Marshal(v)
	if err != nil {
		log.Error("marshal reply: ", err)
		return Msg{Type: "error", Content: "internal error"}
	}
	return Msg{Type: typ, Content: string(data)}
}
