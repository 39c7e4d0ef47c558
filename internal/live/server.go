package live

import (
	"net/http"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

type Server struct {
	upgrader websocket.Upgrader
}

func NewServer() *Server {
	return &Server{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The HTTP API is open to any origin; the socket follows it.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeWS upgrades the request and pumps frames through a per-connection
// hub until the peer goes away.
func (s *Server) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("upgrade: ", err)
		return
	}
	defer conn.Close()

	hub := NewHub()
	go hub.run()
	go func() {
		for reply := range hub.replies {
			if err := conn.WriteJSON(&reply); err != nil {
				log.Warn("write: ", err)
				return
			}
		}
	}()

	for {
		var msg Msg
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("read: ", err)
			}
			close(hub.msg)
			return
		}
		hub.msg <- msg
	}
}
