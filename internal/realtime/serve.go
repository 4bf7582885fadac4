package realtime

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Bracket viewers are expected to come from whatever origin the
	// frontend is served from; narrowing this is that frontend's call to
	// make, not this engine's.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWs upgrades r to a WebSocket connection and registers it with h as
// a broadcast-only client.
func ServeWs(h *Hub, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("realtime: upgrade failed: %v", err)
		return
	}

	client := &Client{conn: conn, send: make(chan []byte, 256)}
	h.Register(client)

	go client.writePump()
	go client.readPump(h)
}
