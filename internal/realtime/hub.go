// Package realtime pushes bracket progression events to connected
// frontends over WebSocket (SPEC_FULL ambient addition: the engine itself
// is pure and has no process surface, per spec §6, but a frontend watching
// a live bracket needs to know the moment a new match becomes playable
// without polling for it).
package realtime

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/bracketeer/bracket/internal/domain"
)

// EventType names the kind of change a Hub broadcasts.
type EventType string

const (
	// EventNewPlayable fires once per publish, carrying the IDs of every
	// match that just became playable in one event (spec §6:
	// report/validate/disqualify all return new_playable lists).
	EventNewPlayable EventType = "new_playable"
	// EventBracketOver fires once when a bracket's final match resolves.
	EventBracketOver EventType = "bracket_over"
)

// Event is the wire message broadcast to every connected client.
type Event struct {
	Type      EventType        `json:"type"`
	BracketID domain.BracketID `json:"bracket_id"`
	MatchIDs  []domain.MatchID `json:"match_ids,omitempty"`
}

// Client is a single registered WebSocket connection.
type Client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub maintains the set of connected clients and fans out broadcast
// events to every one of them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan Event
	register   chan *Client
	unregister chan *Client
	mu         sync.Mutex
}

// NewHub builds an unstarted Hub; call Run in its own goroutine before
// accepting connections.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan Event),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run processes register/unregister/broadcast until ctx-independent
// shutdown (the caller simply stops calling into the Hub; there is no
// internal stop channel since the process owns the Hub for its lifetime).
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			h.mu.Unlock()
		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()
		case event := <-h.broadcast:
			data, err := json.Marshal(event)
			if err != nil {
				log.Printf("realtime: marshal event: %v", err)
				continue
			}
			h.mu.Lock()
			for c := range h.clients {
				select {
				case c.send <- data:
				default:
					close(c.send)
					delete(h.clients, c)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publish queues event for broadcast to every connected client. Safe to
// call before any client has connected; it just fans out to nobody.
func (h *Hub) Publish(event Event) {
	h.broadcast <- event
}

// PublishNewPlayable is sugar for the common case of announcing that
// matchIDs just became playable in bracketID. A nil/empty matchIDs is a
// no-op — callers pass the playable-match list returned by
// bracket.Start/Validate/Disqualify/Withdraw straight through without
// checking its length first.
func (h *Hub) PublishNewPlayable(bracketID domain.BracketID, matchIDs []domain.MatchID) {
	if len(matchIDs) == 0 {
		return
	}
	h.Publish(Event{Type: EventNewPlayable, BracketID: bracketID, MatchIDs: matchIDs})
}

// PublishBracketOver announces that bracketID's final match has resolved.
func (h *Hub) PublishBracketOver(bracketID domain.BracketID) {
	h.Publish(Event{Type: EventBracketOver, BracketID: bracketID})
}

// Register adds c to the hub's client set.
func (h *Hub) Register(c *Client) {
	h.register <- c
}

// writePump drains c.send to the underlying connection until it is closed.
func (c *Client) writePump() {
	defer c.conn.Close()
	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// readPump discards client-sent frames, existing only to detect a closed
// connection (this Hub is server-to-client broadcast only).
func (c *Client) readPump(h *Hub) {
	defer func() {
		h.unregister <- c
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
