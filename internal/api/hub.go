package api

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/verdantworks/growline/internal/progression/bus"
	"github.com/verdantworks/growline/internal/progression/event"
)

// feedMessage is the JSON envelope for events on the WebSocket feed.
type feedMessage struct {
	Type      string          `json:"type"`
	ProfileID string          `json:"profile_id"`
	Seq       uint64          `json:"seq"`
	Timestamp time.Time       `json:"timestamp"`
	EntityID  string          `json:"entity_id,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// client is one WebSocket connection. Connections subscribed to a profile
// receive only that profile's events; unfiltered connections receive all.
type client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	profileID string
}

// Hub fans journal events out to connected WebSocket clients.
type Hub struct {
	clients    map[*client]bool
	broadcast  chan event.Event
	register   chan *client
	unregister chan *client
	done       chan struct{}
}

// NewHub creates a hub subscribed to all bus events. Run must be started
// before clients connect.
func NewHub(eventBus *bus.Bus) *Hub {
	h := &Hub{
		clients:    make(map[*client]bool),
		broadcast:  make(chan event.Event, 64),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
	}
	if eventBus != nil {
		eventBus.SubscribeAll(func(evt event.Event) {
			select {
			case h.broadcast <- evt:
			default:
				// A full buffer drops the event for the feed only; the
				// journal remains the durable record.
				log.Printf("[API] feed buffer full, dropping %s", evt.Type)
			}
		})
	}
	return h
}

// Run is the hub event loop. It blocks until Stop is called.
func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			for c := range h.clients {
				close(c.send)
				delete(h.clients, c)
			}
			return
		case c := <-h.register:
			h.clients[c] = true
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
		case evt := <-h.broadcast:
			encoded, err := json.Marshal(feedMessage{
				Type:      string(evt.Type),
				ProfileID: evt.ProfileID,
				Seq:       evt.Seq,
				Timestamp: evt.Timestamp,
				EntityID:  evt.EntityID,
				Payload:   json.RawMessage(evt.PayloadJSON),
			})
			if err != nil {
				log.Printf("[API] encode feed event: %v", err)
				continue
			}
			for c := range h.clients {
				if c.profileID != "" && c.profileID != evt.ProfileID {
					continue
				}
				select {
				case c.send <- encoded:
				default:
					// Slow consumer; drop the connection rather than
					// stalling the loop.
					close(c.send)
					delete(h.clients, c)
				}
			}
		}
	}
}

// Stop shuts the hub down and disconnects every client.
func (h *Hub) Stop() {
	close(h.done)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeWS upgrades the request to a WebSocket subscribed to the feed. An
// optional profile_id query parameter narrows the feed to one profile.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[API] websocket upgrade: %v", err)
		return
	}

	c := &client{
		hub:       h,
		conn:      conn,
		send:      make(chan []byte, 256),
		profileID: r.URL.Query().Get("profile_id"),
	}
	h.register <- c

	go c.writePump()
	go c.readPump()
}

// readPump drains the connection so pings and close frames are processed.
// The feed is one-way; inbound messages are discarded.
func (c *client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[API] websocket read: %v", err)
			}
			return
		}
	}
}

// writePump writes queued feed messages until the send channel closes.
func (c *client) writePump() {
	defer c.conn.Close()
	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
