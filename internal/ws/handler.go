package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/playmatatu/fairway/internal/game"
	"github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	commandTimeout = 5 * time.Second
	sendBuffer     = 256
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // origins are checked by middleware before the upgrade
	},
}

// Controller is what a connected client may drive. *game.Session satisfies it.
type Controller interface {
	Advance(ctx context.Context) (game.Snapshot, error)
	SelectClub(ctx context.Context, clubID string) (game.Snapshot, error)
	Snapshot(ctx context.Context) (game.Snapshot, error)
}

// Client is one WebSocket connection watching a session.
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	sessionID string
	ctrl      Controller
	send      chan []byte
	log       *logrus.Entry
}

// Hub fans session events out to the clients watching that session. It
// implements game.Sink.
type Hub struct {
	rooms map[string]map[*Client]bool // sessionID -> clients
	mu    sync.RWMutex
	log   *logrus.Entry
}

func NewHub(log *logrus.Entry) *Hub {
	return &Hub{
		rooms: make(map[string]map[*Client]bool),
		log:   log,
	}
}

// Message is the envelope for everything sent to and received from clients.
type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

type selectClubData struct {
	Club string `json:"club"`
}

// Publish forwards events to every client in the session's room. A client
// whose buffer is full misses the frame rather than stalling the session.
func (h *Hub) Publish(sessionID string, events []game.Event) {
	closed := false
	h.mu.RLock()
	room := h.rooms[sessionID]
	for _, e := range events {
		if e.Type == game.EventSessionClosed {
			closed = true
		}
		if len(room) == 0 {
			continue
		}
		data, err := json.Marshal(e)
		if err != nil {
			h.log.WithError(err).WithField("type", e.Type).Error("Error marshaling event")
			continue
		}
		for client := range room {
			select {
			case client.send <- data:
			default:
				client.log.WithField("type", e.Type).Debug("Send buffer full, dropping frame")
			}
		}
	}
	h.mu.RUnlock()

	if closed {
		h.closeRoom(sessionID)
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room, ok := h.rooms[c.sessionID]
	if !ok {
		room = make(map[*Client]bool)
		h.rooms[c.sessionID] = room
	}
	room[c] = true
	c.log.WithField("watchers", len(room)).Info("Client connected")
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room, ok := h.rooms[c.sessionID]
	if !ok || !room[c] {
		return
	}
	delete(room, c)
	close(c.send)
	if len(room) == 0 {
		delete(h.rooms, c.sessionID)
	}
	c.log.Info("Client disconnected")
}

func (h *Hub) closeRoom(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.rooms[sessionID] {
		close(c.send)
	}
	delete(h.rooms, sessionID)
}

// Serve upgrades the request and attaches the connection to the session's
// room. The current snapshot is sent first so the client can draw at once.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, sessionID string, ctrl Controller) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	client := &Client{
		hub:       h,
		conn:      conn,
		sessionID: sessionID,
		ctrl:      ctrl,
		send:      make(chan []byte, sendBuffer),
		log:       h.log.WithField("session_id", sessionID),
	}
	h.register(client)

	go client.writePump()
	go client.readPump()

	client.reply(client.ctrl.Snapshot)
	return nil
}

// writePump writes messages to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session closed"))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.log.WithError(err).Debug("WebSocket write error")
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.log.WithError(err).Debug("WebSocket ping error")
				return
			}
		}
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.WithError(err).Warn("WebSocket closed unexpectedly")
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.sendError("invalid message")
			continue
		}
		c.handleMessage(msg)
	}
}

func (c *Client) handleMessage(msg Message) {
	switch msg.Type {
	case "advance":
		c.reply(c.ctrl.Advance)

	case "select_club":
		var data selectClubData
		if err := json.Unmarshal(msg.Data, &data); err != nil || data.Club == "" {
			c.sendError("club required")
			return
		}
		c.reply(func(ctx context.Context) (game.Snapshot, error) {
			return c.ctrl.SelectClub(ctx, data.Club)
		})

	case "get_state":
		c.reply(c.ctrl.Snapshot)

	default:
		c.sendError("unknown message type")
	}
}

// reply runs a session command and sends back the resulting snapshot, or the
// error followed by the snapshot when the command was rejected.
func (c *Client) reply(cmd func(context.Context) (game.Snapshot, error)) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	snap, err := cmd(ctx)
	if err != nil {
		c.sendError(err.Error())
		if snap.Holes == 0 {
			return
		}
	}
	c.sendJSON(map[string]interface{}{"type": "snapshot", "data": snap})
}

func (c *Client) sendError(message string) {
	c.sendJSON(map[string]interface{}{"type": "error", "message": message})
}

func (c *Client) sendJSON(v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		c.log.WithError(err).Error("Error marshaling message")
		return
	}

	c.hub.mu.RLock()
	defer c.hub.mu.RUnlock()
	if !c.hub.rooms[c.sessionID][c] {
		return
	}
	select {
	case c.send <- data:
	default:
		c.log.Debug("Send buffer full, dropping reply")
	}
}
