package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"kitchenmate/internal/planner"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	sendBuffer = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub fans plan views out to the websocket clients watching each plan
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*wsClient]struct{}
	logger  *log.Logger
}

// NewHub creates an empty hub
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		clients: make(map[string]map[*wsClient]struct{}),
		logger:  logger,
	}
}

var _ planner.Notifier = (*Hub)(nil)

// Publish sends view to every client of the plan. Clients whose buffer is
// full miss the update.
func (h *Hub) Publish(planID string, view planner.View) {
	data, err := json.Marshal(planUpdate{Type: "plan", Plan: &view})
	if err != nil {
		h.logger.Error("failed to marshal plan update", "plan", planID, "err", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients[planID] {
		select {
		case client.send <- data:
		default:
			h.logger.Warn("websocket buffer full, dropping update", "plan", planID)
		}
	}
}

// Subscribers returns the number of clients watching a plan
func (h *Hub) Subscribers(planID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[planID])
}

// Close disconnects every client
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for planID, clients := range h.clients {
		for client := range clients {
			close(client.send)
		}
		delete(h.clients, planID)
	}
}

func (h *Hub) register(c *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[c.planID] == nil {
		h.clients[c.planID] = make(map[*wsClient]struct{})
	}
	h.clients[c.planID][c] = struct{}{}
}

func (h *Hub) unregister(c *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients, ok := h.clients[c.planID]
	if !ok {
		return
	}
	if _, ok := clients[c]; !ok {
		return
	}
	delete(clients, c)
	close(c.send)
	if len(clients) == 0 {
		delete(h.clients, c.planID)
	}
}

type planUpdate struct {
	Type  string        `json:"type"`
	Plan  *planner.View `json:"plan,omitempty"`
	Error string        `json:"error,omitempty"`
}

type clientMessage struct {
	Type string `json:"type"`
}

// wsClient is one websocket connection watching a plan
type wsClient struct {
	conn   *websocket.Conn
	send   chan []byte
	planID string
	userID string
	server *Server
}

// handlePlanUpdates streams the plan view to the client after every change
func (s *Server) handlePlanUpdates(c *gin.Context) {
	planID := c.Param("id")
	user := currentUser(c)

	view, err := s.plans.Get(c.Request.Context(), user, planID)
	if err != nil {
		s.fail(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn("failed to upgrade connection", "err", err)
		return
	}

	client := &wsClient{
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		planID: planID,
		userID: user,
		server: s,
	}
	s.hub.register(client)
	client.push(planUpdate{Type: "plan", Plan: &view})

	go client.writePump()
	go client.readPump()
}

// readPump handles refresh requests until the connection closes
func (c *wsClient) readPump() {
	defer func() {
		c.server.hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(4096)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.server.logger.Warn("websocket error", "plan", c.planID, "err", err)
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(message, &msg); err != nil || msg.Type != "refresh" {
			c.push(planUpdate{Type: "error", Error: "unsupported message"})
			continue
		}
		// the hub delivers the refreshed view
		if _, err := c.server.plans.Refresh(context.Background(), c.userID, c.planID); err != nil {
			c.push(planUpdate{Type: "error", Error: err.Error()})
		}
	}
}

// writePump delivers queued messages and keeps the connection alive
func (c *wsClient) writePump() {
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
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// push queues a message for this client only
func (c *wsClient) push(update planUpdate) {
	data, err := json.Marshal(update)
	if err != nil {
		return
	}
	c.server.hub.mu.RLock()
	defer c.server.hub.mu.RUnlock()
	if _, ok := c.server.hub.clients[c.planID][c]; !ok {
		return
	}
	select {
	case c.send <- data:
	default:
		c.server.logger.Warn("websocket buffer full, dropping message", "plan", c.planID)
	}
}
