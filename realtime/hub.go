// Package realtime pushes change events to connected browsers over
// WebSocket. Rooms are per-user ("student:7") and per-role ("teachers",
// "admins"); delivery is at-most-once and best effort. Nothing is queued
// for disconnected clients; the notifications table is the durable fallback.
package realtime

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Envelope is the wire format for every pushed event.
type Envelope struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*Client]struct{}

	log      *zap.Logger
	upgrader websocket.Upgrader
}

func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		rooms: make(map[string]map[*Client]struct{}),
		log:   log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// same-origin policy is enforced by the reverse proxy in front
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

func userRoom(role string, id uint) string { return fmt.Sprintf("%s:%d", role, id) }
func roleRoom(role string) string          { return role + "s" } // teachers, admins, students

// Serve upgrades the request and registers the client in its user room and
// its role room. Blocks until the connection closes.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, role string, id uint) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	c := newClient(conn, []string{userRoom(role, id), roleRoom(role)})
	h.join(c)
	h.log.Info("ws connected", zap.String("client", c.id), zap.String("role", role), zap.Uint("user_id", id))

	go c.writePump(h)
	c.readPump(h) // returns when the peer goes away
	return nil
}

func (h *Hub) join(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, room := range c.rooms {
		if h.rooms[room] == nil {
			h.rooms[room] = make(map[*Client]struct{})
		}
		h.rooms[room][c] = struct{}{}
	}
}

func (h *Hub) leave(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, room := range c.rooms {
		if members, ok := h.rooms[room]; ok {
			delete(members, c)
			if len(members) == 0 {
				delete(h.rooms, room)
			}
		}
	}
}

// broadcast sends to every member of a room. A client whose send buffer is
// full is dropped rather than allowed to stall the rest.
func (h *Hub) broadcast(room, event string, payload any) {
	h.mu.RLock()
	members := make([]*Client, 0, len(h.rooms[room]))
	for c := range h.rooms[room] {
		members = append(members, c)
	}
	h.mu.RUnlock()

	if len(members) == 0 {
		return
	}
	env := Envelope{Event: event, Payload: payload}
	for _, c := range members {
		if !c.trySend(env) {
			h.log.Warn("ws client too slow, dropping", zap.String("client", c.id), zap.String("room", room))
			c.close()
			h.leave(c)
		}
	}
}

// ToUser implements ledger.Notifier for a single-user scope.
func (h *Hub) ToUser(role string, id uint, event string, payload any) {
	h.broadcast(userRoom(role, id), event, payload)
}

// ToRole implements ledger.Notifier for a role-wide scope.
func (h *Hub) ToRole(role string, event string, payload any) {
	h.broadcast(roleRoom(role), event, payload)
}

// RoomSize reports current membership, used by tests and the health handler.
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}
