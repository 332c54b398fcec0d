package ws

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"checkers-server/internal/game"
	"checkers-server/internal/obslog"
	"checkers-server/internal/room"
)

// Registry is the slice of the session registry the hub drives.
type Registry interface {
	JoinRoom(roomID, connID string) (game.Side, error)
	Propose(connID string, from, to game.Pos) error
	Leave(connID string)
	ListRoomIDs() []string
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins
	},
}

type envelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// client serializes writes to one websocket connection.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) write(event string, data interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(envelope{Event: event, Data: data})
}

// Hub fans outbound core events out to connected clients and feeds
// inbound actions into the registry. It implements room.Broadcaster.
type Hub struct {
	mu       sync.RWMutex
	clients  map[string]*client            // conn id -> client
	rooms    map[string]map[string]*client // room id -> conn id -> client
	registry Registry
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*client),
		rooms:   make(map[string]map[string]*client),
	}
}

// AttachRegistry wires the session registry; must happen before the
// router starts serving /ws.
func (h *Hub) AttachRegistry(r Registry) {
	h.registry = r
}

func (h *Hub) HandleWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		obslog.L().Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	connID := uuid.NewString()
	cl := &client{conn: conn}

	h.mu.Lock()
	h.clients[connID] = cl
	h.mu.Unlock()

	obslog.L().Info("client connected", zap.String("conn", connID))

	// New clients get the lobby immediately.
	_ = cl.write(room.EventRoomList, room.RoomListPayload{Rooms: h.registry.ListRoomIDs()})

	defer func() {
		h.registry.Leave(connID)
		h.drop(connID)
		_ = conn.Close()
		obslog.L().Info("client disconnected", zap.String("conn", connID))
	}()

	for {
		var msg struct {
			Action string          `json:"action"`
			Data   json.RawMessage `json:"data"`
		}
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}

		switch msg.Action {
		case "join_room":
			h.handleJoin(connID, cl, msg.Data)
		case "propose_move":
			h.handlePropose(connID, cl, msg.Data)
		default:
			obslog.L().Warn("unknown action", zap.String("action", msg.Action))
			h.reject(cl, "unknown_action")
		}
	}
}

func (h *Hub) handleJoin(connID string, cl *client, raw json.RawMessage) {
	var payload struct {
		RoomID string `json:"room_id"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		h.reject(cl, "malformed_payload")
		return
	}

	// The session calls Enter once the seat is taken, so the joiner is
	// in the delivery set before its own join broadcasts fire and a
	// rejected join leaves the hub untouched.
	if _, err := h.registry.JoinRoom(payload.RoomID, connID); err != nil {
		h.reject(cl, err.Error())
	}
}

func (h *Hub) handlePropose(connID string, cl *client, raw json.RawMessage) {
	var payload struct {
		From game.Pos `json:"from"`
		To   game.Pos `json:"to"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		h.reject(cl, "malformed_payload")
		return
	}
	if err := h.registry.Propose(connID, payload.From, payload.To); err != nil {
		h.reject(cl, err.Error())
	}
}

// reject notifies only the offending client; other participants never
// see another player's failed proposals.
func (h *Hub) reject(cl *client, code string) {
	_ = cl.write(room.EventRejected, room.RejectedPayload{Code: code})
}

// Enter adds a seated player to the room's delivery set.
func (h *Hub) Enter(roomID, connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	cl, ok := h.clients[connID]
	if !ok {
		return
	}
	if _, ok := h.rooms[roomID]; !ok {
		h.rooms[roomID] = make(map[string]*client)
	}
	h.rooms[roomID][connID] = cl
}

// Exit removes an unseated player from the room's delivery set.
func (h *Hub) Exit(roomID, connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if members, ok := h.rooms[roomID]; ok {
		delete(members, connID)
		if len(members) == 0 {
			delete(h.rooms, roomID)
		}
	}
}

func (h *Hub) drop(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, connID)
	for roomID, members := range h.rooms {
		delete(members, connID)
		if len(members) == 0 {
			delete(h.rooms, roomID)
		}
	}
}

// Broadcast delivers an event to every client in a room.
func (h *Hub) Broadcast(roomID string, event string, data interface{}) {
	h.mu.RLock()
	members := make([]*client, 0, len(h.rooms[roomID]))
	for _, cl := range h.rooms[roomID] {
		members = append(members, cl)
	}
	h.mu.RUnlock()

	for _, cl := range members {
		if err := cl.write(event, data); err != nil {
			obslog.L().Warn("broadcast write failed", zap.String("room", roomID), zap.Error(err))
		}
	}
}

// BroadcastAll delivers an event to every connected client, in or out
// of a room. Used for the lobby list.
func (h *Hub) BroadcastAll(event string, data interface{}) {
	h.mu.RLock()
	all := make([]*client, 0, len(h.clients))
	for _, cl := range h.clients {
		all = append(all, cl)
	}
	h.mu.RUnlock()

	for _, cl := range all {
		if err := cl.write(event, data); err != nil {
			obslog.L().Warn("broadcast write failed", zap.Error(err))
		}
	}
}

// Send delivers an event to a single connection.
func (h *Hub) Send(connID string, event string, data interface{}) {
	h.mu.RLock()
	cl, ok := h.clients[connID]
	h.mu.RUnlock()
	if !ok {
		return
	}
	if err := cl.write(event, data); err != nil {
		obslog.L().Warn("send failed", zap.String("conn", connID), zap.Error(err))
	}
}
