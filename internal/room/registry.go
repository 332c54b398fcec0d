package room

import (
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"checkers-server/internal/config"
	"checkers-server/internal/game"
	"checkers-server/internal/obslog"
)

type Store interface {
	Get(roomID string) (*Session, bool)
	Save(s *Session)
	Delete(roomID string)
	List() []string
}

// Registry owns the table of live sessions. It only does membership
// bookkeeping; game logic lives in the sessions it hands out.
type Registry struct {
	mu    sync.Mutex
	store Store
	conns map[string]string // connection id -> room id
	cfg   config.Config
	emit  Broadcaster
}

func NewRegistry(store Store, cfg config.Config, b Broadcaster) *Registry {
	return &Registry{
		store: store,
		conns: make(map[string]string),
		cfg:   cfg,
		emit:  b,
	}
}

// JoinRoom admits a connection into the named room, creating a waiting
// session on first join. A connection belongs to at most one room.
func (r *Registry) JoinRoom(roomID, connID string) (game.Side, error) {
	roomID = strings.TrimSpace(roomID)
	if roomID == "" {
		return game.NoSide, ErrInvalidRoomID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.conns[connID]; ok {
		return game.NoSide, ErrAlreadyInRoom
	}

	sess, ok := r.store.Get(roomID)
	created := false
	if !ok {
		sess = NewSession(roomID, r.cfg, r.emit)
		r.store.Save(sess)
		created = true
	}

	side, err := sess.Join(connID)
	if err != nil {
		if created {
			r.store.Delete(roomID)
		}
		return game.NoSide, err
	}
	r.conns[connID] = roomID

	if created {
		obslog.L().Info("room opened", zap.String("room", roomID))
		r.emit.BroadcastAll(EventRoomList, RoomListPayload{Rooms: r.listLocked()})
	}
	return side, nil
}

// Propose forwards a move proposal to the connection's session.
func (r *Registry) Propose(connID string, from, to game.Pos) error {
	r.mu.Lock()
	roomID, ok := r.conns[connID]
	var sess *Session
	if ok {
		sess, ok = r.store.Get(roomID)
	}
	r.mu.Unlock()

	if !ok {
		return ErrUnknownRoom
	}
	return sess.ProposeMove(connID, from, to)
}

// Leave removes the connection from its room and reclaims the session
// once its player set is empty.
func (r *Registry) Leave(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	roomID, ok := r.conns[connID]
	if !ok {
		return
	}
	delete(r.conns, connID)

	sess, ok := r.store.Get(roomID)
	if !ok {
		return
	}
	if sess.Disconnect(connID) {
		sess.Close()
		r.store.Delete(roomID)
		obslog.L().Info("room reclaimed", zap.String("room", roomID))
		r.emit.BroadcastAll(EventRoomList, RoomListPayload{Rooms: r.listLocked()})
	}
}

func (r *Registry) ListRoomIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listLocked()
}

func (r *Registry) listLocked() []string {
	ids := r.store.List()
	sort.Strings(ids)
	return ids
}

func (r *Registry) Snapshot(roomID string) (Snapshot, error) {
	r.mu.Lock()
	sess, ok := r.store.Get(strings.TrimSpace(roomID))
	r.mu.Unlock()
	if !ok {
		return Snapshot{}, ErrUnknownRoom
	}
	return sess.Snapshot(), nil
}

// Shutdown closes every session and cancels their clocks.
func (r *Registry) Shutdown() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range r.store.List() {
		if sess, ok := r.store.Get(id); ok {
			sess.Close()
		}
		r.store.Delete(id)
	}
	r.conns = make(map[string]string)
}
