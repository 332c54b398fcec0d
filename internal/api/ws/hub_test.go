package ws

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"checkers-server/internal/config"
	"checkers-server/internal/game"
	"checkers-server/internal/room"
	"checkers-server/internal/store"
)

type received struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T) string {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	cfg.TurnDuration = 30
	cfg.ClockTick = 50 * time.Millisecond

	hub := NewHub()
	reg := room.NewRegistry(store.NewMemoryStore(), cfg, hub)
	hub.AttachRegistry(reg)

	r := gin.New()
	r.GET("/ws", hub.HandleWS)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	t.Cleanup(reg.Shutdown)

	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, action string, data interface{}) {
	t.Helper()
	if err := conn.WriteJSON(map[string]interface{}{"action": action, "data": data}); err != nil {
		t.Fatalf("write %s: %v", action, err)
	}
}

// waitFor reads events until the named one arrives or the deadline hits.
func waitFor(t *testing.T, conn *websocket.Conn, event string) json.RawMessage {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	conn.SetReadDeadline(deadline)
	for time.Now().Before(deadline) {
		var msg received
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("waiting for %s: %v", event, err)
		}
		if msg.Event == event {
			return msg.Data
		}
	}
	t.Fatalf("event %s never arrived", event)
	return nil
}

func TestConnectSendsLobby(t *testing.T) {
	url := newTestServer(t)
	conn := dial(t, url)

	raw := waitFor(t, conn, room.EventRoomList)
	var payload room.RoomListPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(payload.Rooms) != 0 {
		t.Fatalf("fresh lobby should be empty: %v", payload.Rooms)
	}
}

func TestJoinAssignsWhiteThenBlack(t *testing.T) {
	url := newTestServer(t)

	first := dial(t, url)
	send(t, first, "join_room", map[string]string{"room_id": "alpha"})
	raw := waitFor(t, first, room.EventSideAssigned)
	var side room.SidePayload
	if err := json.Unmarshal(raw, &side); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if side.Side != game.White {
		t.Fatalf("first joiner side = %v, want white", side.Side)
	}

	second := dial(t, url)
	send(t, second, "join_room", map[string]string{"room_id": "alpha"})
	raw = waitFor(t, second, room.EventSideAssigned)
	if err := json.Unmarshal(raw, &side); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if side.Side != game.Black {
		t.Fatalf("second joiner side = %v, want black", side.Side)
	}

	// Both players see the game start.
	raw = waitFor(t, first, room.EventPlayerCount)
	var count room.CountPayload
	if err := json.Unmarshal(raw, &count); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
}

func TestThirdJoinRejected(t *testing.T) {
	url := newTestServer(t)

	first := dial(t, url)
	second := dial(t, url)
	third := dial(t, url)
	send(t, first, "join_room", map[string]string{"room_id": "alpha"})
	waitFor(t, first, room.EventSideAssigned)
	send(t, second, "join_room", map[string]string{"room_id": "alpha"})
	waitFor(t, second, room.EventSideAssigned)

	send(t, third, "join_room", map[string]string{"room_id": "alpha"})
	raw := waitFor(t, third, room.EventRejected)
	var rej room.RejectedPayload
	if err := json.Unmarshal(raw, &rej); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if rej.Code != room.ErrRoomFull.Error() {
		t.Fatalf("rejection code = %q, want room_full", rej.Code)
	}
}

func TestProposeMoveBroadcastsBoard(t *testing.T) {
	url := newTestServer(t)

	white := dial(t, url)
	black := dial(t, url)
	send(t, white, "join_room", map[string]string{"room_id": "alpha"})
	waitFor(t, white, room.EventSideAssigned)
	send(t, black, "join_room", map[string]string{"room_id": "alpha"})
	waitFor(t, black, room.EventSideAssigned)

	send(t, white, "propose_move", map[string]interface{}{
		"from": map[string]int{"row": 2, "col": 1},
		"to":   map[string]int{"row": 3, "col": 2},
	})

	raw := waitFor(t, black, room.EventBoardState)
	var payload room.BoardPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload.Board.At(game.Pos{Row: 3, Col: 2}).Side != game.White {
		t.Fatalf("board_state does not reflect the move")
	}
}

func TestDuplicateJoinKeepsDelivery(t *testing.T) {
	url := newTestServer(t)

	white := dial(t, url)
	send(t, white, "join_room", map[string]string{"room_id": "alpha"})
	waitFor(t, white, room.EventSideAssigned)

	// Resending the join is rejected but must not unseat the player.
	send(t, white, "join_room", map[string]string{"room_id": "alpha"})
	raw := waitFor(t, white, room.EventRejected)
	var rej room.RejectedPayload
	if err := json.Unmarshal(raw, &rej); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if rej.Code != room.ErrAlreadyInRoom.Error() {
		t.Fatalf("rejection code = %q, want already_in_room", rej.Code)
	}

	black := dial(t, url)
	send(t, black, "join_room", map[string]string{"room_id": "alpha"})
	waitFor(t, black, room.EventSideAssigned)

	send(t, white, "propose_move", map[string]interface{}{
		"from": map[string]int{"row": 2, "col": 1},
		"to":   map[string]int{"row": 3, "col": 2},
	})

	// The proposer still receives its own room's broadcasts.
	raw = waitFor(t, white, room.EventBoardState)
	var payload room.BoardPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload.Board.At(game.Pos{Row: 3, Col: 2}).Side != game.White {
		t.Fatalf("board_state does not reflect the move")
	}
	waitFor(t, black, room.EventBoardState)
}

func TestProposeWithoutRoomRejected(t *testing.T) {
	url := newTestServer(t)
	conn := dial(t, url)

	send(t, conn, "propose_move", map[string]interface{}{
		"from": map[string]int{"row": 2, "col": 1},
		"to":   map[string]int{"row": 3, "col": 2},
	})
	raw := waitFor(t, conn, room.EventRejected)
	var rej room.RejectedPayload
	if err := json.Unmarshal(raw, &rej); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if rej.Code != room.ErrUnknownRoom.Error() {
		t.Fatalf("rejection code = %q, want unknown_room", rej.Code)
	}
}

func TestIllegalMoveRejectedToProposerOnly(t *testing.T) {
	url := newTestServer(t)

	white := dial(t, url)
	black := dial(t, url)
	send(t, white, "join_room", map[string]string{"room_id": "alpha"})
	waitFor(t, white, room.EventSideAssigned)
	send(t, black, "join_room", map[string]string{"room_id": "alpha"})
	waitFor(t, black, room.EventSideAssigned)

	// Black is not on turn.
	send(t, black, "propose_move", map[string]interface{}{
		"from": map[string]int{"row": 5, "col": 0},
		"to":   map[string]int{"row": 4, "col": 1},
	})
	raw := waitFor(t, black, room.EventRejected)
	var rej room.RejectedPayload
	if err := json.Unmarshal(raw, &rej); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if rej.Code != room.ErrNotYourTurn.Error() {
		t.Fatalf("rejection code = %q, want not_your_turn", rej.Code)
	}
}
