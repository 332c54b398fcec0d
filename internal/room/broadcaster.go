package room

// Broadcaster delivers outbound events to connected clients and tracks
// which connections a room's broadcasts reach. The core never touches
// the network; the websocket hub implements this.
//
// Enter and Exit are called by the session under its own mutex, the
// same lock that serializes every room broadcast. Delivery membership
// therefore changes exactly when a player is seated or unseated, never
// for a rejected join.
type Broadcaster interface {
	Broadcast(roomID string, event string, data interface{})
	BroadcastAll(event string, data interface{})
	Send(connID string, event string, data interface{})
	Enter(roomID string, connID string)
	Exit(roomID string, connID string)
}

const (
	EventRoomList     = "room_list"
	EventSideAssigned = "side_assigned"
	EventPlayerCount  = "player_count"
	EventTurnChanged  = "turn_changed"
	EventBoardState   = "board_state"
	EventTimerTick    = "timer_tick"
	EventGameOver     = "game_over"
	EventRejected     = "rejected"
)
