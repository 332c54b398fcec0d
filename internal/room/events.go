package room

import "checkers-server/internal/game"

type SidePayload struct {
	Side game.Side `json:"side"`
}

type CountPayload struct {
	Count int `json:"count"`
}

type BoardPayload struct {
	Board game.Board `json:"board"`
}

type TimerPayload struct {
	Remaining int `json:"remaining"`
}

type GameOverPayload struct {
	Winner game.Side `json:"winner"`
	Reason string    `json:"reason"`
}

type RejectedPayload struct {
	Code string `json:"code"`
}

type RoomListPayload struct {
	Rooms []string `json:"rooms"`
}

// Snapshot is a point-in-time copy of a session, served over HTTP.
type Snapshot struct {
	RoomID      string        `json:"roomId"`
	Status      Status        `json:"status"`
	Turn        game.Side     `json:"turn"`
	PlayerCount int           `json:"playerCount"`
	Board       game.Board    `json:"board"`
	Outcome     *game.Outcome `json:"outcome,omitempty"`
}
