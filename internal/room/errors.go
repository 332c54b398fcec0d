package room

import "errors"

var (
	ErrRoomFull          = errors.New("room_full")
	ErrNotYourTurn       = errors.New("not_your_turn")
	ErrGameNotInProgress = errors.New("game_not_in_progress")
	ErrUnknownRoom       = errors.New("unknown_room")
	ErrInvalidRoomID     = errors.New("invalid_room_id")
	ErrAlreadyInRoom     = errors.New("already_in_room")
)
