package room

import (
	"sync"

	"go.uber.org/zap"

	"checkers-server/internal/config"
	"checkers-server/internal/game"
	"checkers-server/internal/obslog"
)

type Status string

const (
	StatusWaiting    Status = "waiting"
	StatusInProgress Status = "in_progress"
	StatusFinished   Status = "finished"
)

// Session is the authoritative game state for one room. Every mutation
// goes through its mutex, so move proposals, clock expiry and
// disconnects for the same room never interleave.
type Session struct {
	ID string

	mu      sync.Mutex
	rules   game.Rules
	board   game.Board
	turn    game.Side
	players map[game.Side]string // side -> connection id
	status  Status
	outcome *game.Outcome
	clock   *TurnClock
	emit    Broadcaster
}

func NewSession(id string, cfg config.Config, b Broadcaster) *Session {
	s := &Session{
		ID:      id,
		rules:   game.Rules{ForcedCapture: cfg.ForcedCapture},
		board:   game.NewBoard(cfg.BoardSize),
		turn:    game.White,
		players: make(map[game.Side]string),
		status:  StatusWaiting,
		emit:    b,
	}
	s.clock = NewTurnClock(cfg.TurnDuration, cfg.ClockTick, s.onTick, s.onExpire)
	return s
}

// Join binds a connection to the first unassigned side: white first,
// then black. Binding the second side starts the game and its clock.
func (s *Session) Join(connID string) (game.Side, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == StatusFinished {
		return game.NoSide, ErrRoomFull
	}

	var side game.Side
	switch {
	case s.players[game.White] == "":
		side = game.White
	case s.players[game.Black] == "":
		side = game.Black
	default:
		return game.NoSide, ErrRoomFull
	}
	s.players[side] = connID
	s.emit.Enter(s.ID, connID)

	s.emit.Send(connID, EventSideAssigned, SidePayload{Side: side})
	s.emit.Broadcast(s.ID, EventPlayerCount, CountPayload{Count: len(s.players)})
	s.emit.Broadcast(s.ID, EventTurnChanged, SidePayload{Side: s.turn})

	if len(s.players) == 2 {
		s.status = StatusInProgress
		s.clock.Start()
		obslog.L().Info("match started",
			zap.String("room", s.ID),
			zap.String("white", s.players[game.White]),
			zap.String("black", s.players[game.Black]),
		)
	}
	return side, nil
}

// ProposeMove validates and applies a move for the connection bound to
// the side on turn. On rejection the session is left untouched and the
// error describes why; the caller relays it to the proposer only.
func (s *Session) ProposeMove(connID string, from, to game.Pos) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusInProgress {
		return ErrGameNotInProgress
	}
	if s.players[s.turn] != connID {
		return ErrNotYourTurn
	}

	out, err := s.rules.Validate(s.board, from, to, s.turn)
	if err != nil {
		return err
	}

	s.board = out.Board
	s.turn = out.NextTurn

	s.emit.Broadcast(s.ID, EventBoardState, BoardPayload{Board: s.board})
	s.emit.Broadcast(s.ID, EventTurnChanged, SidePayload{Side: s.turn})

	obslog.L().Info("move applied",
		zap.String("room", s.ID),
		zap.Int("from_row", from.Row), zap.Int("from_col", from.Col),
		zap.Int("to_row", to.Row), zap.Int("to_col", to.Col),
		zap.Bool("capture", out.Captured != nil),
		zap.Bool("promoted", out.Promoted),
	)

	if out.Terminal != nil {
		s.finishLocked(out.Terminal)
		return nil
	}
	s.clock.Reset()
	return nil
}

// onExpire fires from the clock goroutine. A stale generation means a
// reset or stop was observed first; the expiry then has no effect.
func (s *Session) onExpire(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.clock.Gen() || s.status != StatusInProgress {
		return
	}
	winner := s.turn.Opponent()
	obslog.L().Info("turn clock expired",
		zap.String("room", s.ID),
		zap.String("winner", winner.String()),
	)
	s.finishLocked(&game.Outcome{Winner: winner, Reason: game.ReasonTimeout})
}

func (s *Session) onTick(gen uint64, remaining int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.clock.Gen() || s.status != StatusInProgress {
		return
	}
	s.emit.Broadcast(s.ID, EventTimerTick, TimerPayload{Remaining: remaining})
}

// Disconnect unbinds the connection's side. A drop mid-game hands the
// win to the opponent immediately. Reports whether the room is now
// empty so the registry can reclaim it.
func (s *Session) Disconnect(connID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	var side game.Side
	for sd, id := range s.players {
		if id == connID {
			side = sd
			break
		}
	}
	if side == game.NoSide {
		return len(s.players) == 0
	}
	delete(s.players, side)
	s.emit.Exit(s.ID, connID)

	if s.status == StatusInProgress {
		obslog.L().Info("player disconnected mid-game",
			zap.String("room", s.ID),
			zap.String("side", side.String()),
		)
		s.finishLocked(&game.Outcome{Winner: side.Opponent(), Reason: game.ReasonDisconnect})
	}

	s.emit.Broadcast(s.ID, EventPlayerCount, CountPayload{Count: len(s.players)})
	return len(s.players) == 0
}

// finishLocked is the only transition into Finished. It stops the clock
// synchronously, so no timer event can follow a game_over.
func (s *Session) finishLocked(o *game.Outcome) {
	s.status = StatusFinished
	s.outcome = o
	s.clock.Stop()
	s.emit.Broadcast(s.ID, EventGameOver, GameOverPayload{Winner: o.Winner, Reason: o.Reason})
}

// Close stops the clock and marks the session finished. Used by the
// registry when reclaiming a room or shutting down.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock.Stop()
	s.status = StatusFinished
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		RoomID:      s.ID,
		Status:      s.status,
		Turn:        s.turn,
		PlayerCount: len(s.players),
		Board:       s.board.Clone(),
		Outcome:     s.outcome,
	}
}
