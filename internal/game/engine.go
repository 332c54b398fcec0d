package game

// Validate checks a proposed move for side and, when legal, returns the
// full authoritative outcome: the resulting board, any captured cell,
// promotion, whose turn is next and whether the game just ended.
func (ru Rules) Validate(b Board, from, to Pos, side Side) (MoveOutcome, error) {
	if !b.InBounds(from) || !b.InBounds(to) {
		return MoveOutcome{}, Rejection{Reason: OutOfBounds}
	}

	piece := b.At(from)
	if piece.Empty() {
		return MoveOutcome{}, Rejection{Reason: NoPieceAtFrom}
	}
	if piece.Side != side {
		return MoveOutcome{}, Rejection{Reason: NotOwnedBySide}
	}
	if !b.At(to).Empty() {
		return MoveOutcome{}, Rejection{Reason: BlockedDestination}
	}

	dr := to.Row - from.Row
	dc := to.Col - from.Col

	switch {
	case abs(dr) == 1 && abs(dc) == 1:
		// Simple step. A Man only advances, a King goes either way.
		if piece.Rank == Man && dr != side.Forward() {
			return MoveOutcome{}, Rejection{Reason: WrongDirectionForMan}
		}
		if ru.ForcedCapture && HasAnyCapture(b, side) {
			return MoveOutcome{}, Rejection{Reason: CaptureRequiredMissing}
		}
	case abs(dr) == 2 && abs(dc) == 2:
		// Single-hop capture, permitted backward for both ranks.
		mid := Pos{Row: from.Row + dr/2, Col: from.Col + dc/2}
		victim := b.At(mid)
		if victim.Empty() || victim.Side == side {
			return MoveOutcome{}, Rejection{Reason: NotADiagonalStep}
		}
	default:
		return MoveOutcome{}, Rejection{Reason: NotADiagonalStep}
	}

	next, captured, promoted := Apply(b, from, to)
	nextTurn := side.Opponent()
	return MoveOutcome{
		Board:    next,
		Captured: captured,
		Promoted: promoted,
		NextTurn: nextTurn,
		Terminal: EvaluateTerminal(next, nextTurn),
	}, nil
}

// Apply moves the piece at from to to on a copy of the board, removing
// the jumped piece on a capture and promoting a Man that lands on the
// opponent's back row. It assumes the move has been validated.
func Apply(b Board, from, to Pos) (Board, *Pos, bool) {
	next := b.Clone()
	piece := next.At(from)
	next.Cells[from.Row][from.Col] = Piece{}

	var captured *Pos
	if abs(to.Row-from.Row) == 2 {
		mid := Pos{Row: (from.Row + to.Row) / 2, Col: (from.Col + to.Col) / 2}
		next.Cells[mid.Row][mid.Col] = Piece{}
		captured = &mid
	}

	promoted := false
	if piece.Rank == Man && to.Row == next.promotionRow(piece.Side) {
		piece.Rank = King
		promoted = true
	}
	next.Cells[to.Row][to.Col] = piece

	return next, captured, promoted
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
