package game

func CountPieces(b Board, side Side) int {
	n := 0
	for r := 0; r < b.Size; r++ {
		for c := 0; c < b.Size; c++ {
			if b.Cells[r][c].Side == side {
				n++
			}
		}
	}
	return n
}

// EvaluateTerminal checks whether sideToMove has already lost: by
// elimination when it has no pieces left, or by immobilization when it
// has pieces but no legal move on its turn. Returns nil while the game
// is still open.
func EvaluateTerminal(b Board, sideToMove Side) *Outcome {
	if CountPieces(b, sideToMove) == 0 {
		return &Outcome{Winner: sideToMove.Opponent(), Reason: ReasonElimination}
	}
	if !HasAnyLegalMove(b, sideToMove) {
		return &Outcome{Winner: sideToMove.Opponent(), Reason: ReasonImmobilization}
	}
	return nil
}
