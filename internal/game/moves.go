package game

var diagonals = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

// HasAnyLegalMove reports whether side has at least one simple step or
// capture available anywhere on the board.
func HasAnyLegalMove(b Board, side Side) bool {
	for r := 0; r < b.Size; r++ {
		for c := 0; c < b.Size; c++ {
			piece := b.Cells[r][c]
			if piece.Side != side {
				continue
			}
			if pieceCanMove(b, Pos{Row: r, Col: c}, piece) {
				return true
			}
		}
	}
	return false
}

// HasAnyCapture reports whether side has at least one capture available.
// Used by the forced-capture variant.
func HasAnyCapture(b Board, side Side) bool {
	for r := 0; r < b.Size; r++ {
		for c := 0; c < b.Size; c++ {
			piece := b.Cells[r][c]
			if piece.Side != side {
				continue
			}
			if pieceCanCapture(b, Pos{Row: r, Col: c}, piece) {
				return true
			}
		}
	}
	return false
}

func pieceCanMove(b Board, at Pos, piece Piece) bool {
	for _, d := range diagonals {
		if piece.Rank == Man && d[0] != piece.Side.Forward() {
			// Men step forward only; captures are checked separately.
			if canCaptureDir(b, at, piece, d) {
				return true
			}
			continue
		}
		step := Pos{Row: at.Row + d[0], Col: at.Col + d[1]}
		if b.InBounds(step) && b.At(step).Empty() {
			return true
		}
		if canCaptureDir(b, at, piece, d) {
			return true
		}
	}
	return false
}

func pieceCanCapture(b Board, at Pos, piece Piece) bool {
	for _, d := range diagonals {
		if canCaptureDir(b, at, piece, d) {
			return true
		}
	}
	return false
}

func canCaptureDir(b Board, at Pos, piece Piece, d [2]int) bool {
	mid := Pos{Row: at.Row + d[0], Col: at.Col + d[1]}
	land := Pos{Row: at.Row + 2*d[0], Col: at.Col + 2*d[1]}
	if !b.InBounds(land) {
		return false
	}
	victim := b.At(mid)
	return !victim.Empty() && victim.Side != piece.Side && b.At(land).Empty()
}
