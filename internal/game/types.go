package game

type Side int

const (
	NoSide Side = iota
	White
	Black
)

func (s Side) Opponent() Side {
	switch s {
	case White:
		return Black
	case Black:
		return White
	}
	return NoSide
}

func (s Side) String() string {
	switch s {
	case White:
		return "white"
	case Black:
		return "black"
	}
	return "none"
}

// Forward is the row delta a Man of this side advances by.
// White starts on the low rows and moves down the board, Black mirrors.
func (s Side) Forward() int {
	if s == White {
		return 1
	}
	return -1
}

type Rank int

const (
	Man Rank = iota
	King
)

type Piece struct {
	Side Side `json:"side"`
	Rank Rank `json:"rank"`
}

func (p Piece) Empty() bool { return p.Side == NoSide }

type Pos struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type Board struct {
	Size  int       `json:"size"`
	Cells [][]Piece `json:"cells"`
}

// NewBoard builds the standard starting layout: each side fills its
// size/2-1 home rows, men only on dark squares.
func NewBoard(size int) Board {
	if size <= 0 {
		size = 8
	}

	c := make([][]Piece, size)
	for r := range c {
		c[r] = make([]Piece, size)
	}
	b := Board{Size: size, Cells: c}

	menRows := size/2 - 1
	for r := 0; r < menRows; r++ {
		for col := 0; col < size; col++ {
			if b.Dark(Pos{Row: r, Col: col}) {
				b.Cells[r][col] = Piece{Side: White, Rank: Man}
			}
			mirror := size - 1 - r
			if b.Dark(Pos{Row: mirror, Col: col}) {
				b.Cells[mirror][col] = Piece{Side: Black, Rank: Man}
			}
		}
	}
	return b
}

func (b Board) InBounds(p Pos) bool {
	return p.Row >= 0 && p.Row < b.Size && p.Col >= 0 && p.Col < b.Size
}

// Dark reports whether the square is playable under the alternating
// diagonal layout. Pieces only ever occupy dark squares.
func (b Board) Dark(p Pos) bool {
	return (p.Row+p.Col)%2 == 1
}

func (b Board) At(p Pos) Piece {
	return b.Cells[p.Row][p.Col]
}

func (b Board) Clone() Board {
	c := make([][]Piece, b.Size)
	for r := range c {
		c[r] = make([]Piece, b.Size)
		copy(c[r], b.Cells[r])
	}
	return Board{Size: b.Size, Cells: c}
}

// promotionRow is the opponent's back row, where a Man becomes a King.
func (b Board) promotionRow(s Side) int {
	if s == White {
		return b.Size - 1
	}
	return 0
}

type Reason string

const (
	OutOfBounds            Reason = "out_of_bounds"
	NoPieceAtFrom          Reason = "no_piece_at_from"
	NotOwnedBySide         Reason = "not_owned_by_side"
	NotADiagonalStep       Reason = "not_a_diagonal_step"
	BlockedDestination     Reason = "blocked_destination"
	WrongDirectionForMan   Reason = "wrong_direction_for_man"
	CaptureRequiredMissing Reason = "capture_required_but_absent"
)

// Rejection is the error returned for an illegal move proposal.
type Rejection struct {
	Reason Reason
}

func (r Rejection) Error() string { return string(r.Reason) }

const (
	ReasonElimination    = "elimination"
	ReasonImmobilization = "immobilization"
	ReasonTimeout        = "timeout"
	ReasonDisconnect     = "disconnect"
)

// Outcome is a terminal game result. Winner is NoSide for a draw.
type Outcome struct {
	Winner Side   `json:"winner"`
	Reason string `json:"reason"`
}

// MoveOutcome is the authoritative result of applying a legal move.
type MoveOutcome struct {
	Board    Board
	Captured *Pos
	Promoted bool
	NextTurn Side
	Terminal *Outcome
}

// Rules selects the checkers variant. The default (zero value) follows
// the Brazilian any-direction-capture rules without forced capture.
type Rules struct {
	ForcedCapture bool
}
