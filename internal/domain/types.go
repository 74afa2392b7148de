package domain

// Player identifies one of the two sides.
type Player string

const (
	Green Player = "GREEN"
	Black Player = "BLACK"
)

// OtherPlayer returns the opposing side.
func OtherPlayer(p Player) Player {
	if p == Green {
		return Black
	}
	return Green
}

// Coord is a 0-indexed board coordinate. Row 0 is BLACK's home side, row 7
// is GREEN's.
type Coord struct {
	R int `json:"r"`
	C int `json:"c"`
}

// Piece identity is stable for the lifetime of a game. Pieces are moved,
// never created or destroyed: a jump removes nothing.
type Piece struct {
	ID    string `json:"id"`
	Owner Player `json:"owner"`
}

// Board is an 8x8 grid; nil cells are empty.
type Board [][]*Piece

type MoveType string

const (
	MoveStep MoveType = "STEP"
	MoveJump MoveType = "JUMP"
)

// Move is a closed two-case sum tagged by Type. Steps use From/To. Jumps
// carry a two-coordinate Path (start, landing); a multi-hop chain is a
// sequence of single-hop jumps applied under continuation, never one Move.
// Server-generated jump moves also populate From/To with the path endpoints
// so both representations stay usable on the wire.
type Move struct {
	Type MoveType `json:"type"`
	From Coord    `json:"from"`
	To   Coord    `json:"to"`
	Path []Coord  `json:"path,omitempty"`
}

// NewStep builds a step move.
func NewStep(from, to Coord) Move {
	return Move{Type: MoveStep, From: from, To: to}
}

// NewJump builds a single-hop jump from a start square to its landing square.
func NewJump(from, landing Coord) Move {
	return Move{Type: MoveJump, From: from, To: landing, Path: []Coord{from, landing}}
}

// MoveStart returns the square a move begins on, accepting jumps that carry
// only a path as well as jumps that carry only endpoints.
func MoveStart(m Move) Coord {
	if m.Type == MoveJump && len(m.Path) > 0 {
		return m.Path[0]
	}
	return m.From
}

// MoveEnd returns the square a move finishes on.
func MoveEnd(m Move) Coord {
	if m.Type == MoveJump && len(m.Path) > 0 {
		return m.Path[len(m.Path)-1]
	}
	return m.To
}

// MovesEqual reports whether two moves describe the same action. Jump moves
// match on full path equality or on endpoint equality alone: clients may
// submit just the start and landing squares of a single-hop jump.
func MovesEqual(a, b Move) bool {
	if a.Type != b.Type {
		return false
	}
	if a.Type == MoveStep {
		return a.From == b.From && a.To == b.To
	}
	if len(a.Path) > 0 && len(a.Path) == len(b.Path) {
		same := true
		for i := range a.Path {
			if a.Path[i] != b.Path[i] {
				same = false
				break
			}
		}
		if same {
			return true
		}
	}
	return MoveStart(a) == MoveStart(b) && MoveEnd(a) == MoveEnd(b)
}

// Error is a sentinel error string for rule violations.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrIllegalMove Error = "illegal move"
	ErrNotYourTurn Error = "not your turn"
)
