package domain

// BoardSize is the side length of the square board.
const BoardSize = 8

var diagonals = [4]Coord{
	{R: -1, C: -1},
	{R: -1, C: 1},
	{R: 1, C: -1},
	{R: 1, C: 1},
}

// Starting squares, in piece-id order (G1..G8 / B1..B8). GREEN occupies the
// two bottom rows in the alternating diagonal pattern, BLACK mirrors it on
// top.
var greenStart = [8]Coord{
	{R: 7, C: 0}, {R: 6, C: 1}, {R: 7, C: 2}, {R: 6, C: 3},
	{R: 7, C: 4}, {R: 6, C: 5}, {R: 7, C: 6}, {R: 6, C: 7},
}

var blackStart = [8]Coord{
	{R: 1, C: 0}, {R: 0, C: 1}, {R: 1, C: 2}, {R: 0, C: 3},
	{R: 1, C: 4}, {R: 0, C: 5}, {R: 1, C: 6}, {R: 0, C: 7},
}

// IsDarkSquare reports the checkerboard's normally playable color.
func IsDarkSquare(c Coord) bool {
	return (c.R+c.C)%2 == 1
}

// IsEdgeRow reports whether the coordinate sits on either back rank.
func IsEdgeRow(c Coord) bool {
	return c.R == 0 || c.R == BoardSize-1
}

// IsPlayableDestination reports whether a piece may occupy the square.
// Edge rows are fully playable regardless of square color, which is what
// makes straight and lateral edge-row moves possible.
func IsPlayableDestination(c Coord) bool {
	return IsDarkSquare(c) || IsEdgeRow(c)
}

// IsGoalRow reports whether the coordinate is on the player's goal row:
// row 0 for GREEN, row 7 for BLACK.
func IsGoalRow(c Coord, p Player) bool {
	if p == Green {
		return c.R == 0
	}
	return c.R == BoardSize-1
}

// InBounds reports whether the coordinate is on the board.
func InBounds(c Coord) bool {
	return c.R >= 0 && c.R < BoardSize && c.C >= 0 && c.C < BoardSize
}

// EmptyBoard creates a board with no pieces.
func EmptyBoard() Board {
	board := make(Board, BoardSize)
	for i := range board {
		board[i] = make([]*Piece, BoardSize)
	}
	return board
}

// NewBoard creates the initial position: 8 GREEN pieces on rows 6-7 and
// 8 BLACK pieces mirrored on rows 0-1, with stable ids. Deterministic.
func NewBoard() Board {
	board := EmptyBoard()
	for i, c := range greenStart {
		board[c.R][c.C] = &Piece{ID: pieceID("G", i+1), Owner: Green}
	}
	for i, c := range blackStart {
		board[c.R][c.C] = &Piece{ID: pieceID("B", i+1), Owner: Black}
	}
	return board
}

func pieceID(prefix string, n int) string {
	return prefix + string(rune('0'+n))
}

// CopyBoard creates a deep copy of the grid. Piece pointers are shared;
// pieces themselves are immutable.
func CopyBoard(board Board) Board {
	next := make(Board, len(board))
	for i := range board {
		next[i] = make([]*Piece, len(board[i]))
		copy(next[i], board[i])
	}
	return next
}

// At returns the piece on a square, or nil. The coordinate must be in
// bounds.
func (b Board) At(c Coord) *Piece {
	return b[c.R][c.C]
}
