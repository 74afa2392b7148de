package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func place(board Board, c Coord, owner Player, id string) {
	board[c.R][c.C] = &Piece{ID: id, Owner: owner}
}

func stepTargets(moves []Move) []Coord {
	var out []Coord
	for _, m := range moves {
		if m.Type == MoveStep {
			out = append(out, m.To)
		}
	}
	return out
}

func jumpMoves(moves []Move) []Move {
	var out []Move
	for _, m := range moves {
		if m.Type == MoveJump {
			out = append(out, m)
		}
	}
	return out
}

func TestInteriorPieceStepsForwardAndBackward(t *testing.T) {
	board := EmptyBoard()
	place(board, Coord{4, 3}, Green, "G1")

	moves := ListLegalMoves(board, Green)
	targets := stepTargets(moves)

	assert.Contains(t, targets, Coord{3, 2})
	assert.Contains(t, targets, Coord{3, 4})
	assert.Contains(t, targets, Coord{5, 2})
	assert.Contains(t, targets, Coord{5, 4})
	assert.Empty(t, jumpMoves(moves), "no adjacent pieces, no jumps")
}

func TestGeneratedMovesAreSound(t *testing.T) {
	board := NewBoard()
	for _, player := range []Player{Green, Black} {
		for _, m := range ListLegalMoves(board, player) {
			start, end := MoveStart(m), MoveEnd(m)

			piece := board.At(start)
			require.NotNil(t, piece, "move starts on empty square: %+v", m)
			assert.Equal(t, player, piece.Owner)

			assert.True(t, InBounds(end))
			assert.True(t, IsPlayableDestination(end))
			assert.Nil(t, board.At(end), "destination occupied: %+v", m)
		}
	}
}

func TestJumpShapeAndIntermediatePiece(t *testing.T) {
	board := NewBoard()
	for _, player := range []Player{Green, Black} {
		for _, m := range jumpMoves(ListLegalMoves(board, player)) {
			start, end := MoveStart(m), MoveEnd(m)
			dr, dc := end.R-start.R, end.C-start.C

			diagonal := abs(dr) == 2 && abs(dc) == 2
			straightEdge := abs(dr) == 2 && dc == 0 && IsEdgeRow(end)
			lateralEdge := dr == 0 && abs(dc) == 2 && IsEdgeRow(start)
			assert.True(t, diagonal || straightEdge || lateralEdge,
				"jump shape %+v -> %+v", start, end)

			mid := Coord{R: start.R + dr/2, C: start.C + dc/2}
			assert.NotNil(t, board.At(mid), "jump without intermediate piece: %+v", m)
		}
	}
}

func TestDiagonalJumpOverOpponent(t *testing.T) {
	board := EmptyBoard()
	place(board, Coord{4, 3}, Green, "G1")
	place(board, Coord{3, 2}, Black, "B1")

	moves := jumpMoves(ListLegalMoves(board, Green))
	require.Len(t, moves, 1)
	assert.Equal(t, []Coord{{4, 3}, {2, 1}}, moves[0].Path)
}

func TestJumpOverOwnPiece(t *testing.T) {
	// Ownership of the jumped piece is irrelevant.
	board := EmptyBoard()
	place(board, Coord{4, 3}, Green, "G1")
	place(board, Coord{3, 4}, Green, "G2")

	moves := jumpMoves(ListLegalMoves(board, Green))
	found := false
	for _, m := range moves {
		if MoveStart(m) == (Coord{4, 3}) && MoveEnd(m) == (Coord{2, 5}) {
			found = true
		}
	}
	assert.True(t, found, "expected jump over own piece to (2,5)")
}

func TestStraightStepIntoEdgeRow(t *testing.T) {
	// A piece on a light square of row 1 can still reach the light square
	// directly above on the edge row.
	board := EmptyBoard()
	place(board, Coord{1, 1}, Green, "G1")
	targets := stepTargets(ListLegalMoves(board, Green))
	assert.Contains(t, targets, Coord{0, 1})

	board2 := EmptyBoard()
	place(board2, Coord{6, 6}, Black, "B1")
	targets2 := stepTargets(ListLegalMoves(board2, Black))
	assert.Contains(t, targets2, Coord{7, 6})
}

func TestLateralStepOnEdgeRow(t *testing.T) {
	board := EmptyBoard()
	place(board, Coord{0, 3}, Green, "G1")

	targets := stepTargets(ListLegalMoves(board, Green))
	assert.Contains(t, targets, Coord{0, 2})
	assert.Contains(t, targets, Coord{0, 4})
}

func TestStraightJumpIntoEdgeRow(t *testing.T) {
	board := EmptyBoard()
	place(board, Coord{2, 3}, Green, "G1")
	place(board, Coord{1, 3}, Black, "B1")

	moves := jumpMoves(ListLegalMoves(board, Green))
	found := false
	for _, m := range moves {
		if MoveEnd(m) == (Coord{0, 3}) {
			found = true
		}
	}
	assert.True(t, found, "expected straight jump into edge row")
}

func TestLateralJumpOnEdgeRow(t *testing.T) {
	board := EmptyBoard()
	place(board, Coord{7, 2}, Green, "G1")
	place(board, Coord{7, 3}, Black, "B1")

	moves := jumpMoves(ListLegalMoves(board, Green))
	found := false
	for _, m := range moves {
		if MoveStart(m) == (Coord{7, 2}) && MoveEnd(m) == (Coord{7, 4}) {
			found = true
		}
	}
	assert.True(t, found, "expected lateral edge-row jump to (7,4)")
}

func TestBackwardJumpAllowedAnywhere(t *testing.T) {
	// Direction is never restricted, even outside the back rows.
	board := EmptyBoard()
	place(board, Coord{3, 3}, Green, "G1")
	place(board, Coord{4, 4}, Black, "B1")

	moves := jumpMoves(ListLegalMoves(board, Green))
	found := false
	for _, m := range moves {
		if MoveEnd(m) == (Coord{5, 5}) {
			found = true
		}
	}
	assert.True(t, found, "expected backward jump from interior row")
}

func TestBlockedPieceHasNoMoves(t *testing.T) {
	// Corner piece hemmed in on every playable square, with landing squares
	// occupied too.
	board := EmptyBoard()
	place(board, Coord{0, 0}, Green, "G1")
	place(board, Coord{0, 1}, Green, "G2")
	place(board, Coord{1, 1}, Green, "G3")
	place(board, Coord{0, 2}, Green, "G4")
	place(board, Coord{2, 2}, Green, "G5")
	place(board, Coord{1, 0}, Green, "G6")
	place(board, Coord{2, 0}, Green, "G7")

	for _, m := range ListLegalMoves(board, Green) {
		assert.NotEqual(t, Coord{0, 0}, MoveStart(m), "corner piece should be stuck, got %+v", m)
	}
}

func TestMovesEqualEndpointTolerance(t *testing.T) {
	full := NewJump(Coord{4, 3}, Coord{2, 1})
	endpointsOnly := Move{Type: MoveJump, From: Coord{4, 3}, To: Coord{2, 1}}

	assert.True(t, MovesEqual(full, endpointsOnly))
	assert.True(t, MovesEqual(endpointsOnly, full))
	assert.False(t, MovesEqual(full, NewJump(Coord{4, 3}, Coord{2, 5})))
	assert.False(t, MovesEqual(full, NewStep(Coord{4, 3}, Coord{3, 2})))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
