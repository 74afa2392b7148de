package bot

import (
	"testing"

	"github.com/frogleap/server/internal/domain"
	"github.com/stretchr/testify/assert"
)

func place(board domain.Board, c domain.Coord, owner domain.Player, id string) {
	board[c.R][c.C] = &domain.Piece{ID: id, Owner: owner}
}

func greenWinBoard() domain.Board {
	board := domain.EmptyBoard()
	coords := []domain.Coord{
		{R: 0, C: 0}, {R: 0, C: 2}, {R: 0, C: 4}, {R: 0, C: 6},
		{R: 1, C: 1}, {R: 1, C: 3}, {R: 1, C: 5}, {R: 1, C: 7},
	}
	for i, c := range coords {
		place(board, c, domain.Green, "G"+string(rune('1'+i)))
	}
	return board
}

func TestEvaluateTerminalShortcut(t *testing.T) {
	board := greenWinBoard()
	assert.Equal(t, winScore, Evaluate(board, domain.Green))
	assert.Equal(t, -winScore, Evaluate(board, domain.Black))
}

func TestEvaluateInitialBoardIsBalanced(t *testing.T) {
	board := domain.NewBoard()
	green := Evaluate(board, domain.Green)
	black := Evaluate(board, domain.Black)

	// The starting position is a mirror image, so even the non-differential
	// forward-jump term matches between the two sides.
	assert.Equal(t, green, black)
}

func TestEvaluateRewardsProgress(t *testing.T) {
	board := domain.NewBoard()
	baseline := Evaluate(board, domain.Green)

	advanced := domain.ApplyMove(board, domain.NewStep(domain.Coord{R: 6, C: 1}, domain.Coord{R: 5, C: 2}))
	assert.Greater(t, Evaluate(advanced, domain.Green), baseline)
}

func TestForwardDelta(t *testing.T) {
	step := domain.NewStep(domain.Coord{R: 4, C: 3}, domain.Coord{R: 3, C: 4})
	assert.Equal(t, 1, forwardDelta(step, domain.Green))
	assert.Equal(t, -1, forwardDelta(step, domain.Black))

	jump := domain.NewJump(domain.Coord{R: 4, C: 3}, domain.Coord{R: 6, C: 5})
	assert.Equal(t, -2, forwardDelta(jump, domain.Green))
	assert.Equal(t, 2, forwardDelta(jump, domain.Black))

	lateral := domain.NewStep(domain.Coord{R: 0, C: 3}, domain.Coord{R: 0, C: 4})
	assert.Equal(t, 0, forwardDelta(lateral, domain.Green))
}

func TestGoalDistance(t *testing.T) {
	assert.Equal(t, 0, goalDistance(domain.Coord{R: 0, C: 0}, domain.Green))
	assert.Equal(t, 0, goalDistance(domain.Coord{R: 1, C: 0}, domain.Green))
	assert.Equal(t, 6, goalDistance(domain.Coord{R: 7, C: 0}, domain.Green))
	assert.Equal(t, 6, goalDistance(domain.Coord{R: 0, C: 0}, domain.Black))
	assert.Equal(t, 0, goalDistance(domain.Coord{R: 6, C: 0}, domain.Black))
}

func TestColumnSpread(t *testing.T) {
	board := domain.EmptyBoard()
	place(board, domain.Coord{R: 3, C: 2}, domain.Green, "G1")
	place(board, domain.Coord{R: 4, C: 2}, domain.Green, "G2")
	place(board, domain.Coord{R: 5, C: 5}, domain.Green, "G3")

	assert.Equal(t, 2, columnSpread(board, domain.Green))
	assert.Equal(t, 0, columnSpread(board, domain.Black))
}
