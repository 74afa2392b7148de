package bot

import (
	"github.com/frogleap/server/internal/domain"
)

const (
	winScore = 100000

	progressWeight    = 50
	completionWeight  = 120
	laggardWeight     = 15 // extra penalty for the piece furthest from goal
	mobilityWeight    = 3
	forwardJumpWeight = 14 // reward available forward jumps
	stuckWeight       = 20
	spreadWeight      = 4 // reward column spread (avoids congestion)
)

// goalDistance is the row distance to the player's goal zone (0 = already
// there). GREEN's zone is rows 0-1, BLACK's is rows 6-7.
func goalDistance(c domain.Coord, p domain.Player) int {
	if p == domain.Green {
		return max(0, c.R-1)
	}
	return max(0, 6-c.R)
}

func inGoalZone(c domain.Coord, p domain.Player) bool {
	if p == domain.Green {
		return c.R <= 1
	}
	return c.R >= 6
}

// forwardDelta is the number of rows a move advances toward the player's
// goal; negative for retreats.
func forwardDelta(m domain.Move, p domain.Player) int {
	from, to := domain.MoveStart(m), domain.MoveEnd(m)
	if p == domain.Green {
		return from.R - to.R
	}
	return to.R - from.R
}

func movablePieceSet(moves []domain.Move) map[domain.Coord]struct{} {
	set := make(map[domain.Coord]struct{}, len(moves))
	for _, m := range moves {
		set[domain.MoveStart(m)] = struct{}{}
	}
	return set
}

func countStuckPieces(board domain.Board, p domain.Player, movable map[domain.Coord]struct{}) int {
	count := 0
	for r := 0; r < domain.BoardSize; r++ {
		for c := 0; c < domain.BoardSize; c++ {
			piece := board[r][c]
			if piece == nil || piece.Owner != p {
				continue
			}
			if _, ok := movable[domain.Coord{R: r, C: c}]; !ok {
				count++
			}
		}
	}
	return count
}

func countForwardJumps(moves []domain.Move, p domain.Player) int {
	count := 0
	for _, m := range moves {
		if m.Type == domain.MoveJump && forwardDelta(m, p) > 0 {
			count++
		}
	}
	return count
}

func columnSpread(board domain.Board, p domain.Player) int {
	var cols [domain.BoardSize]bool
	n := 0
	for r := 0; r < domain.BoardSize; r++ {
		for c := 0; c < domain.BoardSize; c++ {
			piece := board[r][c]
			if piece != nil && piece.Owner == p && !cols[c] {
				cols[c] = true
				n++
			}
		}
	}
	return n
}

// Evaluate scores a position for the player, higher is better. The heuristic
// combines race progress, completed pieces, the worst laggard, mobility,
// available forward jumps, stuck pieces and column spread, in a single board
// pass plus one move generation per side.
func Evaluate(board domain.Board, player domain.Player) int {
	opponent := domain.OtherPlayer(player)

	winner := domain.CheckWinner(board)
	if winner == player {
		return winScore
	}
	if winner == opponent {
		return -winScore
	}

	var playerTotal, opponentTotal int
	var playerMax, opponentMax int
	var playerDone, opponentDone int

	for r := 0; r < domain.BoardSize; r++ {
		for c := 0; c < domain.BoardSize; c++ {
			piece := board[r][c]
			if piece == nil {
				continue
			}
			coord := domain.Coord{R: r, C: c}
			dist := goalDistance(coord, piece.Owner)
			if piece.Owner == player {
				playerTotal += dist
				playerMax = max(playerMax, dist)
				if inGoalZone(coord, player) {
					playerDone++
				}
			} else {
				opponentTotal += dist
				opponentMax = max(opponentMax, dist)
				if inGoalZone(coord, opponent) {
					opponentDone++
				}
			}
		}
	}

	playerMoves := domain.ListLegalMoves(board, player)
	opponentMoves := domain.ListLegalMoves(board, opponent)

	score := (opponentTotal - playerTotal) * progressWeight
	score += (playerDone - opponentDone) * completionWeight
	score += (opponentMax - playerMax) * laggardWeight
	score += (len(playerMoves) - len(opponentMoves)) * mobilityWeight
	score += countForwardJumps(playerMoves, player) * forwardJumpWeight

	playerStuck := countStuckPieces(board, player, movablePieceSet(playerMoves))
	opponentStuck := countStuckPieces(board, opponent, movablePieceSet(opponentMoves))
	score -= (playerStuck - opponentStuck) * stuckWeight

	score += (columnSpread(board, player) - columnSpread(board, opponent)) * spreadWeight

	return score
}
