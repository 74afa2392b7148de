package bot

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/frogleap/server/internal/domain"
)

// Root selection bonuses layered on top of the minimax value. They bias the
// pick among near-equal lines toward aggressive, natural-looking play.
const (
	jumpBonus   = 30
	stepBonus   = 5
	chainWeight = 14 // per forward follow-up jump a move opens

	forwardRowBonus    = 12
	backwardRowPenalty = 20
)

type ActionType string

const (
	ActionMove    ActionType = "MOVE"
	ActionEndTurn ActionType = "END_TURN"
)

// Action is the outcome of one bot decision.
type Action struct {
	Type ActionType
	Move domain.Move
}

// Request describes one decision. ContinuationPieceID, when non-empty,
// restricts candidates to further jumps by that piece; ContinuationFrom is
// the square the piece just left and must not return to. Seed, when set,
// makes mistake selection reproducible; otherwise the generator is seeded
// from the clock.
type Request struct {
	Board               domain.Board
	Player              domain.Player
	ContinuationPieceID string
	ContinuationFrom    *domain.Coord
	Difficulty          Difficulty
	TimeLimit           time.Duration
	Seed                *int64
}

type scoredMove struct {
	move  domain.Move
	score int
}

// ChooseAction runs an iterative-deepening alpha-beta search and returns
// either a move or an end-turn decision. Every full-depth pass must finish
// inside the time budget; when time runs out the deepest completed pass
// wins, falling back to the first ordered candidate if not even depth 1
// finished.
func ChooseAction(req Request) Action {
	prof := profiles[Normalize(req.Difficulty)]
	rng := newRng(req.Seed)

	timeLimit := req.TimeLimit
	if timeLimit <= 0 {
		timeLimit = prof.timeLimit
	}
	if timeLimit < 10*time.Millisecond {
		timeLimit = 10 * time.Millisecond
	}
	deadline := time.Now().Add(timeLimit)

	moves := domain.ListLegalMoves(req.Board, req.Player)

	if req.ContinuationPieceID != "" {
		moves = filterContinuationMoves(req.Board, moves, req.ContinuationPieceID, req.ContinuationFrom)

		// A chain is only worth continuing toward the goal; rather than jump
		// sideways or backward, hand the turn over.
		forward := make([]domain.Move, 0, len(moves))
		for _, m := range moves {
			if forwardDelta(m, req.Player) > 0 {
				forward = append(forward, m)
			}
		}
		if len(forward) == 0 {
			return Action{Type: ActionEndTurn}
		}
		moves = forward
	}

	if len(moves) == 0 {
		return Action{Type: ActionEndTurn}
	}

	ordered := orderMoves(moves, req.Player)
	var best *domain.Move
	var lastScored []scoredMove

	for depth := 1; depth <= prof.maxDepth; depth++ {
		scored, completed := scoreMovesAtDepth(req.Board, ordered, req.Player, depth, deadline, prof.quiescenceDepth)
		// A truncated pass still ranked whatever it reached; that partial
		// ranking beats falling back to raw move order.
		if len(scored) > 0 {
			lastScored = scored
			best = &scored[0].move
		}
		if !completed || !time.Now().Before(deadline) {
			break
		}
	}

	// Only when not a single candidate was evaluated in time.
	if best == nil {
		return Action{Type: ActionMove, Move: ordered[0]}
	}

	if len(lastScored) > 1 && prof.mistakeChance > 0 && rng.Float64() < prof.mistakeChance {
		n := min(prof.mistakeTopN, len(lastScored))
		return Action{Type: ActionMove, Move: lastScored[rng.Intn(n)].move}
	}

	return Action{Type: ActionMove, Move: *best}
}

func newRng(seed *int64) *rand.Rand {
	if seed != nil {
		return rand.New(rand.NewSource(*seed))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

func filterContinuationMoves(board domain.Board, moves []domain.Move, pieceID string, from *domain.Coord) []domain.Move {
	out := make([]domain.Move, 0, len(moves))
	for _, m := range moves {
		if m.Type != domain.MoveJump {
			continue
		}
		start := domain.MoveStart(m)
		piece := board.At(start)
		if piece == nil || piece.ID != pieceID {
			continue
		}
		if from != nil && domain.MoveEnd(m) == *from {
			continue
		}
		out = append(out, m)
	}
	return out
}

// moveCategory ranks move kinds for ordering: forward jumps first, backward
// steps last. Tight ordering is what makes alpha-beta cut early.
func moveCategory(m domain.Move, p domain.Player) int {
	delta := forwardDelta(m, p)
	switch {
	case m.Type == domain.MoveJump && delta > 0:
		return 0
	case m.Type == domain.MoveJump && delta == 0:
		return 1
	case delta > 0:
		return 2
	case delta == 0:
		return 3
	case m.Type == domain.MoveJump:
		return 4
	default:
		return 5
	}
}

func orderMoves(moves []domain.Move, p domain.Player) []domain.Move {
	sorted := make([]domain.Move, len(moves))
	copy(sorted, moves)
	sort.SliceStable(sorted, func(i, j int) bool {
		ci, cj := moveCategory(sorted[i], p), moveCategory(sorted[j], p)
		if ci != cj {
			return ci < cj
		}
		return forwardDelta(sorted[i], p) > forwardDelta(sorted[j], p)
	})
	return sorted
}

// countForwardFollowUpJumps counts the forward jumps the moved piece could
// chain into after a jump, excluding the hop back to its origin.
func countForwardFollowUpJumps(board domain.Board, move domain.Move, p domain.Player) int {
	if move.Type != domain.MoveJump {
		return 0
	}
	next := domain.ApplyMove(board, move)
	from, end := domain.MoveStart(move), domain.MoveEnd(move)

	count := 0
	for _, m := range domain.ListLegalMoves(next, p) {
		if m.Type != domain.MoveJump {
			continue
		}
		if domain.MoveStart(m) != end || domain.MoveEnd(m) == from {
			continue
		}
		if forwardDelta(m, p) > 0 {
			count++
		}
	}
	return count
}

// alphabeta searches to the given depth with the evaluator at the frontier.
// qBudget is the remaining quiescence allowance, passed by value so the
// search stays reentrant. The deadline is checked at every node; an expired
// search degrades to a static evaluation.
func alphabeta(board domain.Board, depth, alpha, beta int, maximizing bool, player domain.Player, deadline time.Time, qBudget int) int {
	if !time.Now().Before(deadline) {
		return Evaluate(board, player)
	}
	if domain.CheckWinner(board) != "" {
		return Evaluate(board, player)
	}

	current := player
	if !maximizing {
		current = domain.OtherPlayer(player)
	}

	if depth <= 0 {
		// Quiescence: while jumps remain the position is volatile, so spend
		// budget on a jump-only extension instead of trusting the evaluator.
		if qBudget > 0 {
			var jumps []domain.Move
			for _, m := range domain.ListLegalMoves(board, current) {
				if m.Type == domain.MoveJump {
					jumps = append(jumps, m)
				}
			}
			if len(jumps) > 0 {
				return searchMoves(board, 1, alpha, beta, maximizing, player, deadline, qBudget-1, jumps)
			}
		}
		return Evaluate(board, player)
	}

	moves := domain.ListLegalMoves(board, current)
	if len(moves) == 0 {
		return Evaluate(board, player)
	}
	return searchMoves(board, depth, alpha, beta, maximizing, player, deadline, qBudget, moves)
}

func searchMoves(board domain.Board, depth, alpha, beta int, maximizing bool, player domain.Player, deadline time.Time, qBudget int, moves []domain.Move) int {
	current := player
	if !maximizing {
		current = domain.OtherPlayer(player)
	}
	sorted := orderMoves(moves, current)

	if maximizing {
		best := math.MinInt32
		for _, m := range sorted {
			if !time.Now().Before(deadline) {
				break
			}
			score := alphabeta(domain.ApplyMove(board, m), depth-1, alpha, beta, false, player, deadline, qBudget)
			best = max(best, score)
			alpha = max(alpha, score)
			if beta <= alpha {
				break
			}
		}
		return best
	}

	best := math.MaxInt32
	for _, m := range sorted {
		if !time.Now().Before(deadline) {
			break
		}
		score := alphabeta(domain.ApplyMove(board, m), depth-1, alpha, beta, true, player, deadline, qBudget)
		best = min(best, score)
		beta = min(beta, score)
		if beta <= alpha {
			break
		}
	}
	return best
}

// scoreMove combines the minimax value of a root candidate with the root
// selection bonuses.
func scoreMove(board domain.Board, move domain.Move, player domain.Player, depth int, deadline time.Time, qBudget int) int {
	next := domain.ApplyMove(board, move)
	score := alphabeta(next, depth-1, math.MinInt32, math.MaxInt32, false, player, deadline, qBudget)

	if move.Type == domain.MoveJump {
		score += jumpBonus
	} else {
		score += stepBonus
	}
	score += countForwardFollowUpJumps(board, move, player) * chainWeight

	delta := forwardDelta(move, player)
	if delta > 0 {
		score += delta * forwardRowBonus
	} else {
		score += delta * backwardRowPenalty
	}
	return score
}

func scoreMovesAtDepth(board domain.Board, moves []domain.Move, player domain.Player, depth int, deadline time.Time, qBudget int) ([]scoredMove, bool) {
	scored := make([]scoredMove, 0, len(moves))
	for _, m := range moves {
		if !time.Now().Before(deadline) {
			return scored, false
		}
		scored = append(scored, scoredMove{move: m, score: scoreMove(board, m, player, depth, deadline, qBudget)})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	return scored, true
}
