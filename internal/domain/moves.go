package domain

// Step generation for one piece. Diagonal steps in all four directions are
// allowed; there is no forward-only restriction. Two special cases feed the
// edge rows: a straight step from the adjacent row into the edge row (so
// light edge squares are reachable), and lateral steps along an edge row.
func listStepMoves(board Board, from Coord) []Move {
	var moves []Move

	for _, d := range diagonals {
		to := Coord{R: from.R + d.R, C: from.C + d.C}
		if !InBounds(to) || !IsPlayableDestination(to) {
			continue
		}
		if board.At(to) == nil {
			moves = append(moves, NewStep(from, to))
		}
	}

	// Straight step into an edge row from the row adjacent to it.
	edgeEntries := [2]struct{ entry, edge int }{
		{entry: 1, edge: 0},
		{entry: 6, edge: 7},
	}
	for _, e := range edgeEntries {
		if from.R != e.entry {
			continue
		}
		to := Coord{R: e.edge, C: from.C}
		if board.At(to) == nil && !hasStepTarget(moves, to) {
			moves = append(moves, NewStep(from, to))
		}
	}

	// Lateral steps along an edge row.
	if IsEdgeRow(from) {
		for _, dc := range [2]int{-1, 1} {
			to := Coord{R: from.R, C: from.C + dc}
			if InBounds(to) && board.At(to) == nil && !hasStepTarget(moves, to) {
				moves = append(moves, NewStep(from, to))
			}
		}
	}

	return moves
}

// Jump generation for one piece. A jump hops over any adjacent piece (either
// color, nothing is removed) onto the empty playable square beyond it.
// Backward jumps are unrestricted. The edge-row special cases mirror the
// step ones: a straight jump into the edge row, and lateral jumps along it.
func listJumpMoves(board Board, from Coord) []Move {
	var moves []Move

	for _, d := range diagonals {
		mid := Coord{R: from.R + d.R, C: from.C + d.C}
		landing := Coord{R: from.R + d.R*2, C: from.C + d.C*2}
		if !InBounds(mid) || !InBounds(landing) {
			continue
		}
		if !IsPlayableDestination(landing) {
			continue
		}
		if board.At(mid) == nil || board.At(landing) != nil {
			continue
		}
		moves = append(moves, NewJump(from, landing))
	}

	// Straight jump into an edge row over a piece one row further in.
	edgeJumps := [2]struct{ start, mid, edge int }{
		{start: 2, mid: 1, edge: 0},
		{start: 5, mid: 6, edge: 7},
	}
	for _, e := range edgeJumps {
		if from.R != e.start {
			continue
		}
		mid := Coord{R: e.mid, C: from.C}
		landing := Coord{R: e.edge, C: from.C}
		if board.At(mid) != nil && board.At(landing) == nil && !hasJumpTarget(moves, landing) {
			moves = append(moves, NewJump(from, landing))
		}
	}

	// Lateral jump along an edge row over the adjacent piece.
	if IsEdgeRow(from) {
		for _, dc := range [2]int{-2, 2} {
			mid := Coord{R: from.R, C: from.C + dc/2}
			landing := Coord{R: from.R, C: from.C + dc}
			if !InBounds(mid) || !InBounds(landing) {
				continue
			}
			if board.At(mid) != nil && board.At(landing) == nil && !hasJumpTarget(moves, landing) {
				moves = append(moves, NewJump(from, landing))
			}
		}
	}

	return moves
}

// ListLegalMoves enumerates every legal step and single-hop jump for the
// player. Output order follows the row-major board scan, then the diagonal
// direction order, then the edge-row special cases; callers may rely on that
// only for move-ordering heuristics, never for correctness. Chains are not
// flattened: after applying a jump, call this again from the landing square
// to find follow-ups.
func ListLegalMoves(board Board, player Player) []Move {
	var moves []Move
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			piece := board[r][c]
			if piece == nil || piece.Owner != player {
				continue
			}
			from := Coord{R: r, C: c}
			moves = append(moves, listStepMoves(board, from)...)
			moves = append(moves, listJumpMoves(board, from)...)
		}
	}
	return moves
}

func hasStepTarget(moves []Move, to Coord) bool {
	for _, m := range moves {
		if m.To == to {
			return true
		}
	}
	return false
}

func hasJumpTarget(moves []Move, landing Coord) bool {
	for _, m := range moves {
		if MoveEnd(m) == landing {
			return true
		}
	}
	return false
}
