package domain

// ApplyMove returns a new board with the moved piece relocated from the
// move's start square to its end square. The input board is not modified.
// No validation happens here; callers confirm legality with ListLegalMoves
// first. An empty start square yields a plain copy.
func ApplyMove(board Board, move Move) Board {
	next := CopyBoard(board)
	start := MoveStart(move)
	end := MoveEnd(move)

	piece := next.At(start)
	if piece == nil {
		return next
	}
	next[start.R][start.C] = nil
	next[end.R][end.C] = piece
	return next
}

// CheckWinner returns the winning player, or empty string if the game is
// still running. A side wins when all 8 of its pieces stand on the
// opponent's two home rows. The count check is exact: the rule relies on
// the invariant that pieces are never removed from the board.
func CheckWinner(board Board) Player {
	var greenCoords, blackCoords []Coord
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			piece := board[r][c]
			if piece == nil {
				continue
			}
			if piece.Owner == Green {
				greenCoords = append(greenCoords, Coord{R: r, C: c})
			} else {
				blackCoords = append(blackCoords, Coord{R: r, C: c})
			}
		}
	}

	if len(greenCoords) == 8 && allInRows(greenCoords, 0, 1) {
		return Green
	}
	if len(blackCoords) == 8 && allInRows(blackCoords, 6, 7) {
		return Black
	}
	return ""
}

func allInRows(coords []Coord, a, b int) bool {
	for _, c := range coords {
		if c.R != a && c.R != b {
			return false
		}
	}
	return true
}
