package game

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/frogleap/server/internal/domain"
)

// HandleMove validates and applies a move request. A non-nil Rejection means
// nothing changed; on success the new state has already been broadcast.
func (m *Manager) HandleMove(roomID, connID string, move domain.Move, b Broadcaster) *Rejection {
	room := m.getRoom(roomID)
	if room == nil {
		return rejectWithCode("Room not found.", CodeRoomNotFound)
	}
	room.mu.Lock()
	defer room.mu.Unlock()
	return m.handleMoveLocked(room, connID, move, b)
}

func (m *Manager) handleMoveLocked(room *Room, connID string, move domain.Move, b Broadcaster) *Rejection {
	state := room.state
	if state.Winner != nil {
		return reject("Game has ended.")
	}
	seat, ok := state.Players[connID]
	if !ok {
		return reject("You are not in this room.")
	}
	if seat.Color != state.CurrentPlayer {
		return reject("Not your turn.")
	}
	if state.Continuation != nil {
		if move.Type != domain.MoveJump {
			return reject("Only a jump may continue the turn.")
		}
		piece := state.Board.At(domain.MoveStart(move))
		if piece == nil || piece.ID != state.Continuation.PieceID {
			return reject("A continuation must move the same piece.")
		}
	}

	matched := matchLegalMove(state.Board, state.CurrentPlayer, move)
	if matched == nil {
		return reject("Illegal move.")
	}

	start := domain.MoveStart(*matched)
	end := domain.MoveEnd(*matched)
	state.Board = domain.ApplyMove(state.Board, *matched)
	applied := *matched
	state.LastMove = &applied

	if w := domain.CheckWinner(state.Board); w != "" {
		winner := w
		state.Winner = &winner
		state.Continuation = nil
		room.continuationFrom = nil
		room.stopTickerLocked()
		log.Info().Str("roomId", room.ID).Str("winner", string(w)).Msg("game over")
		b.BroadcastState(room.ID, room.connsLocked(), state)
		return nil
	}

	if matched.Type == domain.MoveJump && hasJumpFrom(state.Board, state.CurrentPlayer, end) {
		m.openContinuationLocked(room, state.Board.At(end).ID, start, b)
		b.BroadcastState(room.ID, room.connsLocked(), state)
		m.scheduleBotTurnLocked(room, b, true)
		return nil
	}

	m.passTurnLocked(room)
	b.BroadcastState(room.ID, room.connsLocked(), state)
	m.scheduleBotTurnLocked(room, b, false)
	return nil
}

// HandleTurnEnd voluntarily closes an active continuation, ceding the turn.
func (m *Manager) HandleTurnEnd(roomID, connID string, b Broadcaster) *Rejection {
	room := m.getRoom(roomID)
	if room == nil {
		return rejectWithCode("Room not found.", CodeRoomNotFound)
	}
	room.mu.Lock()
	defer room.mu.Unlock()
	return m.handleTurnEndLocked(room, connID, b)
}

func (m *Manager) handleTurnEndLocked(room *Room, connID string, b Broadcaster) *Rejection {
	state := room.state
	if state.Winner != nil {
		return reject("Game has ended.")
	}
	seat, ok := state.Players[connID]
	if !ok {
		return reject("You are not in this room.")
	}
	if seat.Color != state.CurrentPlayer {
		return reject("Not your turn.")
	}
	if state.Continuation == nil {
		return reject("No continuation to end.")
	}

	m.passTurnLocked(room)
	b.BroadcastState(room.ID, room.connsLocked(), state)
	m.scheduleBotTurnLocked(room, b, false)
	return nil
}

// passTurnLocked clears any continuation and hands the turn to the opponent.
func (m *Manager) passTurnLocked(room *Room) {
	room.state.Continuation = nil
	room.continuationFrom = nil
	room.stopTickerLocked()
	room.state.CurrentPlayer = domain.OtherPlayer(room.state.CurrentPlayer)
}

func (m *Manager) openContinuationLocked(room *Room, pieceID string, origin domain.Coord, b Broadcaster) {
	now := time.Now()
	room.state.Continuation = &Continuation{
		PieceID:     pieceID,
		ExpiresAt:   now.Add(m.continuationWindow).UnixMilli(),
		RemainingMs: m.continuationWindow.Milliseconds(),
	}
	room.continuationFrom = &origin
	room.stopTickerLocked()
	stop := make(chan struct{})
	room.tickStop = stop
	go m.runContinuationTicker(room, stop, b)
}

// runContinuationTicker counts the continuation window down, pushing the
// remaining time to both players each tick and flipping the turn on expiry.
func (m *Manager) runContinuationTicker(room *Room, stop chan struct{}, b Broadcaster) {
	ticker := time.NewTicker(m.tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if done := m.tickContinuation(room, stop, b); done {
				return
			}
		}
	}
}

func (m *Manager) tickContinuation(room *Room, stop chan struct{}, b Broadcaster) bool {
	room.mu.Lock()
	defer room.mu.Unlock()

	// A newer continuation owns a fresh stop channel; this ticker is stale.
	if room.tickStop != stop || room.state.Continuation == nil {
		return true
	}
	remaining := room.state.Continuation.ExpiresAt - time.Now().UnixMilli()
	if remaining > 0 {
		room.state.Continuation.RemainingMs = remaining
		b.BroadcastState(room.ID, room.connsLocked(), room.state)
		return false
	}

	room.tickStop = nil
	m.passTurnLocked(room)
	log.Debug().Str("roomId", room.ID).Msg("continuation window expired")
	b.BroadcastState(room.ID, room.connsLocked(), room.state)
	m.scheduleBotTurnLocked(room, b, false)
	return true
}

// matchLegalMove resolves a client move against the generated legal moves.
// Steps must match exactly; jumps match on the full path or, when the client
// sends only endpoints, on start and landing squares.
func matchLegalMove(board domain.Board, player domain.Player, move domain.Move) *domain.Move {
	for _, legal := range domain.ListLegalMoves(board, player) {
		if domain.MovesEqual(legal, move) {
			matched := legal
			return &matched
		}
	}
	return nil
}

func hasJumpFrom(board domain.Board, player domain.Player, from domain.Coord) bool {
	for _, legal := range domain.ListLegalMoves(board, player) {
		if legal.Type == domain.MoveJump && domain.MoveStart(legal) == from {
			return true
		}
	}
	return false
}
