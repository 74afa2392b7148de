package game

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/frogleap/server/internal/service/bot"
)

// scheduleBotTurnLocked arms the bot's think timer when it is the bot's turn.
// The delay depends on difficulty and on whether the bot is mid-continuation,
// so moves land at a human-feeling pace instead of instantly.
func (m *Manager) scheduleBotTurnLocked(room *Room, b Broadcaster, continuing bool) {
	if room.bot == nil || room.state.Winner != nil {
		return
	}
	if room.state.CurrentPlayer != room.bot.Color {
		return
	}
	if room.botTimer != nil {
		room.botTimer.Stop()
	}
	delay := bot.ThinkDelay(room.bot.Difficulty, continuing)
	room.botTimer = time.AfterFunc(delay, func() {
		m.runBotTurn(room.ID, b)
	})
}

func (m *Manager) runBotTurn(roomID string, b Broadcaster) {
	room := m.getRoom(roomID)
	if room == nil {
		return
	}

	room.mu.Lock()
	defer room.mu.Unlock()
	room.botTimer = nil

	seat := room.bot
	state := room.state
	if seat == nil || state.Winner != nil || state.CurrentPlayer != seat.Color {
		return
	}

	req := bot.Request{
		Board:      state.Board,
		Player:     seat.Color,
		Difficulty: seat.Difficulty,
		TimeLimit:  bot.TimeLimit(seat.Difficulty),
	}
	if state.Continuation != nil {
		req.ContinuationPieceID = state.Continuation.PieceID
		req.ContinuationFrom = room.continuationFrom
	}

	action, failed := m.chooseBotAction(room.ID, req)
	if failed {
		// A search failure must not wedge the room. Give the turn back.
		m.passTurnLocked(room)
		b.BroadcastState(room.ID, room.connsLocked(), state)
		return
	}

	switch action.Type {
	case bot.ActionMove:
		if rej := m.handleMoveLocked(room, seat.ConnID, action.Move, b); rej != nil {
			log.Warn().Str("roomId", room.ID).Str("reason", rej.Message).Msg("bot move rejected")
			m.passTurnLocked(room)
			b.BroadcastState(room.ID, room.connsLocked(), state)
		}
	case bot.ActionEndTurn:
		if state.Continuation != nil {
			if rej := m.handleTurnEndLocked(room, seat.ConnID, b); rej != nil {
				log.Warn().Str("roomId", room.ID).Str("reason", rej.Message).Msg("bot turn end rejected")
			}
			return
		}
		// No legal moves at all; the turn simply passes.
		m.passTurnLocked(room)
		b.BroadcastState(room.ID, room.connsLocked(), state)
	}
}

// chooseBotAction runs the search, converting a panic into a failed result so
// an engine bug costs one turn, not the process.
func (m *Manager) chooseBotAction(roomID string, req bot.Request) (action bot.Action, failed bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("roomId", roomID).Interface("panic", r).Msg("bot search panicked")
			failed = true
		}
	}()
	return bot.ChooseAction(req), false
}
