package game

import (
	"github.com/frogleap/server/internal/domain"
)

// Seat is one player's slot in a room, keyed by connection id in
// State.Players.
type Seat struct {
	Color domain.Player `json:"color"`
}

// Continuation describes an in-progress multi-jump turn: which piece must
// move next and when the window closes. Timestamps are unix milliseconds.
type Continuation struct {
	PieceID     string `json:"pieceId"`
	ExpiresAt   int64  `json:"expiresAt"`
	RemainingMs int64  `json:"remainingMs"`
}

// State is the authoritative game state broadcast to both room members.
// Once Winner is set the board and turn no longer change.
type State struct {
	Board         domain.Board    `json:"board"`
	CurrentPlayer domain.Player   `json:"currentPlayer"`
	Winner        *domain.Player  `json:"winner"`
	Players       map[string]Seat `json:"players"`
	Continuation  *Continuation   `json:"continuation"`
	LastMove      *domain.Move    `json:"lastMove,omitempty"`
}

func newState(creatorConnID string) *State {
	return &State{
		Board:         domain.NewBoard(),
		CurrentPlayer: domain.Green,
		Winner:        nil,
		Players: map[string]Seat{
			creatorConnID: {Color: domain.Green},
		},
		Continuation: nil,
	}
}

// snapshot deep-copies the state so readers outside the room lock never
// observe a mutation in progress.
func (s *State) snapshot() *State {
	out := &State{
		Board:         domain.CopyBoard(s.Board),
		CurrentPlayer: s.CurrentPlayer,
		Players:       make(map[string]Seat, len(s.Players)),
	}
	for id, seat := range s.Players {
		out.Players[id] = seat
	}
	if s.Winner != nil {
		w := *s.Winner
		out.Winner = &w
	}
	if s.Continuation != nil {
		c := *s.Continuation
		out.Continuation = &c
	}
	if s.LastMove != nil {
		m := *s.LastMove
		out.LastMove = &m
	}
	return out
}

// Rejection is the outcome of a refused request: a human-readable reason and
// an optional machine code. Rejections never mutate room state.
type Rejection struct {
	Message string
	Code    string
}

const (
	CodeRoomNotFound         = "ROOM_NOT_FOUND"
	CodeRoomFull             = "ROOM_FULL"
	CodeOpponentDisconnected = "OPPONENT_DISCONNECTED"
)

func reject(message string) *Rejection {
	return &Rejection{Message: message}
}

func rejectWithCode(message, code string) *Rejection {
	return &Rejection{Message: message, Code: code}
}

// Broadcaster delivers a state snapshot to a set of connections. It is
// invoked while the room lock is held, so implementations must serialize the
// snapshot immediately and must not call back into the room manager.
type Broadcaster interface {
	BroadcastState(roomID string, conns []string, state *State)
}
