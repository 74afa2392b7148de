// Package proto defines the websocket message envelopes exchanged with
// clients. Every frame is a JSON object with a type tag; the remaining
// fields depend on the type.
package proto

import (
	"github.com/frogleap/server/internal/domain"
	"github.com/frogleap/server/internal/service/game"
)

// Client to server message types.
const (
	TypeRoomCreate  = "room:create"
	TypeRoomJoin    = "room:join"
	TypeRoomLeave   = "room:leave"
	TypeMoveRequest = "move:request"
	TypeTurnEnd     = "turn:end"
)

// Server to client message types.
const (
	TypeRoomCreated = "room:created"
	TypeRoomState   = "room:state"
	TypeRoomError   = "room:error"
)

// Room opponent modes for room:create.
const (
	ModeHuman = "human"
	ModeBot   = "bot"
)

// ClientMessage is an incoming frame. Fields irrelevant to the type are
// left at their zero values.
type ClientMessage struct {
	Type       string       `json:"type"`
	RoomID     string       `json:"roomId,omitempty"`
	Move       *domain.Move `json:"move,omitempty"`
	Mode       string       `json:"mode,omitempty"`
	Difficulty string       `json:"difficulty,omitempty"`
}

// ServerMessage is an outgoing frame.
type ServerMessage struct {
	Type     string      `json:"type"`
	RoomID   string      `json:"roomId,omitempty"`
	ShareURL string      `json:"shareUrl,omitempty"`
	State    *game.State `json:"state,omitempty"`
	Message  string      `json:"message,omitempty"`
	Code     string      `json:"code,omitempty"`
}

func RoomCreated(roomID, shareURL string) ServerMessage {
	return ServerMessage{Type: TypeRoomCreated, RoomID: roomID, ShareURL: shareURL}
}

func RoomState(roomID string, state *game.State) ServerMessage {
	return ServerMessage{Type: TypeRoomState, RoomID: roomID, State: state}
}

func RoomError(message, code string) ServerMessage {
	return ServerMessage{Type: TypeRoomError, Message: message, Code: code}
}
