package websocket

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/frogleap/server/internal/proto"
	"github.com/frogleap/server/internal/service/bot"
	"github.com/frogleap/server/internal/service/game"
)

// Handler owns the websocket endpoint: upgrades, the per-connection read
// loop, and routing of room events to the game manager.
type Handler struct {
	ConnManager *ConnectionManager
	Rooms       *game.Manager
	Upgrader    websocket.Upgrader

	notifier     *stateNotifier
	shareBaseURL string
}

func NewHandler(cm *ConnectionManager, rooms *game.Manager, allowedOrigins []string, shareBaseURL string) *Handler {
	return &Handler{
		ConnManager: cm,
		Rooms:       rooms,
		Upgrader: websocket.Upgrader{
			CheckOrigin:     originChecker(allowedOrigins),
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		notifier:     newStateNotifier(cm),
		shareBaseURL: strings.TrimSuffix(shareBaseURL, "/"),
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 {
		return func(r *http.Request) bool { return true }
	}
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[strings.TrimSuffix(o, "/")] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[strings.TrimSuffix(origin, "/")]
		return ok
	}
}

// HandleWebSocket upgrades the request and runs the connection loop.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	conn, err := h.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	h.handleConnection(conn)
}

func (h *Handler) handleConnection(conn *websocket.Conn) {
	connID := uuid.NewString()
	h.ConnManager.AddConnection(connID, conn)
	log.Info().Str("connId", connID).Msg("connection opened")

	conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	// Keep-alive pinger; exits once the socket errors.
	go func() {
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		for range ticker.C {
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}()

	defer h.handleDisconnect(connID)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("connId", connID).Msg("connection dropped")
			}
			return
		}

		var msg proto.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Warn().Err(err).Str("connId", connID).Msg("invalid client frame")
			continue
		}
		h.processMessage(connID, msg)
	}
}

func (h *Handler) handleDisconnect(connID string) {
	log.Info().Str("connId", connID).Msg("connection closed")

	if room := h.Rooms.FindRoomByConn(connID); room != nil {
		h.Rooms.MarkDisconnected(room.ID, connID)
		for _, other := range room.Conns() {
			if other == connID {
				continue
			}
			h.ConnManager.Send(other, proto.RoomError("Opponent disconnected.", game.CodeOpponentDisconnected))
		}
		room.Broadcast(h.notifier)
	}
	h.ConnManager.RemoveConnection(connID)
}

func (h *Handler) processMessage(connID string, msg proto.ClientMessage) {
	switch msg.Type {
	case proto.TypeRoomCreate:
		h.handleRoomCreate(connID, msg)

	case proto.TypeRoomJoin:
		room, _, rej := h.Rooms.JoinRoom(msg.RoomID, connID)
		if rej != nil {
			h.ConnManager.Send(connID, proto.RoomError(rej.Message, rej.Code))
			return
		}
		room.Broadcast(h.notifier)

	case proto.TypeMoveRequest:
		if msg.Move == nil {
			h.ConnManager.Send(connID, proto.RoomError("Move payload is required.", ""))
			return
		}
		if rej := h.Rooms.HandleMove(msg.RoomID, connID, *msg.Move, h.notifier); rej != nil {
			h.ConnManager.Send(connID, proto.RoomError(rej.Message, rej.Code))
		}

	case proto.TypeTurnEnd:
		if rej := h.Rooms.HandleTurnEnd(msg.RoomID, connID, h.notifier); rej != nil {
			h.ConnManager.Send(connID, proto.RoomError(rej.Message, rej.Code))
		}

	case proto.TypeRoomLeave:
		if room := h.Rooms.LeaveRoom(msg.RoomID, connID); room != nil {
			room.Broadcast(h.notifier)
		}

	default:
		log.Debug().Str("connId", connID).Str("type", msg.Type).Msg("unknown message type")
	}
}

func (h *Handler) handleRoomCreate(connID string, msg proto.ClientMessage) {
	var room *game.Room
	if msg.Mode == proto.ModeBot {
		room = h.Rooms.CreateBotRoom(connID, bot.Difficulty(msg.Difficulty), h.notifier)
	} else {
		room = h.Rooms.CreateRoom(connID)
	}
	h.ConnManager.Send(connID, proto.RoomCreated(room.ID, h.shareURL(room.ID)))
	room.Broadcast(h.notifier)
}

func (h *Handler) shareURL(roomID string) string {
	if h.shareBaseURL == "" {
		return "/room/" + roomID
	}
	return h.shareBaseURL + "/room/" + roomID
}
