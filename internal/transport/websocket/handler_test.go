package websocket

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frogleap/server/internal/domain"
	"github.com/frogleap/server/internal/proto"
	"github.com/frogleap/server/internal/service/game"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rooms := game.NewManager(game.Options{})
	handler := NewHandler(NewConnectionManager(), rooms, nil, "http://localhost:5173")

	router := gin.New()
	router.GET("/ws", handler.HandleWebSocket)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func dialWS(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func sendClient(t *testing.T, conn *websocket.Conn, msg proto.ClientMessage) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(msg))
}

func readServer(t *testing.T, conn *websocket.Conn) proto.ServerMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg proto.ServerMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestCreateRoomFlow(t *testing.T) {
	srv := newTestServer(t)
	conn := dialWS(t, srv)

	sendClient(t, conn, proto.ClientMessage{Type: proto.TypeRoomCreate})

	created := readServer(t, conn)
	require.Equal(t, proto.TypeRoomCreated, created.Type)
	assert.Len(t, created.RoomID, 8)
	assert.Equal(t, "http://localhost:5173/room/"+created.RoomID, created.ShareURL)

	state := readServer(t, conn)
	require.Equal(t, proto.TypeRoomState, state.Type)
	require.NotNil(t, state.State)
	assert.Len(t, state.State.Players, 1)
	assert.Equal(t, domain.Green, state.State.CurrentPlayer)
	assert.Nil(t, state.State.Winner)
}

func TestJoinUnknownRoom(t *testing.T) {
	srv := newTestServer(t)
	conn := dialWS(t, srv)

	sendClient(t, conn, proto.ClientMessage{Type: proto.TypeRoomJoin, RoomID: "zzzzzzzz"})

	msg := readServer(t, conn)
	require.Equal(t, proto.TypeRoomError, msg.Type)
	assert.Equal(t, game.CodeRoomNotFound, msg.Code)
}

func TestThirdJoinerIsRejected(t *testing.T) {
	srv := newTestServer(t)
	c1 := dialWS(t, srv)
	c2 := dialWS(t, srv)
	c3 := dialWS(t, srv)

	sendClient(t, c1, proto.ClientMessage{Type: proto.TypeRoomCreate})
	created := readServer(t, c1)
	readServer(t, c1) // initial state

	sendClient(t, c2, proto.ClientMessage{Type: proto.TypeRoomJoin, RoomID: created.RoomID})
	readServer(t, c2) // paired state

	sendClient(t, c3, proto.ClientMessage{Type: proto.TypeRoomJoin, RoomID: created.RoomID})
	msg := readServer(t, c3)
	require.Equal(t, proto.TypeRoomError, msg.Type)
	assert.Equal(t, game.CodeRoomFull, msg.Code)
}

// pairClients creates a room with c1 and joins c2, returning the paired
// state as seen by c2.
func pairClients(t *testing.T, c1, c2 *websocket.Conn) (roomID string, paired *game.State) {
	t.Helper()
	sendClient(t, c1, proto.ClientMessage{Type: proto.TypeRoomCreate})
	created := readServer(t, c1)
	require.Equal(t, proto.TypeRoomCreated, created.Type)
	readServer(t, c1) // initial room:state

	sendClient(t, c2, proto.ClientMessage{Type: proto.TypeRoomJoin, RoomID: created.RoomID})
	msg := readServer(t, c2)
	require.Equal(t, proto.TypeRoomState, msg.Type)
	require.NotNil(t, msg.State)
	require.Len(t, msg.State.Players, 2)

	// c1 receives the same pairing broadcast.
	msg1 := readServer(t, c1)
	require.Equal(t, proto.TypeRoomState, msg1.Type)
	return created.RoomID, msg.State
}

func TestMoveRoundTrip(t *testing.T) {
	srv := newTestServer(t)
	c1 := dialWS(t, srv)
	c2 := dialWS(t, srv)
	roomID, paired := pairClients(t, c1, c2)

	// A step so no continuation window opens mid-test.
	var step *domain.Move
	for _, mv := range domain.ListLegalMoves(paired.Board, paired.CurrentPlayer) {
		if mv.Type == domain.MoveStep {
			m := mv
			step = &m
			break
		}
	}
	require.NotNil(t, step)

	// The clients do not know which of them holds the current color, so
	// c1 tries first and yields to c2 on a turn rejection.
	sendClient(t, c1, proto.ClientMessage{Type: proto.TypeMoveRequest, RoomID: roomID, Move: step})
	reply := readServer(t, c1)
	if reply.Type == proto.TypeRoomError {
		assert.Equal(t, "Not your turn.", reply.Message)
		sendClient(t, c2, proto.ClientMessage{Type: proto.TypeMoveRequest, RoomID: roomID, Move: step})
		reply = readServer(t, c1)
	}

	require.Equal(t, proto.TypeRoomState, reply.Type)
	require.NotNil(t, reply.State)
	require.NotNil(t, reply.State.LastMove)
	assert.Equal(t, step.From, reply.State.LastMove.From)
	assert.Equal(t, domain.OtherPlayer(paired.CurrentPlayer), reply.State.CurrentPlayer)

	// The mover's copy matches.
	other := readServer(t, c2)
	require.Equal(t, proto.TypeRoomState, other.Type)
	assert.Equal(t, reply.State.CurrentPlayer, other.State.CurrentPlayer)
}

func TestTurnEndWithoutContinuationIsRejected(t *testing.T) {
	srv := newTestServer(t)
	c1 := dialWS(t, srv)
	c2 := dialWS(t, srv)
	roomID, _ := pairClients(t, c1, c2)

	sendClient(t, c1, proto.ClientMessage{Type: proto.TypeTurnEnd, RoomID: roomID})
	msg := readServer(t, c1)
	require.Equal(t, proto.TypeRoomError, msg.Type)
	assert.NotEmpty(t, msg.Message)
}

func TestOpponentDisconnectNotifiesRemainingPlayer(t *testing.T) {
	srv := newTestServer(t)
	c1 := dialWS(t, srv)
	c2 := dialWS(t, srv)
	pairClients(t, c1, c2)

	c2.Close()

	msg := readServer(t, c1)
	require.Equal(t, proto.TypeRoomError, msg.Type)
	assert.Equal(t, game.CodeOpponentDisconnected, msg.Code)
	assert.Equal(t, "Opponent disconnected.", msg.Message)

	state := readServer(t, c1)
	require.Equal(t, proto.TypeRoomState, state.Type)
	assert.Len(t, state.State.Players, 2)
}
