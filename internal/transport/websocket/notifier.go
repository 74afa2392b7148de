package websocket

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/frogleap/server/internal/proto"
	"github.com/frogleap/server/internal/service/game"
)

// stateNotifier adapts the connection manager to game.Broadcaster. The game
// layer calls it while holding the room lock, so the snapshot is marshaled
// up front and the frame is reused for every recipient.
type stateNotifier struct {
	conns *ConnectionManager
}

func newStateNotifier(cm *ConnectionManager) *stateNotifier {
	return &stateNotifier{conns: cm}
}

func (n *stateNotifier) BroadcastState(roomID string, conns []string, state *game.State) {
	payload, err := json.Marshal(proto.RoomState(roomID, state))
	if err != nil {
		log.Error().Err(err).Str("roomId", roomID).Msg("marshal room state")
		return
	}
	for _, connID := range conns {
		if err := n.conns.SendRaw(connID, payload); err != nil {
			log.Warn().Err(err).Str("connId", connID).Msg("state broadcast failed")
		}
	}
}
