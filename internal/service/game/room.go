package game

import (
	"sync"
	"time"

	"github.com/frogleap/server/internal/domain"
	"github.com/frogleap/server/internal/service/bot"
)

// botSeat marks a room whose second player is the built-in bot. The bot has
// no websocket connection; it occupies a synthetic key in State.Players.
type botSeat struct {
	ConnID     string
	Color      domain.Player
	Difficulty bot.Difficulty
}

// Room holds one game and its two connections. All fields behind mu.
type Room struct {
	ID string

	mu    sync.Mutex
	conns []string
	state *State
	bot   *botSeat

	// Set once the pairing coin flips have happened. A joiner filling a
	// freed seat afterwards takes the missing color instead of reflipping.
	colorsAssigned bool

	// Origin square of the jump that opened the current continuation.
	// Only consulted by the bot seat so it does not bounce a piece back
	// and forth within one turn.
	continuationFrom *domain.Coord

	disconnectTimers map[string]*time.Timer
	tickStop         chan struct{}
	botTimer         *time.Timer
}

func newRoom(id, creatorConnID string) *Room {
	return &Room{
		ID:               id,
		conns:            []string{creatorConnID},
		state:            newState(creatorConnID),
		disconnectTimers: make(map[string]*time.Timer),
	}
}

// Conns returns a copy of the room's connection ids.
func (r *Room) Conns() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.connsLocked()
}

func (r *Room) connsLocked() []string {
	out := make([]string, len(r.conns))
	copy(out, r.conns)
	return out
}

func (r *Room) hasConn(connID string) bool {
	for _, id := range r.conns {
		if id == connID {
			return true
		}
	}
	return false
}

func (r *Room) removeConn(connID string) {
	for i, id := range r.conns {
		if id == connID {
			r.conns = append(r.conns[:i], r.conns[i+1:]...)
			return
		}
	}
}

// State returns a deep snapshot of the room's current state, taken under
// the room lock. The snapshot stays stable while the game keeps running.
func (r *Room) State() *State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.snapshot()
}

// Broadcast delivers the current state to the room's members. The room lock
// is held across the call, so the broadcaster serializes one consistent
// snapshot even while the continuation ticker or grace expiry is active.
func (r *Room) Broadcast(b Broadcaster) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b.BroadcastState(r.ID, r.connsLocked(), r.state)
}

func (r *Room) stopTimersLocked() {
	r.stopTickerLocked()
	if r.botTimer != nil {
		r.botTimer.Stop()
		r.botTimer = nil
	}
	for id, t := range r.disconnectTimers {
		t.Stop()
		delete(r.disconnectTimers, id)
	}
}

func (r *Room) stopTickerLocked() {
	if r.tickStop != nil {
		close(r.tickStop)
		r.tickStop = nil
	}
}
