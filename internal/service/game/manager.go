package game

import (
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/frogleap/server/internal/domain"
	"github.com/frogleap/server/internal/service/bot"
	"github.com/frogleap/server/pkg/uid"
)

// Options tunes the manager's timers. Zero values fall back to the defaults
// used in production.
type Options struct {
	ContinuationWindow time.Duration
	TickInterval       time.Duration
	DisconnectGrace    time.Duration
}

const (
	defaultContinuationWindow = 5 * time.Second
	defaultTickInterval       = 200 * time.Millisecond
	defaultDisconnectGrace    = 60 * time.Second
)

// Manager owns every active room. Rooms live in memory only; when the last
// connection leaves, the room is gone.
type Manager struct {
	mu    sync.RWMutex
	rooms map[string]*Room

	continuationWindow time.Duration
	tickInterval       time.Duration
	disconnectGrace    time.Duration
}

func NewManager(opts Options) *Manager {
	if opts.ContinuationWindow <= 0 {
		opts.ContinuationWindow = defaultContinuationWindow
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = defaultTickInterval
	}
	if opts.DisconnectGrace <= 0 {
		opts.DisconnectGrace = defaultDisconnectGrace
	}
	return &Manager{
		rooms:              make(map[string]*Room),
		continuationWindow: opts.ContinuationWindow,
		tickInterval:       opts.TickInterval,
		disconnectGrace:    opts.DisconnectGrace,
	}
}

// CreateRoom opens a new two-human room with the creator seated as the first
// player. Colors are provisional until the second player joins.
func (m *Manager) CreateRoom(connID string) *Room {
	room := newRoom(uid.RoomID(), connID)

	m.mu.Lock()
	m.rooms[room.ID] = room
	m.mu.Unlock()

	log.Info().Str("roomId", room.ID).Str("connId", connID).Msg("room created")
	return room
}

// CreateBotRoom opens a room whose opponent is the built-in bot. Colors and
// the starting player are decided immediately since both seats are filled.
func (m *Manager) CreateBotRoom(connID string, difficulty bot.Difficulty, b Broadcaster) *Room {
	room := newRoom(uid.RoomID(), connID)
	difficulty = bot.Normalize(difficulty)

	humanColor := domain.Green
	if rand.Float64() < 0.5 {
		humanColor = domain.Black
	}
	botConnID := "bot:" + room.ID
	room.bot = &botSeat{
		ConnID:     botConnID,
		Color:      domain.OtherPlayer(humanColor),
		Difficulty: difficulty,
	}
	room.state.Players = map[string]Seat{
		connID:    {Color: humanColor},
		botConnID: {Color: room.bot.Color},
	}
	if rand.Float64() < 0.5 {
		room.state.CurrentPlayer = domain.Green
	} else {
		room.state.CurrentPlayer = domain.Black
	}
	room.colorsAssigned = true

	m.mu.Lock()
	m.rooms[room.ID] = room
	m.mu.Unlock()

	log.Info().
		Str("roomId", room.ID).
		Str("connId", connID).
		Str("difficulty", string(difficulty)).
		Msg("bot room created")

	room.mu.Lock()
	m.scheduleBotTurnLocked(room, b, false)
	room.mu.Unlock()
	return room
}

// JoinRoom seats a connection in an existing room. A connection already in
// the room is treated as a reconnect and its pending disconnect timer is
// cancelled. When a seat's previous connection is disconnected, the joiner
// replaces it and inherits its color. assignedColors reports whether this
// join completed the pairing, triggering the color and first-turn coin flips.
func (m *Manager) JoinRoom(roomID, connID string) (room *Room, assignedColors bool, rej *Rejection) {
	room = m.getRoom(roomID)
	if room == nil {
		return nil, false, rejectWithCode("Room not found.", CodeRoomNotFound)
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if t, ok := room.disconnectTimers[connID]; ok {
		t.Stop()
		delete(room.disconnectTimers, connID)
	}
	if room.hasConn(connID) {
		return room, false, nil
	}

	if room.bot != nil {
		if len(room.conns) > 0 {
			return nil, false, rejectWithCode("Room is full.", CodeRoomFull)
		}
		room.conns = append(room.conns, connID)
		return room, false, nil
	}

	// In a full room, a seat whose connection dropped can be taken over by
	// the joiner, who inherits its color. With only one player present the
	// joiner takes the open seat instead, leaving the graced occupant free
	// to reconnect.
	if len(room.conns) >= 2 {
		for oldID := range room.disconnectTimers {
			if seat, ok := room.state.Players[oldID]; ok {
				room.disconnectTimers[oldID].Stop()
				delete(room.disconnectTimers, oldID)
				delete(room.state.Players, oldID)
				room.removeConn(oldID)
				room.state.Players[connID] = seat
				room.conns = append(room.conns, connID)
				log.Info().Str("roomId", roomID).Str("connId", connID).Msg("seat taken over")
				return room, false, nil
			}
		}
	}

	if len(room.conns) >= 2 {
		return nil, false, rejectWithCode("Room is full.", CodeRoomFull)
	}

	room.conns = append(room.conns, connID)
	switch {
	case len(room.conns) == 2 && !room.colorsAssigned:
		m.assignColorsLocked(room)
		assignedColors = true
	case room.colorsAssigned:
		// Filling a seat freed by grace expiry: take the missing color.
		taken := domain.Player("")
		for _, seat := range room.state.Players {
			taken = seat.Color
		}
		room.state.Players[connID] = Seat{Color: domain.OtherPlayer(taken)}
	default:
		room.state.Players[connID] = Seat{Color: domain.Black}
	}
	return room, assignedColors, nil
}

// assignColorsLocked flips a coin for colors and another for who moves first.
func (m *Manager) assignColorsLocked(room *Room) {
	first, second := room.conns[0], room.conns[1]
	if rand.Float64() < 0.5 {
		first, second = second, first
	}
	room.state.Players = map[string]Seat{
		first:  {Color: domain.Green},
		second: {Color: domain.Black},
	}
	if rand.Float64() < 0.5 {
		room.state.CurrentPlayer = domain.Green
	} else {
		room.state.CurrentPlayer = domain.Black
	}
	room.colorsAssigned = true
}

// LeaveRoom removes the connection immediately, with no grace period. The
// returned room is nil when it was deleted or never existed.
func (m *Manager) LeaveRoom(roomID, connID string) *Room {
	room := m.getRoom(roomID)
	if room == nil {
		return nil
	}

	room.mu.Lock()
	room.removeConn(connID)
	delete(room.state.Players, connID)
	if t, ok := room.disconnectTimers[connID]; ok {
		t.Stop()
		delete(room.disconnectTimers, connID)
	}
	empty := len(room.conns) == 0
	if empty {
		room.stopTimersLocked()
	}
	room.mu.Unlock()

	if empty {
		m.deleteRoom(roomID)
		return nil
	}
	return room
}

// MarkDisconnected starts the grace window for a dropped connection. If it
// does not rejoin before the window closes, it is removed for good and the
// room is torn down when nobody is left.
func (m *Manager) MarkDisconnected(roomID, connID string) *Room {
	room := m.getRoom(roomID)
	if room == nil {
		return nil
	}

	room.mu.Lock()
	defer room.mu.Unlock()
	if !room.hasConn(connID) {
		return room
	}
	if t, ok := room.disconnectTimers[connID]; ok {
		t.Stop()
	}
	room.disconnectTimers[connID] = time.AfterFunc(m.disconnectGrace, func() {
		m.expireDisconnect(roomID, connID)
	})
	log.Info().Str("roomId", roomID).Str("connId", connID).Msg("connection lost, grace started")
	return room
}

func (m *Manager) expireDisconnect(roomID, connID string) {
	room := m.getRoom(roomID)
	if room == nil {
		return
	}

	room.mu.Lock()
	if _, ok := room.disconnectTimers[connID]; !ok {
		// Rejoined or replaced before the window closed.
		room.mu.Unlock()
		return
	}
	delete(room.disconnectTimers, connID)
	room.removeConn(connID)
	delete(room.state.Players, connID)
	empty := len(room.conns) == 0
	if empty {
		room.stopTimersLocked()
	}
	room.mu.Unlock()

	if empty {
		m.deleteRoom(roomID)
	}
}

// FindRoomByConn looks up the room a connection is seated in, if any.
func (m *Manager) FindRoomByConn(connID string) *Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, room := range m.rooms {
		room.mu.Lock()
		in := room.hasConn(connID)
		room.mu.Unlock()
		if in {
			return room
		}
	}
	return nil
}

func (m *Manager) getRoom(roomID string) *Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rooms[roomID]
}

func (m *Manager) deleteRoom(roomID string) {
	m.mu.Lock()
	delete(m.rooms, roomID)
	m.mu.Unlock()
	log.Info().Str("roomId", roomID).Msg("room closed")
}
