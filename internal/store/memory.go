// internal/store/memory.go
//
// In-memory implementation of the Directory interface.
// This is a lightweight persistence layer used for ephemeral game rooms,
// primarily in development/testing, or when durability is not required.
//
// Characteristics:
//   - Rooms and player records keyed by id in maps.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Rooms are stored and returned as deep copies, mirroring the
//     encode/decode isolation of the Redis backend. A caller mutating a
//     fetched room publishes nothing until it saves the room back.
//   - Tracks a last-activity timestamp per room; Cleanup evicts idle rooms.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"sync"
	"time"

	"github.com/vachetaureau/go-server/internal/game"
)

// roomEntry pairs a room with its last-touched timestamp for idle eviction.
type roomEntry struct {
	room         *game.Room
	lastActivity time.Time
}

// Memory is a map-based Directory implementation.
type Memory struct {
	mu      sync.RWMutex
	rooms   map[string]*roomEntry
	players map[string]PlayerInfo
}

// NewMemory constructs an empty in-memory Directory.
func NewMemory() *Memory {
	return &Memory{
		rooms:   make(map[string]*roomEntry),
		players: make(map[string]PlayerInfo),
	}
}

// SaveRoom adds or updates the room and refreshes its activity timestamp.
func (m *Memory) SaveRoom(ctx context.Context, r *game.Room) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rooms[r.RoomID] = &roomEntry{room: r.Clone(), lastActivity: time.Now()}
	return nil
}

// GetRoom looks up a room by id, refreshing its activity timestamp.
func (m *Memory) GetRoom(ctx context.Context, roomID string) (*game.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.rooms[roomID]
	if !ok {
		return nil, ErrNotFound
	}
	e.lastActivity = time.Now()
	return e.room.Clone(), nil
}

// DeleteRoom removes the room; deleting a missing room is not an error.
func (m *Memory) DeleteRoom(ctx context.Context, roomID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rooms, roomID)
	return nil
}

// ListRooms returns copies of all live rooms in unspecified order.
func (m *Memory) ListRooms(ctx context.Context) ([]*game.Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*game.Room, 0, len(m.rooms))
	for _, e := range m.rooms {
		out = append(out, e.room.Clone())
	}
	return out, nil
}

// SavePlayer stores the keyed player record.
func (m *Memory) SavePlayer(ctx context.Context, playerID string, p PlayerInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.players[playerID] = p
	return nil
}

// GetPlayer looks up a player record by id.
func (m *Memory) GetPlayer(ctx context.Context, playerID string) (PlayerInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.players[playerID]
	if !ok {
		return PlayerInfo{}, ErrNotFound
	}
	return p, nil
}

// DeletePlayer removes the keyed player record.
func (m *Memory) DeletePlayer(ctx context.Context, playerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.players, playerID)
	return nil
}

// Cleanup evicts rooms whose last activity is older than maxAge.
func (m *Memory) Cleanup(ctx context.Context, maxAge time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	for id, e := range m.rooms {
		if now.Sub(e.lastActivity) > maxAge {
			delete(m.rooms, id)
		}
	}
	return nil
}

// Close is a no-op for the in-memory backend.
func (m *Memory) Close() error { return nil }
