// internal/store/store.go
//
// Directory contract for room and player records.
// Implementations are selected once at startup: an in-memory map for local
// development and tests, or Redis for deployments that need rooms to survive
// process restarts. Rooms and players are plain serializable records, so a
// backend only ever encodes and decodes; it never reconstructs game state
// field by field.

package store

import (
	"context"
	"errors"
	"time"

	"github.com/vachetaureau/go-server/internal/game"
)

// ErrNotFound is returned when a room or player record does not exist.
var ErrNotFound = errors.New("not found")

// PlayerInfo is the keyed player record: which room a session belongs to.
type PlayerInfo struct {
	Name        string    `json:"name"`
	RoomID      string    `json:"roomId"`
	ConnectedAt time.Time `json:"connectedAt"`
}

// Directory maps room ids to room state and player ids to player records,
// with best-effort TTL semantics: entries are refreshed on read and write
// and evicted after sitting idle past a configurable max age.
type Directory interface {
	SaveRoom(ctx context.Context, r *game.Room) error
	GetRoom(ctx context.Context, roomID string) (*game.Room, error)
	DeleteRoom(ctx context.Context, roomID string) error
	ListRooms(ctx context.Context) ([]*game.Room, error)

	SavePlayer(ctx context.Context, playerID string, p PlayerInfo) error
	GetPlayer(ctx context.Context, playerID string) (PlayerInfo, error)
	DeletePlayer(ctx context.Context, playerID string) error

	// Cleanup evicts rooms idle for longer than maxAge. Backends with
	// native expiry may treat this as a no-op.
	Cleanup(ctx context.Context, maxAge time.Duration) error

	Close() error
}
