// internal/store/redis.go
//
// Redis-backed implementation of the Directory interface.
// Rooms and player records are stored as JSON values under "room:<id>" and
// "player:<id>" keys with a TTL (default 24h) that is refreshed on every
// read and write, so Redis itself handles idle eviction.
//
// Resilience: every operation degrades to an embedded in-memory directory
// when Redis fails, logging the error, so a transient outage loses no
// in-flight games for this process.

package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/vachetaureau/go-server/internal/game"
)

const (
	roomKeyPrefix   = "room:"
	playerKeyPrefix = "player:"
)

// Redis is a Directory backed by a Redis server with in-memory fallback.
type Redis struct {
	rdb      *redis.Client
	ttl      time.Duration
	fallback *Memory
}

// NewRedis connects to Redis and verifies the connection with a ping.
func NewRedis(ctx context.Context, addr, password string, db int, ttl time.Duration) (*Redis, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return &Redis{rdb: rdb, ttl: ttl, fallback: NewMemory()}, nil
}

// SaveRoom writes the JSON-encoded room with a fresh TTL.
func (r *Redis) SaveRoom(ctx context.Context, rm *game.Room) error {
	b, err := json.Marshal(rm)
	if err != nil {
		return err
	}
	if err := r.rdb.Set(ctx, roomKeyPrefix+rm.RoomID, b, r.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("roomId", rm.RoomID).Msg("redis set failed, using memory fallback")
		return r.fallback.SaveRoom(ctx, rm)
	}
	return nil
}

// GetRoom decodes the stored room and refreshes its TTL. A key missing from
// Redis is also looked up in the fallback, in case it was written there
// during an outage.
func (r *Redis) GetRoom(ctx context.Context, roomID string) (*game.Room, error) {
	b, err := r.rdb.Get(ctx, roomKeyPrefix+roomID).Bytes()
	if errors.Is(err, redis.Nil) {
		return r.fallback.GetRoom(ctx, roomID)
	}
	if err != nil {
		log.Warn().Err(err).Str("roomId", roomID).Msg("redis get failed, using memory fallback")
		return r.fallback.GetRoom(ctx, roomID)
	}
	var rm game.Room
	if err := json.Unmarshal(b, &rm); err != nil {
		return nil, err
	}
	if err := r.rdb.Expire(ctx, roomKeyPrefix+roomID, r.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("roomId", roomID).Msg("redis ttl refresh failed")
	}
	return &rm, nil
}

// DeleteRoom removes the room from Redis and from the fallback.
func (r *Redis) DeleteRoom(ctx context.Context, roomID string) error {
	if err := r.rdb.Del(ctx, roomKeyPrefix+roomID).Err(); err != nil {
		log.Warn().Err(err).Str("roomId", roomID).Msg("redis del failed")
	}
	return r.fallback.DeleteRoom(ctx, roomID)
}

// ListRooms scans room keys and decodes each value. Rooms parked in the
// fallback during an outage are appended as well.
func (r *Redis) ListRooms(ctx context.Context) ([]*game.Room, error) {
	var rooms []*game.Room
	iter := r.rdb.Scan(ctx, 0, roomKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		b, err := r.rdb.Get(ctx, iter.Val()).Bytes()
		if err != nil {
			continue // key may have expired between scan and get
		}
		var rm game.Room
		if err := json.Unmarshal(b, &rm); err != nil {
			continue
		}
		rooms = append(rooms, &rm)
	}
	if err := iter.Err(); err != nil {
		log.Warn().Err(err).Msg("redis scan failed, using memory fallback")
		return r.fallback.ListRooms(ctx)
	}
	local, _ := r.fallback.ListRooms(ctx)
	for _, rm := range local {
		if !containsRoom(rooms, rm.RoomID) {
			rooms = append(rooms, rm)
		}
	}
	return rooms, nil
}

// SavePlayer writes the JSON-encoded player record with a fresh TTL.
func (r *Redis) SavePlayer(ctx context.Context, playerID string, p PlayerInfo) error {
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	if err := r.rdb.Set(ctx, playerKeyPrefix+playerID, b, r.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("playerId", playerID).Msg("redis set failed, using memory fallback")
		return r.fallback.SavePlayer(ctx, playerID, p)
	}
	return nil
}

// GetPlayer decodes the stored player record.
func (r *Redis) GetPlayer(ctx context.Context, playerID string) (PlayerInfo, error) {
	b, err := r.rdb.Get(ctx, playerKeyPrefix+playerID).Bytes()
	if errors.Is(err, redis.Nil) {
		return r.fallback.GetPlayer(ctx, playerID)
	}
	if err != nil {
		log.Warn().Err(err).Str("playerId", playerID).Msg("redis get failed, using memory fallback")
		return r.fallback.GetPlayer(ctx, playerID)
	}
	var p PlayerInfo
	if err := json.Unmarshal(b, &p); err != nil {
		return PlayerInfo{}, err
	}
	return p, nil
}

// DeletePlayer removes the record from Redis and from the fallback.
func (r *Redis) DeletePlayer(ctx context.Context, playerID string) error {
	if err := r.rdb.Del(ctx, playerKeyPrefix+playerID).Err(); err != nil {
		log.Warn().Err(err).Str("playerId", playerID).Msg("redis del failed")
	}
	return r.fallback.DeletePlayer(ctx, playerID)
}

// Cleanup sweeps only the fallback; Redis evicts idle keys via TTL.
func (r *Redis) Cleanup(ctx context.Context, maxAge time.Duration) error {
	return r.fallback.Cleanup(ctx, maxAge)
}

// Close releases the Redis connection.
func (r *Redis) Close() error { return r.rdb.Close() }

func containsRoom(rooms []*game.Room, roomID string) bool {
	for _, rm := range rooms {
		if rm.RoomID == roomID {
			return true
		}
	}
	return false
}
