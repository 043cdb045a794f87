// internal/httpserver/rooms.go
//
// Room lifecycle endpoints: create, join, list, leave.
// The creator of a room is auto-joined as its first player; join order is
// preserved, so the first player acts as host on the client side.

package httpserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vachetaureau/go-server/internal/game"
	"github.com/vachetaureau/go-server/internal/store"
)

// mountRoomRoutes registers the /rooms endpoints.
func (s *Server) mountRoomRoutes() {
	s.r.Post("/rooms/create", s.handleCreateRoom)
	s.r.Post("/rooms/join", s.handleJoinRoom)
	s.r.Get("/rooms", s.handleListRooms)
	s.r.Post("/rooms/leave", s.handleLeaveRoom)
}

type createRoomReq struct {
	PlayerName string `json:"playerName"`
}

// handleCreateRoom creates a fresh room and auto-joins the caller.
func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var req createRoomReq
	if err := decodeBody(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "bad_json")
		return
	}
	if strings.TrimSpace(req.PlayerName) == "" {
		writeErr(w, http.StatusBadRequest, "player name is required")
		return
	}

	roomID := newRoomID()
	playerID := uuid.NewString()

	room := game.New(roomID)
	room.MaxPlayers = s.cfg.Game.MaxPlayers
	room.MinPlayers = s.cfg.Game.MinPlayers
	if err := room.AddPlayer(playerID, req.PlayerName); err != nil {
		writeErr(w, gameStatus(err), err.Error())
		return
	}

	if err := s.saveRoomAndPlayer(r, room, playerID); err != nil {
		writeErr(w, http.StatusInternalServerError, "save_failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"roomId":     roomID,
		"playerId":   playerID,
		"playerName": strings.TrimSpace(req.PlayerName),
		"gameState":  room.State(),
	})
}

type joinRoomReq struct {
	RoomID     string `json:"roomId"`
	PlayerName string `json:"playerName"`
}

// handleJoinRoom adds a player to an existing open room.
func (s *Server) handleJoinRoom(w http.ResponseWriter, r *http.Request) {
	var req joinRoomReq
	if err := decodeBody(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "bad_json")
		return
	}
	if req.RoomID == "" || strings.TrimSpace(req.PlayerName) == "" {
		writeErr(w, http.StatusBadRequest, "room id and player name are required")
		return
	}

	s.locks.Lock(req.RoomID)
	defer s.locks.Unlock(req.RoomID)

	room, err := s.dir.GetRoom(r.Context(), req.RoomID)
	if err != nil {
		writeLookupErr(w, err)
		return
	}

	playerID := uuid.NewString()
	if err := room.AddPlayer(playerID, req.PlayerName); err != nil {
		writeErr(w, gameStatus(err), err.Error())
		return
	}

	if err := s.saveRoomAndPlayer(r, room, playerID); err != nil {
		writeErr(w, http.StatusInternalServerError, "save_failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"roomId":     room.RoomID,
		"playerId":   playerID,
		"playerName": strings.TrimSpace(req.PlayerName),
		"gameState":  room.State(),
	})
}

// roomSummary is the lobby-listing projection of a room.
type roomSummary struct {
	ID          string `json:"id"`
	PlayerCount int    `json:"playerCount"`
	MaxPlayers  int    `json:"maxPlayers"`
	GameStarted bool   `json:"gameStarted"`
	CreatedAt   int64  `json:"createdAt"`
}

// handleListRooms sweeps idle rooms, then lists the survivors.
func (s *Server) handleListRooms(w http.ResponseWriter, r *http.Request) {
	if err := s.dir.Cleanup(r.Context(), s.cfg.Storage.RoomMaxAge); err != nil {
		log.Warn().Err(err).Msg("room cleanup")
	}

	rooms, err := s.dir.ListRooms(r.Context())
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "list_failed")
		return
	}

	out := make([]roomSummary, 0, len(rooms))
	for _, rm := range rooms {
		out = append(out, roomSummary{
			ID:          rm.RoomID,
			PlayerCount: len(rm.Players),
			MaxPlayers:  rm.MaxPlayers,
			GameStarted: rm.Phase != game.PhaseOpen,
			CreatedAt:   rm.CreatedAt.UnixMilli(),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"rooms":   out,
		"count":   len(out),
	})
}

type leaveRoomReq struct {
	RoomID   string `json:"roomId"`
	PlayerID string `json:"playerId"`
}

// handleLeaveRoom removes a player; an emptied room is deleted outright.
func (s *Server) handleLeaveRoom(w http.ResponseWriter, r *http.Request) {
	var req leaveRoomReq
	if err := decodeBody(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "bad_json")
		return
	}
	if req.RoomID == "" || req.PlayerID == "" {
		writeErr(w, http.StatusBadRequest, "room id and player id are required")
		return
	}

	s.locks.Lock(req.RoomID)
	defer s.locks.Unlock(req.RoomID)

	room, err := s.dir.GetRoom(r.Context(), req.RoomID)
	if err != nil {
		writeLookupErr(w, err)
		return
	}

	deletable := room.RemovePlayer(req.PlayerID)
	if err := s.dir.DeletePlayer(r.Context(), req.PlayerID); err != nil {
		log.Warn().Err(err).Str("playerId", req.PlayerID).Msg("delete player record")
	}

	if deletable {
		if err := s.dir.DeleteRoom(r.Context(), req.RoomID); err != nil {
			writeErr(w, http.StatusInternalServerError, "delete_failed")
			return
		}
	} else if err := s.dir.SaveRoom(r.Context(), room); err != nil {
		writeErr(w, http.StatusInternalServerError, "save_failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"roomDeleted": deletable,
	})
}

// saveRoomAndPlayer persists a room plus the keyed record for a new player.
func (s *Server) saveRoomAndPlayer(r *http.Request, room *game.Room, playerID string) error {
	if err := s.dir.SaveRoom(r.Context(), room); err != nil {
		log.Error().Err(err).Str("roomId", room.RoomID).Msg("save room")
		return err
	}
	p := room.Players[len(room.Players)-1]
	if err := s.dir.SavePlayer(r.Context(), playerID, store.PlayerInfo{
		Name:        p.Name,
		RoomID:      room.RoomID,
		ConnectedAt: time.Now().UTC(),
	}); err != nil {
		log.Warn().Err(err).Str("playerId", playerID).Msg("save player record")
	}
	return nil
}

// newRoomID returns a short uppercase room code (uuid prefix, 8 hex chars).
func newRoomID() string {
	return strings.ToUpper(uuid.NewString()[:8])
}
