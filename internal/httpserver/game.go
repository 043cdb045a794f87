// internal/httpserver/game.go
//
// In-game endpoints: start, guess, state. Each mutation holds the room's
// keyed lock across the read-modify-save cycle so no caller observes a
// partially updated room.

package httpserver

import (
	"net/http"
	"time"

	"github.com/vachetaureau/go-server/internal/game"
)

// mountGameRoutes registers the /game endpoints.
func (s *Server) mountGameRoutes() {
	s.r.Post("/game/start", s.handleStartGame)
	s.r.Post("/game/guess", s.handleGuess)
	s.r.Get("/game/state", s.handleGameState)
}

type startGameReq struct {
	RoomID   string `json:"roomId"`
	PlayerID string `json:"playerId"`
}

// handleStartGame moves the room into its started phase.
func (s *Server) handleStartGame(w http.ResponseWriter, r *http.Request) {
	var req startGameReq
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

	if err := room.Start(); err != nil {
		writeErr(w, gameStatus(err), err.Error())
		return
	}
	if err := s.dir.SaveRoom(r.Context(), room); err != nil {
		writeErr(w, http.StatusInternalServerError, "save_failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"gameState": room.State(),
	})
}

type guessReq struct {
	RoomID   string `json:"roomId"`
	PlayerID string `json:"playerId"`
	Guess    string `json:"guess"`
}

// guessRes flattens the core's GuessResult next to the fresh snapshot.
type guessRes struct {
	Success bool `json:"success"`
	*game.GuessResult
	GameState game.GameState `json:"gameState"`
}

// handleGuess validates, scores and records one guess.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := decodeBody(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "bad_json")
		return
	}
	if req.RoomID == "" || req.PlayerID == "" || req.Guess == "" {
		writeErr(w, http.StatusBadRequest, "room id, player id and guess are required")
		return
	}

	s.locks.Lock(req.RoomID)
	defer s.locks.Unlock(req.RoomID)

	room, err := s.dir.GetRoom(r.Context(), req.RoomID)
	if err != nil {
		writeLookupErr(w, err)
		return
	}

	res, err := room.MakeGuess(req.PlayerID, req.Guess)
	if err != nil {
		writeErr(w, gameStatus(err), err.Error())
		return
	}
	if err := s.dir.SaveRoom(r.Context(), room); err != nil {
		writeErr(w, http.StatusInternalServerError, "save_failed")
		return
	}

	writeJSON(w, http.StatusOK, guessRes{
		Success:     true,
		GuessResult: res,
		GameState:   room.State(),
	})
}

// handleGameState returns the read-only snapshot for polling clients.
func (s *Server) handleGameState(w http.ResponseWriter, r *http.Request) {
	roomID := r.URL.Query().Get("roomId")
	if roomID == "" {
		writeErr(w, http.StatusBadRequest, "room id is required")
		return
	}

	s.locks.Lock(roomID)
	defer s.locks.Unlock(roomID)

	room, err := s.dir.GetRoom(r.Context(), roomID)
	if err != nil {
		writeLookupErr(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"gameState": room.State(),
		"timestamp": time.Now().UnixMilli(),
	})
}
