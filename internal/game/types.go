// internal/game/types.go
//
// Core type definitions for the Vache-Taureau game engine.
// Defines:
//   - Phase: room lifecycle stage (open/started/ended).
//   - Attempt: one scored guess in a player's history.
//   - Player: per-room participant state.
//   - Room: the full serializable state of one game session.
//   - GameState / PlayerSummary: the read-only projection sent to clients.

package game

import "time"

// Phase represents the lifecycle stage of a room.
// Transitions are monotonic: open → started → ended.
type Phase string

const (
	PhaseOpen    Phase = "open"
	PhaseStarted Phase = "started"
	PhaseEnded   Phase = "ended"
)

// Attempt is one scored guess. Attempts are append-only; Number is the
// 1-based position within the player's history.
type Attempt struct {
	Number    int       `json:"number"`
	Guess     string    `json:"guess"`
	Bulls     int       `json:"bulls"`
	Cows      int       `json:"cows"`
	Timestamp time.Time `json:"timestamp"`
}

// Player is a participant in exactly one room. Rank stays 0 until the player
// finishes; finished players hold ranks 1..k in finishing order.
type Player struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Attempts []Attempt `json:"attempts"`
	Finished bool      `json:"finished"`
	Rank     int       `json:"rank"`
	Score    int       `json:"score"`
}

// Room holds the state of a single game session. It is a plain serializable
// record: persisting a room is a straight JSON encode/decode at the store
// boundary. WinnerID references the rank-1 player by ID so the record stays
// acyclic under serialization.
type Room struct {
	RoomID     string    `json:"roomId"`
	SecretCode string    `json:"secretCode"`
	Phase      Phase     `json:"phase"`
	Players    []*Player `json:"players"` // insertion order = join order
	WinnerID   string    `json:"winnerId,omitempty"`
	// WinnerSummary is frozen when the first player finishes, so the winner
	// stays on the scoreboard even if they later leave the room.
	WinnerSummary *PlayerSummary `json:"winner,omitempty"`
	MaxPlayers    int            `json:"maxPlayers"`
	MinPlayers    int            `json:"minPlayers"`
	CreatedAt     time.Time      `json:"createdAt"`
}

// Clone returns a deep copy of the room. Store backends hand out clones so
// a reader never shares a live roster slice with a mutating request.
func (r *Room) Clone() *Room {
	c := *r
	c.Players = make([]*Player, len(r.Players))
	for i, p := range r.Players {
		cp := *p
		cp.Attempts = append([]Attempt(nil), p.Attempts...)
		c.Players[i] = &cp
	}
	if r.WinnerSummary != nil {
		ws := *r.WinnerSummary
		if ws.LastAttempt != nil {
			la := *ws.LastAttempt
			ws.LastAttempt = &la
		}
		c.WinnerSummary = &ws
	}
	return &c
}

// PlayerSummary is the per-player slice of a GameState snapshot.
type PlayerSummary struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Attempts    int      `json:"attempts"`
	Finished    bool     `json:"finished"`
	Rank        int      `json:"rank"`
	Score       int      `json:"score"`
	LastAttempt *Attempt `json:"lastAttempt"`
}

// GameState is the read-only snapshot returned to callers. SecretCode is
// empty until the room has ended; never leaking the code early is the core
// confidentiality invariant.
type GameState struct {
	RoomID      string          `json:"roomId"`
	SecretCode  string          `json:"secretCode,omitempty"`
	Players     []PlayerSummary `json:"players"`
	GameStarted bool            `json:"gameStarted"`
	GameEnded   bool            `json:"gameEnded"`
	Winner      *PlayerSummary  `json:"winner"`
	MaxPlayers  int             `json:"maxPlayers"`
	CanJoin     bool            `json:"canJoin"`
}

// GuessResult reports the outcome of a successful MakeGuess call.
// SecretCode is populated only on the winning guess.
type GuessResult struct {
	Attempt    Attempt `json:"attempt"`
	IsWinner   bool    `json:"isWinner"`
	Rank       int     `json:"rank,omitempty"`
	RoomEnded  bool    `json:"roomEnded"`
	SecretCode string  `json:"secretCode,omitempty"`
}
