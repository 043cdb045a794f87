// internal/game/room.go
//
// Room state machine for a single Vache-Taureau session.
// Responsibilities:
//   - Create rooms with a fresh secret code and an open roster.
//   - Enforce capacity and phase rules on join/start/guess/leave.
//   - Score guesses and assign finishing rank and score on a 4-bull guess.
//   - Track the overall winner and the all-finished end condition.
//   - Produce the client-facing snapshot via State().
//
// Notes:
//   - A room is mutated under one logical thread of control: callers hold a
//     per-room lock around every operation. Nothing here blocks or suspends.
//   - All operations return sentinel errors from errors.go; they never panic
//     on well-formed input.

package game

import (
	"strings"
	"time"
)

const (
	// DefaultMaxPlayers bounds the roster size of a new room.
	DefaultMaxPlayers = 4
	// DefaultMinPlayers is the smallest roster that may start a game.
	// Solo play is allowed; deployments wanting a true multiplayer floor
	// can raise it through configuration.
	DefaultMinPlayers = 1
)

// New constructs an open room with a freshly generated secret.
func New(roomID string) *Room {
	return NewWithSecret(roomID, NewSecret())
}

// NewWithSecret constructs a room with a fixed secret code (testing).
func NewWithSecret(roomID, secret string) *Room {
	return &Room{
		RoomID:     roomID,
		SecretCode: secret,
		Phase:      PhaseOpen,
		Players:    []*Player{},
		MaxPlayers: DefaultMaxPlayers,
		MinPlayers: DefaultMinPlayers,
		CreatedAt:  time.Now().UTC(),
	}
}

// AddPlayer appends a new player to the roster.
// Fails once the game has started or the room is at capacity. The display
// name must be non-empty after trimming; duplicate names are allowed.
func (r *Room) AddPlayer(playerID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if r.Phase != PhaseOpen {
		return ErrAlreadyStarted
	}
	if len(r.Players) >= r.MaxPlayers {
		return ErrRoomFull
	}
	r.Players = append(r.Players, &Player{
		ID:       playerID,
		Name:     name,
		Attempts: []Attempt{},
	})
	return nil
}

// RemovePlayer drops the player from the roster (no-op if absent) and
// reports whether the room is now empty and should be deleted. The phase is
// left untouched.
func (r *Room) RemovePlayer(playerID string) bool {
	kept := r.Players[:0]
	for _, p := range r.Players {
		if p.ID != playerID {
			kept = append(kept, p)
		}
	}
	r.Players = kept
	return len(r.Players) == 0
}

// Start moves the room from open to started.
// Rejected when the room is not open (phases never regress) or the roster
// is below the minimum size.
func (r *Room) Start() error {
	if r.Phase != PhaseOpen {
		return ErrAlreadyStarted
	}
	if len(r.Players) < r.MinPlayers {
		return ErrNotEnoughPlayers
	}
	r.Phase = PhaseStarted
	return nil
}

// MakeGuess validates, scores and records one guess for a player.
//
// On a 4-bull guess the player finishes: rank is the count of finished
// players including them (so ranks are assigned strictly in processing
// order), score is max(1000-(attempt-1)*100, 100), the first finisher
// becomes the room winner, and the room ends once every player has
// finished. The secret code is included in the result only for the winning
// guess.
func (r *Room) MakeGuess(playerID, guess string) (*GuessResult, error) {
	switch r.Phase {
	case PhaseOpen:
		return nil, ErrNotStarted
	case PhaseEnded:
		return nil, ErrGameOver
	}

	p := r.findPlayer(playerID)
	if p == nil {
		return nil, ErrPlayerNotFound
	}
	if p.Finished {
		return nil, ErrAlreadyFinished
	}
	if err := ValidateGuess(guess); err != nil {
		return nil, err
	}

	bulls, cows := Score(r.SecretCode, guess)
	attempt := Attempt{
		Number:    len(p.Attempts) + 1,
		Guess:     guess,
		Bulls:     bulls,
		Cows:      cows,
		Timestamp: time.Now().UTC(),
	}
	p.Attempts = append(p.Attempts, attempt)

	res := &GuessResult{Attempt: attempt}
	if bulls == secretLen {
		p.Finished = true
		p.Rank = r.finishedCount()
		p.Score = scoreFor(attempt.Number)
		if p.Rank == 1 {
			r.WinnerID = p.ID
			ws := summarize(p)
			r.WinnerSummary = &ws
		}
		if r.allFinished() {
			r.Phase = PhaseEnded
		}
		res.IsWinner = true
		res.Rank = p.Rank
		res.SecretCode = r.SecretCode
	}
	res.RoomEnded = r.Phase == PhaseEnded
	return res, nil
}

// State builds the snapshot sent to clients. The secret code is projected
// only once the room has ended.
func (r *Room) State() GameState {
	st := GameState{
		RoomID:      r.RoomID,
		Players:     make([]PlayerSummary, 0, len(r.Players)),
		GameStarted: r.Phase != PhaseOpen,
		GameEnded:   r.Phase == PhaseEnded,
		MaxPlayers:  r.MaxPlayers,
		CanJoin:     r.Phase == PhaseOpen && len(r.Players) < r.MaxPlayers,
	}
	if r.Phase == PhaseEnded {
		st.SecretCode = r.SecretCode
	}
	for _, p := range r.Players {
		st.Players = append(st.Players, summarize(p))
	}
	if r.WinnerSummary != nil {
		ws := *r.WinnerSummary
		st.Winner = &ws
	}
	return st
}

// Winner returns the live rank-1 player. It is nil before anyone has
// finished and after the winner leaves the room; WinnerSummary keeps the
// frozen snapshot for that case.
func (r *Room) Winner() *Player {
	return r.findPlayer(r.WinnerID)
}

func (r *Room) findPlayer(playerID string) *Player {
	if playerID == "" {
		return nil
	}
	for _, p := range r.Players {
		if p.ID == playerID {
			return p
		}
	}
	return nil
}

// finishedCount counts finished players, including one that just flipped.
func (r *Room) finishedCount() int {
	n := 0
	for _, p := range r.Players {
		if p.Finished {
			n++
		}
	}
	return n
}

func (r *Room) allFinished() bool {
	for _, p := range r.Players {
		if !p.Finished {
			return false
		}
	}
	return len(r.Players) > 0
}

// scoreFor maps the 1-based winning attempt number to a score:
// first attempt 1000, minus 100 per extra attempt, floor 100.
func scoreFor(attemptNumber int) int {
	score := 1000 - (attemptNumber-1)*100
	if score < 100 {
		score = 100
	}
	return score
}

// summarize projects a player into its snapshot form.
func summarize(p *Player) PlayerSummary {
	s := PlayerSummary{
		ID:       p.ID,
		Name:     p.Name,
		Attempts: len(p.Attempts),
		Finished: p.Finished,
		Rank:     p.Rank,
		Score:    p.Score,
	}
	if n := len(p.Attempts); n > 0 {
		last := p.Attempts[n-1]
		s.LastAttempt = &last
	}
	return s
}
