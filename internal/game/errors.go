// internal/game/errors.go
//
// Error taxonomy for the game core. Every operation is a total function:
// well-formed calls never panic, all failures come back as one of these
// sentinel errors. Callers classify them with IsValidation / IsConflict /
// IsNotFound to pick an appropriate status or message.

package game

import "errors"

// Validation errors: the caller sent something malformed. No state mutated.
var (
	ErrEmptyName   = errors.New("player name is required")
	ErrGuessFormat = errors.New("guess must be exactly 4 digits")
	ErrGuessRepeat = errors.New("all 4 digits must be different")
)

// Conflict errors: the operation is invalid for the room's current phase
// or occupancy. No state mutated.
var (
	ErrAlreadyStarted   = errors.New("the game has already started")
	ErrRoomFull         = errors.New("room is full")
	ErrNotStarted       = errors.New("the game has not started yet")
	ErrGameOver         = errors.New("the game is over")
	ErrAlreadyFinished  = errors.New("you have already finished")
	ErrNotEnoughPlayers = errors.New("not enough players to start")
)

// Not-found errors: the referenced entity does not exist in this room.
var (
	ErrPlayerNotFound = errors.New("player not found")
)

// IsValidation reports whether err is a malformed-input failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyName) ||
		errors.Is(err, ErrGuessFormat) ||
		errors.Is(err, ErrGuessRepeat)
}

// IsConflict reports whether err is a phase or capacity conflict.
func IsConflict(err error) bool {
	return errors.Is(err, ErrAlreadyStarted) ||
		errors.Is(err, ErrRoomFull) ||
		errors.Is(err, ErrNotStarted) ||
		errors.Is(err, ErrGameOver) ||
		errors.Is(err, ErrAlreadyFinished) ||
		errors.Is(err, ErrNotEnoughPlayers)
}

// IsNotFound reports whether err refers to a missing entity.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrPlayerNotFound)
}
