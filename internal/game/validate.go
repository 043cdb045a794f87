// internal/game/validate.go
//
// Structural validation of a guess string. Rules apply in order: shape first
// (exactly 4 decimal digits), then distinctness. The first failing rule
// determines the reported error. Pure function, no side effects.

package game

// ValidateGuess checks that guess is exactly 4 decimal digits, all different.
func ValidateGuess(guess string) error {
	if len(guess) != secretLen || !isDigits(guess) {
		return ErrGuessFormat
	}
	for i := 0; i < len(guess); i++ {
		for j := i + 1; j < len(guess); j++ {
			if guess[i] == guess[j] {
				return ErrGuessRepeat
			}
		}
	}
	return nil
}

// isDigits checks that a string consists only of ASCII 0–9.
func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
