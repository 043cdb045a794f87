package game

import (
	"testing"

	"pgregory.net/rapid"
)

// drawCode draws a 4-character string of pairwise-distinct decimal digits.
func drawCode(t *rapid.T, label string) string {
	digits := rapid.SliceOfNDistinct(rapid.IntRange(0, 9), secretLen, secretLen, rapid.ID[int]).Draw(t, label)
	b := make([]byte, 0, secretLen)
	for _, d := range digits {
		b = append(b, byte('0'+d))
	}
	return string(b)
}

// TestScoreBoundsProperty: for any valid secret and guess,
// bulls+cows never exceeds 4 and 4 bulls appear exactly when guess == secret.
func TestScoreBoundsProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		secret := drawCode(t, "secret")
		guess := drawCode(t, "guess")

		bulls, cows := Score(secret, guess)
		if bulls+cows > secretLen {
			t.Fatalf("Score(%q, %q) = (%d, %d): bulls+cows > %d", secret, guess, bulls, cows, secretLen)
		}
		if (bulls == secretLen) != (secret == guess) {
			t.Fatalf("Score(%q, %q) = (%d, %d): 4 bulls must mean an exact match", secret, guess, bulls, cows)
		}
	})
}

// TestScoreSelfProperty: any code scored against itself is 4 bulls, 0 cows.
func TestScoreSelfProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		code := drawCode(t, "code")
		bulls, cows := Score(code, code)
		if bulls != secretLen || cows != 0 {
			t.Fatalf("Score(%q, %q) = (%d, %d), want (%d, 0)", code, code, bulls, cows, secretLen)
		}
	})
}

// TestScoreIntersectionProperty: with pairwise-distinct digits on both sides,
// every shared digit is matched exactly once, so bulls+cows equals the size
// of the digit-set intersection.
func TestScoreIntersectionProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		secret := drawCode(t, "secret")
		guess := drawCode(t, "guess")

		shared := 0
		for i := 0; i < len(guess); i++ {
			for j := 0; j < len(secret); j++ {
				if guess[i] == secret[j] {
					shared++
				}
			}
		}

		bulls, cows := Score(secret, guess)
		if bulls+cows != shared {
			t.Fatalf("Score(%q, %q) = (%d, %d): bulls+cows = %d, want %d shared digits",
				secret, guess, bulls, cows, bulls+cows, shared)
		}
	})
}
