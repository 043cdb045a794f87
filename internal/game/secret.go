// internal/game/secret.go
//
// Secret code generation: 4 decimal digits, pairwise distinct, never starting
// with zero. Codes are not security material, but entropy comes from
// crypto/rand anyway since it is the one source used across the server.

package game

import (
	"crypto/rand"
	"math/big"
)

// secretLen is the fixed code length. The scoring engine, the validator and
// the generator all assume this value.
const secretLen = 4

// NewSecret returns a fresh secret code. Digits are drawn uniformly and
// accepted only when unseen, preserving draw order. A leading zero is swapped
// with the second digit: this keeps the digit set unbiased even though it
// skews that one permutation, which is acceptable here.
func NewSecret() string {
	digits := make([]byte, 0, secretLen)
	for len(digits) < secretLen {
		d := randDigit()
		if !containsDigit(digits, d) {
			digits = append(digits, d)
		}
	}
	if digits[0] == '0' {
		digits[0], digits[1] = digits[1], digits[0]
	}
	return string(digits)
}

// randDigit draws one random decimal digit character.
func randDigit() byte {
	n, _ := rand.Int(rand.Reader, big.NewInt(10))
	return byte('0' + n.Int64())
}

func containsDigit(ds []byte, d byte) bool {
	for _, x := range ds {
		if x == d {
			return true
		}
	}
	return false
}
