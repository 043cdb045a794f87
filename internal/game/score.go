// internal/game/score.go
//
// Bulls-and-cows scoring. Precondition: both strings already validated
// (4 unique digits each; they need not share a digit set).

package game

// Score computes bulls (right digit, right position) and cows (right digit,
// wrong position) for a guess against the secret, using a two-pass
// consume-and-mask approach.
//
// Pass 1:
//   - Count exact positional matches as bulls and mask both sides with
//     non-digit sentinels so a digit is never matched twice.
//
// Pass 2:
//   - For each guess digit not consumed as a bull, scan the bull-masked
//     secret for that digit; on a hit count a cow and mask the secret
//     position, so one secret digit never feeds two guess positions.
//
// With unique digits on both sides this gives bulls+cows <= 4 and bulls == 4
// exactly when guess equals secret.
func Score(secret, guess string) (bulls, cows int) {
	s := []byte(secret)
	g := []byte(guess)

	for i := range s {
		if s[i] == g[i] {
			bulls++
			s[i], g[i] = 'X', 'Y' // consumed
		}
	}

	for i := range g {
		if g[i] == 'Y' {
			continue
		}
		for j := range s {
			if s[j] == g[i] {
				cows++
				s[j] = 'X'
				break
			}
		}
	}
	return bulls, cows
}
