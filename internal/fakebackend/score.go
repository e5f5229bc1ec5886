package fakebackend

// Feedback codes on the wire.
const (
	markHit     = 1
	markPresent = 2
	markMiss    = 3
)

// scoreGuess implements the standard Wordle two-pass scoring algorithm.
//
// Pass 1: mark exact matches as hit and count the remaining answer letters.
// Pass 2: each non-hit guess letter is present while the answer still has
// an unclaimed copy of it, otherwise a miss.
//
// Both inputs are lowercase a-z of equal length.
func scoreGuess(answer, guess string) []int {
	n := len(guess)
	res := make([]int, n)
	var counts [26]int

	for i := 0; i < n; i++ {
		if guess[i] == answer[i] {
			res[i] = markHit
		} else {
			counts[answer[i]-'a']++
		}
	}
	for i := 0; i < n; i++ {
		if res[i] == markHit {
			continue
		}
		j := guess[i] - 'a'
		if counts[j] > 0 {
			res[i] = markPresent
			counts[j]--
		} else {
			res[i] = markMiss
		}
	}
	return res
}

func allHit(m []int) bool {
	for _, x := range m {
		if x != markHit {
			return false
		}
	}
	return true
}

func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
