package game

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidGuess is returned for guesses that are not WordLength letters.
	ErrInvalidGuess = errors.New("guess must have 5 letters")
	// ErrRoundOver is returned when a finished round receives another guess.
	ErrRoundOver = errors.New("round is over, request a new word")
)

// NormalizeInput turns raw typed text into a guess candidate:
// non-letters are dropped, letters upper-cased, and input capped at WordLength.
func NormalizeInput(s string) string {
	var b strings.Builder
	for _, r := range s {
		if b.Len() == WordLength {
			break
		}
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r - 'a' + 'A')
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidateGuess checks the only rule the client owns: exactly
// WordLength ASCII letters. Dictionary checks are the backend's job.
func ValidateGuess(g string) error {
	if len(g) != WordLength || !isAlpha(g) {
		return ErrInvalidGuess
	}
	return nil
}

// isAlpha checks that a string consists only of ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return false
		}
	}
	return true
}
