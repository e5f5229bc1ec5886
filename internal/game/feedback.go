package game

import (
	"strings"

	"github.com/samber/lo"
)

// FeedbackOf maps a backend feedback code to exactly one Feedback.
// 1, 2 and 3 are Correct, Misplaced and Absent; every other value,
// including a missing one decoded as 0, is Unattempted.
func FeedbackOf(v int) Feedback {
	switch v {
	case 1:
		return Correct
	case 2:
		return Misplaced
	case 3:
		return Absent
	default:
		return Unattempted
	}
}

// Grid lays history out as a fixed MaxAttempts x WordLength board.
// Positions without feedback are Unattempted blanks.
func Grid(history []Row) [][]Cell {
	return lo.Times(MaxAttempts, func(r int) []Cell {
		return lo.Times(WordLength, func(c int) Cell {
			if r < len(history) && c < len(history[r]) {
				return history[r][c]
			}
			return Cell{}
		})
	})
}

// WithLetters fills blank letters in row from the guess that produced it.
// Backends that answer with bare codes leave Letter empty.
func WithLetters(row Row, guess string) Row {
	guess = strings.ToUpper(guess)
	out := make(Row, len(row))
	for i, c := range row {
		if c.Letter == "" && i < len(guess) {
			c.Letter = guess[i : i+1]
		}
		c.Letter = strings.ToUpper(c.Letter)
		out[i] = c
	}
	return out
}
