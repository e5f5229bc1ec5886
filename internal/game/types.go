// internal/game/types.go
//
// Core type definitions for the client-side view of a round.
// Defines:
//   - Feedback: per-letter outcome as reported by the backend.
//   - Cell/Row: one tile and one guess worth of tiles.
//   - Status: coarse lifecycle state of a Round.

package game

import (
	"bytes"
	"encoding/json"
	"math"
)

const (
	// WordLength is the number of letters in a guess and cells in a row.
	WordLength = 5
	// MaxAttempts is the number of guesses a fresh round allows.
	MaxAttempts = 5
)

// Feedback represents the evaluation result for a single letter of a guess.
// Its numeric values match the backend wire codes:
//   - 1: Correct   (right letter, right position)
//   - 2: Misplaced (right letter, wrong position)
//   - 3: Absent    (letter not in the word)
//
// The zero value is Unattempted, the state of a tile no guess has filled yet.
type Feedback int

const (
	Unattempted Feedback = iota
	Correct
	Misplaced
	Absent
)

func (f Feedback) String() string {
	switch f {
	case Correct:
		return "correct"
	case Misplaced:
		return "misplaced"
	case Absent:
		return "absent"
	default:
		return "unattempted"
	}
}

// Cell is one grid tile: the letter shown and how to colour it.
type Cell struct {
	Letter   string   `json:"letter"`
	Feedback Feedback `json:"value"`
}

// UnmarshalJSON accepts either a bare feedback code (`1`) or an object
// (`{"letter":"A","value":1}`). It never fails: any code that is not an
// integral JSON number, and any other cell shape, becomes Unattempted.
func (c *Cell) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] != '{' {
		*c = Cell{Feedback: feedbackOfRaw(b)}
		return nil
	}
	var raw struct {
		Letter json.RawMessage `json:"letter"`
		Value  json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		*c = Cell{}
		return nil
	}
	var letter string
	_ = json.Unmarshal(raw.Letter, &letter)
	*c = Cell{Letter: letter, Feedback: feedbackOfRaw(raw.Value)}
	return nil
}

// feedbackOfRaw maps a raw JSON value through FeedbackOf when it is an
// integral number.
func feedbackOfRaw(b json.RawMessage) Feedback {
	var v float64
	if len(b) == 0 || json.Unmarshal(b, &v) != nil {
		return Unattempted
	}
	if v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
		return Unattempted
	}
	return FeedbackOf(int(v))
}

// Row is the feedback for one guess, one Cell per letter position.
type Row []Cell

// Status is the lifecycle state of a Round.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusExhausted  Status = "exhausted"
)
