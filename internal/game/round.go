// internal/game/round.go
//
// Client mirror of a single word-guessing round.
// Responsibilities:
//   - Start rounds with MaxAttempts attempts and an empty history.
//   - Apply backend-accepted feedback rows (append, decrement, win flag).
//   - Track state transitions: in_progress → won | exhausted.
//   - Hold the advisory deadline for the next word.
//
// Notes:
//   - The backend is authoritative; a Round only mirrors what it reported.
//   - A Round is owned by one goroutine and does no locking.

package game

import "time"

// DefaultInterval is how long a word lasts before the next one is expected.
const DefaultInterval = 5 * time.Minute

// Round holds the state of the round currently shown to the player.
type Round struct {
	Remaining int       // Attempts left; starts at MaxAttempts.
	Won       bool      // True once the backend reported a win.
	History   []Row     // Accepted feedback rows, oldest first.
	Deadline  time.Time // Advisory time the next word becomes available; zero before the first new word.
}

// NewRound returns a round in its entry state with no deadline.
func NewRound() *Round {
	return &Round{Remaining: MaxAttempts, History: []Row{}}
}

// Reset replaces the whole round with a fresh one anchored at now.
func (r *Round) Reset(now time.Time, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	*r = Round{
		Remaining: MaxAttempts,
		History:   []Row{},
		Deadline:  now.Add(interval),
	}
}

// Apply records one accepted guess.
// Returns ErrRoundOver without touching state if the round already ended.
func (r *Round) Apply(row Row, won bool) error {
	if r.Over() {
		return ErrRoundOver
	}
	r.History = append(r.History, row)
	r.Remaining--
	if won {
		r.Won = true
	}
	return nil
}

// Over reports whether no further guesses are accepted.
func (r *Round) Over() bool { return r.Won || r.Remaining <= 0 }

// Status reports the coarse lifecycle state.
func (r *Round) Status() Status {
	switch {
	case r.Won:
		return StatusWon
	case r.Remaining <= 0:
		return StatusExhausted
	default:
		return StatusInProgress
	}
}
