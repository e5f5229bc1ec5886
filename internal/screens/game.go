// internal/screens/game.go
//
// Controller for the gameplay screen.
// Responsibilities:
//   - Hold the guess input (letters only, upper-case, at most 5).
//   - Submit guesses and mirror accepted feedback into the Round.
//   - Request new words and re-anchor the advisory countdown.
//   - Recompute the countdown on every tick from the stored anchor.
//
// Notes:
//   - Invalid guesses are refused locally; nothing is sent.
//   - Backend refusals and network errors only change Message.
//   - Reaching 0:00 never starts a new word by itself.

package screens

import (
	"context"
	"fmt"
	"time"

	"github.com/enescakir/emoji"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-client/internal/countdown"
	"github.com/robalobadob/wordle/apps/go-client/internal/game"
	"github.com/robalobadob/wordle/apps/go-client/internal/session"
	"github.com/robalobadob/wordle/apps/go-client/internal/store"
)

// Game is the gameplay screen.
type Game struct {
	inflight

	sess     *session.Session
	store    store.Store
	clock    clockwork.Clock
	interval time.Duration

	Guess    string        // current input
	Message  string        // last backend or validation message
	Round    *game.Round   // mirrored round state
	TimeLeft time.Duration // advisory time until the next word
}

// NewGame builds the screen. A nil clock means the real clock and a
// non-positive interval means game.DefaultInterval.
func NewGame(sess *session.Session, st store.Store, clock clockwork.Clock, interval time.Duration) *Game {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if interval <= 0 {
		interval = game.DefaultInterval
	}
	return &Game{
		sess:     sess,
		store:    st,
		clock:    clock,
		interval: interval,
		Round:    game.NewRound(),
	}
}

// Load reads the stored anchor once so the countdown is right before the
// first tick.
func (g *Game) Load(ctx context.Context) { g.Tick(ctx) }

// Input replaces the guess with the normalised text. It reports false and
// keeps the old input when the round is over.
func (g *Game) Input(text string) bool {
	if !g.Editable() {
		return false
	}
	g.Guess = game.NormalizeInput(text)
	return true
}

// Submit sends the current guess.
func (g *Game) Submit(ctx context.Context) error {
	if err := g.begin(); err != nil {
		return err
	}
	defer g.end()

	if g.IsGameOver() {
		return game.ErrRoundOver
	}
	if err := game.ValidateGuess(g.Guess); err != nil {
		g.Message = err.Error()
		return err
	}

	guess := g.Guess
	res, err := g.sess.API().Guess(ctx, guess)
	if err != nil {
		log.Warn().Err(err).Msg("submit guess")
		g.Message = messageFor(err)
		return err
	}
	g.Guess = ""

	if res.Rejected() {
		g.Message = res.Rejection
		return nil
	}
	if err := g.Round.Apply(game.WithLetters(res.Result.Result, guess), res.Result.Won); err != nil {
		g.Message = err.Error()
		return err
	}
	g.Message = res.Result.Message
	log.Debug().
		Int("remaining", g.Round.Remaining).
		Str("status", string(g.Round.Status())).
		Msg("guess applied")
	return nil
}

// NextWord asks for a new word and, on success, replaces the whole round.
func (g *Game) NextWord(ctx context.Context) error {
	if err := g.begin(); err != nil {
		return err
	}
	defer g.end()

	res, err := g.sess.API().NextWord(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("next word")
		g.Message = messageFor(err)
		return err
	}

	now := g.clock.Now()
	g.Message = res.Message
	g.Guess = ""
	g.Round.Reset(now, g.interval)
	if err := countdown.SaveAnchor(ctx, g.store, now); err != nil {
		log.Warn().Err(err).Msg("save round anchor")
	}
	g.TimeLeft = g.interval
	return nil
}

// Tick recomputes TimeLeft from the stored anchor. It never touches Round.
func (g *Game) Tick(ctx context.Context) {
	anchor, ok, err := countdown.LoadAnchor(ctx, g.store)
	if err != nil {
		log.Debug().Err(err).Msg("load round anchor")
		return
	}
	if ok {
		g.TimeLeft = countdown.Remaining(anchor, g.clock.Now(), g.interval)
	}
}

// Logout ends the session; the front end returns to the login screen.
func (g *Game) Logout(ctx context.Context) error { return g.sess.Logout(ctx) }

// IsGameOver reports whether the round was won or ran out of attempts.
func (g *Game) IsGameOver() bool { return g.Round.Over() }

// Editable reports whether the guess input accepts text.
func (g *Game) Editable() bool { return !g.IsGameOver() }

// Grid returns the 5x5 board for rendering.
func (g *Game) Grid() [][]game.Cell { return game.Grid(g.Round.History) }

// Countdown renders TimeLeft as m:ss.
func (g *Game) Countdown() string { return countdown.Format(g.TimeLeft) }

// AttemptsLine is the "attempts remaining" label.
func (g *Game) AttemptsLine() string {
	return fmt.Sprintf("Attempts remaining: %d", g.Round.Remaining)
}

// StatusLine is shown only once the round is over.
func (g *Game) StatusLine() string {
	switch g.Round.Status() {
	case game.StatusWon:
		return fmt.Sprintf("%v Congratulations! You won", emoji.PartyPopper)
	case game.StatusExhausted:
		return fmt.Sprintf("%v You ran out of attempts", emoji.CryingFace)
	default:
		return ""
	}
}
