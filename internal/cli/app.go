// internal/cli/app.go
//
// Line-oriented terminal front end.
// Responsibilities:
//   - Walk the player through login or registration, then the game screen.
//   - Dispatch game commands (:new, :stats, :rank, :logout, :help, :quit).
//   - Feed countdown ticks to the game screen.
//
// Notes:
//   - One goroutine (the loop in Run) owns every screen controller.
//     Stdin lines and ticks reach it over channels.
//   - Reaching 0:00 prints a hint; a new word is only fetched on :new.

package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-client/internal/api"
	"github.com/robalobadob/wordle/apps/go-client/internal/countdown"
	"github.com/robalobadob/wordle/apps/go-client/internal/screens"
	"github.com/robalobadob/wordle/apps/go-client/internal/session"
	"github.com/robalobadob/wordle/apps/go-client/internal/store"
)

// App wires the front end to its dependencies.
type App struct {
	Client   *api.Client
	Store    store.Store
	Clock    clockwork.Clock // nil means the real clock
	Interval time.Duration   // round length; <= 0 means the default
	Username string          // non-interactive login
	Password string
}

type step int

const (
	stepUser step = iota
	stepPass
	stepRegUser
	stepRegPass
	stepGame
)

// loop is the state owned by Run's goroutine.
type loop struct {
	app  *App
	out  *Renderer
	sess *session.Session
	step step

	login    *screens.Login
	register *screens.Register
	game     *screens.Game
	stats    *screens.Stats
	ranking  *screens.Ranking
}

var errQuit = errors.New("quit")

const msgWordAvailable = "A new word is available, type :new."

// Run drives the interactive client until :quit, end of input, or ctx is done.
func (a *App) Run(ctx context.Context, in io.Reader, out *Renderer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	go readLines(ctx, in, lines)

	ticks := make(chan time.Time, 1)
	go countdown.NewTicker(a.Clock).Run(ctx, func(now time.Time) {
		select {
		case ticks <- now:
		default: // the loop is busy; the next tick will do
		}
	})

	l := &loop{app: a, out: out, sess: session.New(a.Client, a.Store)}
	l.toLogin()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticks:
			l.tick(ctx)
		case line, ok := <-lines:
			if !ok {
				out.Println()
				return nil
			}
			if err := l.handle(ctx, strings.TrimSpace(line)); err != nil {
				if errors.Is(err, errQuit) {
					return nil
				}
				return err
			}
		}
	}
}

func readLines(ctx context.Context, in io.Reader, lines chan<- string) {
	defer close(lines)
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		select {
		case lines <- sc.Text():
		case <-ctx.Done():
			return
		}
	}
	if err := sc.Err(); err != nil {
		log.Warn().Err(err).Msg("read input")
	}
}

func (l *loop) toLogin() {
	l.step = stepUser
	l.login = screens.NewLogin(l.sess)
	l.out.Println("Log in to play (type :register to create an account, :quit to exit).")
	l.out.Printf("username: ")
}

func (l *loop) toGame(ctx context.Context) {
	l.step = stepGame
	l.game = screens.NewGame(l.sess, l.app.Store, l.app.Clock, l.app.Interval)
	l.stats = screens.NewStats(l.sess)
	l.ranking = screens.NewRanking(l.sess)
	l.game.Load(ctx)
	l.out.Println(l.stats.Greeting())
	l.out.Board(l.game)
	l.out.Println("Type :help for commands.")
}

func (l *loop) handle(ctx context.Context, line string) error {
	if line == ":quit" {
		return errQuit
	}
	switch l.step {
	case stepUser:
		if line == ":register" {
			l.step = stepRegUser
			l.register = screens.NewRegister(l.app.Client)
			l.out.Printf("new username: ")
			return nil
		}
		l.login.Username = line
		l.step = stepPass
		l.out.Printf("password: ")
	case stepPass:
		l.login.Password = line
		if err := l.login.Submit(ctx); err != nil {
			l.out.Println(l.login.Error)
			l.toLogin()
			return nil
		}
		l.toGame(ctx)
	case stepRegUser:
		l.register.Username = line
		l.step = stepRegPass
		l.out.Printf("new password: ")
	case stepRegPass:
		l.register.Password = line
		if err := l.register.Submit(ctx); err != nil {
			l.out.Println(l.register.Error)
		} else {
			l.out.Println(l.register.Notice)
		}
		l.toLogin()
	case stepGame:
		return l.command(ctx, line)
	}
	return nil
}

func (l *loop) command(ctx context.Context, line string) error {
	switch line {
	case "":
		return nil
	case ":help":
		l.out.Println(helpText)
	case ":new":
		_ = l.game.NextWord(ctx)
		l.out.Board(l.game)
	case ":stats":
		_ = l.stats.Load(ctx)
		l.out.Stats(l.stats)
	case ":rank":
		_ = l.ranking.Refresh(ctx)
		l.out.Ranking(l.ranking)
	case ":logout":
		if err := l.game.Logout(ctx); err != nil {
			log.Warn().Err(err).Msg("logout")
		}
		l.out.Println("Logged out.")
		l.toLogin()
	default:
		if strings.HasPrefix(line, ":") {
			l.out.Println("unknown command, type :help")
			return nil
		}
		if !l.game.Input(line) {
			l.out.Println("The round is over, type :new for a new word.")
			return nil
		}
		if err := l.game.Submit(ctx); errors.Is(err, api.ErrUnauthorized) {
			l.out.Println("Session expired, please log in again.")
			_ = l.sess.Logout(ctx)
			l.toLogin()
			return nil
		}
		l.out.Board(l.game)
	}
	return nil
}

func (l *loop) tick(ctx context.Context) {
	if l.step != stepGame {
		return
	}
	before := l.game.TimeLeft
	l.game.Tick(ctx)
	if before > 0 && l.game.TimeLeft == 0 {
		l.out.Println(msgWordAvailable)
	}
}
