package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/robalobadob/wordle/apps/go-client/internal/game"
	"github.com/robalobadob/wordle/apps/go-client/internal/screens"
)

const (
	sgrReset     = "\x1b[0m"
	sgrCorrect   = "\x1b[1;30;42m"
	sgrMisplaced = "\x1b[1;30;43m"
	sgrAbsent    = "\x1b[1;37;100m"
	sgrEmpty     = "\x1b[2m"
)

// Renderer prints screens as text. Colour uses ANSI SGR codes.
type Renderer struct {
	w     io.Writer
	color bool
}

func NewRenderer(w io.Writer, color bool) *Renderer { return &Renderer{w: w, color: color} }

// Stdout returns a renderer on the process stdout, coloured only when it is
// a terminal.
func Stdout() *Renderer {
	fd := os.Stdout.Fd()
	tty := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	return NewRenderer(colorable.NewColorableStdout(), tty)
}

func (r *Renderer) Printf(format string, args ...any) { fmt.Fprintf(r.w, format, args...) }

func (r *Renderer) Println(args ...any) { fmt.Fprintln(r.w, args...) }

// Board prints the grid, the attempts line, the countdown, and the message.
func (r *Renderer) Board(g *screens.Game) {
	for _, row := range g.Grid() {
		var b strings.Builder
		for _, c := range row {
			b.WriteString(r.tile(c))
		}
		r.Println(b.String())
	}
	r.Println(g.AttemptsLine())
	r.Printf("Next word in %s\n", g.Countdown())
	if g.Message != "" {
		r.Println(g.Message)
	}
	if s := g.StatusLine(); s != "" {
		r.Println(s)
	}
}

func (r *Renderer) tile(c game.Cell) string {
	letter := c.Letter
	if letter == "" {
		letter = " "
	}
	if r.color {
		code := sgrEmpty
		switch c.Feedback {
		case game.Correct:
			code = sgrCorrect
		case game.Misplaced:
			code = sgrMisplaced
		case game.Absent:
			code = sgrAbsent
		}
		if c.Feedback == game.Unattempted {
			letter = "_"
		}
		return code + " " + letter + " " + sgrReset
	}
	switch c.Feedback {
	case game.Correct:
		return "[" + letter + "]"
	case game.Misplaced:
		return "(" + letter + ")"
	case game.Absent:
		return " " + strings.ToLower(letter) + " "
	default:
		return " _ "
	}
}

// Stats prints the statistics screen.
func (r *Renderer) Stats(s *screens.Stats) {
	r.Println(s.Greeting())
	if s.Data == nil {
		r.Println(screens.MsgStatsUnavailable)
		return
	}
	d := s.Data
	r.Printf("Games played:   %d\n", d.TotalGames)
	r.Printf("Victories:      %d\n", d.TotalVictories)
	r.Printf("Losses:         %d\n", s.Losses())
	r.Printf("Win rate:       %d%%\n", s.WinRate())
	r.Printf("Current streak: %d\n", d.CurrentStreak)
	r.Printf("Best streak:    %d\n", d.BestStreak)
}

// Ranking prints the top players.
func (r *Renderer) Ranking(rk *screens.Ranking) {
	if rk.Empty() {
		if rk.Err != nil {
			r.Println("could not load ranking:", rk.Err)
			return
		}
		r.Println(screens.MsgNoPlayers)
		return
	}
	for _, row := range rk.Rows {
		medal := row.Medal.String()
		if medal == "" {
			medal = "  "
		}
		r.Printf("%2d. %s %-20s %d\n", row.Position, medal, row.Username, row.Wins)
	}
}

const helpText = `Type a 5-letter word to guess it.
  :new     request a new word
  :stats   show your statistics
  :rank    show the top 10 players
  :logout  log out
  :help    show this help
  :quit    exit`
