package screens

import (
	"context"

	"github.com/enescakir/emoji"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/robalobadob/wordle/apps/go-client/internal/api"
	"github.com/robalobadob/wordle/apps/go-client/internal/session"
)

const (
	// RankingSize is how many players the ranking shows.
	RankingSize = 10
	// MsgNoPlayers is shown for an empty ranking.
	MsgNoPlayers = "no registered players"
)

// Medal decorates the top three positions.
type Medal int

const (
	NoMedal Medal = iota
	Gold
	Silver
	Bronze
)

func (m Medal) String() string {
	switch m {
	case Gold:
		return emoji.FirstPlaceMedal.String()
	case Silver:
		return emoji.SecondPlaceMedal.String()
	case Bronze:
		return emoji.ThirdPlaceMedal.String()
	default:
		return ""
	}
}

// Rank is one displayed ranking row.
type Rank struct {
	Position int // 1-based
	Username string
	Wins     int
	Medal    Medal
}

// Ranking is the top-players screen.
type Ranking struct {
	inflight
	sess *session.Session

	Rows       []Rank
	Refreshing bool
	Err        error
}

func NewRanking(sess *session.Session) *Ranking { return &Ranking{sess: sess} }

// Load fetches the ranking. A failed load keeps the previous rows.
func (r *Ranking) Load(ctx context.Context) error {
	if err := r.begin(); err != nil {
		return err
	}
	defer r.end()

	entries, err := r.sess.API().Ranking(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("fetch ranking")
		r.Err = err
		return err
	}
	r.Rows, r.Err = toRanks(entries), nil
	return nil
}

// Refresh reloads the ranking, flagging Refreshing for the duration.
func (r *Ranking) Refresh(ctx context.Context) error {
	r.Refreshing = true
	defer func() { r.Refreshing = false }()
	return r.Load(ctx)
}

// Empty reports whether there is nothing to show.
func (r *Ranking) Empty() bool { return len(r.Rows) == 0 }

func toRanks(entries []api.RankingEntry) []Rank {
	if len(entries) > RankingSize {
		entries = entries[:RankingSize]
	}
	return lo.Map(entries, func(e api.RankingEntry, i int) Rank {
		m := NoMedal
		if i < 3 {
			m = Medal(i + 1)
		}
		return Rank{Position: i + 1, Username: e.Username, Wins: e.Wins, Medal: m}
	})
}
