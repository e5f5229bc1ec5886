package screens

import (
	"context"
	"math"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-client/internal/api"
	"github.com/robalobadob/wordle/apps/go-client/internal/session"
)

// MsgStatsUnavailable replaces the stats when loading failed.
const MsgStatsUnavailable = "could not load statistics"

// Stats is the statistics screen.
type Stats struct {
	inflight
	sess *session.Session

	Data *api.Stats // nil until a load succeeds
	Err  error      // last load error
}

func NewStats(sess *session.Session) *Stats { return &Stats{sess: sess} }

// Load fetches the statistics. A failed load keeps the previous Data.
func (s *Stats) Load(ctx context.Context) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	st, err := s.sess.API().Stats(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("fetch stats")
		s.Err = err
		return err
	}
	s.Data, s.Err = &st, nil
	return nil
}

// Greeting addresses the logged-in user.
func (s *Stats) Greeting() string {
	if u := s.sess.Username(); u != "" {
		return "Hello, " + u
	}
	return "Hello, Player"
}

// WinRate is totalVictories/totalGames as a rounded percentage, 0 with no games.
func (s *Stats) WinRate() int {
	if s.Data == nil || s.Data.TotalGames <= 0 {
		return 0
	}
	return int(math.Round(float64(s.Data.TotalVictories) / float64(s.Data.TotalGames) * 100))
}

// Losses is totalGames - totalWins. It reads totalWins, not totalVictories.
func (s *Stats) Losses() int {
	if s.Data == nil {
		return 0
	}
	return s.Data.TotalGames - s.Data.TotalWins
}
