package cli

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle/apps/go-client/internal/screens"
	"github.com/robalobadob/wordle/apps/go-client/internal/session"
)

// ErrNoCredentials is returned by the non-interactive commands when no
// username or password was configured.
var ErrNoCredentials = errors.New("WORDLE_USERNAME and WORDLE_PASSWORD are required")

func (a *App) loggedIn(ctx context.Context) (*session.Session, error) {
	if a.Username == "" || a.Password == "" {
		return nil, ErrNoCredentials
	}
	sess := session.New(a.Client, a.Store)
	if err := sess.Login(ctx, a.Username, a.Password); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return sess, nil
}

// PrintStats logs in and prints the statistics screen once.
func (a *App) PrintStats(ctx context.Context, out *Renderer) error {
	sess, err := a.loggedIn(ctx)
	if err != nil {
		return err
	}
	s := screens.NewStats(sess)
	if err := s.Load(ctx); err != nil {
		return fmt.Errorf("stats: %w", err)
	}
	out.Stats(s)
	return nil
}

// PrintRanking logs in and prints the top players once.
func (a *App) PrintRanking(ctx context.Context, out *Renderer) error {
	sess, err := a.loggedIn(ctx)
	if err != nil {
		return err
	}
	r := screens.NewRanking(sess)
	if err := r.Load(ctx); err != nil {
		return fmt.Errorf("ranking: %w", err)
	}
	out.Ranking(r)
	return nil
}

// PrintProfile fetches statistics and ranking concurrently, then prints both.
// Each goroutine owns its own controller.
func (a *App) PrintProfile(ctx context.Context, out *Renderer) error {
	sess, err := a.loggedIn(ctx)
	if err != nil {
		return err
	}
	s := screens.NewStats(sess)
	r := screens.NewRanking(sess)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.Load(gctx); err != nil {
			return fmt.Errorf("stats: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := r.Load(gctx); err != nil {
			return fmt.Errorf("ranking: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	out.Stats(s)
	out.Println()
	out.Ranking(r)
	return nil
}
