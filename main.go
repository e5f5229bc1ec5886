package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-client/internal/api"
	"github.com/robalobadob/wordle/apps/go-client/internal/cli"
	"github.com/robalobadob/wordle/apps/go-client/internal/config"
	"github.com/robalobadob/wordle/apps/go-client/internal/store"
)

const usage = `usage: go-client [flags] [play|stats|ranking|profile]

  play      interactive game (default)
  stats     print your statistics and exit
  ranking   print the top 10 players and exit
  profile   print statistics and ranking and exit

stats, ranking and profile log in with WORDLE_USERNAME and WORDLE_PASSWORD.

flags:
`

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: colorable.NewColorableStderr(), TimeFormat: time.Kitchen})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	zerolog.SetGlobalLevel(cfg.Level())

	apiURL := flag.String("api", "", "backend base URL (overrides WORDLE_API_URL)")
	dbPath := flag.String("db", "", "local state database (overrides WORDLE_DB_PATH)")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()
	cfg.Override(*apiURL, *dbPath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := realMain(ctx, cfg, flag.Arg(0)); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func realMain(ctx context.Context, cfg config.Config, cmd string) error {
	var st store.Store
	db, err := store.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Warn().Err(err).Str("path", cfg.DBPath).Msg("local database unavailable, state will not survive restarts")
		st = store.NewMemoryStore()
	} else {
		defer db.Close()
		st = db
	}

	app := &cli.App{
		Client:   api.New(cfg.APIURL, api.WithTimeout(cfg.RequestTimeout)),
		Store:    st,
		Interval: cfg.RoundInterval,
		Username: cfg.Username,
		Password: cfg.Password,
	}
	log.Debug().Str("api", cfg.APIURL).Str("db", cfg.DBPath).Str("cmd", cmd).Msg("starting go-client")

	out := cli.Stdout()
	switch cmd {
	case "", "play":
		if err := app.Run(ctx, os.Stdin, out); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	case "stats":
		return app.PrintStats(ctx, out)
	case "ranking":
		return app.PrintRanking(ctx, out)
	case "profile":
		return app.PrintProfile(ctx, out)
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}
