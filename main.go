package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/cricket-scorer/internal/config"
	"github.com/robalobadob/cricket-scorer/internal/httpserver"
	"github.com/robalobadob/cricket-scorer/internal/scorer"
	"github.com/robalobadob/cricket-scorer/internal/store"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "hash-password" {
		if err := runHashPassword(os.Args[2:], os.Stdin, os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	ctx := context.Background()
	st, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("storage", cfg.Storage).Msg("failed to open store")
	}
	defer closeStore()

	sess := scorer.New(st, cfg.HistoryLimit, log.Logger)
	sess.Load(ctx)

	srv := httpserver.New(sess, cfg, log.Logger)
	log.Info().
		Str("port", cfg.Port).
		Str("storage", cfg.Storage).
		Bool("auth", cfg.AuthEnabled()).
		Msg("starting cricket-scorer")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// openStore selects the snapshot backend named by STORAGE.
func openStore(ctx context.Context, cfg config.Config) (store.Store, func(), error) {
	switch cfg.Storage {
	case config.StorageMemory:
		return store.NewMemoryStore(), func() {}, nil
	default:
		db, err := store.OpenSQLite(ctx, cfg.DBPath, log.Logger)
		if err != nil {
			return nil, nil, err
		}
		return db, func() { _ = db.Close() }, nil
	}
}
