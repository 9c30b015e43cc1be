package main

import (
	"context"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/example/movieview/internal/moviedb"
	"github.com/example/movieview/internal/platform/config"
	"github.com/example/movieview/internal/platform/httpserver"
	"github.com/example/movieview/internal/platform/logging"
	"github.com/example/movieview/internal/platform/run"
	"github.com/example/movieview/internal/shell"
	"github.com/example/movieview/internal/storage"
	"github.com/example/movieview/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log, err := logging.New(cfg.LogLevel, cfg.ServiceName)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	st, err := storage.New(cfg.StateDir)
	if err != nil {
		log.Error("init state dir", zap.Error(err))
		run.Exit(1)
	}

	tokens := &moviedb.TokenHolder{}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{Name: "moviedb"})
	client := moviedb.New(cfg.API.BaseURL, moviedb.ClientConfig{
		AppToken:   cfg.API.AppToken,
		Timeout:    time.Duration(cfg.API.TimeoutSeconds) * time.Second,
		MaxRetries: 2,
	},
		moviedb.WithLogger(log.Named("moviedb")),
		moviedb.WithTokenSource(tokens),
		moviedb.WithCircuitBreaker(cb),
		moviedb.WithCache(moviedb.NewTTLCache(time.Duration(cfg.CacheTTLSeconds)*time.Second)),
	)

	session := store.NewSession(client, st, tokens, log.Named("session"))
	search := store.NewSearch(client, log.Named("search"))

	r := chi.NewRouter()
	httpserver.SetupRouter(r)
	shell.New(log.Named("shell"), client, session, search).Register(r)

	srv := httpserver.New(httpserver.Options{
		Addr:        cfg.HTTP.Addr,
		ServiceName: cfg.ServiceName,
		Logger:      log,
		Router:      r,
	})

	runner := run.New(log)
	code := runner.WithSignals(func(ctx context.Context) error {
		go func() {
			<-ctx.Done()
			_ = srv.Shutdown(context.Background())
		}()
		return srv.Start(log)
	})

	log.Info("exit", zap.Int("code", code))
	run.Exit(code)
}
