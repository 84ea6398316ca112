// Command server runs the visitor registration API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"gatehouse/internal/errlog"
	httpapi "gatehouse/internal/http"
	"gatehouse/internal/platform/config"
	"gatehouse/internal/platform/httpserver"
	"gatehouse/internal/platform/logger"
	"gatehouse/internal/platform/metrics"
	"gatehouse/internal/platform/postgres"
	visitorhandler "gatehouse/internal/visitor/handler"
	vmetrics "gatehouse/internal/visitor/metrics"
	"gatehouse/internal/visitor/service"
	"gatehouse/internal/visitor/store"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx := context.Background()

	var (
		visitors store.Store
		trail    errlog.Store
	)
	if cfg.PostgresURL != "" {
		db, err := postgres.Open(cfg.PostgresURL)
		if err != nil {
			log.Error("failed to connect to postgres", "error", err.Error())
			os.Exit(1)
		}
		defer db.Close()

		pgVisitors := store.NewPostgres(db)
		if err := pgVisitors.EnsureSchema(ctx); err != nil {
			log.Error("failed to prepare visitor schema", "error", err.Error())
			os.Exit(1)
		}
		pgTrail := errlog.NewPostgresStore(db)
		if err := pgTrail.EnsureSchema(ctx); err != nil {
			log.Error("failed to prepare audit schema", "error", err.Error())
			os.Exit(1)
		}

		visitors = pgVisitors
		trail = pgTrail
		log.Info("using postgres stores")
	} else {
		visitors = store.NewInMemory()
		trail = errlog.NewInMemoryStore()
		log.Info("using in-memory stores")
	}

	recorder := errlog.NewRecorder(trail, log)
	svc := service.New(visitors, recorder, vmetrics.New())

	router := httpapi.NewRouter(httpapi.Handlers{
		Visitors: visitorhandler.New(svc, log),
		ErrorLog: errlog.NewHandler(recorder, log),
	}, metrics.New())

	srv := httpserver.New(cfg.Addr, router)

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "error", err.Error())
			os.Exit(1)
		}
	case sig := <-stop:
		log.Info("shutting down", "signal", sig.String())
		shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err.Error())
			os.Exit(1)
		}
	}
}
