package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/FinalRule/Rattel-LMS-sub000/internal/config"
	availCreate "github.com/FinalRule/Rattel-LMS-sub000/internal/http-server/handlers/availability/create"
	availDelete "github.com/FinalRule/Rattel-LMS-sub000/internal/http-server/handlers/availability/delete"
	availGet "github.com/FinalRule/Rattel-LMS-sub000/internal/http-server/handlers/availability/get"
	conflictCheck "github.com/FinalRule/Rattel-LMS-sub000/internal/http-server/handlers/conflicts/check"
	sessionCancel "github.com/FinalRule/Rattel-LMS-sub000/internal/http-server/handlers/sessions/cancel"
	sessionGenerate "github.com/FinalRule/Rattel-LMS-sub000/internal/http-server/handlers/sessions/generate"
	sessionGet "github.com/FinalRule/Rattel-LMS-sub000/internal/http-server/handlers/sessions/get"
	suggestionGet "github.com/FinalRule/Rattel-LMS-sub000/internal/http-server/handlers/suggestions/get"
	timeBlockCreate "github.com/FinalRule/Rattel-LMS-sub000/internal/http-server/handlers/time_blocks/create"
	timeBlockDelete "github.com/FinalRule/Rattel-LMS-sub000/internal/http-server/handlers/time_blocks/delete"
	timeBlockGet "github.com/FinalRule/Rattel-LMS-sub000/internal/http-server/handlers/time_blocks/get"
	"github.com/FinalRule/Rattel-LMS-sub000/internal/lock"
	svc "github.com/FinalRule/Rattel-LMS-sub000/internal/service"
	"github.com/FinalRule/Rattel-LMS-sub000/internal/storage/postgres"
	slogpretty "github.com/FinalRule/Rattel-LMS-sub000/pkg/handlers/slogpretty"
	"github.com/FinalRule/Rattel-LMS-sub000/pkg/middleware/mwlogger"
	"github.com/FinalRule/Rattel-LMS-sub000/pkg/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Content-Type", "application/json; charset=utf-8")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {

	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting API", slog.String("env", cfg.Env))
	log.Debug("Debug messages are enabled")

	storage, err := postgres.New(cfg.StoragePath)
	if err != nil {
		log.Error("Failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	locker, err := lock.NewRedisLock(cfg.RedisAddr)
	if err != nil {
		log.Error("Failed to init redis lock", sl.Err(err))
		os.Exit(1)
	}

	service := svc.NewService(storage, locker, cfg.Scheduling)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)
	router.Use(CORS)

	// Sessions
	router.Post("/classes/{id}/sessions/generate", sessionGenerate.New(log, service))
	router.Get("/sessions", sessionGet.New(log, service))
	router.Get("/sessions/{id}", sessionGet.New(log, service))
	router.Put("/sessions/{id}/cancel", sessionCancel.New(log, service))

	// Conflicts
	router.Post("/conflicts/check", conflictCheck.New(log, service))

	// Suggestions
	router.Post("/suggestions", suggestionGet.New(log, service))

	// Availability windows
	router.Post("/availability_windows", availCreate.New(log, service))
	router.Get("/availability_windows", availGet.New(log, service))
	router.Delete("/availability_windows/{id}", availDelete.New(log, service))

	// Time blocks
	router.Post("/time_blocks", timeBlockCreate.New(log, service))
	router.Get("/time_blocks", timeBlockGet.New(log, service))
	router.Get("/time_blocks/{id}", timeBlockGet.New(log, service))
	router.Delete("/time_blocks/{id}", timeBlockDelete.New(log, service))

	serv := &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	serverErrCh := make(chan error, 1)

	go func() {
		log.Info("Starting HTTP server", slog.String("addr", cfg.Address))
		if err := serv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- err
		} else {
			serverErrCh <- nil
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("Received shutdown signal", slog.String("signal", sig.String()))
	case err := <-serverErrCh:
		if err != nil {
			log.Error("HTTP server stopped unexpectedly", sl.Err(err))
		} else {
			log.Info("HTTP server stopped gracefully")
		}
	}

	shutdownTimeout := cfg.HTTPServer.ShutdownTimeout

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.Info("Shutting down HTTP server", slog.String("timeout", shutdownTimeout.String()))

	if err := serv.Shutdown(ctx); err != nil {
		log.Error("Server shutdown failed", sl.Err(err))
	} else {
		log.Info("Server shutdown complete")
	}

	if storage != nil {
		if err := storage.Close(); err != nil {
			log.Error("Failed to close storage", sl.Err(err))
		} else {
			log.Info("Storage closed")
		}
	}

	if locker != nil {
		if err := locker.Close(); err != nil {
			log.Error("Failed to close locker", sl.Err(err))
		} else {
			log.Info("Locker closed")
		}
	}

	log.Info("Shutdown finished, server stopped")

}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger
	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	handler := opts.NewPrettyHandler(os.Stdout)

	return slog.New(handler)
}
