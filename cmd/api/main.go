package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"github.com/Tomlord1122/todolist/internal/auth"
	"github.com/Tomlord1122/todolist/internal/config"
	"github.com/Tomlord1122/todolist/internal/database"
	"github.com/Tomlord1122/todolist/internal/repository"
	"github.com/Tomlord1122/todolist/internal/server"
	"github.com/Tomlord1122/todolist/internal/service"
)

func gracefulShutdown(apiServer *http.Server, dbService database.Service, cfg config.HTTPConfig, log *slog.Logger, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Info("shutting down gracefully, press Ctrl+C again to force")
	stop()

	ctxTimeout, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := apiServer.Shutdown(ctxTimeout); err != nil {
		log.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	if err := dbService.Close(); err != nil {
		log.Error("closing database connection pool", slog.String("error", err.Error()))
	}

	log.Info("server exiting")

	done <- true
}

func newLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("loading configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log := newLogger(cfg.Log)
	slog.SetDefault(log)

	dbService, err := database.New(cfg.DB, log)
	if err != nil {
		log.Error("opening database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	tokens, err := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.Audience)
	if err != nil {
		log.Error("configuring identity tokens", slog.String("error", err.Error()))
		_ = dbService.Close()
		os.Exit(1)
	}

	gormDB := dbService.GetDB()
	todoService := service.NewTodoService(repository.NewGormTodoRepository(gormDB), service.SystemClock)
	userService := service.NewUserService(repository.NewGormUserRepository(gormDB), service.SystemClock)

	apiServer := server.NewServer(cfg, server.Deps{
		Todos:  todoService,
		Users:  userService,
		DB:     dbService,
		Tokens: tokens,
		Logger: log,
	})

	done := make(chan bool, 1)

	go gracefulShutdown(apiServer, dbService, cfg.HTTP, log, done)

	log.Info("starting server", slog.String("addr", apiServer.Addr), slog.String("db_driver", cfg.DB.Driver))
	err = apiServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("http server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}

	<-done
	log.Info("graceful shutdown complete")
}
