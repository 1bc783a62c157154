package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Tomlord1122/todolist/internal/auth"
	"github.com/Tomlord1122/todolist/internal/config"
	"github.com/Tomlord1122/todolist/internal/database"
	"github.com/Tomlord1122/todolist/internal/service"
)

// Deps are the collaborators the HTTP surface needs.
type Deps struct {
	Todos  service.TodoService
	Users  service.UserService
	DB     database.Service
	Tokens *auth.TokenService
	Logger *slog.Logger
}

type Server struct {
	cfg         config.HTTPConfig
	cookieName  string
	todoService service.TodoService
	userService service.UserService
	db          database.Service
	tokens      *auth.TokenService
	logger      *slog.Logger
}

func NewServer(cfg config.Config, deps Deps) *http.Server {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	appServer := &Server{
		cfg:         cfg.HTTP,
		cookieName:  cfg.Auth.CookieName,
		todoService: deps.Todos,
		userService: deps.Users,
		db:          deps.DB,
		tokens:      deps.Tokens,
		logger:      logger,
	}

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      appServer.RegisterRoutes(),
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}
}
