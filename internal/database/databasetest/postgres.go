package databasetest

import (
	"context"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Tomlord1122/todolist/internal/config"
)

// StartPostgres runs a disposable PostgreSQL container and returns a config
// pointing at it together with its teardown function.
func StartPostgres(ctx context.Context) (config.DBConfig, func(context.Context) error, error) {
	const (
		dbName = "todos"
		dbUser = "todo"
		dbPwd  = "password"
	)

	container, err := postgres.Run(ctx,
		"postgres:17-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		return config.DBConfig{}, nil, fmt.Errorf("start postgres container: %w", err)
	}
	teardown := func(ctx context.Context) error { return container.Terminate(ctx) }

	host, err := container.Host(ctx)
	if err != nil {
		_ = teardown(ctx)
		return config.DBConfig{}, nil, fmt.Errorf("container host: %w", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		_ = teardown(ctx)
		return config.DBConfig{}, nil, fmt.Errorf("container port: %w", err)
	}

	return config.DBConfig{
		Driver:       config.DriverPostgres,
		Host:         host,
		Port:         port.Port(),
		Database:     dbName,
		Username:     dbUser,
		Password:     dbPwd,
		SSLMode:      "disable",
		MaxIdleConns: 2,
		MaxOpenConns: 10,
		AutoMigrate:  true,
	}, teardown, nil
}
