// Waypoint - Sightseeing Recommendation and Conversational Trip Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

//go:build integration

package testinfra

import (
	"context"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Engine selects the database image.
type Engine string

const (
	EnginePostgres Engine = "postgres"
	EngineMySQL    Engine = "mysql"
)

const (
	// DefaultPostgresImage is the PostgreSQL image used when none is set.
	DefaultPostgresImage = "postgres:16-alpine"

	// DefaultMySQLImage is the MySQL image used when none is set.
	DefaultMySQLImage = "mysql:8.4"

	testDatabase = "waypoint"
	testUser     = "waypoint"
	testPassword = "waypoint-test"
)

// DatabaseContainer is a running database with a DSN for store.Open.
type DatabaseContainer struct {
	testcontainers.Container
	// Driver is the database/sql driver name matching the engine.
	Driver string
	DSN    string
}

// DatabaseOption configures the database container.
type DatabaseOption func(*databaseConfig)

type databaseConfig struct {
	image        string
	startTimeout time.Duration
}

// WithImage overrides the engine's default image.
func WithImage(image string) DatabaseOption {
	return func(c *databaseConfig) {
		c.image = image
	}
}

// WithStartTimeout sets how long to wait for the database to accept connections.
func WithStartTimeout(timeout time.Duration) DatabaseOption {
	return func(c *databaseConfig) {
		c.startTimeout = timeout
	}
}

// NewDatabaseContainer starts an empty database for engine.
func NewDatabaseContainer(ctx context.Context, engine Engine, opts ...DatabaseOption) (*DatabaseContainer, error) {
	cfg := &databaseConfig{startTimeout: 90 * time.Second}
	for _, opt := range opts {
		opt(cfg)
	}

	var (
		req  testcontainers.ContainerRequest
		port string
	)
	switch engine {
	case EnginePostgres:
		port = "5432/tcp"
		if cfg.image == "" {
			cfg.image = DefaultPostgresImage
		}
		req = testcontainers.ContainerRequest{
			Image:        cfg.image,
			ExposedPorts: []string{port},
			Env: map[string]string{
				"POSTGRES_DB":       testDatabase,
				"POSTGRES_USER":     testUser,
				"POSTGRES_PASSWORD": testPassword,
			},
			// The entrypoint restarts postgres once after init.
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(cfg.startTimeout),
		}
	case EngineMySQL:
		port = "3306/tcp"
		if cfg.image == "" {
			cfg.image = DefaultMySQLImage
		}
		req = testcontainers.ContainerRequest{
			Image:        cfg.image,
			ExposedPorts: []string{port},
			Env: map[string]string{
				"MYSQL_DATABASE":      testDatabase,
				"MYSQL_USER":          testUser,
				"MYSQL_PASSWORD":      testPassword,
				"MYSQL_ROOT_PASSWORD": testPassword,
			},
			WaitingFor: wait.ForAll(
				wait.ForLog("port: 3306  MySQL Community Server"),
				wait.ForListeningPort("3306/tcp"),
			).WithStartupTimeout(cfg.startTimeout),
		}
	default:
		return nil, fmt.Errorf("unsupported engine %q", engine)
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s container: %w", engine, err)
	}

	addr, err := endpoint(ctx, container)
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, err
	}

	out := &DatabaseContainer{Container: container, Driver: string(engine)}
	switch engine {
	case EnginePostgres:
		out.DSN = fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=disable", testUser, testPassword, addr, testDatabase)
	case EngineMySQL:
		out.DSN = fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true", testUser, testPassword, addr, testDatabase)
	}
	return out, nil
}
