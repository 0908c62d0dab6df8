// Waypoint - Sightseeing Recommendation and Conversational Trip Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

// Package testinfra starts real catalog backends in Docker for integration
// tests, using testcontainers-go.
//
// Everything here is behind the integration build tag:
//
//	go test -tags integration ./internal/store/...
//
// NewDatabaseContainer starts PostgreSQL or MySQL and returns a DSN ready
// for store.Open. NewElasticsearchContainer starts a single-node cluster
// for the Elasticsearch location source. Tests call SkipIfNoDocker first so
// they pass on machines without Docker.
//
//	db, err := testinfra.NewDatabaseContainer(ctx, testinfra.EnginePostgres)
//	if err != nil {
//	    t.Fatal(err)
//	}
//	defer testinfra.CleanupContainer(t, ctx, db)
//
//	catalog, err := store.Open(ctx, store.Config{Driver: db.Driver, DSN: db.DSN})
package testinfra
