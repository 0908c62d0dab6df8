// Waypoint - Sightseeing Recommendation and Conversational Trip Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

//go:build integration

package testinfra

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// DefaultElasticsearchImage is the single-node image used for location search tests.
const DefaultElasticsearchImage = "docker.elastic.co/elasticsearch/elasticsearch:8.15.3"

// ElasticsearchContainer is a running single-node cluster with security off.
type ElasticsearchContainer struct {
	testcontainers.Container
	URL string
}

// NewElasticsearchContainer starts a single-node cluster.
func NewElasticsearchContainer(ctx context.Context) (*ElasticsearchContainer, error) {
	const port = "9200/tcp"

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        DefaultElasticsearchImage,
			ExposedPorts: []string{port},
			Env: map[string]string{
				"discovery.type":         "single-node",
				"xpack.security.enabled": "false",
				"ES_JAVA_OPTS":           "-Xms512m -Xmx512m",
			},
			WaitingFor: wait.ForHTTP("/_cluster/health").
				WithPort(port).
				WithStatusCodeMatcher(func(status int) bool { return status == http.StatusOK }).
				WithStartupTimeout(3 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch container: %w", err)
	}

	addr, err := endpoint(ctx, container)
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, err
	}
	return &ElasticsearchContainer{Container: container, URL: "http://" + addr}, nil
}
