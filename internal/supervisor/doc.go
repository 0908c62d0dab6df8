// Waypoint - Sightseeing Recommendation and Conversational Trip Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

/*
Package supervisor runs Waypoint's long-lived components under a suture v4
tree.

	RootSupervisor ("waypoint")
	├── DataSupervisor ("data-layer")
	│   └── cache maintenance (memory sweep or Badger value-log GC)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Each layer keeps its own failure counter. A crashed service is restarted
with suture's decaying backoff:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddDataService(responseCache)
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	errCh := tree.ServeBackground(ctx)

Services return nil to stop for good, an error to be restarted, and
ctx.Err() once shutdown is requested. Supervisor events are logged through
sutureslog, which the logging package bridges onto zerolog.

Stores and upstream clients are not supervised. They hold no goroutines of
their own; their failures surface per request and are isolated by the
circuit breakers in the upstream package.
*/
package supervisor
