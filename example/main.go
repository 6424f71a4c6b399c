// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package main demonstrates how to use the deprecation middleware
// to announce deprecated routes and API versions to clients.
package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/charmbracelet/log"

	"rivaas.dev/router/middleware/deprecation"
	"rivaas.dev/router"
)

func main() {
	// Create a logger with clean, colorful output
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
	})

	// Deprecation records go through slog; the charm logger is a slog.Handler.
	slogger := slog.New(logger)

	r := router.MustNew()

	// Example 1: Deprecate a single route
	singleRouteExample(r, slogger)

	// Example 2: Deprecate an API version in favor of its successor
	versionedExample(r, slogger)

	if err := deprecation.DefaultRegistry().Verify(); err != nil {
		logger.Fatal("deprecated router not mounted", "err", err)
	}

	logger.Info("🚀 Server starting on http://localhost:8080")
	logger.Print("")
	logger.Print("📝 Available endpoints:")
	logger.Print("  GET /users        - Deprecated route (decorator form)")
	logger.Print("  GET /orders       - Deprecated route (middleware form)")
	logger.Print("  GET /v1/items     - Deprecated API version")
	logger.Print("  GET /v2/items     - Current API version")
	logger.Print("")
	logger.Print("📋 Example commands:")
	logger.Print("  curl -i http://localhost:8080/users")
	logger.Print("  curl -i http://localhost:8080/v1/items")
	logger.Print("")
	logger.Print("💡 Tip: look for the Warning header in the responses")
	logger.Print("")

	logger.Fatal(http.ListenAndServe(":8080", r))
}

// Example 1: Single routes
func singleRouteExample(r *router.Router, logger *slog.Logger) {
	r.GET("/users", deprecation.Route(
		deprecation.WithMessage("use /v2/items"),
		deprecation.WithLogger(logger),
	)(func(c *router.Context) {
		c.JSON(http.StatusOK, map[string]any{
			"users": []string{"alice", "bob"},
		})
	}))

	r.GET("/orders", deprecation.New(deprecation.WithLogger(logger)), func(c *router.Context) {
		c.JSON(http.StatusOK, map[string]any{
			"orders": []int{},
		})
	})
}

// Example 2: API versions as mounted sub-routers
func versionedExample(r *router.Router, logger *slog.Logger) {
	v1 := router.MustNew()
	v1.GET("/items", func(c *router.Context) {
		c.JSON(http.StatusOK, map[string]any{
			"version": "v1",
			"items":   []string{"a", "b"},
		})
	})

	v2 := router.MustNew()
	v2.GET("/items", func(c *router.Context) {
		c.JSON(http.StatusOK, map[string]any{
			"version": "v2",
			"items":   []map[string]string{{"id": "a"}, {"id": "b"}},
		})
	})

	// Must happen before mounting
	deprecation.Router(v1,
		deprecation.WithReplacement(v2),
		deprecation.WithMessage("v1 is removed on 2027-01-01"),
		deprecation.WithLogger(logger),
	)

	deprecation.Mount(r, "/v1", v1)
	deprecation.Mount(r, "/v2", v2)
}
