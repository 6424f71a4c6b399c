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

package deprecation

import (
	"log/slog"

	"rivaas.dev/router"
)

// Option defines functional options for deprecation middleware configuration.
type Option func(*config)

// config holds the configuration for the deprecation middleware.
type config struct {
	// message is appended as the last segment of the notice
	message string

	// replacement is the sub-router clients should move to (groups only)
	replacement *router.Router

	// logger receives one record per deprecated response
	logger *slog.Logger

	// level is the level of that record
	level slog.Level

	// registry holds the mount prefixes (groups only)
	registry *Registry
}

// defaultConfig returns the default configuration for deprecation middleware.
func defaultConfig() *config {
	return &config{
		level:    slog.LevelWarn,
		registry: defaultRegistry,
	}
}

func newConfig(opts []Option) *config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// log returns the configured logger, falling back to the process default at
// call time so late slog.SetDefault calls are honored.
func (cfg *config) log() *slog.Logger {
	if cfg.logger != nil {
		return cfg.logger
	}

	return slog.Default()
}

// WithMessage sets free text appended to the notice, e.g. a migration hint.
// Default: "" (the trailing segment is then empty).
//
// Example:
//
//	deprecation.Route(deprecation.WithMessage("use /v2/users"))
func WithMessage(message string) Option {
	return func(cfg *config) {
		cfg.message = message
	}
}

// WithReplacement names the sub-router that replaces a deprecated group.
// When the replacement is mounted with a prefix, the notice gains a
// "Use <replacement root> instead" segment. It has no effect on [Route] and [New].
//
// Example:
//
//	deprecation.Router(v1, deprecation.WithReplacement(v2))
func WithReplacement(replacement *router.Router) Option {
	return func(cfg *config) {
		cfg.replacement = replacement
	}
}

// WithLogger sets the logger that records each deprecated response.
// Default: slog.Default().
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
//	deprecation.Route(deprecation.WithLogger(logger))
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

// WithLogLevel sets the level of the deprecation record.
// Default: slog.LevelWarn
func WithLogLevel(level slog.Level) Option {
	return func(cfg *config) {
		cfg.level = level
	}
}

// WithRegistry sets the registry a group is tracked in. Use it together with
// [Registry.Mount] to keep independent applications (or tests) apart.
// Default: [DefaultRegistry].
func WithRegistry(registry *Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.registry = registry
		}
	}
}
