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
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"rivaas.dev/router"
)

// Route returns a decorator that marks a single handler as deprecated.
// The wrapped handler runs unchanged; its response carries
//
//	Warning: 299 - "Deprecated API : <request URL> is deprecated;<message>"
//
// and the same text is logged. Panics from the handler propagate untouched.
//
// Example:
//
//	r := router.MustNew()
//	r.GET("/users", deprecation.Route(
//	    deprecation.WithMessage("use /v2/users"),
//	)(listUsers))
func Route(opts ...Option) func(router.HandlerFunc) router.HandlerFunc {
	cfg := newConfig(opts)

	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(c *router.Context) {
			serve(c, cfg, BaseMessage(requestURL(c), cfg.message), func() {
				next(c)
			})
		}
	}
}

// New returns a middleware with the same behavior as [Route], for use in a
// handler chain or with Use.
//
// Example:
//
//	r.GET("/users", deprecation.New(), listUsers)
//
//	legacy := r.Group("/legacy")
//	legacy.Use(deprecation.New(deprecation.WithMessage("removed in 2.0")))
func New(opts ...Option) router.HandlerFunc {
	cfg := newConfig(opts)

	return func(c *router.Context) {
		serve(c, cfg, BaseMessage(requestURL(c), cfg.message), c.Next)
	}
}

// Router marks every route of the sub-router old as deprecated, using the
// registry from [WithRegistry] (the default registry otherwise).
//
// It must be called before old, and the replacement if any, are mounted, and
// both must then be mounted with [Mount] (or [Registry.Mount]) so their
// prefixes are recorded. The notice names the group root when old has a
// prefix, and the request URL otherwise.
//
// Only the first call for a given router and registry takes effect; later
// calls, including their options, are ignored.
//
// Example:
//
//	v1 := router.MustNew()
//	v1.GET("/users", listUsersV1)
//	v2 := router.MustNew()
//	v2.GET("/users", listUsersV2)
//
//	deprecation.Router(v1,
//	    deprecation.WithReplacement(v2),
//	    deprecation.WithMessage("v1 is removed in 2027"),
//	)
//
//	r := router.MustNew()
//	deprecation.Mount(r, "/v1", v1)
//	deprecation.Mount(r, "/v2", v2)
func Router(old *router.Router, opts ...Option) {
	cfg := newConfig(opts)
	cfg.registry.deprecate(old, cfg)
}

// Deprecate is [Router] bound to this registry.
func (reg *Registry) Deprecate(old *router.Router, opts ...Option) {
	cfg := newConfig(opts)
	cfg.registry = reg
	reg.deprecate(old, cfg)
}

func (reg *Registry) deprecate(old *router.Router, cfg *config) {
	if old == nil {
		panic(ErrNilRouter)
	}

	if !reg.markDeprecated(old) {
		return
	}
	if cfg.replacement != nil {
		reg.track(cfg.replacement)
	}

	old.Use(func(c *router.Context) {
		serve(c, cfg, reg.notice(c, old, cfg), c.Next)
	})
}

// notice resolves the Warning value for a request served by the deprecated
// group old.
func (reg *Registry) notice(c *router.Context, old *router.Router, cfg *config) string {
	oldPrefix, ok, err := reg.Prefix(old)
	if err != nil {
		// Deprecated after mounting, or mounted around the registry.
		panic(fmt.Errorf("deprecation: %s %s: %w", c.Request.Method, c.Request.URL.Path, err))
	}
	if !ok {
		return BaseMessage(requestURL(c), cfg.message)
	}

	root := urlRoot(c)
	oldRoot := JoinURL(root, oldPrefix)

	if cfg.replacement != nil {
		if newPrefix, ok, err := reg.Prefix(cfg.replacement); err == nil && ok {
			return ReplacementMessage(oldRoot, JoinURL(root, newPrefix), cfg.message)
		}
	}

	return GroupMessage(oldRoot, cfg.message)
}

// serve runs next with the response writer swapped for one that attaches
// notice, then logs the notice.
func serve(c *router.Context, cfg *config, notice string, next func()) {
	original := c.Response
	ww := newWarningWriter(original, notice)
	c.Response = ww
	defer func() {
		c.Response = original
	}()

	next()

	// Handler wrote nothing; net/http commits the headers after we return.
	ww.apply()

	cfg.log().Log(c.RequestContext(), cfg.level, notice,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"route", c.RoutePattern(),
	)

	if span := trace.SpanFromContext(c.RequestContext()); span.IsRecording() {
		span.AddEvent("deprecated_api", trace.WithAttributes(
			attribute.String("http.response.header.warning", notice),
		))
	}
}

// requestURL is the request URL without query string.
func requestURL(c *router.Context) string {
	return c.BaseURL() + c.Request.URL.EscapedPath()
}

// urlRoot is the application root, with a trailing slash.
func urlRoot(c *router.Context) string {
	return c.BaseURL() + "/"
}
