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

// Package deprecation provides middleware for marking routes and mounted
// sub-routers as deprecated.
//
// Deprecated responses carry a Warning header with warn-code 299:
//
//	Warning: 299 - "Deprecated API : https://api.example.com/v1 is deprecated;Use https://api.example.com/v2 instead;v1 is removed in 2027"
//
// Clients, gateways and monitoring can match on the fixed
// `299 - "Deprecated API : ` prefix. Every notice is also logged through
// log/slog at WARN level. Clients are never redirected and routes are never
// removed automatically.
//
// # Deprecating a Route
//
// Wrap a single handler with [Route], or put [New] in its handler chain:
//
//	import "rivaas.dev/router/middleware/deprecation"
//
//	r := router.MustNew()
//	r.GET("/users", deprecation.Route()(listUsers))
//	r.GET("/orders", deprecation.New(deprecation.WithMessage("use /v2/orders")), listOrders)
//
// The notice names the request URL:
//
//	299 - "Deprecated API : http://localhost:8080/orders is deprecated;use /v2/orders"
//
// # Deprecating a Sub-Router
//
// A sub-router mounted at a prefix is the unit of API versioning. [Router]
// deprecates all of its routes at once and can point clients to the
// sub-router that replaces it:
//
//	v1 := router.MustNew()
//	v1.GET("/users", listUsersV1)
//	v2 := router.MustNew()
//	v2.GET("/users", listUsersV2)
//
//	deprecation.Router(v1, deprecation.WithReplacement(v2))
//
//	r := router.MustNew()
//	deprecation.Mount(r, "/v1", v1)
//	deprecation.Mount(r, "/v2", v2)
//
// [Router] must be called before the sub-routers are mounted, and they must
// be mounted with [Mount]: that is where their prefixes are recorded. The
// notice then names the group roots instead of the request URL:
//
//	299 - "Deprecated API : http://localhost:8080/v1 is deprecated;Use http://localhost:8080/v2 instead;"
//
// A sub-router mounted without a prefix falls back to the request URL. A
// replacement mounted without a prefix is left out of the notice.
//
// # Registries
//
// Prefixes live in a [Registry]. The package-level functions share the
// process-wide [DefaultRegistry]; create your own with [NewRegistry] to keep
// applications or tests apart:
//
//	reg := deprecation.NewRegistry()
//	reg.Deprecate(v1, deprecation.WithReplacement(v2))
//	reg.Mount(r, "/v1", v1)
//	reg.Mount(r, "/v2", v2)
//
//	if err := reg.Verify(); err != nil {
//	    log.Fatal(err) // a deprecated sub-router was never mounted through reg
//	}
//
// A request reaching a deprecated sub-router that was not mounted through
// its registry panics with an error wrapping [ErrNotMounted]; use the
// recovery middleware to turn it into a 500 response.
//
// # Configuration Options
//
//   - [WithMessage]: Free text appended to the notice
//   - [WithReplacement]: Sub-router that replaces a deprecated one
//   - [WithLogger]: Logger for deprecation records (default: slog.Default())
//   - [WithLogLevel]: Level of deprecation records (default: WARN)
//   - [WithRegistry]: Registry used by [Router]
package deprecation
