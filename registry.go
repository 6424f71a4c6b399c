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
	"errors"
	"fmt"
	"sync"

	"rivaas.dev/router"
	"rivaas.dev/router/route"
)

var (
	// ErrNotTracked is returned when a sub-router was never passed to
	// [Router] or [WithReplacement], so its mount prefix is not recorded.
	ErrNotTracked = errors.New("deprecation: router is not tracked")

	// ErrNotMounted is returned when a tracked sub-router has not been
	// mounted through [Mount] (or [Registry.Mount]). This usually means it was
	// deprecated after being mounted, or mounted with [router.Router.Mount]
	// directly.
	ErrNotMounted = errors.New("deprecation: router was not mounted through the registry")

	// ErrNilRouter is the panic value used when a nil router is deprecated
	// or mounted into.
	ErrNilRouter = errors.New("deprecation: router is nil")
)

// defaultRegistry backs the package-level [Router] and [Mount] functions.
var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry used by [Router] and [Mount].
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// entry is the recorded state of one sub-router.
type entry struct {
	deprecated bool
	mounted    bool
	prefix     string
	hasPrefix  bool
}

// Registry records the mount prefix of deprecated sub-routers and their
// replacements, keyed by router identity.
//
// Prefixes are written once, when the sub-router is mounted at startup, and
// read on every request afterwards. Entries are never removed.
type Registry struct {
	mu      sync.RWMutex
	entries map[*router.Router]*entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[*router.Router]*entry),
	}
}

// track marks sub as interested in its mount prefix. It is a no-op for a
// router that is already tracked.
func (reg *Registry) track(sub *router.Router) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if _, ok := reg.entries[sub]; !ok {
		reg.entries[sub] = &entry{}
	}
}

// markDeprecated tracks old and reports whether this call is the first to
// deprecate it, so the request hook is installed once per router.
func (reg *Registry) markDeprecated(old *router.Router) bool {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	e, ok := reg.entries[old]
	if !ok {
		e = &entry{}
		reg.entries[old] = e
	}
	if e.deprecated {
		return false
	}
	e.deprecated = true

	return true
}

// Mount mounts sub under parent at prefix and, if sub is tracked, records
// prefix for it. Only the first mount of a tracked router is recorded.
//
// An empty prefix records the "no prefix" state: notices for that group then
// name the concrete request URL instead of the group root.
//
// Example:
//
//	reg := deprecation.NewRegistry()
//	reg.Deprecate(v1, deprecation.WithReplacement(v2))
//	reg.Mount(app, "/v1", v1)
//	reg.Mount(app, "/v2", v2)
func (reg *Registry) Mount(parent *router.Router, prefix string, sub *router.Router, opts ...route.MountOption) {
	if parent == nil {
		panic(ErrNilRouter)
	}

	parent.Mount(prefix, sub, opts...)
	if sub != nil {
		reg.record(sub, prefix)
	}
}

func (reg *Registry) record(sub *router.Router, prefix string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	e, ok := reg.entries[sub]
	if !ok || e.mounted {
		return
	}

	e.mounted = true
	e.prefix = prefix
	e.hasPrefix = prefix != ""
}

// Prefix returns the prefix sub was mounted with.
//
// ok is false when sub was mounted without a prefix, which is a valid state.
// err wraps [ErrNotTracked] or [ErrNotMounted] when no prefix was ever
// recorded for sub.
func (reg *Registry) Prefix(sub *router.Router) (prefix string, ok bool, err error) {
	reg.mu.RLock()
	e, found := reg.entries[sub]
	var snapshot entry
	if found {
		snapshot = *e
	}
	reg.mu.RUnlock()

	if !found {
		return "", false, ErrNotTracked
	}
	if !snapshot.mounted {
		return "", false, ErrNotMounted
	}

	return snapshot.prefix, snapshot.hasPrefix, nil
}

// Verify reports every tracked router that has not been mounted through the
// registry yet. Call it once all routers are mounted, before serving.
//
// Example:
//
//	if err := deprecation.DefaultRegistry().Verify(); err != nil {
//	    log.Fatal(err)
//	}
func (reg *Registry) Verify() error {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	var errs []error
	for sub, e := range reg.entries {
		if !e.mounted {
			errs = append(errs, fmt.Errorf("%w: %p", ErrNotMounted, sub))
		}
	}

	return errors.Join(errs...)
}

// Mount mounts sub under parent at prefix using the default registry.
// See [Registry.Mount].
func Mount(parent *router.Router, prefix string, sub *router.Router, opts ...route.MountOption) {
	defaultRegistry.Mount(parent, prefix, sub, opts...)
}
