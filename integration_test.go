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

// This file contains integration tests for the deprecation middleware inside
// a versioned application.
//
// These tests verify that deprecated routes and sub-routers carry the Warning
// header and the matching log record, and that the rest of the application
// is left alone.

//go:build integration

package deprecation_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"rivaas.dev/router/middleware/deprecation"
	"rivaas.dev/router"
)

// testLogHandler captures log records for testing.
type testLogHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

func (h *testLogHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

func (h *testLogHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, r.Clone())

	return nil
}

func (h *testLogHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return h
}

func (h *testLogHandler) WithGroup(_ string) slog.Handler {
	return h
}

func (h *testLogHandler) messages(level slog.Level) []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	var out []string
	for _, r := range h.records {
		if r.Level == level {
			out = append(out, r.Message)
		}
	}

	return out
}

func ok(c *router.Context) {
	//nolint:errcheck // Test handler
	c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func do(r http.Handler, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

var _ = Describe("Deprecation Integration", Label("integration", "deprecation"), func() {
	var (
		handler *testLogHandler
		logger  *slog.Logger
		reg     *deprecation.Registry
		app     *router.Router
	)

	BeforeEach(func() {
		handler = &testLogHandler{}
		logger = slog.New(handler)
		reg = deprecation.NewRegistry()
		app = router.MustNew()
		app.GET("/health", ok)
	})

	Describe("versioned sub-routers", func() {
		var v1, v2 *router.Router

		BeforeEach(func() {
			v1 = router.MustNew()
			v1.GET("/some", ok)
			v1.POST("/some", ok)
			v2 = router.MustNew()
			v2.GET("/some", ok)
		})

		It("should point clients from v1 to v2", func() {
			reg.Deprecate(v1,
				deprecation.WithReplacement(v2),
				deprecation.WithMessage("please migrate"),
				deprecation.WithLogger(logger),
			)
			reg.Mount(app, "/v1", v1)
			reg.Mount(app, "/v2", v2)
			Expect(reg.Verify()).To(Succeed())

			w := do(app, http.MethodGet, "/v1/some")

			want := `299 - "Deprecated API : http://example.com/v1 is deprecated;Use http://example.com/v2 instead;please migrate"`
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring(`"status":"ok"`))
			Expect(w.Header().Get("Warning")).To(Equal(want))
			Expect(handler.messages(slog.LevelWarn)).To(Equal([]string{want}))
		})

		It("should tag every method of the deprecated group", func() {
			reg.Deprecate(v1, deprecation.WithLogger(logger))
			reg.Mount(app, "/v1", v1)

			Expect(do(app, http.MethodGet, "/v1/some").Header().Get("Warning")).
				To(HavePrefix(`299 - "Deprecated API : http://example.com/v1 is deprecated;`))
			Expect(do(app, http.MethodPost, "/v1/some").Header().Get("Warning")).
				To(HavePrefix(`299 - "Deprecated API : http://example.com/v1 is deprecated;`))
			Expect(handler.messages(slog.LevelWarn)).To(HaveLen(2))
		})

		It("should leave the replacement and the rest of the app alone", func() {
			reg.Deprecate(v1, deprecation.WithReplacement(v2), deprecation.WithLogger(logger))
			reg.Mount(app, "/v1", v1)
			reg.Mount(app, "/v2", v2)

			Expect(do(app, http.MethodGet, "/v2/some").Header().Get("Warning")).To(BeEmpty())
			Expect(do(app, http.MethodGet, "/health").Header().Get("Warning")).To(BeEmpty())
			Expect(handler.messages(slog.LevelWarn)).To(BeEmpty())
		})

		It("should fail loudly when the group bypassed the registry", func() {
			reg.Deprecate(v1, deprecation.WithLogger(logger))
			app.Mount("/v1", v1)

			Expect(reg.Verify()).To(MatchError(deprecation.ErrNotMounted))
			Expect(func() {
				do(app, http.MethodGet, "/v1/some")
			}).To(PanicWith(MatchError(deprecation.ErrNotMounted)))
		})
	})

	Describe("single routes", func() {
		It("should combine decorator and middleware forms", func() {
			app.GET("/legacy", deprecation.Route(deprecation.WithLogger(logger))(ok))
			app.GET("/old", deprecation.New(
				deprecation.WithMessage("use /new"),
				deprecation.WithLogger(logger),
			), ok)

			Expect(do(app, http.MethodGet, "/legacy").Header().Get("Warning")).
				To(Equal(`299 - "Deprecated API : http://example.com/legacy is deprecated;"`))
			Expect(do(app, http.MethodGet, "/old").Header().Get("Warning")).
				To(Equal(`299 - "Deprecated API : http://example.com/old is deprecated;use /new"`))
			Expect(handler.messages(slog.LevelWarn)).To(HaveLen(2))
		})

		It("should tag routes of a plain route group", func() {
			legacy := app.Group("/legacy")
			legacy.Use(deprecation.New(deprecation.WithLogger(logger)))
			legacy.GET("/users", ok)

			Expect(do(app, http.MethodGet, "/legacy/users").Header().Get("Warning")).
				To(Equal(`299 - "Deprecated API : http://example.com/legacy/users is deprecated;"`))
		})
	})
})
