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
	"bufio"
	"io"
	"net"
	"net/http"
)

// warningWriter sets the Warning header right before the response is
// committed. Headers written after WriteHeader are ignored by net/http, so
// this is the last point at which the notice can still reach the client.
type warningWriter struct {
	http.ResponseWriter
	notice  string
	done    bool
	written bool
}

// Compile-time interface checks
var (
	_ http.ResponseWriter = (*warningWriter)(nil)
	_ http.Flusher        = (*warningWriter)(nil)
	_ http.Hijacker       = (*warningWriter)(nil)
	_ http.Pusher         = (*warningWriter)(nil)
	_ io.ReaderFrom       = (*warningWriter)(nil)
)

func newWarningWriter(w http.ResponseWriter, notice string) *warningWriter {
	return &warningWriter{ResponseWriter: w, notice: notice}
}

// apply sets the header once. Later calls are no-ops so a handler that
// overrides the header after its first write does not get it back.
func (ww *warningWriter) apply() {
	if ww.done {
		return
	}
	ww.done = true
	ww.ResponseWriter.Header().Set(HeaderName, ww.notice)
}

// WriteHeader prevents "superfluous response.WriteHeader call" errors, since
// the router cannot see through this wrapper to check for itself.
func (ww *warningWriter) WriteHeader(code int) {
	ww.apply()
	if ww.written {
		return
	}
	ww.written = true
	ww.ResponseWriter.WriteHeader(code)
}

func (ww *warningWriter) Write(b []byte) (int, error) {
	ww.apply()
	ww.written = true
	return ww.ResponseWriter.Write(b)
}

// Flush commits the header before flushing buffered data.
func (ww *warningWriter) Flush() {
	ww.apply()
	ww.written = true
	if f, ok := ww.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Hijack hands the connection over as is. A hijacked response has no
// headers to annotate.
func (ww *warningWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if h, ok := ww.ResponseWriter.(http.Hijacker); ok {
		return h.Hijack()
	}

	return nil, nil, http.ErrNotSupported
}

func (ww *warningWriter) Push(target string, opts *http.PushOptions) error {
	if p, ok := ww.ResponseWriter.(http.Pusher); ok {
		return p.Push(target, opts)
	}

	return http.ErrNotSupported
}

// ReadFrom commits the header, then streams r to the inner writer.
func (ww *warningWriter) ReadFrom(r io.Reader) (int64, error) {
	ww.apply()
	ww.written = true
	if rf, ok := ww.ResponseWriter.(io.ReaderFrom); ok {
		return rf.ReadFrom(r)
	}

	return io.Copy(ww.ResponseWriter, r)
}

// Unwrap returns the underlying writer for http.ResponseController.
func (ww *warningWriter) Unwrap() http.ResponseWriter {
	return ww.ResponseWriter
}
