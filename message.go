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
	"strconv"
	"strings"
)

const (
	// HeaderName is the response header carrying the deprecation notice.
	HeaderName = "Warning"

	// WarnCode is the warn-code used for the notice (RFC 7234 "Miscellaneous
	// persistent warning").
	WarnCode = 299
)

// warnPrefix is the fixed opening of every notice. Clients and gateways
// match on it.
var warnPrefix = strconv.Itoa(WarnCode) + ` - "Deprecated API : `

// JoinURL joins a URL root and a path prefix with exactly one slash between
// them, whatever slashes either side already carries.
//
// Example:
//
//	JoinURL("http://example.com/", "/v1") // "http://example.com/v1"
//	JoinURL("/root", "suffix/")           // "/root/suffix/"
func JoinURL(root, prefix string) string {
	return strings.TrimRight(root, "/") + "/" + strings.TrimLeft(prefix, "/")
}

// BaseMessage builds the notice for a single request URL:
//
//	299 - "Deprecated API : <requestURL> is deprecated;<message>"
//
// The trailing segment is kept even when message is empty.
func BaseMessage(requestURL, message string) string {
	return format(requestURL, message)
}

// GroupMessage builds the notice for a deprecated group mounted at rootURL.
func GroupMessage(rootURL, message string) string {
	return format(rootURL, message)
}

// ReplacementMessage builds the notice for a deprecated group that has a
// replacement mounted at newRootURL. The "Use ... instead" segment comes
// before the free-text message:
//
//	299 - "Deprecated API : <old> is deprecated;Use <new> instead;<message>"
func ReplacementMessage(oldRootURL, newRootURL, message string) string {
	return format(oldRootURL, "Use "+newRootURL+" instead;"+message)
}

func format(subject, segments string) string {
	var sb strings.Builder
	sb.Grow(len(warnPrefix) + len(subject) + len(segments) + 17)
	sb.WriteString(warnPrefix)
	sb.WriteString(subject)
	sb.WriteString(" is deprecated;")
	sb.WriteString(segments)
	sb.WriteByte('"')

	return sb.String()
}
