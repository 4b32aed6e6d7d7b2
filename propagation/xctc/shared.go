// Copyright 2026 The OpenCloudTrace Authors
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

package xctc

import "errors"

// Header holds the one wire field recognized by this codec. Lookups are
// case-insensitive per carrier contract, writes use this canonical casing.
const Header = "X-Cloud-Trace-Context"

// Common Header Extraction / Injection errors
var (
	ErrHeaderMissing       = errors.New("missing X-Cloud-Trace-Context header")
	ErrInvalidHeaderFormat = errors.New("invalid X-Cloud-Trace-Context header format")
	ErrInvalidTraceIDValue = errors.New("invalid X-Cloud-Trace-Context TraceID value")
	ErrInvalidSpanIDValue  = errors.New("invalid X-Cloud-Trace-Context SpanID value")
	ErrInvalidContext      = errors.New("zero valued trace or span identifier")
	ErrEmptyContext        = errors.New("empty request context")
)

// Fields returns the header names this codec may read or write on a carrier.
// Callers can use it to clear propagation fields before a hop. A fresh slice
// is returned on every call.
func Fields() []string {
	return []string{Header}
}

// Getter is the read capability the codec requires from a carrier. Key
// matching must be case-insensitive; a missing key yields the empty string.
type Getter interface {
	Get(key string) string
}

// Setter is the write capability the codec requires from a carrier. Set
// overwrites any prior value stored under key.
type Setter interface {
	Set(key, value string)
}
