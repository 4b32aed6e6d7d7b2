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

package cloudtrace

import "context"

var defaultNoopSpan = &noopSpan{}

type ctxKey struct{}

// SpanFromContext retrieves a cloudtrace Span from Go's context propagation
// mechanism if found. If not found, returns nil.
func SpanFromContext(ctx context.Context) Span {
	if s, ok := ctx.Value(ctxKey{}).(Span); ok {
		return s
	}
	return nil
}

// SpanOrNoopFromContext retrieves a cloudtrace Span from Go's context
// propagation mechanism if found. If not found, returns a noopSpan. This is
// useful if you want to assure that the returned Span is never nil.
func SpanOrNoopFromContext(ctx context.Context) Span {
	if s, ok := ctx.Value(ctxKey{}).(Span); ok {
		return s
	}
	return defaultNoopSpan
}

// NewContext stores a cloudtrace Span into Go's context propagation
// mechanism.
func NewContext(ctx context.Context, s Span) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}
