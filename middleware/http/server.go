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

/*
Package http provides client and server instrumentation middleware which
starts spans around HTTP calls and propagates the trace context using the
X-Cloud-Trace-Context header.
*/
package http

import (
	"net/http"
	"strconv"
	"sync/atomic"

	cloudtrace "github.com/opencloudtrace/cloudtrace-go"
	"github.com/opencloudtrace/cloudtrace-go/model"
	"github.com/opencloudtrace/cloudtrace-go/propagation/xctc"
)

type handler struct {
	tracer          *cloudtrace.Tracer
	name            string
	next            http.Handler
	tagResponseSize bool
	defaultTags     map[string]string
	requestSampler  RequestSamplerFunc
}

// ServerOption allows Middleware to be optionally configured.
type ServerOption func(*handler)

// ServerTags adds default Tags to inject into server spans.
func ServerTags(tags map[string]string) ServerOption {
	return func(h *handler) {
		h.defaultTags = tags
	}
}

// TagResponseSize will instruct the middleware to Tag the http response
// size in the server side span.
func TagResponseSize(enabled bool) ServerOption {
	return func(h *handler) {
		h.tagResponseSize = enabled
	}
}

// SpanName sets the name of the spans the middleware creates. Use this if
// wrapping each endpoint with its own Middleware.
// If omitting the SpanName option, the middleware will use the http request
// method as span name.
func SpanName(name string) ServerOption {
	return func(h *handler) {
		h.name = name
	}
}

// RequestSampler allows one to set the sampling decision based on the
// details found in the http.Request.
func RequestSampler(sampleFunc RequestSamplerFunc) ServerOption {
	return func(h *handler) {
		h.requestSampler = sampleFunc
	}
}

// NewServerMiddleware returns a http.Handler middleware with tracing
// instrumentation.
func NewServerMiddleware(t *cloudtrace.Tracer, options ...ServerOption) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		h := &handler{
			tracer: t,
			next:   next,
		}
		for _, option := range options {
			option(h)
		}
		return h
	}
}

// ServeHTTP implements http.Handler.
func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// try to extract the trace context header from upstream. a missing or
	// malformed header restarts the trace, it never fails the request.
	sc := h.tracer.Extract(xctc.ExtractHTTP(r))

	if h.requestSampler != nil {
		if sample := h.requestSampler(r); sample != nil {
			sc.Sampled = sample
		}
	}

	remoteEndpoint, _ := cloudtrace.NewEndpoint("", r.RemoteAddr)

	spanName := h.name
	if len(spanName) == 0 {
		spanName = r.Method
	}

	// create Span using SpanContext if found
	sp := h.tracer.StartSpan(
		spanName,
		cloudtrace.Kind(model.Server),
		cloudtrace.Parent(sc),
		cloudtrace.RemoteEndpoint(remoteEndpoint),
	)

	for k, v := range h.defaultTags {
		sp.Tag(k, v)
	}

	// add our span to context
	ctx := cloudtrace.NewContext(r.Context(), sp)

	// tag typical HTTP request items
	cloudtrace.TagHTTPMethod.Set(sp, r.Method)
	cloudtrace.TagHTTPPath.Set(sp, r.URL.Path)
	if r.ContentLength > 0 {
		cloudtrace.TagHTTPRequestSize.Set(sp, strconv.FormatInt(r.ContentLength, 10))
	}

	// create http.ResponseWriter interceptor for tracking response size and
	// status code.
	ri := &rwInterceptor{w: w, statusCode: http.StatusOK}

	// tag found response size and status code on exit
	defer func() {
		code := ri.getStatusCode()
		sCode := strconv.Itoa(code)
		if code > 399 {
			cloudtrace.TagError.Set(sp, sCode)
		}
		cloudtrace.TagHTTPStatusCode.Set(sp, sCode)
		if h.tagResponseSize && ri.getResponseSize() > 0 {
			cloudtrace.TagHTTPResponseSize.Set(sp, ri.getResponseSizeString())
		}
		sp.Finish()
	}()

	// call next http Handler func using our updated context.
	h.next.ServeHTTP(ri.wrap(), r.WithContext(ctx))
}

// rwInterceptor intercepts the ResponseWriter so it can track response size
// and returned status code.
type rwInterceptor struct {
	w          http.ResponseWriter
	size       uint64
	statusCode int
}

func (r *rwInterceptor) Header() http.Header {
	return r.w.Header()
}

func (r *rwInterceptor) Write(b []byte) (n int, err error) {
	n, err = r.w.Write(b)
	atomic.AddUint64(&r.size, uint64(n))
	return
}

func (r *rwInterceptor) WriteHeader(i int) {
	r.statusCode = i
	r.w.WriteHeader(i)
}

func (r *rwInterceptor) getStatusCode() int {
	return r.statusCode
}

func (r *rwInterceptor) getResponseSize() uint64 {
	return atomic.LoadUint64(&r.size)
}

func (r *rwInterceptor) getResponseSizeString() string {
	return strconv.FormatUint(r.getResponseSize(), 10)
}

// wrap returns a http.ResponseWriter with the same extra interfaces the
// wrapped writer implements. We only special case http.Flusher here, which
// is the common streaming need.
func (r *rwInterceptor) wrap() http.ResponseWriter {
	if f, ok := r.w.(http.Flusher); ok {
		return struct {
			http.ResponseWriter
			http.Flusher
		}{r, f}
	}
	return r
}
