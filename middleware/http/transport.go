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

package http

import (
	"bytes"
	"io"
	"net/http"
	"strconv"

	cloudtrace "github.com/opencloudtrace/cloudtrace-go"
	"github.com/opencloudtrace/cloudtrace-go/model"
	"github.com/opencloudtrace/cloudtrace-go/propagation/xctc"
)

type transport struct {
	tracer             *cloudtrace.Tracer
	rt                 http.RoundTripper
	defaultTags        map[string]string
	errHandler         ErrHandler
	errResponseReader  ErrResponseReader
	requestSampler     RequestSamplerFunc
	remoteServiceName  string
	tagRemoteEndpoints bool
}

// ErrHandler allows instrumentations to decide how to tag errors based on
// the response status code and the error from the RoundTripper.
type ErrHandler func(sp cloudtrace.Span, err error, statusCode int)

func defaultErrHandler(sp cloudtrace.Span, err error, statusCode int) {
	if err != nil {
		cloudtrace.TagError.Set(sp, err.Error())
		return
	}
	statusCodeVal := strconv.Itoa(statusCode)
	cloudtrace.TagError.Set(sp, statusCodeVal)
}

// ErrResponseReader allows instrumentations to read the error body and
// decide to obtain information to it and add it to the span i.e. tag the
// span with a more meaningful error code or with error details.
type ErrResponseReader func(sp cloudtrace.Span, body []byte)

// TransportOption allows one to configure optional transport configuration.
type TransportOption func(*transport)

// RoundTripper adds the Transport RoundTripper to wrap.
func RoundTripper(rt http.RoundTripper) TransportOption {
	return func(t *transport) {
		if rt != nil {
			t.rt = rt
		}
	}
}

// TransportTags adds default Tags to inject into transport spans.
func TransportTags(tags map[string]string) TransportOption {
	return func(t *transport) {
		t.defaultTags = tags
	}
}

// TransportErrHandler allows to pass a custom error handler for the span.
func TransportErrHandler(h ErrHandler) TransportOption {
	return func(t *transport) {
		if h != nil {
			t.errHandler = h
		}
	}
}

// TransportErrResponseReader allows to pass a custom ErrResponseReader which
// is handed the response body of failed requests.
func TransportErrResponseReader(r ErrResponseReader) TransportOption {
	return func(t *transport) {
		if r != nil {
			t.errResponseReader = r
		}
	}
}

// TransportRequestSampler allows one to set the sampling decision based on
// the details found in the http.Request.
func TransportRequestSampler(sampleFunc RequestSamplerFunc) TransportOption {
	return func(t *transport) {
		t.requestSampler = sampleFunc
	}
}

// TransportRemoteServiceName will set the value of the service name of the
// remote endpoint.
func TransportRemoteServiceName(name string) TransportOption {
	return func(t *transport) {
		t.remoteServiceName = name
		t.tagRemoteEndpoints = true
	}
}

// NewTransport returns a new instrumented HTTP RoundTripper which injects
// the trace context header into outgoing requests.
func NewTransport(tracer *cloudtrace.Tracer, options ...TransportOption) (http.RoundTripper, error) {
	if tracer == nil {
		return nil, ErrValidTracerRequired
	}

	t := &transport{
		tracer:     tracer,
		rt:         http.DefaultTransport,
		errHandler: defaultErrHandler,
	}

	for _, option := range options {
		option(t)
	}

	return t, nil
}

// RoundTrip satisfies the RoundTripper interface.
func (t *transport) RoundTrip(req *http.Request) (*http.Response, error) {
	name := req.URL.Scheme
	if name == "" {
		switch req.URL.Port() {
		case "80", "":
			name = "HTTP"
		case "443":
			name = "HTTPS"
		}
	} else {
		name += "/"
	}

	spanOpts := []cloudtrace.SpanOption{
		cloudtrace.Kind(model.Client),
	}
	if t.requestSampler != nil {
		if sample := t.requestSampler(req); sample != nil {
			spanOpts = append(spanOpts, cloudtrace.Parent(model.SpanContext{
				Sampled: sample,
			}))
		}
	}
	if t.tagRemoteEndpoints {
		if ep, err := cloudtrace.NewEndpoint(t.remoteServiceName, req.Host); err == nil {
			spanOpts = append(spanOpts, cloudtrace.RemoteEndpoint(ep))
		}
	}

	sp, _ := t.tracer.StartSpanFromContext(
		req.Context(), name+req.Method, spanOpts...,
	)

	for k, v := range t.defaultTags {
		sp.Tag(k, v)
	}

	cloudtrace.TagHTTPMethod.Set(sp, req.Method)
	cloudtrace.TagHTTPUrl.Set(sp, req.URL.String())
	cloudtrace.TagHTTPPath.Set(sp, req.URL.Path)

	// shallow copy the request before mutating its headers, callers may
	// reuse the original request on retries.
	req = req.Clone(req.Context())
	_ = xctc.InjectHTTP(req)(sp.Context())

	res, err := t.rt.RoundTrip(req)
	if err != nil {
		t.errHandler(sp, err, 0)
		sp.Finish()
		return res, err
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		statusCode := strconv.Itoa(res.StatusCode)
		cloudtrace.TagHTTPStatusCode.Set(sp, statusCode)
		if res.StatusCode > 399 {
			t.errHandler(sp, nil, res.StatusCode)
			if t.errResponseReader != nil {
				if body, err := io.ReadAll(res.Body); err == nil {
					res.Body.Close()
					t.errResponseReader(sp, body)
					res.Body = io.NopCloser(bytes.NewReader(body))
				}
			}
		}
	}
	sp.Finish()

	return res, err
}
