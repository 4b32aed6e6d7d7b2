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

// Package xctc implements context propagation in the Google Cloud Trace
// format, using the single X-Cloud-Trace-Context header.
package xctc

import (
	"net/http"

	"github.com/opencloudtrace/cloudtrace-go/model"
	"github.com/opencloudtrace/cloudtrace-go/propagation"
)

// ExtractHTTP will extract a span.Context from the HTTP Request if found in
// X-Cloud-Trace-Context header format.
func ExtractHTTP(r *http.Request) propagation.Extractor {
	return func() (*model.SpanContext, error) {
		return ParseHeader(r.Header.Get(Header))
	}
}

// InjectHTTP will inject a span.Context into a HTTP Request.
func InjectHTTP(r *http.Request) propagation.Injector {
	return Inject(r.Header)
}
