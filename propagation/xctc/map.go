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

import (
	"strings"

	"github.com/opencloudtrace/cloudtrace-go/model"
)

// Map allows the propagation of the trace context header within a plain Go
// map. Reads are case-insensitive, writes store the canonical header case.
type Map map[string]string

// Get implements the Getter carrier capability.
func (m Map) Get(key string) string {
	if value, ok := m[key]; ok {
		return value
	}
	for k, value := range m {
		if strings.EqualFold(k, key) {
			return value
		}
	}
	return ""
}

// Set implements the Setter carrier capability.
func (m Map) Set(key, value string) {
	for k := range m {
		if strings.EqualFold(k, key) {
			delete(m, k)
		}
	}
	m[key] = value
}

// Extract implements Extractor of the trace context header from the Map.
func (m Map) Extract() (*model.SpanContext, error) {
	return Extract(m)()
}

// Inject implements Injector of the trace context header into the Map.
func (m Map) Inject() func(model.SpanContext) error {
	return Inject(m)
}
