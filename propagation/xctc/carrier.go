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
	"github.com/opencloudtrace/cloudtrace-go/model"
	"github.com/opencloudtrace/cloudtrace-go/propagation"
)

// Extract returns an Extractor reading the trace context header from any
// carrier exposing the Getter capability.
func Extract(reader Getter) propagation.Extractor {
	return func() (*model.SpanContext, error) {
		return ParseHeader(reader.Get(Header))
	}
}

// Inject returns an Injector writing the trace context header to any
// carrier exposing the Setter capability. Contexts that cannot be encoded
// leave the carrier untouched.
func Inject(writer Setter) propagation.Injector {
	return func(sc model.SpanContext) error {
		if (model.SpanContext{}) == sc {
			return ErrEmptyContext
		}

		value := BuildHeader(sc)
		if value == "" {
			return ErrInvalidContext
		}

		writer.Set(Header, value)
		return nil
	}
}
