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

	"google.golang.org/grpc/metadata"

	"github.com/opencloudtrace/cloudtrace-go/model"
	"github.com/opencloudtrace/cloudtrace-go/propagation"
)

// gRPC metadata stores keys lowercased.
var lowerHeader = strings.ToLower(Header)

// ExtractGRPC will extract a span.Context from the gRPC Request metadata if
// found in X-Cloud-Trace-Context header format.
func ExtractGRPC(md *metadata.MD) propagation.Extractor {
	return func() (*model.SpanContext, error) {
		return ParseHeader(getGRPCHeader(md, lowerHeader))
	}
}

// InjectGRPC will inject a span.Context into gRPC metadata.
func InjectGRPC(md *metadata.MD) propagation.Injector {
	return func(sc model.SpanContext) error {
		if (model.SpanContext{}) == sc {
			return ErrEmptyContext
		}

		value := BuildHeader(sc)
		if value == "" {
			return ErrInvalidContext
		}

		setGRPCHeader(md, lowerHeader, value)
		return nil
	}
}

func getGRPCHeader(md *metadata.MD, key string) string {
	v := (*md)[key]
	if len(v) < 1 {
		return ""
	}
	return v[0]
}

func setGRPCHeader(md *metadata.MD, key, value string) {
	(*md)[key] = []string{value}
}
