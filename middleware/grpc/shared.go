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
Package grpc provides gRPC stats handlers which start spans around RPCs and
propagate the trace context through gRPC metadata using the
X-Cloud-Trace-Context header.
*/
package grpc

import (
	"context"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/stats"
	"google.golang.org/grpc/status"

	cloudtrace "github.com/opencloudtrace/cloudtrace-go"
	"github.com/opencloudtrace/cloudtrace-go/model"
)

// A RPCHandler can be registered using WithClientRPCHandler or
// WithServerRPCHandler to intercept calls to HandleRPC of a handler for
// additional span customization.
type RPCHandler func(span cloudtrace.Span, rpcStats stats.RPCStats)

func spanName(rti *stats.RPCTagInfo) string {
	name := strings.TrimPrefix(rti.FullMethodName, "/")
	name = strings.Replace(name, "/", ".", -1)
	return name
}

func handleRPC(ctx context.Context, rs stats.RPCStats, rpcHandlers []RPCHandler) {
	span := cloudtrace.SpanOrNoopFromContext(ctx)
	if cloudtrace.IsNoop(span) {
		return
	}

	for _, h := range rpcHandlers {
		h(span, rs)
	}

	switch rs := rs.(type) {
	case *stats.End:
		if rs.Error != nil {
			// rs.Error is not guaranteed to be a status error
			s, ok := status.FromError(rs.Error)
			if ok {
				if s.Code() != codes.OK {
					c := strings.ToUpper(s.Code().String())
					span.Tag(string(cloudtrace.TagGRPCStatusCode), c)
					cloudtrace.TagError.Set(span, c)
				}
			} else {
				cloudtrace.TagError.Set(span, rs.Error.Error())
			}
		}
		span.Finish()
	}
}

func remoteEndpointFromContext(ctx context.Context, name string) *model.Endpoint {
	remoteAddr := ""

	p, ok := peer.FromContext(ctx)
	if ok {
		remoteAddr = p.Addr.String()
	}

	ep, _ := cloudtrace.NewEndpoint(name, remoteAddr)
	return ep
}
