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

package grpc

import (
	"context"

	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/stats"

	cloudtrace "github.com/opencloudtrace/cloudtrace-go"
	"github.com/opencloudtrace/cloudtrace-go/model"
	"github.com/opencloudtrace/cloudtrace-go/propagation/xctc"
)

type serverHandler struct {
	tracer      *cloudtrace.Tracer
	rpcHandlers []RPCHandler
	defaultTags map[string]string
}

// A ServerOption can be passed to NewServerHandler to customize the
// returned handler.
type ServerOption func(*serverHandler)

// ServerTags adds default Tags to inject into server spans.
func ServerTags(tags map[string]string) ServerOption {
	return func(h *serverHandler) {
		h.defaultTags = tags
	}
}

// WithServerRPCHandler allows one to add custom logic for handling a
// stats.RPCStats, e.g. to add additional tags.
func WithServerRPCHandler(handler RPCHandler) ServerOption {
	return func(h *serverHandler) {
		h.rpcHandlers = append(h.rpcHandlers, handler)
	}
}

// NewServerHandler returns a stats.Handler which can be used with
// grpc.WithStatsHandler to add tracing to a gRPC server. The gRPC method
// name is used as the span name and by default the only tags are the gRPC
// status code if the call fails. Use ServerTags to add additional tags that
// should be applied to all spans.
func NewServerHandler(tracer *cloudtrace.Tracer, options ...ServerOption) stats.Handler {
	s := &serverHandler{
		tracer: tracer,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// HandleConn exists to satisfy gRPC stats.Handler.
func (s *serverHandler) HandleConn(_ context.Context, _ stats.ConnStats) {
	// no-op
}

// TagConn exists to satisfy gRPC stats.Handler.
func (s *serverHandler) TagConn(ctx context.Context, _ *stats.ConnTagInfo) context.Context {
	// no-op
	return ctx
}

// HandleRPC implements per-RPC tracing and stats instrumentation.
func (s *serverHandler) HandleRPC(ctx context.Context, rs stats.RPCStats) {
	handleRPC(ctx, rs, s.rpcHandlers)
}

// TagRPC implements per-RPC context management.
func (s *serverHandler) TagRPC(ctx context.Context, rti *stats.RPCTagInfo) context.Context {
	var sc model.SpanContext

	// the trace context header travels in the inbound gRPC metadata. a
	// missing or malformed header restarts the trace, it never fails the
	// call.
	md, ok := metadata.FromIncomingContext(ctx)
	if ok {
		sc = s.tracer.Extract(xctc.ExtractGRPC(&md))
	}

	name := spanName(rti)
	span := s.tracer.StartSpan(
		name,
		cloudtrace.Kind(model.Server),
		cloudtrace.Parent(sc),
		cloudtrace.RemoteEndpoint(remoteEndpointFromContext(ctx, "")),
	)

	for k, v := range s.defaultTags {
		span.Tag(k, v)
	}

	return cloudtrace.NewContext(ctx, span)
}
