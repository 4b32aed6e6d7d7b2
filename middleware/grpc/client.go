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

type clientHandler struct {
	tracer            *cloudtrace.Tracer
	rpcHandlers       []RPCHandler
	remoteServiceName string
}

// A ClientOption can be passed to NewClientHandler to customize the
// returned handler.
type ClientOption func(*clientHandler)

// WithClientRPCHandler allows one to add custom logic for handling a
// stats.RPCStats, e.g. to add additional tags.
func WithClientRPCHandler(handler RPCHandler) ClientOption {
	return func(c *clientHandler) {
		c.rpcHandlers = append(c.rpcHandlers, handler)
	}
}

// WithRemoteServiceName will set the value of the service name of the
// remote endpoint for all spans.
func WithRemoteServiceName(name string) ClientOption {
	return func(c *clientHandler) {
		c.remoteServiceName = name
	}
}

// NewClientHandler returns a stats.Handler which can be used with
// grpc.WithStatsHandler to add tracing to a gRPC client. The gRPC method
// name is used as the span name and by default the only tags are the gRPC
// status code if the call fails. Use WithClientRPCHandler to add additional
// tags.
func NewClientHandler(tracer *cloudtrace.Tracer, options ...ClientOption) stats.Handler {
	c := &clientHandler{
		tracer: tracer,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// HandleConn exists to satisfy gRPC stats.Handler.
func (c *clientHandler) HandleConn(_ context.Context, _ stats.ConnStats) {
	// no-op
}

// TagConn exists to satisfy gRPC stats.Handler.
func (c *clientHandler) TagConn(ctx context.Context, _ *stats.ConnTagInfo) context.Context {
	// no-op
	return ctx
}

// HandleRPC implements per-RPC tracing and stats instrumentation.
func (c *clientHandler) HandleRPC(ctx context.Context, rs stats.RPCStats) {
	handleRPC(ctx, rs, c.rpcHandlers)
}

// TagRPC implements per-RPC context management.
func (c *clientHandler) TagRPC(ctx context.Context, rti *stats.RPCTagInfo) context.Context {
	var span cloudtrace.Span

	ep := remoteEndpointFromContext(ctx, c.remoteServiceName)

	name := spanName(rti)
	span, ctx = c.tracer.StartSpanFromContext(
		ctx, name, cloudtrace.Kind(model.Client), cloudtrace.RemoteEndpoint(ep),
	)

	md, ok := metadata.FromOutgoingContext(ctx)
	if ok {
		md = md.Copy()
	} else {
		md = metadata.New(nil)
	}
	_ = xctc.InjectGRPC(&md)(span.Context())
	ctx = metadata.NewOutgoingContext(ctx, md)

	return ctx
}
