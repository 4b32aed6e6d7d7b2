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

package grpc_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/stats"
	"google.golang.org/grpc/status"

	cloudtrace "github.com/opencloudtrace/cloudtrace-go"
	mw "github.com/opencloudtrace/cloudtrace-go/middleware/grpc"
	"github.com/opencloudtrace/cloudtrace-go/model"
	"github.com/opencloudtrace/cloudtrace-go/propagation/xctc"
	"github.com/opencloudtrace/cloudtrace-go/reporter/recorder"
)

var _ = Describe("gRPC client handler", func() {
	var (
		rec     *recorder.ReporterRecorder
		tracer  *cloudtrace.Tracer
		handler stats.Handler
	)

	BeforeEach(func() {
		var err error

		rec = recorder.NewReporter()
		tracer, err = cloudtrace.NewTracer(rec)
		Expect(err).ToNot(HaveOccurred())
		handler = mw.NewClientHandler(tracer)
	})

	AfterEach(func() {
		_ = rec.Close()
	})

	It("starts a client span named after the method", func() {
		ctx := handler.TagRPC(context.Background(), &stats.RPCTagInfo{
			FullMethodName: "/svc.Items/Get",
		})
		handler.HandleRPC(ctx, &stats.End{})

		spans := rec.Flush()
		Expect(spans).To(HaveLen(1))
		Expect(spans[0].Name).To(Equal("svc.Items.Get"))
		Expect(spans[0].Kind).To(Equal(model.Client))
	})

	It("injects the trace context header into outgoing metadata", func() {
		ctx := handler.TagRPC(context.Background(), &stats.RPCTagInfo{
			FullMethodName: "/svc.Items/Get",
		})

		md, ok := metadata.FromOutgoingContext(ctx)
		Expect(ok).To(BeTrue())

		values := md.Get(xctc.Header)
		Expect(values).To(HaveLen(1))

		sc, err := xctc.ParseHeader(values[0])
		Expect(err).ToNot(HaveOccurred())

		span := cloudtrace.SpanFromContext(ctx)
		Expect(span).ToNot(BeNil())
		Expect(sc.TraceID).To(Equal(span.Context().TraceID))
		Expect(sc.ID).To(Equal(span.Context().ID))
		Expect(sc.Sampled).ToNot(BeNil())
		Expect(*sc.Sampled).To(BeTrue())

		handler.HandleRPC(ctx, &stats.End{})
	})

	It("continues the trace found in the calling context", func() {
		parent := tracer.StartSpan("operation")
		ctx := cloudtrace.NewContext(context.Background(), parent)

		ctx = handler.TagRPC(ctx, &stats.RPCTagInfo{
			FullMethodName: "/svc.Items/Get",
		})
		handler.HandleRPC(ctx, &stats.End{})
		parent.Finish()

		spans := rec.Flush()
		Expect(spans).To(HaveLen(2))

		child, root := spans[0], spans[1]
		Expect(child.TraceID).To(Equal(root.TraceID))
		Expect(child.ParentID).ToNot(BeNil())
		Expect(*child.ParentID).To(Equal(root.ID))
	})

	It("tags failed calls with the gRPC status code", func() {
		ctx := handler.TagRPC(context.Background(), &stats.RPCTagInfo{
			FullMethodName: "/svc.Items/Get",
		})
		handler.HandleRPC(ctx, &stats.End{
			Error: status.Error(codes.NotFound, "no such item"),
		})

		spans := rec.Flush()
		Expect(spans).To(HaveLen(1))
		Expect(spans[0].Tags).To(HaveKeyWithValue(string(cloudtrace.TagGRPCStatusCode), "NOTFOUND"))
		Expect(spans[0].Tags).To(HaveKeyWithValue(string(cloudtrace.TagError), "NOTFOUND"))
	})

	It("invokes registered RPC handlers", func() {
		var seen []stats.RPCStats
		handler = mw.NewClientHandler(tracer, mw.WithClientRPCHandler(
			func(span cloudtrace.Span, rs stats.RPCStats) {
				seen = append(seen, rs)
			},
		))

		ctx := handler.TagRPC(context.Background(), &stats.RPCTagInfo{
			FullMethodName: "/svc.Items/Get",
		})
		handler.HandleRPC(ctx, &stats.End{})

		Expect(seen).To(HaveLen(1))
	})
})

var _ = Describe("gRPC server handler", func() {
	var (
		rec     *recorder.ReporterRecorder
		tracer  *cloudtrace.Tracer
		handler stats.Handler
	)

	BeforeEach(func() {
		var err error

		rec = recorder.NewReporter()
		tracer, err = cloudtrace.NewTracer(rec)
		Expect(err).ToNot(HaveOccurred())
		handler = mw.NewServerHandler(tracer)
	})

	AfterEach(func() {
		_ = rec.Close()
	})

	It("joins the trace found in the incoming metadata", func() {
		md := metadata.Pairs(xctc.Header, "105445aa7843bc8bf206b12000100000/42;o=1")
		ctx := metadata.NewIncomingContext(context.Background(), md)

		ctx = handler.TagRPC(ctx, &stats.RPCTagInfo{
			FullMethodName: "/svc.Items/Get",
		})
		handler.HandleRPC(ctx, &stats.End{})

		spans := rec.Flush()
		Expect(spans).To(HaveLen(1))

		span := spans[0]
		Expect(span.Kind).To(Equal(model.Server))
		Expect(span.TraceID).To(Equal(model.TraceID{
			High: 0x105445aa7843bc8b,
			Low:  0xf206b12000100000,
		}))
		Expect(span.ID).To(Equal(model.ID(42)))
		Expect(span.Shared).To(BeTrue())
	})

	It("restarts the trace on a malformed header", func() {
		md := metadata.Pairs(xctc.Header, "malformed")
		ctx := metadata.NewIncomingContext(context.Background(), md)

		ctx = handler.TagRPC(ctx, &stats.RPCTagInfo{
			FullMethodName: "/svc.Items/Get",
		})
		handler.HandleRPC(ctx, &stats.End{})

		spans := rec.Flush()
		Expect(spans).To(HaveLen(1))
		Expect(spans[0].TraceID.Empty()).To(BeFalse())
		Expect(spans[0].ParentID).To(BeNil())
	})

	It("starts a fresh trace without incoming metadata", func() {
		ctx := handler.TagRPC(context.Background(), &stats.RPCTagInfo{
			FullMethodName: "/svc.Items/Get",
		})
		handler.HandleRPC(ctx, &stats.End{})

		spans := rec.Flush()
		Expect(spans).To(HaveLen(1))
		Expect(spans[0].TraceID.Empty()).To(BeFalse())
	})

	It("applies default tags to server spans", func() {
		handler = mw.NewServerHandler(tracer, mw.ServerTags(
			map[string]string{"component": "api"},
		))

		ctx := handler.TagRPC(context.Background(), &stats.RPCTagInfo{
			FullMethodName: "/svc.Items/Get",
		})
		handler.HandleRPC(ctx, &stats.End{})

		spans := rec.Flush()
		Expect(spans).To(HaveLen(1))
		Expect(spans[0].Tags).To(HaveKeyWithValue("component", "api"))
	})

	It("tags unconvertible errors with their message", func() {
		ctx := handler.TagRPC(context.Background(), &stats.RPCTagInfo{
			FullMethodName: "/svc.Items/Get",
		})
		handler.HandleRPC(ctx, &stats.End{Error: errors.New("broken pipe")})

		spans := rec.Flush()
		Expect(spans).To(HaveLen(1))
		Expect(spans[0].Tags).To(HaveKeyWithValue(string(cloudtrace.TagError), "broken pipe"))
	})
})
