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
Package gcppubsub implements a Pub/Sub reporter to send spans to a Google
Cloud Pub/Sub topic.
*/
package gcppubsub

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/pubsub"

	"github.com/opencloudtrace/cloudtrace-go/model"
	"github.com/opencloudtrace/cloudtrace-go/reporter"
)

// defaultPubSubTopic sets the standard Pub/Sub topic our Reporter will
// publish on.
const defaultPubSubTopic = "cloudtrace-spans"

// pubSubReporter implements Reporter by publishing spans to a Pub/Sub topic.
type pubSubReporter struct {
	logger     *log.Logger
	topic      *pubsub.Topic
	client     *pubsub.Client
	serializer reporter.SpanSerializer
}

// ReporterOption sets a parameter for the pubSubReporter
type ReporterOption func(c *pubSubReporter)

// Logger sets the logger used to report errors in the collection process.
func Logger(logger *log.Logger) ReporterOption {
	return func(c *pubSubReporter) {
		c.logger = logger
	}
}

// Client sets the client used to produce to Pub/Sub.
func Client(client *pubsub.Client) ReporterOption {
	return func(c *pubSubReporter) {
		c.client = client
	}
}

// Topic sets the Pub/Sub topic to attach the reporter producer on.
func Topic(t *pubsub.Topic) ReporterOption {
	return func(c *pubSubReporter) {
		c.topic = t
	}
}

// Serializer sets the serialization function to use for sending span data.
func Serializer(serializer reporter.SpanSerializer) ReporterOption {
	return func(c *pubSubReporter) {
		if serializer != nil {
			c.serializer = serializer
		}
	}
}

// NewReporter returns a new Pub/Sub-backed Reporter. The project is taken
// from the client; the topic defaults to cloudtrace-spans.
func NewReporter(options ...ReporterOption) (reporter.Reporter, error) {
	r := &pubSubReporter{
		logger:     log.New(os.Stderr, "", log.LstdFlags),
		serializer: reporter.JSONSerializer{},
	}

	for _, option := range options {
		option(r)
	}

	if r.client == nil {
		ctx := context.Background()
		client, err := pubsub.NewClient(ctx, os.Getenv("GOOGLE_CLOUD_PROJECT"))
		if err != nil {
			return nil, err
		}
		r.client = client
	}
	if r.topic == nil {
		r.topic = r.client.Topic(defaultPubSubTopic)
	}

	return r, nil
}

func (r *pubSubReporter) Send(s model.SpanModel) {
	m, err := r.serializer.Serialize([]*model.SpanModel{&s})
	if err != nil {
		r.logger.Printf("failed when marshalling the span: %s\n", err.Error())
		return
	}

	msg := &pubsub.Message{
		Data: m,
		Attributes: map[string]string{
			"traceId": s.TraceID.ToHex(),
		},
	}

	result := r.topic.Publish(context.Background(), msg)
	go func() {
		if _, err := result.Get(context.Background()); err != nil {
			r.logger.Printf("failed to publish msg: %s\n", err.Error())
		}
	}()
}

func (r *pubSubReporter) Close() error {
	r.topic.Stop()
	return r.client.Close()
}
