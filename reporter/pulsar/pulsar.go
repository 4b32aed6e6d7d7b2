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
Package pulsar implements a Pulsar reporter to send spans to a Pulsar
server/cluster.
*/
package pulsar

import (
	"context"
	"log"
	"os"

	"github.com/apache/pulsar-client-go/pulsar"

	"github.com/opencloudtrace/cloudtrace-go/model"
	"github.com/opencloudtrace/cloudtrace-go/reporter"
)

// defaultPulsarTopic sets the standard Pulsar topic our Reporter will
// publish on.
const defaultPulsarTopic = "cloudtrace-spans"

// pulsarReporter implements Reporter by publishing spans to a Pulsar broker.
type pulsarReporter struct {
	logger     *log.Logger
	topic      string
	client     pulsar.Client
	producer   pulsar.Producer
	serializer reporter.SpanSerializer
}

// ReporterOption sets a parameter for the pulsarReporter
type ReporterOption func(c *pulsarReporter)

// Logger sets the logger used to report errors in the collection process.
func Logger(logger *log.Logger) ReporterOption {
	return func(c *pulsarReporter) {
		c.logger = logger
	}
}

// Client sets the client used to produce to Pulsar.
func Client(client pulsar.Client) ReporterOption {
	return func(c *pulsarReporter) {
		c.client = client
	}
}

// Producer sets the producer used to produce to Pulsar.
func Producer(p pulsar.Producer) ReporterOption {
	return func(c *pulsarReporter) {
		c.producer = p
	}
}

// Topic sets the pulsar topic to attach the reporter producer on.
func Topic(t string) ReporterOption {
	return func(c *pulsarReporter) {
		c.topic = t
	}
}

// Serializer sets the serialization function to use for sending span data.
func Serializer(serializer reporter.SpanSerializer) ReporterOption {
	return func(c *pulsarReporter) {
		if serializer != nil {
			c.serializer = serializer
		}
	}
}

// NewReporter returns a new Pulsar-backed Reporter. address should be a
// Pulsar service URL in the form pulsar://host:port.
func NewReporter(address string, options ...ReporterOption) (reporter.Reporter, error) {
	r := &pulsarReporter{
		logger:     log.New(os.Stderr, "", log.LstdFlags),
		topic:      defaultPulsarTopic,
		serializer: reporter.JSONSerializer{},
	}

	for _, option := range options {
		option(r)
	}

	if r.client == nil {
		client, err := pulsar.NewClient(pulsar.ClientOptions{
			URL: address,
		})
		if err != nil {
			return nil, err
		}
		r.client = client
	}
	if r.producer == nil {
		producer, err := r.client.CreateProducer(pulsar.ProducerOptions{
			Topic: r.topic,
		})
		if err != nil {
			r.client.Close()
			return nil, err
		}
		r.producer = producer
	}

	return r, nil
}

func (r *pulsarReporter) Send(s model.SpanModel) {
	m, err := r.serializer.Serialize([]*model.SpanModel{&s})
	if err != nil {
		r.logger.Printf("failed when marshalling the span: %s\n", err.Error())
		return
	}

	r.producer.SendAsync(context.Background(),
		&pulsar.ProducerMessage{
			Key:     s.TraceID.ToHex(),
			Payload: m,
		},
		func(_ pulsar.MessageID, _ *pulsar.ProducerMessage, err error) {
			if err != nil {
				r.logger.Printf("failed to produce msg: %s\n", err.Error())
			}
		},
	)
}

func (r *pulsarReporter) Close() error {
	r.producer.Close()
	r.client.Close()
	return nil
}
