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

package kafka_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/IBM/sarama/mocks"

	"github.com/opencloudtrace/cloudtrace-go/model"
	"github.com/opencloudtrace/cloudtrace-go/reporter/kafka"
)

func makeSpan(id uint64) model.SpanModel {
	return model.SpanModel{
		SpanContext: model.SpanContext{
			TraceID: model.TraceID{High: 0x105445aa7843bc8b, Low: id},
			ID:      model.ID(id),
		},
		Name:      "test",
		Timestamp: time.Now(),
	}
}

func newMockProducer(t *testing.T) *mocks.AsyncProducer {
	config := mocks.NewTestConfig()
	config.Producer.Return.Successes = true
	return mocks.NewAsyncProducer(t, config)
}

func TestKafkaProduce(t *testing.T) {
	p := newMockProducer(t)
	rep, err := kafka.NewReporter(nil, kafka.Producer(p))
	if err != nil {
		t.Fatalf("unable to create reporter: %+v", err)
	}

	want := makeSpan(1)
	p.ExpectInputAndSucceed()
	rep.Send(want)

	msg := <-p.Successes()
	if have, wantTopic := msg.Topic, "cloudtrace-spans"; have != wantTopic {
		t.Errorf("expected topic %q, got %q", wantTopic, have)
	}

	key, err := msg.Key.Encode()
	if err != nil {
		t.Fatalf("unable to encode key: %+v", err)
	}
	if want, have := want.TraceID.ToHex(), string(key); want != have {
		t.Errorf("expected key %q, got %q", want, have)
	}

	body, err := msg.Value.Encode()
	if err != nil {
		t.Fatalf("unable to encode value: %+v", err)
	}
	var batch []model.SpanModel
	if err := json.Unmarshal(body, &batch); err != nil {
		t.Fatalf("unable to unmarshal message value: %+v", err)
	}
	if have := len(batch); have != 1 {
		t.Fatalf("expected 1 encoded span, got %d", have)
	}
	if wantID, have := want.ID, batch[0].ID; wantID != have {
		t.Errorf("expected span ID %d, got %d", wantID, have)
	}

	if err := rep.Close(); err != nil {
		t.Fatalf("unexpected error on close: %+v", err)
	}
}

func TestKafkaCustomTopic(t *testing.T) {
	p := newMockProducer(t)
	rep, err := kafka.NewReporter(nil, kafka.Producer(p), kafka.Topic("traces"))
	if err != nil {
		t.Fatalf("unable to create reporter: %+v", err)
	}

	p.ExpectInputAndSucceed()
	rep.Send(makeSpan(2))

	msg := <-p.Successes()
	if want, have := "traces", msg.Topic; want != have {
		t.Errorf("expected topic %q, got %q", want, have)
	}

	if err := rep.Close(); err != nil {
		t.Fatalf("unexpected error on close: %+v", err)
	}
}
