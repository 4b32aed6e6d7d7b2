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

package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestSpanModelMarshalTimestamps(t *testing.T) {
	ts := time.Unix(1500000000, 123456789)
	span := SpanModel{
		SpanContext: SpanContext{
			TraceID: TraceID{High: 1, Low: 2},
			ID:      ID(3),
		},
		Name:      "test",
		Timestamp: ts,
		Duration:  1500 * time.Microsecond,
	}

	b, err := json.Marshal(span)
	if err != nil {
		t.Fatalf("unexpected marshal error: %+v", err)
	}

	var have SpanModel
	if err := json.Unmarshal(b, &have); err != nil {
		t.Fatalf("unexpected unmarshal error: %+v", err)
	}

	// round trips at microsecond precision
	if want := ts.Round(time.Microsecond); !have.Timestamp.Equal(want) {
		t.Errorf("expected timestamp %s, got %s", want, have.Timestamp)
	}
	if want := 1500 * time.Microsecond; want != have.Duration {
		t.Errorf("expected duration %s, got %s", want, have.Duration)
	}
	if want := span.TraceID; want != have.TraceID {
		t.Errorf("expected TraceID %+v, got %+v", want, have.TraceID)
	}
}

func TestSpanModelMarshalRejectsPreEpochTimestamp(t *testing.T) {
	span := SpanModel{
		SpanContext: SpanContext{TraceID: TraceID{Low: 1}, ID: ID(1)},
		Timestamp:   time.Unix(-1, 0),
	}

	if _, err := json.Marshal(span); err == nil {
		t.Errorf("expected marshal error for pre-epoch timestamp")
	}
}

func TestSpanModelMarshalSubMicrosecondDuration(t *testing.T) {
	span := SpanModel{
		SpanContext: SpanContext{TraceID: TraceID{Low: 1}, ID: ID(1)},
		Timestamp:   time.Now(),
		Duration:    300 * time.Nanosecond,
	}

	b, err := json.Marshal(span)
	if err != nil {
		t.Fatalf("unexpected marshal error: %+v", err)
	}

	var have SpanModel
	if err := json.Unmarshal(b, &have); err != nil {
		t.Fatalf("unexpected unmarshal error: %+v", err)
	}
	if want := 1 * time.Microsecond; want != have.Duration {
		t.Errorf("expected duration %s, got %s", want, have.Duration)
	}
}

func TestSpanModelMarshalTraceIDPadding(t *testing.T) {
	span := SpanModel{
		SpanContext: SpanContext{TraceID: TraceID{Low: 0x2a}, ID: ID(1)},
		Name:        "test",
	}

	b, err := json.Marshal(span)
	if err != nil {
		t.Fatalf("unexpected marshal error: %+v", err)
	}
	if want := `"traceId":"0000000000000000000000000000002a"`; !strings.Contains(string(b), want) {
		t.Errorf("expected %s in payload, got %s", want, b)
	}
}

func TestAnnotationRoundTrip(t *testing.T) {
	a := Annotation{
		Timestamp: time.Unix(1500000000, 123456789),
		Value:     "cache miss",
	}

	b, err := json.Marshal(&a)
	if err != nil {
		t.Fatalf("unexpected marshal error: %+v", err)
	}

	var have Annotation
	if err := json.Unmarshal(b, &have); err != nil {
		t.Fatalf("unexpected unmarshal error: %+v", err)
	}
	if want := a.Timestamp.Round(time.Microsecond); !have.Timestamp.Equal(want) {
		t.Errorf("expected timestamp %s, got %s", want, have.Timestamp)
	}
	if want := a.Value; want != have.Value {
		t.Errorf("expected value %q, got %q", want, have.Value)
	}
}

func TestAnnotationUnmarshalRequiresTimestamp(t *testing.T) {
	var a Annotation
	if err := json.Unmarshal([]byte(`{"value":"oops"}`), &a); err != ErrValidTimestampRequired {
		t.Errorf("expected ErrValidTimestampRequired, got %+v", err)
	}
}
