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

package log_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"

	"github.com/opencloudtrace/cloudtrace-go/model"
	logreporter "github.com/opencloudtrace/cloudtrace-go/reporter/log"
)

func TestLogReporter(t *testing.T) {
	logger, hook := logrustest.NewNullLogger()
	rep := logreporter.NewReporter(logreporter.Logger(logger))
	defer rep.Close()

	span := model.SpanModel{
		SpanContext: model.SpanContext{
			TraceID: model.TraceID{High: 0x105445aa7843bc8b, Low: 0xf206b12000100000},
			ID:      model.ID(42),
		},
		Name:      "test",
		Timestamp: time.Now(),
	}
	rep.Send(span)

	entries := hook.AllEntries()
	if want, have := 1, len(entries); want != have {
		t.Fatalf("expected %d log entries, got %d", want, have)
	}

	entry := entries[0]
	if want, have := logrus.InfoLevel, entry.Level; want != have {
		t.Errorf("expected level %s, got %s", want, have)
	}
	if want, have := "105445aa7843bc8bf206b12000100000", entry.Data["traceId"]; want != have {
		t.Errorf("expected traceId field %q, got %q", want, have)
	}
	if want, have := "000000000000002a", entry.Data["spanId"]; want != have {
		t.Errorf("expected spanId field %q, got %q", want, have)
	}

	var batch []model.SpanModel
	if err := json.Unmarshal([]byte(entry.Message), &batch); err != nil {
		t.Fatalf("expected JSON payload, got %q: %+v", entry.Message, err)
	}
	if want, have := 1, len(batch); want != have {
		t.Fatalf("expected %d spans in payload, got %d", want, have)
	}
	if want, have := span.ID, batch[0].ID; want != have {
		t.Errorf("expected span ID %d, got %d", want, have)
	}
}

func TestLogReporterLevel(t *testing.T) {
	logger, hook := logrustest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	rep := logreporter.NewReporter(
		logreporter.Logger(logger),
		logreporter.Level(logrus.DebugLevel),
	)
	defer rep.Close()

	rep.Send(model.SpanModel{
		SpanContext: model.SpanContext{
			TraceID: model.TraceID{Low: 1},
			ID:      model.ID(1),
		},
		Name: "test",
	})

	entries := hook.AllEntries()
	if want, have := 1, len(entries); want != have {
		t.Fatalf("expected %d log entries, got %d", want, have)
	}
	if want, have := logrus.DebugLevel, entries[0].Level; want != have {
		t.Errorf("expected level %s, got %s", want, have)
	}
}
