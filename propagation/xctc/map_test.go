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

package xctc_test

import (
	"testing"

	"github.com/opencloudtrace/cloudtrace-go/model"
	"github.com/opencloudtrace/cloudtrace-go/propagation/xctc"
)

func TestMapExtract(t *testing.T) {
	m := make(xctc.Map)
	m[xctc.Header] = "105445aa7843bc8bf206b12000100000/1;o=0"

	sc, err := m.Extract()
	if err != nil {
		t.Fatalf("Extract failed: %+v", err)
	}

	if want, have := "105445aa7843bc8bf206b12000100000", sc.TraceID.ToHex(); want != have {
		t.Errorf("TraceID want %s, have %s", want, have)
	}
	if want, have := model.ID(1), sc.ID; want != have {
		t.Errorf("ID want %d, have %d", want, have)
	}
	if sc.Sampled == nil || *sc.Sampled {
		t.Errorf("Sampled want false, have %+v", sc.Sampled)
	}
}

func TestMapExtractCaseInsensitive(t *testing.T) {
	m := make(xctc.Map)
	m["x-cloud-trace-context"] = "105445aa7843bc8bf206b12000100000/1"

	sc, err := m.Extract()
	if err != nil {
		t.Fatalf("Extract failed: %+v", err)
	}

	if want, have := model.ID(1), sc.ID; want != have {
		t.Errorf("ID want %d, have %d", want, have)
	}
}

func TestMapExtractMissing(t *testing.T) {
	m := make(xctc.Map)

	if _, err := m.Extract(); err != xctc.ErrHeaderMissing {
		t.Errorf("error want %q, have %q", xctc.ErrHeaderMissing, err)
	}
}

func TestMapInject(t *testing.T) {
	m := make(xctc.Map)
	// a stale differently cased entry must be replaced, not duplicated
	m["x-cloud-trace-context"] = "deadbeefdeadbeefdeadbeefdeadbeef/9;o=1"

	sampled := true
	sc := model.SpanContext{
		TraceID: model.TraceID{High: 0x105445aa7843bc8b, Low: 0xf206b12000100000},
		ID:      model.ID(1),
		Sampled: &sampled,
	}

	if err := m.Inject()(sc); err != nil {
		t.Fatalf("Inject failed: %+v", err)
	}

	if want, have := 1, len(m); want != have {
		t.Fatalf("map size want %d, have %d", want, have)
	}
	if want, have := "105445aa7843bc8bf206b12000100000/1;o=1", m[xctc.Header]; want != have {
		t.Errorf("header want %q, have %q", want, have)
	}
}
