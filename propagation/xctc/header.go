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

package xctc

import (
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/opencloudtrace/cloudtrace-go/model"
)

// value grammar, anchored at both ends:
// 32 lowercase hex trace id, "/", 1-20 digit decimal span id and an
// optional ";o=" suffix carrying a single digit sampling flag.
// See https://cloud.google.com/trace/docs/trace-context#legacy-http-header
const headerPatternStr = `^([0-9a-f]{32})/([0-9]{1,20})(?:;o=([0-9]))?$`

var (
	patternOnce sync.Once
	pattern     *regexp.Regexp
)

func headerPattern() *regexp.Regexp {
	patternOnce.Do(func() {
		pattern = regexp.MustCompile(headerPatternStr)
	})
	return pattern
}

// ParseHeader decodes the value of a X-Cloud-Trace-Context header into a
// SpanContext. Surrounding whitespace is trimmed before matching; the rest
// of the value must match the grammar in full.
func ParseHeader(value string) (*model.SpanContext, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, ErrHeaderMissing
	}

	m := headerPattern().FindStringSubmatch(value)
	if m == nil {
		return nil, ErrInvalidHeaderFormat
	}

	traceID, err := model.TraceIDFromHex(m[1])
	if err != nil {
		// unreachable for values accepted by the grammar, kept as a guard
		return nil, ErrInvalidTraceIDValue
	}

	spanID, err := strconv.ParseUint(m[2], 10, 64)
	if err != nil {
		// a 20 digit value can still overflow 64 bits
		return nil, ErrInvalidSpanIDValue
	}

	// absent options default to sampled, only an explicit o=0 opts out
	sampled := m[3] != "0"

	sc := &model.SpanContext{
		TraceID: traceID,
		ID:      model.ID(spanID),
		Sampled: &sampled,
	}

	if !sc.Valid() {
		return nil, ErrInvalidContext
	}

	return sc, nil
}

// BuildHeader encodes a SpanContext into a X-Cloud-Trace-Context header
// value. It returns the empty string for contexts that would not survive a
// round-trip through ParseHeader, so callers never emit a header carrying
// zero valued identifiers. The sampling flag is normalized to 0 or 1.
func BuildHeader(sc model.SpanContext) string {
	if !sc.Valid() {
		return ""
	}

	flag := "0"
	if sc.Debug || (sc.Sampled != nil && *sc.Sampled) {
		flag = "1"
	}

	return sc.TraceID.ToHex() + "/" +
		strconv.FormatUint(uint64(sc.ID), 10) + ";o=" + flag
}
