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
Package log implements a reporter to send spans in JSON format to a
structured logger.
*/
package log

import (
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/opencloudtrace/cloudtrace-go/model"
	"github.com/opencloudtrace/cloudtrace-go/reporter"
)

// logReporter will send spans to the configured logrus Logger.
type logReporter struct {
	logger *logrus.Logger
	level  logrus.Level
}

// ReporterOption sets a parameter for the logReporter.
type ReporterOption func(r *logReporter)

// Logger sets the logger used to write span batches. The standard logrus
// logger is used if not set.
func Logger(logger *logrus.Logger) ReporterOption {
	return func(r *logReporter) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Level sets the level span batches are logged at. Default: info.
func Level(level logrus.Level) ReporterOption {
	return func(r *logReporter) {
		r.level = level
	}
}

// NewReporter returns a new log reporter.
func NewReporter(options ...ReporterOption) reporter.Reporter {
	r := &logReporter{
		logger: logrus.StandardLogger(),
		level:  logrus.InfoLevel,
	}
	for _, option := range options {
		option(r)
	}
	return r
}

// Send outputs a span to the logger.
func (r *logReporter) Send(s model.SpanModel) {
	// collectors expect the payload to be wrapped in an array
	b, err := json.Marshal([]model.SpanModel{s})
	if err != nil {
		r.logger.WithError(err).Warn("unable to marshal span")
		return
	}
	r.logger.WithFields(logrus.Fields{
		"traceId": s.TraceID.ToHex(),
		"spanId":  s.ID.String(),
	}).Log(r.level, string(b))
}

// Close closes the reporter.
func (*logReporter) Close() error { return nil }
