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

package cloudtrace

import (
	"errors"

	"github.com/opencloudtrace/cloudtrace-go/idgenerator"
	"github.com/opencloudtrace/cloudtrace-go/model"
)

// Tracer Option Errors
var (
	ErrInvalidEndpoint             = errors.New("requires valid local endpoint")
	ErrInvalidExtractFailurePolicy = errors.New("invalid extract failure policy provided")
)

// ExtractFailurePolicy deals with Extraction errors
type ExtractFailurePolicy int

// ExtractFailurePolicyOptions. The default policy restarts the trace on a
// failed extraction, leaving the ambient context untouched and surfacing
// nothing to the instrumentation caller.
const (
	ExtractFailurePolicyRestart ExtractFailurePolicy = iota
	ExtractFailurePolicyError
	ExtractFailurePolicyTagAndRestart
)

// TracerOptions for a Tracer instance.
type TracerOptions struct {
	defaultTags          map[string]string
	extractFailurePolicy ExtractFailurePolicy
	sampler              Sampler
	generate             idgenerator.IDGenerator
	localEndpoint        *model.Endpoint
	noop                 bool
	sharedSpans          bool
	unsampledNoop        bool
}

// TracerOption allows for functional options to adjust behavior of the
// Tracer to be created with NewTracer().
type TracerOption func(o *TracerOptions) error

// WithLocalEndpoint sets the local endpoint of the tracer.
func WithLocalEndpoint(e *model.Endpoint) TracerOption {
	return func(o *TracerOptions) error {
		if e == nil {
			o.localEndpoint = nil
			return nil
		}
		ep := *e
		o.localEndpoint = &ep
		return nil
	}
}

// WithExtractFailurePolicy allows one to set the ExtractFailurePolicy.
func WithExtractFailurePolicy(p ExtractFailurePolicy) TracerOption {
	return func(o *TracerOptions) error {
		if p < ExtractFailurePolicyRestart || p > ExtractFailurePolicyTagAndRestart {
			return ErrInvalidExtractFailurePolicy
		}
		o.extractFailurePolicy = p
		return nil
	}
}

// WithNoopSpan if set to true will switch to a NoopSpan implementation if
// the trace is not sampled.
func WithNoopSpan(unsampledNoop bool) TracerOption {
	return func(o *TracerOptions) error {
		o.unsampledNoop = unsampledNoop
		return nil
	}
}

// WithIDGenerator allows one to set a custom ID Generator.
func WithIDGenerator(generator idgenerator.IDGenerator) TracerOption {
	return func(o *TracerOptions) error {
		o.generate = generator
		return nil
	}
}

// WithSharedSpans allows to place client-side and server-side annotations
// for a RPC call in the same span or in two separate spans. By default this
// Tracer uses shared host spans (so client-side and server-side in the same
// span).
func WithSharedSpans(val bool) TracerOption {
	return func(o *TracerOptions) error {
		o.sharedSpans = val
		return nil
	}
}

// WithSampler allows one to add a Sampler function.
func WithSampler(sampler Sampler) TracerOption {
	return func(o *TracerOptions) error {
		o.sampler = sampler
		return nil
	}
}

// WithTags allows one to set default tags to be added to each created span.
func WithTags(tags map[string]string) TracerOption {
	return func(o *TracerOptions) error {
		for k, v := range tags {
			o.defaultTags[k] = v
		}
		return nil
	}
}

// WithNoopTracer allows one to start the Tracer as Noop implementation.
func WithNoopTracer(tracerNoop bool) TracerOption {
	return func(o *TracerOptions) error {
		o.noop = tracerNoop
		return nil
	}
}
