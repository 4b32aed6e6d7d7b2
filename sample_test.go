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
	"math"
	"math/rand"
	"testing"
	"time"
)

func TestAlwaysSampler(t *testing.T) {
	for _, id := range []uint64{0, 1, math.MaxUint64} {
		if !AlwaysSample(id) {
			t.Errorf("expected AlwaysSample to sample id %d", id)
		}
	}
}

func TestNeverSampler(t *testing.T) {
	for _, id := range []uint64{0, 1, math.MaxUint64} {
		if NeverSample(id) {
			t.Errorf("expected NeverSample to drop id %d", id)
		}
	}
}

func TestModuloSampler(t *testing.T) {
	const mod = 4
	sampler := NewModuloSampler(mod)
	for i := uint64(0); i < 100; i++ {
		if want, have := i%mod == 0, sampler(i); want != have {
			t.Errorf("id %d: expected sampled %t, got %t", i, want, have)
		}
	}

	// mod < 2 samples everything
	all := NewModuloSampler(1)
	for i := uint64(0); i < 10; i++ {
		if !all(i) {
			t.Errorf("expected mod 1 sampler to sample id %d", i)
		}
	}
}

func TestBoundarySampler(t *testing.T) {
	type triple struct {
		id   uint64
		salt int64
		rate float64
	}
	for input, sampled := range map[triple]bool{
		{123, 456, 1.0}: true,
		{123, 456, 0.0}: false,
		{99, 0, 0.01}:   true,
		{9999, 0, 0.01}: false,
	} {
		sampler, err := NewBoundarySampler(input.rate, input.salt)
		if err != nil {
			t.Fatalf("unexpected error: %+v", err)
		}
		if want, have := sampled, sampler(input.id); want != have {
			t.Errorf("%+v: expected sampled %t, got %t", input, want, have)
		}
	}

	if _, err := NewBoundarySampler(0.00005, 0); err == nil {
		t.Errorf("expected error for out of range rate")
	}
}

func TestCountingSampler(t *testing.T) {
	for _, rate := range []float64{0.01, 0.5, 1.0} {
		sampler, err := NewCountingSampler(rate)
		if err != nil {
			t.Fatalf("rate %f: unexpected error: %+v", rate, err)
		}

		rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
		found := 0
		for i := 0; i < 1000; i++ {
			if sampler(rnd.Uint64()) {
				found++
			}
		}
		if want, have := int(rate*1000), found; want != have {
			t.Errorf("rate %f: expected %d sampled, got %d", rate, want, have)
		}
	}

	if _, err := NewCountingSampler(1.5); err == nil {
		t.Errorf("expected error for out of range rate")
	}
	if _, err := NewCountingSampler(0.0005); err == nil {
		t.Errorf("expected error for out of range rate")
	}
}
