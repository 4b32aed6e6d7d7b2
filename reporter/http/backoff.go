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

package http

import (
	"math/rand"
	"time"
)

const (
	minDelay = 1 * time.Second
	maxDelay = 120 * time.Second
	factor   = 1.6
	jitter   = 0.2
)

// backoff returns the delay to wait before retry attempt number retries,
// growing exponentially with a random jitter applied so that restarting
// reporters do not synchronize their send storms.
func backoff(retries uint) time.Duration {
	if retries == 0 {
		return minDelay
	}

	min, max := float64(minDelay), float64(maxDelay)
	delay := min
	for delay < max && retries > 0 {
		delay *= factor
		retries--
	}
	if delay > max {
		delay = max
	}

	delay *= 1 + jitter*(rand.Float64()*2-1)
	if delay < min {
		delay = min
	}
	return time.Duration(delay)
}
