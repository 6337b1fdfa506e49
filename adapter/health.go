/*
 * Copyright 2025 SREDiag Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package adapter integrates the descriptor library with external monitoring
// systems: health endpoints and OpenTelemetry instrumentation.
package adapter

import (
	"fmt"

	"github.com/heptiolabs/healthcheck"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/srediag/fdio/internal/proc"
	"github.com/srediag/fdio/pkg/fdio"
)

// NewHealthHandler returns an HTTP health handler with descriptor-usage
// liveness checks. maxProcessFDs bounds the process-wide open-fd count;
// maxOwnedFDs bounds the number of descriptors owned by pkg/fdio. A zero
// bound disables the respective check. When reg is non-nil the handler also
// publishes healthcheck metrics through it.
func NewHealthHandler(reg *prometheus.Registry, maxProcessFDs, maxOwnedFDs int) healthcheck.Handler {
	var h healthcheck.Handler
	if reg != nil {
		h = healthcheck.NewMetricsHandler(reg, "fdio")
	} else {
		h = healthcheck.NewHandler()
	}

	if maxProcessFDs > 0 {
		h.AddLivenessCheck("process-fd-usage", func() error {
			n, err := proc.NumOpenFDs()
			if err != nil {
				return err
			}
			if int(n) > maxProcessFDs {
				return fmt.Errorf("process holds %d fds, limit %d", n, maxProcessFDs)
			}
			return nil
		})
	}

	if maxOwnedFDs > 0 {
		h.AddLivenessCheck("owned-descriptors", func() error {
			if n := fdio.OpenDescriptorCount(); n > maxOwnedFDs {
				return fmt.Errorf("%d descriptors open, limit %d", n, maxOwnedFDs)
			}
			return nil
		})
	}

	return h
}
