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

package fdio

import "github.com/prometheus/client_golang/prometheus"

// Process-wide I/O metrics. The per-resource counters on FileDescriptor are
// the authoritative diagnostics required by the ownership model; these
// collectors aggregate across all descriptors for scraping.
var (
	readsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fdio_reads_total",
		Help: "Total number of read operations across all descriptors.",
	})
	writesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fdio_writes_total",
		Help: "Total number of write operations across all descriptors.",
	})
	bytesRead = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fdio_read_bytes_total",
		Help: "Total bytes read across all descriptors.",
	})
	bytesWritten = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fdio_written_bytes_total",
		Help: "Total bytes written across all descriptors.",
	})
	descriptorsOpened = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fdio_descriptors_opened_total",
		Help: "Total descriptors wrapped by this package.",
	})
	descriptorsClosed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fdio_descriptors_closed_total",
		Help: "Total descriptors released by this package.",
	})
)

// RegisterMetrics registers the package collectors with reg. Call at most
// once per registry; a typical embedding registers into
// prometheus.DefaultRegisterer at startup.
func RegisterMetrics(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		readsTotal, writesTotal, bytesRead, bytesWritten,
		descriptorsOpened, descriptorsClosed,
	} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
