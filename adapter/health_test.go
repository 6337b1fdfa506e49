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

package adapter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/srediag/fdio/pkg/fdio"
)

func liveStatus(t *testing.T, h http.Handler) int {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/live", nil))
	return rec.Code
}

func TestHealthHandlerHealthy(t *testing.T) {
	h := NewHealthHandler(nil, 1<<20, 1<<20)
	assert.Equal(t, http.StatusOK, liveStatus(t, h))
}

func TestHealthHandlerDescriptorLimit(t *testing.T) {
	var fds [2]int
	require.NoError(t, unix.Pipe(fds[:]))
	r, w := fdio.New(fds[0]), fdio.New(fds[1])
	defer func() { _ = r.Close() }()
	defer func() { _ = w.Close() }()

	h := NewHealthHandler(nil, 0, 1)
	assert.Equal(t, http.StatusServiceUnavailable, liveStatus(t, h))
}

func TestHealthHandlerWithMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	h := NewHealthHandler(reg, 1<<20, 0)
	assert.Equal(t, http.StatusOK, liveStatus(t, h))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}
