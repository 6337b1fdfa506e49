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
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sys/unix"

	"github.com/srediag/fdio/pkg/socket"
)

// Instrumentation wraps connection-establishing socket operations in OTel
// spans and counters. The library itself stays synchronous and
// instrumentation-free; embeddings that want telemetry route connects and
// accepts through here.
type Instrumentation struct {
	tracer   trace.Tracer
	connects metric.Int64Counter
	accepts  metric.Int64Counter
}

// NewInstrumentation builds instrumentation on the given meter and tracer.
func NewInstrumentation(m metric.Meter, t trace.Tracer) (*Instrumentation, error) {
	connects, err := m.Int64Counter("fdio.connects",
		metric.WithDescription("Connect attempts through the instrumentation adapter."))
	if err != nil {
		return nil, err
	}
	accepts, err := m.Int64Counter("fdio.accepts",
		metric.WithDescription("Accepted connections through the instrumentation adapter."))
	if err != nil {
		return nil, err
	}
	return &Instrumentation{tracer: t, connects: connects, accepts: accepts}, nil
}

// Connect performs s.Connect(addr) inside a span and counts the attempt.
func (i *Instrumentation) Connect(ctx context.Context, s *socket.Socket, addr unix.Sockaddr) error {
	ctx, span := i.tracer.Start(ctx, "socket.connect",
		trace.WithAttributes(attribute.Int("fd", s.FDNum())))
	defer span.End()

	err := s.Connect(addr)
	i.connects.Add(ctx, 1, metric.WithAttributes(attribute.Bool("ok", err == nil)))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
	}
	return err
}

// Accept performs l.Accept() inside a span and counts the connection.
func (i *Instrumentation) Accept(ctx context.Context, l *socket.TCPSocket) (*socket.TCPSocket, error) {
	ctx, span := i.tracer.Start(ctx, "socket.accept",
		trace.WithAttributes(attribute.Int("fd", l.FDNum())))
	defer span.End()

	conn, err := l.Accept()
	i.accepts.Add(ctx, 1, metric.WithAttributes(attribute.Bool("ok", err == nil)))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
		return nil, err
	}
	return conn, nil
}
