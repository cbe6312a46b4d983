// Copyright 2025 The Rivaas Authors
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

package webmachine

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	promclient "github.com/prometheus/client_golang/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// ObservabilityProvider is the otel SDK pipeline backing the spans
// Dispatcher.Dispatch opens and an additional otel-native counter recorded
// alongside Dispatcher.Metrics. It pairs a stdout-exported TracerProvider
// with a Prometheus-exported MeterProvider, the same two-provider shape the
// teacher repo's tracing and metrics submodules each build around a single
// exporter choice.
type ObservabilityProvider struct {
	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider

	requestCounter metric.Int64Counter

	// Registry is the Prometheus registry the meter provider's exporter
	// feeds. Serve it (e.g. with promhttp.HandlerFor) to expose
	// webmachine_requests_total_otel alongside Metrics' own collectors.
	Registry *promclient.Registry
}

// NewObservabilityProvider builds an ObservabilityProvider for serviceName,
// registers its tracer provider as the process-global otel tracer provider
// (so the package-level tracer in dispatcher.go actually exports spans
// instead of talking to a no-op), and returns it ready for
// Dispatcher.Observability. The meter provider is not registered globally.
func NewObservabilityProvider(serviceName string) (*ObservabilityProvider, error) {
	res := sdkresource.NewSchemaless(attribute.String("service.name", serviceName))

	traceExporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, fmt.Errorf("webmachine: building stdout trace exporter: %w", err)
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
	)

	registry := promclient.NewRegistry()
	metricExporter, err := prometheus.New(prometheus.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("webmachine: building prometheus metric exporter: %w", err)
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(metricExporter),
		sdkmetric.WithResource(res),
	)

	meter := mp.Meter("github.com/angular-rust/ux-webmachine")
	requestCounter, err := meter.Int64Counter(
		"webmachine_requests_total_otel",
		metric.WithDescription("Requests dispatched to a resource, recorded through the otel SDK pipeline."),
	)
	if err != nil {
		return nil, fmt.Errorf("webmachine: building request counter instrument: %w", err)
	}

	otel.SetTracerProvider(tp)

	return &ObservabilityProvider{
		tracerProvider: tp,
		meterProvider:  mp,
		requestCounter: requestCounter,
		Registry:       registry,
	}, nil
}

// recordRequest increments the otel request counter for route/status. A nil
// receiver is a no-op, matching Metrics.observe's own nil tolerance.
func (o *ObservabilityProvider) recordRequest(ctx context.Context, route string, status int) {
	if o == nil {
		return
	}
	o.requestCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("route", route),
		attribute.Int("status", status),
	))
}

// Shutdown flushes and stops both providers, forwarding ctx for the
// deadline/cancellation each provider's own Shutdown honors.
func (o *ObservabilityProvider) Shutdown(ctx context.Context) error {
	if o == nil {
		return nil
	}
	if err := o.tracerProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("webmachine: shutting down tracer provider: %w", err)
	}
	if err := o.meterProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("webmachine: shutting down meter provider: %w", err)
	}
	return nil
}
