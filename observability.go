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

package catzilla

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"rivaas.dev/tracing"

	"github.com/rezwanahmedsami/catzilla-sub000/router"
)

// Observability is the default router.Recorder App wires in: a span per
// request via rivaas.dev/tracing's Config.GetTracer, started in
// OnRequestStart and ended in OnRequestEnd, plus a
// request-count/duration pair of Prometheus instruments built directly on
// github.com/prometheus/client_golang, reshaped down from a dozen
// built-in instruments to the two names request volume and latency
// actually call for.
type Observability struct {
	tracer   trace.Tracer
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// ObservabilityOption configures an Observability at construction time.
type ObservabilityOption func(*observabilityConfig)

type observabilityConfig struct {
	tracingOpts []tracing.Option
	registry    *prometheus.Registry
}

// WithTracingOptions passes options through to the underlying
// rivaas.dev/tracing.Config (service name, sampling rate, exporter choice).
func WithTracingOptions(opts ...tracing.Option) ObservabilityOption {
	return func(c *observabilityConfig) { c.tracingOpts = append(c.tracingOpts, opts...) }
}

// WithPrometheusRegistry supplies the *prometheus.Registry the request
// instruments register against, instead of a fresh private one.
func WithPrometheusRegistry(reg *prometheus.Registry) ObservabilityOption {
	return func(c *observabilityConfig) { c.registry = reg }
}

// NewObservability builds an Observability backed by rivaas.dev/tracing and
// a dedicated Prometheus registry (so embedding applications can mount
// MetricsHandler wherever they like, without colliding with their own
// default registry's metric names).
func NewObservability(opts ...ObservabilityOption) (*Observability, error) {
	cfg := &observabilityConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	tracingCfg, err := tracing.New(cfg.tracingOpts...)
	if err != nil {
		return nil, err
	}

	registry := cfg.registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catzilla_http_requests_total",
		Help: "Total HTTP requests handled, labeled by method, route pattern, and status.",
	}, []string{"method", "pattern", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catzilla_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds, labeled by method and route pattern.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "pattern"})
	registry.MustRegister(requests, duration)

	return &Observability{
		tracer:   tracingCfg.GetTracer(),
		registry: registry,
		requests: requests,
		duration: duration,
	}, nil
}

// MetricsHandler exposes the Prometheus registry's scrape endpoint. App
// does not mount this automatically; embedding applications register it
// on whatever path/server they already run.
func (o *Observability) MetricsHandler() http.Handler {
	return promhttp.HandlerFor(o.registry, promhttp.HandlerOpts{Registry: o.registry})
}

// OnRequestStart implements router.Recorder: it starts a span for the
// in-flight request and returns the context the span is bound to, so
// OnRequestEnd can recover it via trace.SpanFromContext.
func (o *Observability) OnRequestStart(ctx context.Context, req *http.Request) context.Context {
	ctx, _ = o.tracer.Start(ctx, req.Method+" "+req.URL.Path,
		trace.WithSpanKind(trace.SpanKindServer),
	)
	return ctx
}

// OnRequestEnd implements router.Recorder: it finishes the span started by
// OnRequestStart and records the request-count/duration instruments.
func (o *Observability) OnRequestEnd(ctx context.Context, req *http.Request, pattern string, status int, _ int, dur time.Duration) {
	span := trace.SpanFromContext(ctx)
	if status >= http.StatusInternalServerError {
		span.SetStatus(codes.Error, http.StatusText(status))
	}
	span.End()

	statusLabel := strconv.Itoa(status)
	o.requests.WithLabelValues(req.Method, pattern, statusLabel).Inc()
	o.duration.WithLabelValues(req.Method, pattern).Observe(dur.Seconds())
}

var _ router.Recorder = (*Observability)(nil)
