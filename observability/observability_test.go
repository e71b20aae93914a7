package observability

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func installTracer(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prev)
	})
	return exporter
}

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.ServiceName != "einvoice" {
		t.Errorf("expected service name einvoice, got %q", cfg.ServiceName)
	}
	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("expected default endpoint, got %q", cfg.Endpoint)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("expected sample rate 1.0, got %v", cfg.SampleRate)
	}
	if cfg.MetricInterval != 15*time.Second {
		t.Errorf("expected 15s interval, got %v", cfg.MetricInterval)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"disabled", Config{}, false},
		{"enabled with endpoint", Config{Enabled: true, Endpoint: "otel:4318", SampleRate: 0.5}, false},
		{"enabled without endpoint", Config{Enabled: true}, true},
		{"sample rate too high", Config{SampleRate: 1.5}, true},
		{"sample rate negative", Config{SampleRate: -0.1}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestInitDisabledIsNoop(t *testing.T) {
	shutdown, err := Init(context.Background(), Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if shutdown == nil {
		t.Fatal("expected non-nil shutdown func")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown should succeed: %v", err)
	}
}

func TestInitRejectsInvalidConfig(t *testing.T) {
	if _, err := Init(context.Background(), Config{SampleRate: 2}); err == nil {
		t.Fatal("expected error for invalid sample rate")
	}
}

func TestStartSpanRecordsAttributes(t *testing.T) {
	exporter := installTracer(t)

	ctx, span := StartSpan(context.Background(), "gateway.get")
	SetSpanAttribute(ctx, AttrHTTPPath, "/general/Credits")
	SetSpanAttribute(ctx, AttrHTTPStatus, 200)
	SetSpanAttribute(ctx, "int64-key", int64(100))
	SetSpanAttribute(ctx, "float-key", 3.14)
	SetSpanAttribute(ctx, "bool-key", true)
	SetSpanAttribute(ctx, "slice-key", []string{"a", "b"})
	SetSpanAttribute(ctx, "unsupported-key", struct{}{})
	span.End()

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Name != "gateway.get" {
		t.Errorf("expected span name gateway.get, got %q", spans[0].Name)
	}
	attrs := map[string]string{}
	for _, kv := range spans[0].Attributes {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	if attrs[AttrHTTPPath] != "/general/Credits" {
		t.Errorf("missing path attribute, got %v", attrs)
	}
	if attrs[AttrHTTPStatus] != "200" {
		t.Errorf("missing status attribute, got %v", attrs)
	}
	if _, ok := attrs["unsupported-key"]; ok {
		t.Error("unsupported attribute types should be ignored")
	}
}

func TestSetSpanError(t *testing.T) {
	exporter := installTracer(t)

	ctx, span := StartSpan(context.Background(), "gateway.post")
	SetSpanError(ctx, fmt.Errorf("HTTP 400: bad"))
	SetSpanError(ctx, nil)
	span.End()

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Status.Code != codes.Error {
		t.Errorf("expected error status, got %v", spans[0].Status.Code)
	}
	if len(spans[0].Events) != 1 {
		t.Errorf("expected one recorded error event, got %d", len(spans[0].Events))
	}
}

func TestSpanHelpersWithoutSpan(t *testing.T) {
	ctx := context.Background()
	SetSpanAttribute(ctx, "key", "value")
	SetSpanError(ctx, fmt.Errorf("no span error"))
	if SpanFromContext(ctx) == nil {
		t.Fatal("expected non-nil noop span")
	}
}

func TestGatewayMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background())

	m, err := NewGatewayMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := context.Background()
	m.RecordRequest(ctx, "nes", "get", 200, 120*time.Millisecond)
	m.RecordRequest(ctx, "nes", "get", 404, 80*time.Millisecond)
	m.RecordError(ctx, "nes", "not_found")

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}

	found := map[string]bool{}
	for _, sm := range rm.ScopeMetrics {
		for _, md := range sm.Metrics {
			found[md.Name] = true
			if md.Name == "gateway.request.total" {
				sum, ok := md.Data.(metricdata.Sum[int64])
				if !ok {
					t.Fatalf("unexpected data type %T", md.Data)
				}
				var total int64
				for _, dp := range sum.DataPoints {
					total += dp.Value
				}
				if total != 2 {
					t.Errorf("expected 2 requests, got %d", total)
				}
			}
		}
	}
	for _, name := range []string{"gateway.request.total", "gateway.request.duration", "gateway.error.total"} {
		if !found[name] {
			t.Errorf("metric %s not recorded", name)
		}
	}
}

func TestNilGatewayMetricsIsSafe(t *testing.T) {
	var m *GatewayMetrics
	m.RecordRequest(context.Background(), "nes", "get", 200, time.Second)
	m.RecordError(context.Background(), "nes", "timeout")
}
