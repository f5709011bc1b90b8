package observability

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/go-news-api/internal/config"
)

// keepGlobals restores the global provider and propagator after t.
func keepGlobals(t *testing.T) {
	t.Helper()
	tp, prop := otel.GetTracerProvider(), otel.GetTextMapPropagator()
	t.Cleanup(func() {
		otel.SetTracerProvider(tp)
		otel.SetTextMapPropagator(prop)
	})
}

// quickShutdown bounds the final flush; there is no collector listening.
func quickShutdown(shutdown Shutdown) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_ = shutdown(ctx)
}

func enabled(name string) config.OTELConfig {
	return config.OTELConfig{
		Enabled:     true,
		Insecure:    true,
		Endpoint:    "localhost:4317",
		ServiceName: name,
		SampleRatio: 1,
	}
}

func TestSetupOTel_Disabled(t *testing.T) {
	keepGlobals(t)
	before := otel.GetTracerProvider()

	cfg := enabled("news")
	cfg.Enabled = false
	shutdown, err := SetupOTel(context.Background(), cfg, "v0")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("no-op shutdown returned %v", err)
	}
	if otel.GetTracerProvider() != before {
		t.Fatalf("disabled tracing must not replace the global provider")
	}
}

func TestSetupOTel_InstallsProvider(t *testing.T) {
	cases := []struct {
		name string
		cfg  func() config.OTELConfig
		ctx  func() context.Context
	}{
		{"insecure", func() config.OTELConfig { return enabled("news-insecure") }, context.Background},
		{"tls", func() config.OTELConfig {
			c := enabled("news-tls")
			c.Insecure = false
			return c
		}, context.Background},
		{"with environment", func() config.OTELConfig {
			c := enabled("news-env")
			c.Environment = "staging"
			return c
		}, context.Background},
		// The gRPC client dials lazily, so a canceled context still succeeds.
		{"canceled context", func() config.OTELConfig { return enabled("news-canceled") }, func() context.Context {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			return ctx
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			keepGlobals(t)

			shutdown, err := SetupOTel(tc.ctx(), tc.cfg(), "v1.2.3")
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			defer quickShutdown(shutdown)

			if _, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider); !ok {
				t.Fatalf("expected *sdktrace.TracerProvider, got %T", otel.GetTracerProvider())
			}
			_, span := otel.Tracer("test").Start(context.Background(), "op", trace.WithSpanKind(trace.SpanKindInternal))
			if !span.SpanContext().IsSampled() {
				t.Fatalf("ratio 1 must sample every root span")
			}
			span.End()
		})
	}
}

func TestSetupOTel_PropagatesTraceContext(t *testing.T) {
	keepGlobals(t)

	shutdown, err := SetupOTel(context.Background(), enabled("news-prop"), "v1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	defer quickShutdown(shutdown)

	prop := otel.GetTextMapPropagator()
	carrier := propagation.MapCarrier{}
	ctx, span := otel.Tracer("test").Start(context.Background(), "span")
	span.End()
	prop.Inject(ctx, carrier)
	if carrier.Get("traceparent") == "" {
		t.Fatalf("expected traceparent to be injected, got %v", carrier)
	}
	got := trace.SpanContextFromContext(prop.Extract(context.Background(), carrier))
	if got.TraceID() != span.SpanContext().TraceID() {
		t.Fatalf("extracted trace id %s; want %s", got.TraceID(), span.SpanContext().TraceID())
	}
}

func TestSetupOTel_FailuresLeaveGlobalsIntact(t *testing.T) {
	cases := []struct {
		name    string
		install func(t *testing.T)
		want    string
	}{
		{
			name: "exporter",
			install: func(t *testing.T) {
				orig := newOTLPExporterFn
				t.Cleanup(func() { newOTLPExporterFn = orig })
				newOTLPExporterFn = func(context.Context, otlptrace.Client) (*otlptrace.Exporter, error) {
					return nil, errors.New("boom-exporter")
				}
			},
			want: "otlp exporter: boom-exporter",
		},
		{
			name: "resource",
			install: func(t *testing.T) {
				orig := newServiceResourceFn
				t.Cleanup(func() { newServiceResourceFn = orig })
				newServiceResourceFn = func(context.Context, config.OTELConfig, string) (*resource.Resource, error) {
					return nil, errors.New("boom-resource")
				}
			},
			want: "otel resource: boom-resource",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			keepGlobals(t)
			tc.install(t)
			tp, prop := otel.GetTracerProvider(), otel.GetTextMapPropagator()

			_, err := SetupOTel(context.Background(), enabled("news"), "v0")
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err = %v; want %q", err, tc.want)
			}
			if otel.GetTracerProvider() != tp || otel.GetTextMapPropagator() != prop {
				t.Fatalf("globals changed on failure")
			}
		})
	}
}

func TestShutdown_FlushesWithinDeadline(t *testing.T) {
	keepGlobals(t)

	shutdown, err := SetupOTel(context.Background(), enabled("news-shutdown"), "v1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 250*time.Millisecond)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		t.Fatalf("shutdown returned error: %v", err)
	}
}

func TestServiceAttributes(t *testing.T) {
	attrs := serviceAttributes(config.OTELConfig{ServiceName: "news"}, "v1")
	if len(attrs) != 2 {
		t.Fatalf("without environment want 2 attributes, got %v", attrs)
	}

	attrs = serviceAttributes(config.OTELConfig{ServiceName: "news", Environment: "staging"}, "v1")
	got := map[string]string{}
	for _, kv := range attrs {
		got[string(kv.Key)] = kv.Value.AsString()
	}
	if got[string(semconv.ServiceNameKey)] != "news" ||
		got[string(semconv.ServiceVersionKey)] != "v1" ||
		got[string(semconv.DeploymentEnvironmentKey)] != "staging" {
		t.Fatalf("unexpected attributes: %v", got)
	}
}
