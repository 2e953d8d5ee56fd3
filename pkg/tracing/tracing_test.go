package tracing

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"propertyhub/config"

	"go.opentelemetry.io/otel"
)

func TestInitDisabledIsNoop(t *testing.T) {
	shutdown, err := Init(context.Background(), config.AppConfig{Name: "propertyhub"}, config.TracingConfig{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown() = %v", err)
	}
}

func TestInitExportsSpans(t *testing.T) {
	var buf bytes.Buffer
	shutdown, err := Init(context.Background(),
		config.AppConfig{Name: "propertyhub", Version: "test", Env: "test"},
		config.TracingConfig{Enabled: true, SampleRatio: 1},
		&buf,
	)
	if err != nil {
		t.Fatal(err)
	}

	_, span := otel.Tracer("test").Start(context.Background(), "cart.add")
	span.End()

	if err := shutdown(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "cart.add") {
		t.Errorf("exported spans missing cart.add: %s", buf.String())
	}
}

func TestInitWithOTLPEndpoint(t *testing.T) {
	// the exporter connects lazily, so no collector is needed until spans flush
	shutdown, err := Init(context.Background(),
		config.AppConfig{Name: "propertyhub"},
		config.TracingConfig{
			Enabled:      true,
			SampleRatio:  1,
			OTLPEndpoint: "localhost:4318",
			OTLPInsecure: true,
			OTLPHeaders:  map[string]string{"x-tenant": "dev"},
		},
		nil,
	)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		t.Errorf("shutdown() = %v", err)
	}
}

func TestClampRatio(t *testing.T) {
	for in, want := range map[float64]float64{-1: 0, 0.5: 0.5, 3: 1} {
		if got := clampRatio(in); got != want {
			t.Errorf("clampRatio(%v) = %v, want %v", in, got, want)
		}
	}
}
