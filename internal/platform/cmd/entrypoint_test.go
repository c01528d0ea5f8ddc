package cmd

import (
	"context"
	"flag"
	"testing"
)

type entrypointTestConfig struct {
	Port int `env:"GROWLINE_ENTRYPOINT_TEST_PORT" envDefault:"9000"`
}

func TestParseConfigFromArgsFlagOverridesEnv(t *testing.T) {
	t.Setenv("GROWLINE_ENTRYPOINT_TEST_PORT", "9001")

	var cfg entrypointTestConfig
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	if err := ParseConfig(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "port")
	if err := ParseArgs(fs, []string{"-port", "9002"}); err != nil {
		t.Fatalf("parse args: %v", err)
	}

	if cfg.Port != 9002 {
		t.Fatalf("expected flag to win, got %d", cfg.Port)
	}
}

func TestParseConfigRejectsNilTarget(t *testing.T) {
	if err := ParseConfig[entrypointTestConfig](nil); err == nil {
		t.Fatal("expected error for nil config target")
	}
}

func TestParseArgsRejectsNilFlagSet(t *testing.T) {
	if err := ParseArgs(nil, nil); err == nil {
		t.Fatal("expected error for nil flag set")
	}
}

func TestRunWithTelemetryRequiresService(t *testing.T) {
	err := RunWithTelemetry(context.Background(), "  ", func(context.Context) error { return nil })
	if err == nil {
		t.Fatal("expected error for empty service name")
	}
}

func TestRunWithTelemetryRequiresRunFunc(t *testing.T) {
	err := RunWithTelemetry(context.Background(), ServiceProgression, nil)
	if err == nil {
		t.Fatal("expected error for nil run function")
	}
}

func TestRunWithTelemetryPropagatesRunError(t *testing.T) {
	t.Setenv("GROWLINE_OTEL_ENDPOINT", "")

	sentinel := context.DeadlineExceeded
	err := RunWithTelemetry(context.Background(), ServiceProgression, func(context.Context) error {
		return sentinel
	})
	if err != sentinel {
		t.Fatalf("expected sentinel error, got %v", err)
	}
}
