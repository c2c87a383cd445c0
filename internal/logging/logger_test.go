// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Level != "info" {
		t.Errorf("expected default level 'info', got '%s'", cfg.Level)
	}
	if cfg.Format != "json" {
		t.Errorf("expected default format 'json', got '%s'", cfg.Format)
	}
	if cfg.Caller {
		t.Error("expected default caller to be false")
	}
	if cfg.NoTimestamp {
		t.Error("expected default config to stamp time")
	}
	if cfg.Service != ServiceName {
		t.Errorf("expected service %q, got %q", ServiceName, cfg.Service)
	}
}

func TestInit(t *testing.T) {
	var buf bytes.Buffer

	Init(Config{Level: "debug", Format: "json", Output: &buf})
	defer Init(DefaultConfig())

	Info().Str("kind", "pokemon").Msg("test message")

	output := buf.String()
	if !strings.Contains(output, "test message") {
		t.Errorf("expected output to contain 'test message', got: %s", output)
	}
	if !strings.Contains(output, `"level":"info"`) {
		t.Errorf("expected output to contain level, got: %s", output)
	}
	if !strings.Contains(output, `"kind":"pokemon"`) {
		t.Errorf("expected output to contain field, got: %s", output)
	}
	if !strings.Contains(output, `"service":"spawnwatch"`) {
		t.Errorf("expected service field, got: %s", output)
	}
	if !strings.Contains(output, `"time":`) {
		t.Errorf("zero-value config should stamp time, got: %s", output)
	}
}

func TestInit_NoTimestampAndService(t *testing.T) {
	var buf bytes.Buffer

	Init(Config{Output: &buf, NoTimestamp: true, Service: "spawnctl"})
	defer Init(DefaultConfig())

	Info().Msg("quiet")

	if strings.Contains(buf.String(), `"time":`) {
		t.Errorf("expected no time field, got: %s", buf.String())
	}
	if !strings.Contains(buf.String(), `"service":"spawnctl"`) {
		t.Errorf("expected overridden service, got: %s", buf.String())
	}
}

func TestInit_ConsoleFormat(t *testing.T) {
	var buf bytes.Buffer

	Init(Config{Level: "info", Format: "console", Output: &buf})
	defer Init(DefaultConfig())

	Warn().Msg("console output")

	if !strings.Contains(buf.String(), "console output") {
		t.Errorf("expected console output, got: %s", buf.String())
	}
	if strings.Contains(buf.String(), `"message"`) {
		t.Errorf("console format should not emit JSON, got: %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"panic", zerolog.PanicLevel},
		{"disabled", zerolog.Disabled},
		{"DEBUG", zerolog.DebugLevel},
		{" warn ", zerolog.WarnLevel},
		{"invalid", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := parseLevel(tt.input); got != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestErr(t *testing.T) {
	var buf bytes.Buffer

	Init(Config{Level: "info", Output: &buf})
	defer Init(DefaultConfig())

	Err(errors.New("store unavailable")).Msg("query failed")

	if !strings.Contains(buf.String(), `"error":"store unavailable"`) {
		t.Errorf("expected error field, got: %s", buf.String())
	}
}

func TestNewTestLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewTestLogger(&buf)
	logger.Info().Msg("captured")

	if !strings.Contains(buf.String(), "captured") {
		t.Errorf("expected captured output, got: %s", buf.String())
	}
}
