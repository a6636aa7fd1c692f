package observability

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestLogger_BasicLogging(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewLogger(buf, DebugLevel)

	log.Info("Test message")

	output := buf.String()
	if !strings.Contains(output, "Test message") {
		t.Errorf("Output missing message: %s", output)
	}
}

func TestLogger_StructuredProperties(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewLogger(buf, InfoLevel)

	log.Info("Project {Project} has {FileCount} files", "Core", 12)

	output := buf.String()
	if !strings.Contains(output, "Core") {
		t.Errorf("Output missing Project: %s", output)
	}
	if !strings.Contains(output, "12") {
		t.Errorf("Output missing FileCount: %s", output)
	}
}

func TestLogger_ForContext(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewLogger(buf, InfoLevel)

	scoped := log.ForContext("Solution", "Sample")
	scoped.Info("Read solution with {ProjectCount} projects", 3)

	output := buf.String()
	if !strings.Contains(output, "3") {
		t.Errorf("Output missing template property: %s", output)
	}
}

func TestLogger_ContextLevels(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewLogger(buf, VerboseLevel)
	ctx := context.Background()

	log.VerboseContext(ctx, "Verbose context message")
	log.DebugContext(ctx, "Debug context message")
	log.InfoContext(ctx, "Info context message")
	log.WarnContext(ctx, "Warn context message")
	log.ErrorContext(ctx, "Error context message")

	output := buf.String()
	for _, want := range []string{"Verbose context", "Debug context", "Info context", "Warn context", "Error context"} {
		if !strings.Contains(output, want) {
			t.Errorf("Output missing %q", want)
		}
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name      string
		level     LogLevel
		logFunc   func(Logger)
		shouldLog bool
	}{
		{"Verbose level logs Verbose", VerboseLevel, func(l Logger) { l.Verbose("msg") }, true},
		{"Debug level blocks Verbose", DebugLevel, func(l Logger) { l.Verbose("msg") }, false},
		{"Info level blocks Debug", InfoLevel, func(l Logger) { l.Debug("msg") }, false},
		{"Warn level blocks Info", WarnLevel, func(l Logger) { l.Info("msg") }, false},
		{"Error level blocks Warn", ErrorLevel, func(l Logger) { l.Warn("msg") }, false},
		{"Warn level allows Error", WarnLevel, func(l Logger) { l.Error("msg") }, true},
		{"Info level allows Warn", InfoLevel, func(l Logger) { l.Warn("msg") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			log := NewLogger(buf, tt.level)

			tt.logFunc(log)

			hasOutput := len(buf.String()) > 0
			if hasOutput != tt.shouldLog {
				t.Errorf("Expected output=%v, got output=%v", tt.shouldLog, hasOutput)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    LogLevel
		wantErr bool
	}{
		{"verbose", VerboseLevel, false},
		{"DEBUG", DebugLevel, false},
		{"", InfoLevel, false},
		{"information", InfoLevel, false},
		{"warning", WarnLevel, false},
		{" error ", ErrorLevel, false},
		{"loud", InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLogLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLogLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNullLogger(t *testing.T) {
	log := NewNullLogger()

	log.Verbose("verbose")
	log.Debug("debug")
	log.Info("info")
	log.Warn("warn")
	log.Error("error")
	log.ErrorContext(context.Background(), "error ctx")

	scoped := log.ForContext("key", "value")
	if scoped != log {
		t.Error("ForContext on the null logger should return itself")
	}
}
