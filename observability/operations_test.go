package observability

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"
)

func setupTestTracing(t *testing.T) context.Context {
	t.Helper()
	ctx := context.Background()
	tp, err := SetupTracing(ctx, DefaultTracerConfig())
	if err != nil {
		t.Fatalf("SetupTracing() failed: %v", err)
	}
	t.Cleanup(func() {
		if err := ShutdownTracing(ctx, tp); err != nil {
			t.Errorf("ShutdownTracing() failed: %v", err)
		}
	})
	return ctx
}

func TestStartSolutionReadSpan(t *testing.T) {
	ctx := setupTestTracing(t)

	_, span := StartSolutionReadSpan(ctx, "/src/Sample.sln")
	defer span.End()

	if !span.SpanContext().IsValid() {
		t.Error("Span context should be valid")
	}
}

func TestStartProjectReadSpan_IsChild(t *testing.T) {
	ctx := setupTestTracing(t)

	ctx, parent := StartSolutionReadSpan(ctx, "/src/Sample.sln")
	defer parent.End()

	_, child := StartProjectReadSpan(ctx, "Core", "Core/Core.csproj")
	defer child.End()

	if child.SpanContext().TraceID() != parent.SpanContext().TraceID() {
		t.Error("project span should share the solution span's trace")
	}
}

func TestStartGenerateSpan(t *testing.T) {
	ctx := setupTestTracing(t)

	ctx, span := StartGenerateSpan(ctx, "nant", "/src/Sample.sln", "-")
	RecordProjectCount(ctx, 3)
	EndSpanWithError(span, nil)
}

func TestEndSpanWithError(t *testing.T) {
	ctx := setupTestTracing(t)

	_, span := StartSolutionReadSpan(ctx, "/src/Broken.sln")
	EndSpanWithError(span, errors.New("invalid header"))

	_, span = StartSolutionReadSpan(ctx, "/src/Sample.sln")
	EndSpanWithError(span, nil)
}

func TestAttributeKeys(t *testing.T) {
	tests := []struct {
		name     string
		key      attribute.Key
		expected string
	}{
		{"SolutionPath", AttrSolutionPath, "slingshot.solution.path"},
		{"ProjectName", AttrProjectName, "slingshot.project.name"},
		{"ProjectPath", AttrProjectPath, "slingshot.project.path"},
		{"Format", AttrFormat, "slingshot.format"},
		{"Output", AttrOutput, "slingshot.output"},
		{"Operation", AttrOperation, "slingshot.operation"},
		{"ProjectCount", AttrProjectCount, "slingshot.project.count"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if string(tt.key) != tt.expected {
				t.Errorf("%s = %q, want %q", tt.name, string(tt.key), tt.expected)
			}
		})
	}
}
