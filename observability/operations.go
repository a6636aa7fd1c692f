package observability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	// TracerName is the tracer name for slingshot operations
	TracerName = "github.com/willibrandon/slingshot"
)

// Common attribute keys
const (
	AttrSolutionPath = attribute.Key("slingshot.solution.path")
	AttrProjectName  = attribute.Key("slingshot.project.name")
	AttrProjectPath  = attribute.Key("slingshot.project.path")
	AttrFormat       = attribute.Key("slingshot.format")
	AttrOutput       = attribute.Key("slingshot.output")
	AttrOperation    = attribute.Key("slingshot.operation")
	AttrProjectCount = attribute.Key("slingshot.project.count")
)

// StartSolutionReadSpan starts a span around parsing a solution manifest
func StartSolutionReadSpan(ctx context.Context, solutionPath string) (context.Context, trace.Span) {
	return StartSpan(ctx, TracerName, "solution.read",
		trace.WithAttributes(
			AttrSolutionPath.String(solutionPath),
			AttrOperation.String("read"),
		),
	)
}

// StartProjectReadSpan starts a span around parsing one project or container file
func StartProjectReadSpan(ctx context.Context, name, relativePath string) (context.Context, trace.Span) {
	return StartSpan(ctx, TracerName, "project.read",
		trace.WithAttributes(
			AttrProjectName.String(name),
			AttrProjectPath.String(relativePath),
		),
	)
}

// StartGenerateSpan starts a span around one full generation run
func StartGenerateSpan(ctx context.Context, format, solutionPath, output string) (context.Context, trace.Span) {
	return StartSpan(ctx, TracerName, "solution.generate",
		trace.WithAttributes(
			AttrFormat.String(format),
			AttrSolutionPath.String(solutionPath),
			AttrOutput.String(output),
			AttrOperation.String("generate"),
		),
	)
}

// RecordProjectCount records the number of registered projects on the current span
func RecordProjectCount(ctx context.Context, n int) {
	SetAttributes(ctx, AttrProjectCount.Int(n))
}

// EndSpanWithError ends a span with an error status
func EndSpanWithError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
