package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/willibrandon/slingshot/cmd/slingshot/config"
	"github.com/willibrandon/slingshot/cmd/slingshot/output"
	"github.com/willibrandon/slingshot/cmd/slingshot/version"
	"github.com/willibrandon/slingshot/observability"
	"github.com/willibrandon/slingshot/solution"
)

// session carries the settings and observability plumbing shared by commands
// that read solutions.
type session struct {
	cfg         *config.Config
	console     *output.Console
	logger      observability.Logger
	cache       *solution.Cache
	tracer      *sdktrace.TracerProvider
	metricsFile string
}

// flagString returns a flag's value, or "" when the command does not carry it.
func flagString(cmd *cobra.Command, name string) string {
	f := cmd.Flags().Lookup(name)
	if f == nil {
		return ""
	}
	return f.Value.String()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func startSession(cmd *cobra.Command, console *output.Console) (*session, error) {
	cfg, err := config.Load(flagString(cmd, "env-file"))
	if err != nil {
		return nil, err
	}

	verbosity, err := output.ParseVerbosity(flagString(cmd, "verbosity"))
	if err != nil {
		return nil, err
	}
	console.SetVerbosity(verbosity)

	level := verbosity.LogLevel()
	if cfg.LogLevel != "" {
		if level, err = observability.ParseLogLevel(cfg.LogLevel); err != nil {
			return nil, fmt.Errorf("%s: %w", config.EnvLogLevel, err)
		}
	}

	cache, err := solution.NewCache(cfg.CacheSize)
	if err != nil {
		return nil, err
	}

	tcfg := observability.DefaultTracerConfig()
	tcfg.ServiceVersion = version.Version
	tcfg.ExporterType = firstNonEmpty(flagString(cmd, "trace-exporter"), cfg.TraceExporter)
	tcfg.OTLPEndpoint = cfg.OTLPEndpoint
	tcfg.Writer = console.Err()
	tp, err := observability.SetupTracing(cmd.Context(), tcfg)
	if err != nil {
		return nil, err
	}

	return &session{
		cfg:         cfg,
		console:     console,
		logger:      observability.NewLogger(console.Err(), level),
		cache:       cache,
		tracer:      tp,
		metricsFile: firstNonEmpty(flagString(cmd, "metrics-file"), cfg.MetricsFile),
	}, nil
}

// Close flushes spans and writes the metrics file when one is configured.
func (s *session) Close(ctx context.Context) error {
	var errs []error
	if s.tracer != nil {
		errs = append(errs, observability.ShutdownTracing(context.WithoutCancel(ctx), s.tracer))
	}
	if s.metricsFile != "" {
		errs = append(errs, observability.WriteMetricsFile(s.metricsFile))
	}
	return errors.Join(errs...)
}

// closeSession closes s, reporting a failure as a warning so the command's own result stands.
func closeSession(ctx context.Context, s *session) {
	if err := s.Close(ctx); err != nil {
		s.console.Warning("%v", err)
	}
}

// resolveSolution validates an explicit path or finds the single solution in the working directory.
func resolveSolution(path string, recursive bool) (string, error) {
	if path != "" {
		if err := solution.ValidateSolutionFile(path); err != nil {
			return "", err
		}
		return path, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	detector := solution.NewDetector(cwd)
	detector.Recursive = recursive
	result, err := detector.DetectSolution()
	if err != nil {
		return "", err
	}
	switch {
	case !result.Found:
		return "", fmt.Errorf("no solution file found in %s; specify one with --sln", cwd)
	case result.Ambiguous:
		return "", fmt.Errorf("multiple solution files found in %s (%s); specify one with --sln",
			cwd, strings.Join(result.FoundFiles, ", "))
	}
	return result.SolutionPath, nil
}

// parseMappings turns uriPrefix=directory pairs into a URI map. Malformed
// entries are reported and skipped.
func parseMappings(console *output.Console, entries []string) solution.URIMap {
	var m solution.URIMap
	for _, e := range entries {
		uri, dir, ok := strings.Cut(e, "=")
		uri, dir = strings.TrimSpace(uri), strings.TrimSpace(dir)
		if !ok || uri == "" || dir == "" {
			console.Warning("ignoring URI mapping %q, expected uri=directory", e)
			continue
		}
		m.Add(uri, dir)
	}
	return m
}
