// Package config loads slingshot settings from an optional .env file and
// SLINGSHOT_* environment variables. Command-line flags override both.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/willibrandon/slingshot/sink"
	"github.com/willibrandon/slingshot/solution"
)

// Environment variable names
const (
	EnvFormat        = "SLINGSHOT_FORMAT"
	EnvOutput        = "SLINGSHOT_OUTPUT"
	EnvLogLevel      = "SLINGSHOT_LOG_LEVEL"
	EnvTraceExporter = "SLINGSHOT_TRACE_EXPORTER"
	EnvOTLPEndpoint  = "SLINGSHOT_OTLP_ENDPOINT"
	EnvMetricsFile   = "SLINGSHOT_METRICS_FILE"
	EnvCacheSize     = "SLINGSHOT_CACHE_SIZE"
	EnvURIMap        = "SLINGSHOT_URI_MAP"

	EnvS3Endpoint  = "SLINGSHOT_S3_ENDPOINT"
	EnvS3Region    = "SLINGSHOT_S3_REGION"
	EnvS3AccessKey = "SLINGSHOT_S3_ACCESS_KEY"
	EnvS3SecretKey = "SLINGSHOT_S3_SECRET_KEY"
	EnvS3UseSSL    = "SLINGSHOT_S3_USE_SSL"
)

// Config holds settings shared by every command.
type Config struct {
	// Format is the default writer for generate
	Format string

	// Output is the default generate destination ("-" for stdout)
	Output string

	// LogLevel overrides the level derived from --verbosity when set
	LogLevel string

	TraceExporter string
	OTLPEndpoint  string
	MetricsFile   string

	// CacheSize bounds the parsed project document cache
	CacheSize int

	// URIMap holds uriPrefix=directory pairs, separated by ';' in the environment
	URIMap []string

	S3 sink.S3Config
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Format:        "nant",
		Output:        "-",
		TraceExporter: "none",
		OTLPEndpoint:  "localhost:4317",
		CacheSize:     solution.DefaultCacheSize,
		S3: sink.S3Config{
			Region: "us-east-1",
			UseSSL: true,
		},
	}
}

// Load reads envFile (or ./.env when envFile is empty and the file exists)
// into the environment, then builds the configuration from it. Variables
// already set in the environment win over the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	} else if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds the configuration from a variable lookup.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := Default()
	get := func(key string) string { return strings.TrimSpace(getenv(key)) }

	cfg.Format = firstNonEmpty(get(EnvFormat), cfg.Format)
	cfg.Output = firstNonEmpty(get(EnvOutput), cfg.Output)
	cfg.LogLevel = get(EnvLogLevel)
	cfg.TraceExporter = firstNonEmpty(get(EnvTraceExporter), cfg.TraceExporter)
	cfg.OTLPEndpoint = firstNonEmpty(get(EnvOTLPEndpoint), cfg.OTLPEndpoint)
	cfg.MetricsFile = get(EnvMetricsFile)

	if raw := get(EnvCacheSize); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%s must be a positive integer, got %q", EnvCacheSize, raw)
		}
		cfg.CacheSize = n
	}

	for _, m := range strings.Split(get(EnvURIMap), ";") {
		if m = strings.TrimSpace(m); m != "" {
			cfg.URIMap = append(cfg.URIMap, m)
		}
	}

	cfg.S3.Endpoint = get(EnvS3Endpoint)
	cfg.S3.Region = firstNonEmpty(get(EnvS3Region), cfg.S3.Region)
	cfg.S3.AccessKey = firstNonEmpty(get(EnvS3AccessKey), get("MINIO_ROOT_USER"))
	cfg.S3.SecretKey = firstNonEmpty(get(EnvS3SecretKey), get("MINIO_ROOT_PASSWORD"))
	if raw := get(EnvS3UseSSL); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%s must be a boolean, got %q", EnvS3UseSSL, raw)
		}
		cfg.S3.UseSSL = v
	}

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
