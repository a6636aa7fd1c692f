// Package sink delivers generated build descriptions to stdout, a local file or
// an S3-compatible object store. Output is buffered or staged until Commit so a
// failed generation never leaves a partial result behind.
package sink

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
)

// Kinds of sink, also used as the metrics label
const (
	KindStdout = "stdout"
	KindFile   = "file"
	KindS3     = "s3"
)

// Sink receives generated output. Nothing is visible at the destination until
// Commit succeeds; Abort discards whatever was written.
type Sink interface {
	io.Writer

	// Commit publishes the output
	Commit(ctx context.Context) error

	// Abort discards the output; it is safe to call after Commit
	Abort() error

	// Kind returns one of KindStdout, KindFile, KindS3
	Kind() string

	// Location describes the destination for logs and messages
	Location() string
}

// Options configures the destinations Open can create.
type Options struct {
	// Stdout receives "-" output, os.Stdout when nil
	Stdout io.Writer

	// S3 configures s3:// targets
	S3 S3Config
}

// Target is a parsed output destination.
type Target struct {
	Kind   string
	Path   string // local path for KindFile
	Bucket string // for KindS3
	Key    string // for KindS3
}

// ParseTarget classifies an output destination: "" or "-" is stdout,
// "s3://bucket/key" an object, anything else a local path.
func ParseTarget(target string) (Target, error) {
	target = strings.TrimSpace(target)
	if target == "" || target == "-" {
		return Target{Kind: KindStdout}, nil
	}

	if strings.HasPrefix(strings.ToLower(target), "s3://") {
		u, err := url.Parse(target)
		if err != nil {
			return Target{}, fmt.Errorf("invalid s3 target %q: %w", target, err)
		}
		key := strings.TrimLeft(u.Path, "/")
		if u.Host == "" || key == "" {
			return Target{}, fmt.Errorf("invalid s3 target %q: want s3://bucket/key", target)
		}
		return Target{Kind: KindS3, Bucket: u.Host, Key: key}, nil
	}

	return Target{Kind: KindFile, Path: target}, nil
}

// Open creates the sink for target.
func Open(ctx context.Context, target string, opts Options) (Sink, error) {
	t, err := ParseTarget(target)
	if err != nil {
		return nil, err
	}

	switch t.Kind {
	case KindStdout:
		out := opts.Stdout
		if out == nil {
			out = os.Stdout
		}
		return newStdoutSink(out), nil
	case KindS3:
		return newS3Sink(ctx, opts.S3, t.Bucket, t.Key)
	default:
		return newFileSink(t.Path)
	}
}
