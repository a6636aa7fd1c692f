package sink

import (
	"bytes"
	"context"
	"io"

	"github.com/willibrandon/slingshot/observability"
)

// stdoutSink holds output in memory and copies it to the writer on Commit.
type stdoutSink struct {
	out io.Writer
	buf bytes.Buffer
}

func newStdoutSink(out io.Writer) *stdoutSink {
	return &stdoutSink{out: out}
}

func (s *stdoutSink) Write(p []byte) (int, error) { return s.buf.Write(p) }

func (s *stdoutSink) Commit(context.Context) error {
	n, err := s.buf.WriteTo(s.out)
	observability.OutputBytesTotal.WithLabelValues(KindStdout).Add(float64(n))
	return err
}

func (s *stdoutSink) Abort() error {
	s.buf.Reset()
	return nil
}

func (s *stdoutSink) Kind() string     { return KindStdout }
func (s *stdoutSink) Location() string { return "stdout" }
