package sink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/willibrandon/slingshot/observability"
)

// fileSink writes to a temporary file next to the destination and renames it
// into place on Commit.
type fileSink struct {
	path    string
	tmp     *os.File
	written int64
	done    bool
}

func newFileSink(path string) (*fileSink, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	dir := filepath.Dir(abs)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(abs)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("create output file: %w", err)
	}
	return &fileSink{path: abs, tmp: tmp}, nil
}

func (s *fileSink) Write(p []byte) (int, error) {
	n, err := s.tmp.Write(p)
	s.written += int64(n)
	return n, err
}

func (s *fileSink) Commit(context.Context) error {
	if s.done {
		return nil
	}
	s.done = true

	if err := s.tmp.Close(); err != nil {
		_ = os.Remove(s.tmp.Name())
		return fmt.Errorf("close output file: %w", err)
	}
	if err := os.Chmod(s.tmp.Name(), 0o644); err != nil {
		_ = os.Remove(s.tmp.Name())
		return fmt.Errorf("set output file mode: %w", err)
	}
	if err := os.Rename(s.tmp.Name(), s.path); err != nil {
		_ = os.Remove(s.tmp.Name())
		return fmt.Errorf("move output file into place: %w", err)
	}

	observability.OutputBytesTotal.WithLabelValues(KindFile).Add(float64(s.written))
	return nil
}

func (s *fileSink) Abort() error {
	if s.done {
		return nil
	}
	s.done = true
	_ = s.tmp.Close()
	if err := os.Remove(s.tmp.Name()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *fileSink) Kind() string     { return KindFile }
func (s *fileSink) Location() string { return s.path }
