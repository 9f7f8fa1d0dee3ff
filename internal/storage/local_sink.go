package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// LocalSink writes photos to a directory served as static content.
type LocalSink struct {
	dir string
}

func NewLocalSink(dir string) (*LocalSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &LocalSink{dir: dir}, nil
}

func (s *LocalSink) Put(_ context.Context, name string, data []byte, _ string) (string, error) {
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return "/static/uploads/" + name, nil
}
