// Package source acquires raw patch text for the viewer: from a file, from
// standard input, or derived from a git repository.
package source

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Source produces the raw unified-diff text the viewer parses. Load may be
// called again to pick up external changes; sources that cannot observe
// changes return nil from WatchPaths.
type Source interface {
	Load() (string, error)
	// Describe returns a short label for window titles and status lines.
	Describe() string
	// WatchPaths lists filesystem paths to watch for auto-reload.
	WatchPaths() []string
}

// FileSource reads a patch file from disk.
type FileSource struct {
	Path string
}

func (s FileSource) Load() (string, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return "", fmt.Errorf("read patch: %w", err)
	}
	return string(data), nil
}

func (s FileSource) Describe() string { return s.Path }

// WatchPaths watches the containing directory so editors that replace the
// file by rename are still observed.
func (s FileSource) WatchPaths() []string {
	return []string{filepath.Dir(s.Path)}
}

// StdinSource holds patch text read once from a stream; reloads return the
// same text.
type StdinSource struct {
	text string
}

// ReadStdin drains r (normally os.Stdin) into a StdinSource.
func ReadStdin(r io.Reader) (*StdinSource, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return &StdinSource{text: string(data)}, nil
}

func (s *StdinSource) Load() (string, error) { return s.text, nil }

func (s *StdinSource) Describe() string { return "stdin" }

func (s *StdinSource) WatchPaths() []string { return nil }
