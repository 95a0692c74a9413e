// Copyright 2026 The recordjson Authors
// SPDX-License-Identifier: Apache-2.0

package sink

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Stdout is the destination name that means standard output.
const Stdout = "-"

// Sink is a resolved output destination.
type Sink struct {
	// Path is the file to write, or "" for the stream.
	Path string

	// Compression is applied before writing.
	Compression Compression

	stream io.Writer
}

// New returns a sink for path. An empty path or [Stdout] writes to
// stream; anything else names a file that is replaced atomically.
func New(path string, compression Compression, stream io.Writer) *Sink {
	if path == Stdout {
		path = ""
	}
	return &Sink{Path: path, Compression: compression, stream: stream}
}

// Write compresses data and delivers it.
func (s *Sink) Write(data []byte) error {
	encoded, err := Compress(data, s.Compression)
	if err != nil {
		return err
	}
	if s.Path == "" {
		if _, err := s.stream.Write(encoded); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		return nil
	}
	return writeFileAtomic(s.Path, encoded)
}

// Describe names the destination for log messages.
func (s *Sink) Describe() string {
	if s.Path == "" {
		return "stdout"
	}
	return s.Path
}

// writeFileAtomic writes data to a temporary file beside path and
// renames it into place, so readers see either the old file or the
// complete new one.
func writeFileAtomic(path string, data []byte) error {
	temporary, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temporary file for %s: %w", path, err)
	}
	temporaryPath := temporary.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(temporaryPath)
		}
	}()

	if _, err := temporary.Write(data); err != nil {
		temporary.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := temporary.Chmod(0o644); err != nil {
		temporary.Close()
		return fmt.Errorf("setting mode on %s: %w", path, err)
	}
	if err := temporary.Close(); err != nil {
		return fmt.Errorf("closing temporary file for %s: %w", path, err)
	}
	if err := os.Rename(temporaryPath, path); err != nil {
		return fmt.Errorf("renaming output to %s: %w", path, err)
	}

	success = true
	return nil
}

// ReadFile reads path, decompressing it when its suffix names a
// compression format. It also returns the path with the compression
// suffix removed, so callers can detect the content format from it.
func ReadFile(path string) ([]byte, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	compression, inner := CompressionFromPath(path)
	decoded, err := Decompress(data, compression)
	if err != nil {
		return nil, "", fmt.Errorf("reading %s: %w", path, err)
	}
	return decoded, inner, nil
}
