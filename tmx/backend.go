package tmx

import (
	"io"
	"os"
	"path/filepath"
)

// Backend is the I/O surface the host environment supplies: canonical-path
// resolution, reference-path joining and byte-stream opening. The engine
// calls it synchronously and assumes the underlying data is not mutated
// mid-load.
type Backend interface {
	// Canonicalize turns any path into the absolute, unique form used as
	// the cache key.
	Canonicalize(path string) (string, error)

	// Join resolves a reference found in the document at base against
	// base's location.
	Join(base, ref string) string

	// Open opens the byte stream at a canonical path.
	Open(canonical string) (io.ReadCloser, error)
}

// OSBackend reads from the local filesystem.
type OSBackend struct{}

func (OSBackend) Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.Clean(abs), nil
}

func (OSBackend) Join(base, ref string) string {
	if filepath.IsAbs(ref) {
		return ref
	}
	return filepath.Join(filepath.Dir(base), ref)
}

func (OSBackend) Open(canonical string) (io.ReadCloser, error) {
	return os.Open(canonical)
}
