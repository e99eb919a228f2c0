// Package internal holds shared test infrastructure.
package internal

import (
	"fmt"
	"io"
	"path"
	"strings"
)

// MemBackend serves documents from memory, keyed by slash-separated absolute
// paths. It lets engine tests exercise multi-file loading without touching
// the filesystem.
type MemBackend map[string]string

func (b MemBackend) Canonicalize(p string) (string, error) {
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p), nil
}

func (b MemBackend) Join(base, ref string) string {
	if path.IsAbs(ref) {
		return ref
	}
	return path.Join(path.Dir(base), ref)
}

func (b MemBackend) Open(canonical string) (io.ReadCloser, error) {
	doc, ok := b[canonical]
	if !ok {
		return nil, fmt.Errorf("no document at %v", canonical)
	}
	return io.NopCloser(strings.NewReader(doc)), nil
}
