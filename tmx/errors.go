package tmx

import (
	"errors"
	"fmt"
)

var ErrDuplicateGID = errors.New("libtmx: duplicate global tile ID")
var ErrUnknownGID = errors.New("libtmx: global tile ID outside any referenced tileset")
var ErrResourceCycle = errors.New("libtmx: resource reference cycle")
var ErrKindMismatch = errors.New("libtmx: cached resource has a different kind")
var ErrBadColor = errors.New("libtmx: invalid color")
var ErrBadEnum = errors.New("libtmx: invalid enumeration value")
var ErrMissingObject = errors.New("libtmx: template has no object")

// ParseError is the single structured error a failed load propagates to the
// caller. Err preserves the cause, including the source location when the
// failure happened inside the document (see xmlscan.Error).
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("libtmx: reading %v: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
