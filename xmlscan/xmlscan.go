// Package xmlscan wraps the stdlib pull XML decoder with the event model the
// document readers need: significant-token advancement, schema-checked
// attribute extraction, subtree skipping and source-location diagnostics.
//
// Recoverable problems (unknown tags or attributes, stray content) are
// reported through a warning callback and the offending content is dropped;
// structural problems are returned as errors carrying the location of the
// failure.
package xmlscan

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

var ErrUnexpectedEOF = errors.New("libtmx: unexpected end of document")
var ErrMalformed = errors.New("libtmx: malformed document")
var ErrMissingAttribute = errors.New("libtmx: missing required attribute")
var ErrBadValue = errors.New("libtmx: invalid attribute value")

// Location is a line/column position inside the document being read.
type Location struct {
	Line   int
	Column int
}

func (l Location) String() string {
	return fmt.Sprintf("line %v, column %v", l.Line, l.Column)
}

// Error is a fatal scan error together with the location it occurred at.
type Error struct {
	Loc Location
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v at %v", e.Err, e.Loc)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// WarnFunc receives recoverable problems found while scanning.
type WarnFunc func(loc Location, format string, args ...any)

// Cursor is a pull cursor over one XML document.
type Cursor struct {
	dec  *xml.Decoder
	warn WarnFunc
}

// New creates a Cursor reading from r. A nil warn discards warnings.
func New(r io.Reader, warn WarnFunc) *Cursor {
	if warn == nil {
		warn = func(Location, string, ...any) {}
	}
	return &Cursor{dec: xml.NewDecoder(r), warn: warn}
}

// Location returns the current position of the underlying decoder.
func (c *Cursor) Location() Location {
	line, column := c.dec.InputPos()
	return Location{Line: line, Column: column}
}

// Warnf reports a recoverable problem at the current location.
func (c *Cursor) Warnf(format string, args ...any) {
	c.warn(c.Location(), format, args...)
}

func (c *Cursor) fail(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		err = ErrUnexpectedEOF
	}
	var syntaxErr *xml.SyntaxError
	if errors.As(err, &syntaxErr) {
		err = fmt.Errorf("%w: %v", ErrMalformed, syntaxErr.Msg)
	}
	return &Error{Loc: c.Location(), Err: err}
}

// Next returns the next semantically significant token: a start element, an
// end element, or non-blank character data. Comments, directives, processing
// instructions and whitespace are skipped. Running out of input is an error;
// the cursor is only ever advanced inside an open document.
func (c *Cursor) Next() (xml.Token, error) {
	for {
		token, err := c.dec.Token()
		if err != nil {
			return nil, c.fail(err)
		}
		switch t := token.(type) {
		case xml.StartElement, xml.EndElement:
			return token, nil
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return xml.CharData(bytes.Clone(t)), nil
			}
		}
	}
}

// Root consumes input up to the document's root start element and checks its
// name.
func (c *Cursor) Root(name string) (xml.StartElement, error) {
	token, err := c.Next()
	if err != nil {
		return xml.StartElement{}, err
	}
	start, ok := token.(xml.StartElement)
	if !ok {
		return xml.StartElement{}, c.fail(fmt.Errorf("%w: unexpected content before root element", ErrMalformed))
	}
	if start.Name.Local != name {
		return xml.StartElement{}, c.fail(fmt.Errorf("%w: root element is <%v>, want <%v>",
			ErrMalformed, start.Name.Local, name))
	}
	return start, nil
}

// NextChild returns the next child start element of the innermost open
// element, or nil once the matching end tag has been consumed. Stray
// character data between children is reported and discarded.
func (c *Cursor) NextChild() (*xml.StartElement, error) {
	for {
		token, err := c.Next()
		if err != nil {
			return nil, err
		}
		switch t := token.(type) {
		case xml.StartElement:
			child := t
			return &child, nil
		case xml.EndElement:
			return nil, nil
		case xml.CharData:
			c.Warnf("ignoring stray character data %q", string(bytes.TrimSpace(t)))
		}
	}
}

// Skip consumes the most recently opened element through its matching end
// tag, recursing through nested elements and discarding everything.
func (c *Cursor) Skip() error {
	if err := c.dec.Skip(); err != nil {
		return c.fail(err)
	}
	return nil
}

// ExpectEmpty consumes the current element through its end tag like Skip,
// but reports any nested content. Used for leaf tags.
func (c *Cursor) ExpectEmpty(name string) error {
	for {
		token, err := c.Next()
		if err != nil {
			return err
		}
		switch t := token.(type) {
		case xml.StartElement:
			c.Warnf("ignoring unexpected <%v> inside <%v>", t.Name.Local, name)
			if err := c.Skip(); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		case xml.CharData:
			c.Warnf("ignoring unexpected character data inside <%v>", name)
		}
	}
}

// Text collects the character data of the current element up to its end tag.
// Nested elements are reported and skipped.
func (c *Cursor) Text() (string, error) {
	var builder strings.Builder
	for {
		token, err := c.dec.Token()
		if err != nil {
			return "", c.fail(err)
		}
		switch t := token.(type) {
		case xml.CharData:
			builder.Write(t)
		case xml.StartElement:
			c.Warnf("ignoring unexpected <%v> inside text content", t.Name.Local)
			if err := c.Skip(); err != nil {
				return "", err
			}
		case xml.EndElement:
			return builder.String(), nil
		}
	}
}
