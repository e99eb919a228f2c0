package tmx

import (
	"encoding/xml"
	"fmt"
	"io"
	"slices"

	"github.com/eak1mov/go-libtmx/xmlscan"
	"github.com/sirupsen/logrus"
)

// parser drives the event cursor through one document. Embedded tilesets
// share the parser (and its global-ID table) of the enclosing map; external
// files get their own.
type parser struct {
	engine *Engine
	cur    *xmlscan.Cursor
	path   string
	gids   *gidTable
}

func (e *Engine) newParser(r io.Reader, canonical string) *parser {
	p := &parser{engine: e, path: canonical, gids: &gidTable{}}
	p.cur = xmlscan.New(r, func(loc xmlscan.Location, format string, args ...any) {
		e.log.WithFields(logrus.Fields{
			"path":   canonical,
			"line":   loc.Line,
			"column": loc.Column,
		}).Warnf(format, args...)
	})
	return p
}

// checkVersion warns on a missing or unexpected format version.
func (p *parser) checkVersion(attrs xmlscan.Attrs) {
	version := attrs.String("version", "")
	switch {
	case version == "":
		p.cur.Warnf("document declares no format version, expected %v", FormatVersion)
	case version != FormatVersion:
		p.cur.Warnf("document format version %v differs from expected %v", version, FormatVersion)
	}
}

// skipUnknown reports an unrecognized tag and discards its subtree.
func (p *parser) skipUnknown(el *xml.StartElement, parent string) error {
	p.cur.Warnf("ignoring unknown <%v> inside <%v>", el.Name.Local, parent)
	return p.cur.Skip()
}

// enum validates an attribute against its allowed values.
func (p *parser) enum(attrs xmlscan.Attrs, name, def string, allowed ...string) (string, error) {
	value := attrs.String(name, def)
	if !slices.Contains(allowed, value) {
		return "", fmt.Errorf("%w: %v=%q", ErrBadEnum, name, value)
	}
	return value, nil
}

// color parses an optional color attribute with a default.
func (p *parser) color(attrs xmlscan.Attrs, name string, def Color) (Color, error) {
	if !attrs.Has(name) {
		return def, nil
	}
	return ParseColor(attrs.String(name, ""))
}

// colorPtr parses an optional color attribute, nil when absent.
func (p *parser) colorPtr(attrs xmlscan.Attrs, name string) (*Color, error) {
	if !attrs.Has(name) {
		return nil, nil
	}
	color, err := ParseColor(attrs.String(name, ""))
	if err != nil {
		return nil, err
	}
	return &color, nil
}

// readImage reads an <image> tag. Embedded image data is not supported and
// is skipped with a warning.
func (p *parser) readImage(el xml.StartElement) (*Image, error) {
	attrs, err := p.cur.Attributes(el, xmlscan.Schema{
		Required: []string{"source"},
		Optional: []string{"format", "trans", "width", "height", "id"},
	})
	if err != nil {
		return nil, err
	}

	image := &Image{
		Source: attrs.String("source", ""),
		Format: attrs.String("format", ""),
	}
	if image.TransparentColor, err = p.colorPtr(attrs, "trans"); err != nil {
		return nil, err
	}
	if image.Width, err = attrs.Int("width", 0); err != nil {
		return nil, err
	}
	if image.Height, err = attrs.Int("height", 0); err != nil {
		return nil, err
	}

	for {
		child, err := p.cur.NextChild()
		if err != nil {
			return nil, err
		}
		if child == nil {
			return image, nil
		}
		if err := p.skipUnknown(child, "image"); err != nil {
			return nil, err
		}
	}
}
