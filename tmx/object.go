package tmx

import "github.com/eak1mov/go-libtmx/tmx/spec"

// ObjectShape is the geometric kind of an object.
type ObjectShape uint8

const (
	ShapeRectangle ObjectShape = iota
	ShapeEllipse
	ShapePoint
	ShapePolygon
	ShapePolyline
	ShapeText
)

// PointF is a coordinate pair in pixels.
type PointF struct {
	X, Y float64
}

// TextStyle is the content and styling of a text object.
type TextStyle struct {
	Text       string
	FontFamily string
	PixelSize  int
	Wrap       bool
	Color      Color
	Bold       bool
	Italic     bool
	Underline  bool
	Strikeout  bool
	Kerning    bool
	HAlign     string
	VAlign     string
}

// Object is a free-form placed object: a shape, a tile stamp or text.
type Object struct {
	ID       int
	Name     string
	Type     string
	X, Y     float64
	Width    float64
	Height   float64
	Rotation float64
	Visible  bool

	Shape  ObjectShape
	Points []PointF

	// Tile is the representative tile for tile objects, with its own flip
	// flags.
	Tile *Tile
	Flip spec.Flip

	Text *TextStyle

	// Template is the originating template, nil for plain objects.
	Template *Template

	// Props are the directly authored properties.
	Props Properties

	effective PropertyView
}

// Effective returns the tiered property view: own properties, then template
// properties, then the represented tile's own properties, then object-type
// defaults.
func (o *Object) Effective() PropertyView { return o.effective }

// typeName resolves the type used for object-type defaults: the object's
// own type, falling back to the represented tile's.
func (o *Object) typeName() string {
	if o.Type != "" {
		return o.Type
	}
	if o.Tile != nil {
		return o.Tile.Type
	}
	return ""
}
