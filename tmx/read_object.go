package tmx

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/eak1mov/go-libtmx/tmx/spec"
	"github.com/eak1mov/go-libtmx/xmlscan"
)

func (p *parser) readObjectLayer(el xml.StartElement, parent *GroupLayer) (*ObjectLayer, error) {
	attrs, err := p.cur.Attributes(el, xmlscan.Schema{
		Optional: append([]string{"color", "draworder"}, layerCommonAttrs...),
	})
	if err != nil {
		return nil, err
	}
	info, err := p.layerInfo(attrs, parent)
	if err != nil {
		return nil, err
	}

	layer := &ObjectLayer{LayerInfo: info}
	if layer.Color, err = p.color(attrs, "color", Color{R: 0xa0, G: 0xa0, B: 0xa4, A: 0xff}); err != nil {
		return nil, err
	}
	if layer.DrawOrder, err = p.enum(attrs, "draworder", "topdown", "topdown", "index"); err != nil {
		return nil, err
	}

	for {
		child, err := p.cur.NextChild()
		if err != nil {
			return nil, err
		}
		if child == nil {
			return layer, nil
		}
		switch child.Name.Local {
		case "properties":
			if layer.Props, err = p.readProperties(); err != nil {
				return nil, err
			}
		case "object":
			object, err := p.readObject(*child)
			if err != nil {
				return nil, err
			}
			layer.objects = append(layer.objects, object)
		default:
			if err := p.skipUnknown(child, "objectgroup"); err != nil {
				return nil, err
			}
		}
	}
}

// readObject reads one <object>. When a template is referenced the template
// object acts as a prototype: its fields seed the object and every attribute
// authored here overrides the seeded value.
func (p *parser) readObject(el xml.StartElement) (*Object, error) {
	attrs, err := p.cur.Attributes(el, xmlscan.Schema{
		Optional: []string{
			"id", "name", "type", "class", "x", "y", "width", "height",
			"rotation", "visible", "gid", "template",
		},
	})
	if err != nil {
		return nil, err
	}

	obj := &Object{Visible: true}
	var templateProps Properties
	if attrs.Has("template") {
		res, err := p.engine.loadRef(kindTemplate, p.path, attrs.String("template", ""))
		if err != nil {
			return nil, err
		}
		template := res.(*Template)
		proto := template.Object
		templateProps = proto.Props
		*obj = *proto
		obj.Props = nil
		obj.Template = template
	}

	if attrs.Has("id") {
		if obj.ID, err = attrs.Int("id", 0); err != nil {
			return nil, err
		}
	}
	obj.Name = attrs.String("name", obj.Name)
	obj.Type = attrs.String("type", attrs.String("class", obj.Type))
	if obj.X, err = attrs.Float("x", obj.X); err != nil {
		return nil, err
	}
	if obj.Y, err = attrs.Float("y", obj.Y); err != nil {
		return nil, err
	}
	if obj.Width, err = attrs.Float("width", obj.Width); err != nil {
		return nil, err
	}
	if obj.Height, err = attrs.Float("height", obj.Height); err != nil {
		return nil, err
	}
	if obj.Rotation, err = attrs.Float("rotation", obj.Rotation); err != nil {
		return nil, err
	}
	if obj.Visible, err = attrs.Bool("visible", obj.Visible); err != nil {
		return nil, err
	}
	if attrs.Has("gid") {
		gid, err := attrs.Uint32("gid", 0)
		if err != nil {
			return nil, err
		}
		cell, err := p.gids.cell(spec.GID(gid))
		if err != nil {
			return nil, err
		}
		obj.Tile, obj.Flip = cell.Tile, cell.Flip
	}

	for {
		child, err := p.cur.NextChild()
		if err != nil {
			return nil, err
		}
		if child == nil {
			break
		}
		switch child.Name.Local {
		case "properties":
			if obj.Props, err = p.readProperties(); err != nil {
				return nil, err
			}
		case "ellipse":
			obj.Shape = ShapeEllipse
			if err := p.cur.ExpectEmpty("ellipse"); err != nil {
				return nil, err
			}
		case "point":
			obj.Shape = ShapePoint
			if err := p.cur.ExpectEmpty("point"); err != nil {
				return nil, err
			}
		case "polygon":
			obj.Shape = ShapePolygon
			if obj.Points, err = p.readPoints(*child, "polygon"); err != nil {
				return nil, err
			}
		case "polyline":
			obj.Shape = ShapePolyline
			if obj.Points, err = p.readPoints(*child, "polyline"); err != nil {
				return nil, err
			}
		case "text":
			obj.Shape = ShapeText
			if obj.Text, err = p.readText(*child); err != nil {
				return nil, err
			}
		default:
			if err := p.skipUnknown(child, "object"); err != nil {
				return nil, err
			}
		}
	}

	var tileProps Properties
	if obj.Tile != nil {
		tileProps = obj.Tile.Props
	}
	types := p.engine.objectTypes
	obj.effective = effectiveProps(obj.Props, templateProps, tileProps, types.defaults(obj.typeName()))
	return obj, nil
}

func (p *parser) readPoints(el xml.StartElement, name string) ([]PointF, error) {
	attrs, err := p.cur.Attributes(el, xmlscan.Schema{Required: []string{"points"}})
	if err != nil {
		return nil, err
	}
	points, err := parsePoints(attrs.String("points", ""))
	if err != nil {
		return nil, err
	}
	return points, p.cur.ExpectEmpty(name)
}

// parsePoints parses the "x,y x,y ..." vertex list of a polygon or polyline.
func parsePoints(value string) ([]PointF, error) {
	var points []PointF
	for _, pair := range strings.Fields(value) {
		x, y, ok := strings.Cut(pair, ",")
		if !ok {
			return nil, fmt.Errorf("libtmx: invalid point %q in %q", pair, value)
		}
		point := PointF{}
		var err error
		if point.X, err = strconv.ParseFloat(x, 64); err != nil {
			return nil, fmt.Errorf("libtmx: invalid point %q: %w", pair, err)
		}
		if point.Y, err = strconv.ParseFloat(y, 64); err != nil {
			return nil, fmt.Errorf("libtmx: invalid point %q: %w", pair, err)
		}
		points = append(points, point)
	}
	return points, nil
}

func (p *parser) readText(el xml.StartElement) (*TextStyle, error) {
	attrs, err := p.cur.Attributes(el, xmlscan.Schema{
		Optional: []string{
			"fontfamily", "pixelsize", "wrap", "color", "bold", "italic",
			"underline", "strikeout", "kerning", "halign", "valign",
		},
	})
	if err != nil {
		return nil, err
	}

	text := &TextStyle{
		FontFamily: attrs.String("fontfamily", "sans-serif"),
		HAlign:     attrs.String("halign", "left"),
		VAlign:     attrs.String("valign", "top"),
	}
	if text.PixelSize, err = attrs.Int("pixelsize", 16); err != nil {
		return nil, err
	}
	if text.Wrap, err = attrs.Bool("wrap", false); err != nil {
		return nil, err
	}
	if text.Color, err = p.color(attrs, "color", Color{A: 0xff}); err != nil {
		return nil, err
	}
	if text.Bold, err = attrs.Bool("bold", false); err != nil {
		return nil, err
	}
	if text.Italic, err = attrs.Bool("italic", false); err != nil {
		return nil, err
	}
	if text.Underline, err = attrs.Bool("underline", false); err != nil {
		return nil, err
	}
	if text.Strikeout, err = attrs.Bool("strikeout", false); err != nil {
		return nil, err
	}
	if text.Kerning, err = attrs.Bool("kerning", true); err != nil {
		return nil, err
	}
	if text.Text, err = p.cur.Text(); err != nil {
		return nil, err
	}
	return text, nil
}

func (p *parser) readImageLayer(el xml.StartElement, parent *GroupLayer) (*ImageLayer, error) {
	attrs, err := p.cur.Attributes(el, xmlscan.Schema{
		Optional: append([]string{"repeatx", "repeaty"}, layerCommonAttrs...),
	})
	if err != nil {
		return nil, err
	}
	info, err := p.layerInfo(attrs, parent)
	if err != nil {
		return nil, err
	}

	layer := &ImageLayer{LayerInfo: info}
	if layer.RepeatX, err = attrs.Bool("repeatx", false); err != nil {
		return nil, err
	}
	if layer.RepeatY, err = attrs.Bool("repeaty", false); err != nil {
		return nil, err
	}

	for {
		child, err := p.cur.NextChild()
		if err != nil {
			return nil, err
		}
		if child == nil {
			return layer, nil
		}
		switch child.Name.Local {
		case "properties":
			if layer.Props, err = p.readProperties(); err != nil {
				return nil, err
			}
		case "image":
			if layer.Image, err = p.readImage(*child); err != nil {
				return nil, err
			}
		default:
			if err := p.skipUnknown(child, "imagelayer"); err != nil {
				return nil, err
			}
		}
	}
}

func (p *parser) readGroup(el xml.StartElement, parent *GroupLayer, infinite bool) (*GroupLayer, error) {
	attrs, err := p.cur.Attributes(el, xmlscan.Schema{Optional: layerCommonAttrs})
	if err != nil {
		return nil, err
	}
	info, err := p.layerInfo(attrs, parent)
	if err != nil {
		return nil, err
	}
	group := &GroupLayer{LayerInfo: info}

	for {
		child, err := p.cur.NextChild()
		if err != nil {
			return nil, err
		}
		if child == nil {
			return group, nil
		}
		switch child.Name.Local {
		case "properties":
			if group.Props, err = p.readProperties(); err != nil {
				return nil, err
			}
		case "layer":
			layer, err := p.readTileLayer(*child, group, infinite)
			if err != nil {
				return nil, err
			}
			group.layers = append(group.layers, layer)
		case "objectgroup":
			layer, err := p.readObjectLayer(*child, group)
			if err != nil {
				return nil, err
			}
			group.layers = append(group.layers, layer)
		case "imagelayer":
			layer, err := p.readImageLayer(*child, group)
			if err != nil {
				return nil, err
			}
			group.layers = append(group.layers, layer)
		case "group":
			layer, err := p.readGroup(*child, group, infinite)
			if err != nil {
				return nil, err
			}
			group.layers = append(group.layers, layer)
		default:
			if err := p.skipUnknown(child, "group"); err != nil {
				return nil, err
			}
		}
	}
}
