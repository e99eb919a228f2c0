package tmx

import (
	"encoding/xml"
	"fmt"

	"github.com/eak1mov/go-libtmx/tmx/spec"
	"github.com/eak1mov/go-libtmx/xmlscan"
)

var layerCommonAttrs = []string{
	"id", "name", "class", "x", "y", "width", "height", "opacity", "visible",
	"tintcolor", "offsetx", "offsety", "parallaxx", "parallaxy", "locked",
}

// layerInfo reads the attributes shared by all layer kinds and composes the
// absolute attributes from the parent chain.
func (p *parser) layerInfo(attrs xmlscan.Attrs, parent *GroupLayer) (LayerInfo, error) {
	rel := defaultLayerAttrs()
	var err error
	if rel.Opacity, err = attrs.Float("opacity", 1); err != nil {
		return LayerInfo{}, err
	}
	if rel.Visible, err = attrs.Bool("visible", true); err != nil {
		return LayerInfo{}, err
	}
	if rel.Tint, err = p.color(attrs, "tintcolor", White); err != nil {
		return LayerInfo{}, err
	}
	if rel.OffsetX, err = attrs.Float("offsetx", 0); err != nil {
		return LayerInfo{}, err
	}
	if rel.OffsetY, err = attrs.Float("offsety", 0); err != nil {
		return LayerInfo{}, err
	}
	if rel.ParallaxX, err = attrs.Float("parallaxx", 1); err != nil {
		return LayerInfo{}, err
	}
	if rel.ParallaxY, err = attrs.Float("parallaxy", 1); err != nil {
		return LayerInfo{}, err
	}

	info := LayerInfo{
		Name:   attrs.String("name", ""),
		Class:  attrs.String("class", ""),
		Rel:    rel,
		parent: parent,
	}
	if info.ID, err = attrs.Int("id", 0); err != nil {
		return LayerInfo{}, err
	}

	if parent != nil {
		info.Abs = rel.compose(parent.Abs)
	} else {
		info.Abs = rel
	}
	return info, nil
}

func (p *parser) readTileLayer(el xml.StartElement, parent *GroupLayer, infinite bool) (*TileLayer, error) {
	attrs, err := p.cur.Attributes(el, xmlscan.Schema{Optional: layerCommonAttrs})
	if err != nil {
		return nil, err
	}
	info, err := p.layerInfo(attrs, parent)
	if err != nil {
		return nil, err
	}

	layer := &TileLayer{LayerInfo: info}
	if layer.Width, err = attrs.Int("width", 0); err != nil {
		return nil, err
	}
	if layer.Height, err = attrs.Int("height", 0); err != nil {
		return nil, err
	}

	raw := make(map[CellPos]spec.GID)
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
			if layer.Props, err = p.readProperties(); err != nil {
				return nil, err
			}
		case "data":
			if err := p.readData(*child, layer.Width, layer.Height, infinite, raw); err != nil {
				return nil, err
			}
		default:
			if err := p.skipUnknown(child, "layer"); err != nil {
				return nil, err
			}
		}
	}

	cells := make(map[CellPos]Cell, len(raw))
	for pos, gid := range raw {
		cell, err := p.gids.cell(gid)
		if err != nil {
			return nil, err
		}
		cells[pos] = cell
	}
	layer.bounds, layer.store = newCellStore(cells)
	return layer, nil
}

// readData decodes a <data> block. Finite maps store one grid; infinite
// maps split it into independently positioned chunks, each encoded the same
// way and merged by offsetting chunk-local coordinates.
func (p *parser) readData(el xml.StartElement, width, height int, infinite bool, out map[CellPos]spec.GID) error {
	attrs, err := p.cur.Attributes(el, xmlscan.Schema{Optional: []string{"encoding", "compression"}})
	if err != nil {
		return err
	}
	encoding, err := spec.ParseEncoding(attrs.String("encoding", ""))
	if err != nil {
		return err
	}
	compression, err := spec.ParseCompression(attrs.String("compression", ""))
	if err != nil {
		return err
	}

	if infinite {
		for {
			child, err := p.cur.NextChild()
			if err != nil {
				return err
			}
			if child == nil {
				return nil
			}
			if child.Name.Local != "chunk" {
				if err := p.skipUnknown(child, "data"); err != nil {
					return err
				}
				continue
			}
			if err := p.readChunk(*child, encoding, compression, out); err != nil {
				return err
			}
		}
	}

	return p.readGridBody(encoding, compression, width, height, CellPos{}, out)
}

func (p *parser) readChunk(el xml.StartElement, encoding spec.Encoding, compression spec.Compression, out map[CellPos]spec.GID) error {
	attrs, err := p.cur.Attributes(el, xmlscan.Schema{Required: []string{"x", "y", "width", "height"}})
	if err != nil {
		return err
	}
	origin := CellPos{}
	if origin.X, err = attrs.Int("x", 0); err != nil {
		return err
	}
	if origin.Y, err = attrs.Int("y", 0); err != nil {
		return err
	}
	width, err := attrs.Int("width", 0)
	if err != nil {
		return err
	}
	height, err := attrs.Int("height", 0)
	if err != nil {
		return err
	}
	return p.readGridBody(encoding, compression, width, height, origin, out)
}

// readGridBody consumes the body of a <data> or <chunk> element and merges
// the non-zero cells into out at the given origin.
func (p *parser) readGridBody(encoding spec.Encoding, compression spec.Compression, width, height int, origin CellPos, out map[CellPos]spec.GID) error {
	if encoding == spec.EncodingTags {
		count := 0
		for {
			child, err := p.cur.NextChild()
			if err != nil {
				return err
			}
			if child == nil {
				break
			}
			if child.Name.Local != "tile" {
				if err := p.skipUnknown(child, "data"); err != nil {
					return err
				}
				continue
			}
			attrs, err := p.cur.Attributes(*child, xmlscan.Schema{Optional: []string{"gid"}})
			if err != nil {
				return err
			}
			gid, err := attrs.Uint32("gid", 0)
			if err != nil {
				return err
			}
			if err := p.cur.ExpectEmpty("tile"); err != nil {
				return err
			}
			if count < width*height && gid != 0 {
				out[CellPos{X: origin.X + count%width, Y: origin.Y + count/width}] = spec.GID(gid)
			}
			count++
		}
		if count != width*height {
			return fmt.Errorf("%w: %v tile tags for %vx%v grid", spec.ErrCellCount, count, width, height)
		}
		return nil
	}

	payload, err := p.cur.Text()
	if err != nil {
		return err
	}
	cells, err := spec.DecodeGrid([]byte(payload), encoding, compression, width, height)
	if err != nil {
		return err
	}
	for i, gid := range cells {
		if gid == 0 {
			continue
		}
		out[CellPos{X: origin.X + i%width, Y: origin.Y + i/width}] = gid
	}
	return nil
}
