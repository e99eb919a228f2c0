package tmx

import (
	"github.com/eak1mov/go-libtmx/xmlscan"
)

// readMap reads a whole <map> document. Tileset references are guaranteed
// by the format to precede the layers that use global tile IDs.
func (p *parser) readMap() (*Map, error) {
	root, err := p.cur.Root("map")
	if err != nil {
		return nil, err
	}

	attrs, err := p.cur.Attributes(root, xmlscan.Schema{
		Required: []string{"width", "height", "tilewidth", "tileheight"},
		Optional: []string{
			"version", "tiledversion", "class", "orientation", "renderorder",
			"compressionlevel", "infinite", "hexsidelength", "staggeraxis",
			"staggerindex", "backgroundcolor", "nextlayerid", "nextobjectid",
		},
	})
	if err != nil {
		return nil, err
	}
	p.checkVersion(attrs)

	m := &Map{resource: resource{path: p.path, engine: p.engine}}
	m.Class = attrs.String("class", "")

	orientation, err := p.enum(attrs, "orientation", string(OrientationOrthogonal),
		string(OrientationOrthogonal), string(OrientationIsometric),
		string(OrientationStaggered), string(OrientationHexagonal))
	if err != nil {
		return nil, err
	}
	m.Orientation = Orientation(orientation)

	renderOrder, err := p.enum(attrs, "renderorder", string(RenderRightDown),
		string(RenderRightDown), string(RenderRightUp),
		string(RenderLeftDown), string(RenderLeftUp))
	if err != nil {
		return nil, err
	}
	m.RenderOrder = RenderOrder(renderOrder)

	if m.Width, err = attrs.Int("width", 0); err != nil {
		return nil, err
	}
	if m.Height, err = attrs.Int("height", 0); err != nil {
		return nil, err
	}
	if m.TileWidth, err = attrs.Int("tilewidth", 0); err != nil {
		return nil, err
	}
	if m.TileHeight, err = attrs.Int("tileheight", 0); err != nil {
		return nil, err
	}
	if m.Infinite, err = attrs.Bool("infinite", false); err != nil {
		return nil, err
	}
	if m.HexSideLength, err = attrs.Int("hexsidelength", 0); err != nil {
		return nil, err
	}
	m.StaggerAxis = attrs.String("staggeraxis", "")
	m.StaggerIndex = attrs.String("staggerindex", "")
	if m.BackgroundColor, err = p.colorPtr(attrs, "backgroundcolor"); err != nil {
		return nil, err
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
			if m.Props, err = p.readProperties(); err != nil {
				return nil, err
			}
		case "tileset":
			if err := p.readTilesetRef(*child); err != nil {
				return nil, err
			}
		case "layer":
			layer, err := p.readTileLayer(*child, nil, m.Infinite)
			if err != nil {
				return nil, err
			}
			m.layers = append(m.layers, layer)
		case "objectgroup":
			layer, err := p.readObjectLayer(*child, nil)
			if err != nil {
				return nil, err
			}
			m.layers = append(m.layers, layer)
		case "imagelayer":
			layer, err := p.readImageLayer(*child, nil)
			if err != nil {
				return nil, err
			}
			m.layers = append(m.layers, layer)
		case "group":
			layer, err := p.readGroup(*child, nil, m.Infinite)
			if err != nil {
				return nil, err
			}
			m.layers = append(m.layers, layer)
		default:
			if err := p.skipUnknown(child, "map"); err != nil {
				return nil, err
			}
		}
	}

	m.Tilesets = p.gids.refs
	m.flat = flattenLayers(m.layers, nil)
	return m, nil
}
