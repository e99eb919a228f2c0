package tmx

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/eak1mov/go-libtmx/xmlscan"
)

var tilesetAttrs = []string{
	"name", "class", "tilewidth", "tileheight", "spacing", "margin",
	"tilecount", "columns", "objectalignment", "fillmode", "tilerendersize",
	"version", "tiledversion",
}

// readTilesetRef reads a <tileset> tag inside a map: either a reference to
// an external tileset file or a fully embedded tileset. Either way the
// tileset joins the map's global-ID space at its firstgid.
func (p *parser) readTilesetRef(el xml.StartElement) error {
	attrs, err := p.cur.Attributes(el, xmlscan.Schema{
		Required: []string{"firstgid"},
		Optional: append([]string{"source"}, tilesetAttrs...),
	})
	if err != nil {
		return err
	}
	firstGID, err := attrs.Uint32("firstgid", 0)
	if err != nil {
		return err
	}

	if attrs.Has("source") {
		res, err := p.engine.loadRef(kindTileset, p.path, attrs.String("source", ""))
		if err != nil {
			return err
		}
		if err := p.cur.ExpectEmpty("tileset"); err != nil {
			return err
		}
		p.gids.add(res.(*Tileset), firstGID)
		return nil
	}

	// Embedded tilesets have no path of their own.
	tileset, err := p.readTilesetBody(attrs, "")
	if err != nil {
		return err
	}
	p.gids.add(tileset, firstGID)
	return nil
}

// readTilesetFile reads a standalone tileset document.
func (p *parser) readTilesetFile() (*Tileset, error) {
	root, err := p.cur.Root("tileset")
	if err != nil {
		return nil, err
	}
	attrs, err := p.cur.Attributes(root, xmlscan.Schema{
		Required: []string{"tilewidth", "tileheight"},
		Optional: tilesetAttrs,
	})
	if err != nil {
		return nil, err
	}
	p.checkVersion(attrs)
	return p.readTilesetBody(attrs, p.path)
}

type pendingAnimation struct {
	tile   *Tile
	frames []rawFrame
}

type rawFrame struct {
	tileID   uint32
	duration time.Duration
}

func (p *parser) readTilesetBody(attrs xmlscan.Attrs, path string) (*Tileset, error) {
	ts := &Tileset{resource: resource{path: path, engine: p.engine}}
	ts.Name = attrs.String("name", "")
	ts.Class = attrs.String("class", "")
	ts.ObjectAlignment = attrs.String("objectalignment", "unspecified")

	var err error
	if ts.TileWidth, err = attrs.Int("tilewidth", 0); err != nil {
		return nil, err
	}
	if ts.TileHeight, err = attrs.Int("tileheight", 0); err != nil {
		return nil, err
	}
	if ts.Spacing, err = attrs.Int("spacing", 0); err != nil {
		return nil, err
	}
	if ts.Margin, err = attrs.Int("margin", 0); err != nil {
		return nil, err
	}
	if ts.TileCount, err = attrs.Int("tilecount", 0); err != nil {
		return nil, err
	}
	if ts.Columns, err = attrs.Int("columns", 0); err != nil {
		return nil, err
	}

	var animations []pendingAnimation
	for {
		child, err := p.cur.NextChild()
		if err != nil {
			return nil, err
		}
		if child == nil {
			break
		}

		switch child.Name.Local {
		case "image":
			if ts.Image, err = p.readImage(*child); err != nil {
				return nil, err
			}
		case "tileoffset":
			offsetAttrs, err := p.cur.Attributes(*child, xmlscan.Schema{Optional: []string{"x", "y"}})
			if err != nil {
				return nil, err
			}
			if ts.TileOffsetX, err = offsetAttrs.Int("x", 0); err != nil {
				return nil, err
			}
			if ts.TileOffsetY, err = offsetAttrs.Int("y", 0); err != nil {
				return nil, err
			}
			if err := p.cur.ExpectEmpty("tileoffset"); err != nil {
				return nil, err
			}
		case "transformations":
			if err := p.readTransformations(*child, &ts.Transformations); err != nil {
				return nil, err
			}
		case "properties":
			if ts.Props, err = p.readProperties(); err != nil {
				return nil, err
			}
		case "terraintypes":
			if ts.Terrains, err = p.readTerrainTypes(); err != nil {
				return nil, err
			}
		case "wangsets":
			if ts.WangSets, err = p.readWangSets(); err != nil {
				return nil, err
			}
		case "tile":
			pending, err := p.readTilesetTile(*child, ts)
			if err != nil {
				return nil, err
			}
			if len(pending.frames) > 0 {
				animations = append(animations, pending)
			}
		default:
			if err := p.skipUnknown(child, "tileset"); err != nil {
				return nil, err
			}
		}
	}

	ts.finalize(p.engine.objectTypes)

	for _, pending := range animations {
		frames := make([]Frame, len(pending.frames))
		for i, raw := range pending.frames {
			frame := ts.Tile(raw.tileID)
			if frame == nil {
				return nil, fmt.Errorf("libtmx: animation of tile %v references unknown tile %v",
					pending.tile.ID, raw.tileID)
			}
			frames[i] = Frame{Tile: frame, Duration: raw.duration}
		}
		pending.tile.Animation = frames
	}

	return ts, nil
}

func (p *parser) readTransformations(el xml.StartElement, out *Transformations) error {
	attrs, err := p.cur.Attributes(el, xmlscan.Schema{
		Optional: []string{"hflip", "vflip", "rotate", "preferuntransformed"},
	})
	if err != nil {
		return err
	}
	if out.HFlip, err = attrs.Bool("hflip", false); err != nil {
		return err
	}
	if out.VFlip, err = attrs.Bool("vflip", false); err != nil {
		return err
	}
	if out.Rotate, err = attrs.Bool("rotate", false); err != nil {
		return err
	}
	if out.PreferUntransformed, err = attrs.Bool("preferuntransformed", false); err != nil {
		return err
	}
	return p.cur.ExpectEmpty("transformations")
}

func (p *parser) readTilesetTile(el xml.StartElement, ts *Tileset) (pendingAnimation, error) {
	attrs, err := p.cur.Attributes(el, xmlscan.Schema{
		Required: []string{"id"},
		Optional: []string{"type", "class", "probability", "terrain", "x", "y", "width", "height"},
	})
	if err != nil {
		return pendingAnimation{}, err
	}

	tile := &Tile{}
	if tile.ID, err = attrs.Uint32("id", 0); err != nil {
		return pendingAnimation{}, err
	}
	tile.Type = attrs.String("type", attrs.String("class", ""))
	if tile.Probability, err = attrs.Float("probability", 1); err != nil {
		return pendingAnimation{}, err
	}
	if attrs.Has("terrain") {
		if tile.TerrainCorners, err = parseTerrainCorners(attrs.String("terrain", "")); err != nil {
			return pendingAnimation{}, err
		}
	}

	pending := pendingAnimation{tile: tile}
	for {
		child, err := p.cur.NextChild()
		if err != nil {
			return pendingAnimation{}, err
		}
		if child == nil {
			break
		}

		switch child.Name.Local {
		case "properties":
			if tile.Props, err = p.readProperties(); err != nil {
				return pendingAnimation{}, err
			}
		case "image":
			if tile.Image, err = p.readImage(*child); err != nil {
				return pendingAnimation{}, err
			}
		case "objectgroup":
			collision, err := p.readObjectLayer(*child, nil)
			if err != nil {
				return pendingAnimation{}, err
			}
			tile.Collision = collision.Objects()
		case "animation":
			if pending.frames, err = p.readAnimation(); err != nil {
				return pendingAnimation{}, err
			}
		default:
			if err := p.skipUnknown(child, "tile"); err != nil {
				return pendingAnimation{}, err
			}
		}
	}

	ts.addTile(tile)
	return pending, nil
}

func (p *parser) readAnimation() ([]rawFrame, error) {
	var frames []rawFrame
	for {
		child, err := p.cur.NextChild()
		if err != nil {
			return nil, err
		}
		if child == nil {
			return frames, nil
		}
		if child.Name.Local != "frame" {
			if err := p.skipUnknown(child, "animation"); err != nil {
				return nil, err
			}
			continue
		}

		attrs, err := p.cur.Attributes(*child, xmlscan.Schema{Required: []string{"tileid", "duration"}})
		if err != nil {
			return nil, err
		}
		frame := rawFrame{}
		if frame.tileID, err = attrs.Uint32("tileid", 0); err != nil {
			return nil, err
		}
		durationMsec, err := attrs.Int("duration", 0)
		if err != nil {
			return nil, err
		}
		frame.duration = time.Duration(durationMsec) * time.Millisecond
		if err := p.cur.ExpectEmpty("frame"); err != nil {
			return nil, err
		}
		frames = append(frames, frame)
	}
}

func (p *parser) readTerrainTypes() ([]*Terrain, error) {
	var terrains []*Terrain
	for {
		child, err := p.cur.NextChild()
		if err != nil {
			return nil, err
		}
		if child == nil {
			return terrains, nil
		}
		if child.Name.Local != "terrain" {
			if err := p.skipUnknown(child, "terraintypes"); err != nil {
				return nil, err
			}
			continue
		}

		attrs, err := p.cur.Attributes(*child, xmlscan.Schema{
			Required: []string{"name"},
			Optional: []string{"tile"},
		})
		if err != nil {
			return nil, err
		}
		terrain := &Terrain{Name: attrs.String("name", "")}
		if terrain.Tile, err = attrs.Int("tile", -1); err != nil {
			return nil, err
		}

		for {
			grandchild, err := p.cur.NextChild()
			if err != nil {
				return nil, err
			}
			if grandchild == nil {
				break
			}
			if grandchild.Name.Local == "properties" {
				if terrain.Props, err = p.readProperties(); err != nil {
					return nil, err
				}
				continue
			}
			if err := p.skipUnknown(grandchild, "terrain"); err != nil {
				return nil, err
			}
		}
		terrains = append(terrains, terrain)
	}
}

// parseTerrainCorners parses the legacy "tl,tr,bl,br" terrain attribute;
// empty slots mean no terrain and map to -1.
func parseTerrainCorners(value string) (*[4]int, error) {
	parts := strings.Split(value, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("libtmx: invalid terrain specifier %q: want 4 corners, have %v", value, len(parts))
	}
	corners := [4]int{-1, -1, -1, -1}
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		index, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("libtmx: invalid terrain specifier %q: %w", value, err)
		}
		corners[i] = index
	}
	return &corners, nil
}
