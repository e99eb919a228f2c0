package tmx

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/eak1mov/go-libtmx/xmlscan"
)

func (p *parser) readWangSets() ([]*WangSet, error) {
	var sets []*WangSet
	for {
		child, err := p.cur.NextChild()
		if err != nil {
			return nil, err
		}
		if child == nil {
			return sets, nil
		}
		if child.Name.Local != "wangset" {
			if err := p.skipUnknown(child, "wangsets"); err != nil {
				return nil, err
			}
			continue
		}

		attrs, err := p.cur.Attributes(*child, xmlscan.Schema{
			Required: []string{"name"},
			Optional: []string{"class", "type", "tile"},
		})
		if err != nil {
			return nil, err
		}
		set := &WangSet{
			Name:  attrs.String("name", ""),
			Class: attrs.String("class", ""),
			Type:  attrs.String("type", "mixed"),
			Tiles: make(map[uint32]WangID),
		}
		if set.Tile, err = attrs.Int("tile", -1); err != nil {
			return nil, err
		}
		if err := p.readWangSetBody(set); err != nil {
			return nil, err
		}
		sets = append(sets, set)
	}
}

func (p *parser) readWangSetBody(set *WangSet) error {
	for {
		child, err := p.cur.NextChild()
		if err != nil {
			return err
		}
		if child == nil {
			return nil
		}
		switch child.Name.Local {
		case "properties":
			if set.Props, err = p.readProperties(); err != nil {
				return err
			}
		case "wangcolor":
			color, err := p.readWangColor(*child)
			if err != nil {
				return err
			}
			set.Colors = append(set.Colors, color)
		case "wangtile":
			attrs, err := p.cur.Attributes(*child, xmlscan.Schema{Required: []string{"tileid", "wangid"}})
			if err != nil {
				return err
			}
			tileID, err := attrs.Uint32("tileid", 0)
			if err != nil {
				return err
			}
			wangID, err := parseWangID(attrs.String("wangid", ""))
			if err != nil {
				return err
			}
			if err := p.cur.ExpectEmpty("wangtile"); err != nil {
				return err
			}
			set.Tiles[tileID] = wangID
		default:
			if err := p.skipUnknown(child, "wangset"); err != nil {
				return err
			}
		}
	}
}

func (p *parser) readWangColor(el xml.StartElement) (*WangColor, error) {
	attrs, err := p.cur.Attributes(el, xmlscan.Schema{
		Required: []string{"name", "color"},
		Optional: []string{"class", "tile", "probability"},
	})
	if err != nil {
		return nil, err
	}
	color := &WangColor{
		Name:  attrs.String("name", ""),
		Class: attrs.String("class", ""),
	}
	if color.Color, err = ParseColor(attrs.String("color", "")); err != nil {
		return nil, err
	}
	if color.Tile, err = attrs.Int("tile", -1); err != nil {
		return nil, err
	}
	if color.Probability, err = attrs.Float("probability", 1); err != nil {
		return nil, err
	}

	for {
		child, err := p.cur.NextChild()
		if err != nil {
			return nil, err
		}
		if child == nil {
			return color, nil
		}
		if child.Name.Local == "properties" {
			if color.Props, err = p.readProperties(); err != nil {
				return nil, err
			}
			continue
		}
		if err := p.skipUnknown(child, "wangcolor"); err != nil {
			return nil, err
		}
	}
}

// parseWangID parses the 8-slot clockwise color list of a wangid attribute.
func parseWangID(value string) (WangID, error) {
	parts := strings.Split(value, ",")
	if len(parts) != 8 {
		return WangID{}, fmt.Errorf("libtmx: invalid wangid %q: want 8 slots, have %v", value, len(parts))
	}
	var id WangID
	for i, part := range parts {
		index, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
		if err != nil {
			return WangID{}, fmt.Errorf("libtmx: invalid wangid %q: %w", value, err)
		}
		id[i] = uint32(index)
	}
	return id, nil
}
