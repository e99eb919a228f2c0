package tmx

import (
	"fmt"

	"github.com/eak1mov/go-libtmx/tmx/spec"
)

// gidTable resolves raw global tile IDs against the ordered tileset
// references of one map or template. The lookup table is built lazily on
// first use: the format guarantees all tileset tags precede the tags that
// use global IDs.
type gidTable struct {
	refs  []TilesetRef
	table map[uint32]*Tile
}

func (g *gidTable) add(tileset *Tileset, firstGID uint32) {
	g.refs = append(g.refs, TilesetRef{Tileset: tileset, FirstGID: firstGID})
}

func (g *gidTable) build() error {
	g.table = make(map[uint32]*Tile)
	for _, ref := range g.refs {
		for tile := range ref.Tileset.Tiles() {
			global := ref.FirstGID + tile.ID
			if previous, ok := g.table[global]; ok {
				return fmt.Errorf("%w: %v used by tilesets %q and %q",
					ErrDuplicateGID, global, previous.Tileset().Name, ref.Tileset.Name)
			}
			g.table[global] = tile
		}
	}
	return nil
}

// cell resolves a raw cell value into a tile and flip flags. A bare ID of 0
// is the empty cell; a non-zero ID outside every tileset range is fatal.
func (g *gidTable) cell(raw spec.GID) (Cell, error) {
	if g.table == nil {
		if err := g.build(); err != nil {
			return Cell{}, err
		}
	}

	bare := raw.Bare()
	if bare == 0 {
		return Cell{}, nil
	}
	tile, ok := g.table[bare]
	if !ok {
		return Cell{}, fmt.Errorf("%w: %v", ErrUnknownGID, bare)
	}
	return Cell{Tile: tile, Flip: raw.Flips()}, nil
}
