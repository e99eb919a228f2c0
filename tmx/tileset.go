package tmx

import (
	"iter"
	"slices"
)

// Transformations are the geometric transformations a tileset allows its
// tiles when used for terrain matching.
type Transformations struct {
	HFlip               bool
	VFlip               bool
	Rotate              bool
	PreferUntransformed bool
}

// Tileset is a named collection of tiles sharing dimensions, backed either
// by one shared image (tiles addressed by grid coordinate) or by per-tile
// images (an image collection).
type Tileset struct {
	resource

	Name            string
	Class           string
	TileWidth       int
	TileHeight      int
	Spacing         int
	Margin          int
	TileCount       int
	Columns         int
	ObjectAlignment string
	TileOffsetX     int
	TileOffsetY     int

	// Image is the shared image; nil for image-collection tilesets.
	Image *Image

	Transformations Transformations
	Props           Properties
	WangSets        []*WangSet
	Terrains        []*Terrain

	tiles map[uint32]*Tile
	order []uint32
}

// SingleImage reports whether tiles are cut from one shared image.
func (t *Tileset) SingleImage() bool { return t.Image != nil }

// Tile returns the tile with the given local ID, nil if none.
func (t *Tileset) Tile(id uint32) *Tile { return t.tiles[id] }

// Len returns the number of tiles.
func (t *Tileset) Len() int { return len(t.tiles) }

// Tiles iterates tiles in ascending local-ID order.
func (t *Tileset) Tiles() iter.Seq[*Tile] {
	return func(yield func(*Tile) bool) {
		for _, id := range t.order {
			if !yield(t.tiles[id]) {
				return
			}
		}
	}
}

// addTile registers a tile during construction; finalize completes the
// two-phase setup.
func (t *Tileset) addTile(tile *Tile) {
	if t.tiles == nil {
		t.tiles = make(map[uint32]*Tile)
	}
	t.tiles[tile.ID] = tile
	t.order = append(t.order, tile.ID)
}

// finalize materializes the implicit tiles of a single-image tileset,
// assigns the owner back-reference and builds each tile's effective
// property view.
func (t *Tileset) finalize(types ObjectTypes) {
	if t.SingleImage() {
		for id := range uint32(t.TileCount) {
			if _, ok := t.tiles[id]; !ok {
				t.addTile(&Tile{ID: id})
			}
		}
	}
	slices.Sort(t.order)

	for _, tile := range t.tiles {
		tile.tileset = t
		tile.effective = effectiveProps(tile.Props, nil, nil, types.defaults(tile.Type))
	}
}

// WangSet defines edge/corner colors used for auto-tiling terrain
// transitions.
type WangSet struct {
	Name   string
	Class  string
	Type   string
	Tile   int
	Colors []*WangColor
	Tiles  map[uint32]WangID
	Props  Properties
}

// WangColor is one edge/corner color of a Wang set.
type WangColor struct {
	Name        string
	Class       string
	Color       Color
	Tile        int
	Probability float64
	Props       Properties
}

// WangID lists the color indices at a tile's corners and edges, clockwise
// from the top edge; 0 means unset.
type WangID [8]uint32

// Terrain is a legacy terrain-corner type.
type Terrain struct {
	Name  string
	Tile  int
	Props Properties
}
