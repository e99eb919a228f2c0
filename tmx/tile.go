package tmx

import (
	"time"

	"github.com/eak1mov/go-libtmx/tiered"
)

// Frame is one step of a tile animation.
type Frame struct {
	Tile     *Tile
	Duration time.Duration
}

// Tile is an individual tile of a tileset, addressed by a local ID unique
// within it.
type Tile struct {
	ID          uint32
	Type        string
	Probability float64

	// Image is the tile's own image in an image-collection tileset; nil
	// when the owning tileset uses a shared image.
	Image *Image

	Animation []Frame
	Collision []*Object

	// TerrainCorners are indices into the owning tileset's Terrains for the
	// top-left, top-right, bottom-left and bottom-right corners; -1 means
	// no terrain. Nil when the tile declares no terrain at all.
	TerrainCorners *[4]int

	// Props are the tile's own properties.
	Props Properties

	tileset   *Tileset
	effective PropertyView
}

// Tileset returns the owning tileset. The back-reference is assigned in the
// second construction phase, after all tiles of the set exist.
func (t *Tile) Tileset() *Tileset { return t.tileset }

// Effective returns the tiered property view: the tile's own properties
// over the object-type defaults for its type name.
func (t *Tile) Effective() PropertyView { return t.effective }

// effectiveProps composes the property tiers for a tile or object, highest
// priority first, dropping nil tiers.
func effectiveProps(tiers ...Properties) PropertyView {
	maps := make([]map[string]Property, 0, len(tiers))
	for _, tier := range tiers {
		if tier != nil {
			maps = append(maps, tier)
		}
	}
	return tiered.New(maps...)
}
