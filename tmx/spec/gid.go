// Package spec implements wire-level primitives of the TMX format:
// global tile ID packing and the tile-grid payload codec.
package spec

// Flip bits packed into the high bits of a raw cell or object tile reference.
const (
	FlipHorizontal uint32 = 0x80000000
	FlipVertical   uint32 = 0x40000000
	FlipDiagonal   uint32 = 0x20000000

	flipMask = FlipHorizontal | FlipVertical | FlipDiagonal
)

// GID is a raw global tile ID as stored in a tile-grid cell or an object's
// gid attribute: 3 flip bits over a 29-bit global ID. GID 0 means "no tile".
type GID uint32

// Bare returns the global ID with the flip bits masked off.
func (g GID) Bare() uint32 {
	return uint32(g) &^ flipMask
}

// Flip is the 3-bit per-cell flip encoding used by the document model.
type Flip uint8

const (
	FlippedHorizontally Flip = 1 << iota
	FlippedVertically
	FlippedDiagonally
)

// Flips maps the packed high bits of the GID to the model encoding.
func (g GID) Flips() Flip {
	var f Flip
	if uint32(g)&FlipHorizontal != 0 {
		f |= FlippedHorizontally
	}
	if uint32(g)&FlipVertical != 0 {
		f |= FlippedVertically
	}
	if uint32(g)&FlipDiagonal != 0 {
		f |= FlippedDiagonally
	}
	return f
}

// WithFlips packs a bare global ID and model flip flags back into a raw GID.
func WithFlips(bare uint32, f Flip) GID {
	g := bare &^ flipMask
	if f&FlippedHorizontally != 0 {
		g |= FlipHorizontal
	}
	if f&FlippedVertically != 0 {
		g |= FlipVertical
	}
	if f&FlippedDiagonally != 0 {
		g |= FlipDiagonal
	}
	return GID(g)
}
