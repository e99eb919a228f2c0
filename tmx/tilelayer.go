package tmx

import (
	"iter"

	"github.com/eak1mov/go-libtmx/tmx/spec"
)

// CellPos addresses one grid cell. Infinite maps use negative coordinates
// freely.
type CellPos struct {
	X, Y int
}

// Cell is one placed tile with its flip flags. The zero Cell means "no
// tile".
type Cell struct {
	Tile *Tile
	Flip spec.Flip
}

// Rect is the tight bounding box of a layer's placed tiles.
type Rect struct {
	X, Y          int
	Width, Height int
}

func (r Rect) contains(pos CellPos) bool {
	return pos.X >= r.X && pos.X < r.X+r.Width && pos.Y >= r.Y && pos.Y < r.Y+r.Height
}

// Area returns Width*Height.
func (r Rect) Area() int { return r.Width * r.Height }

// TileLayer is a grid of optional tile references. Storage is chosen once
// at construction by density: a dense array sized to the bounding box, or a
// sparse map keyed by position. Both expose identical read semantics.
type TileLayer struct {
	LayerInfo

	// Width and Height are the declared layer dimensions; for infinite maps
	// they do not bound the grid.
	Width  int
	Height int

	bounds Rect
	store  cellStore
}

// Bounds returns the tight bounding box of all placed tiles; the zero Rect
// for an empty layer.
func (l *TileLayer) Bounds() Rect { return l.bounds }

// CellAt returns the cell at the given position; the zero Cell outside the
// bounds or on empty cells.
func (l *TileLayer) CellAt(x, y int) Cell {
	pos := CellPos{X: x, Y: y}
	if !l.bounds.contains(pos) {
		return Cell{}
	}
	return l.store.at(pos)
}

// TileAt returns the tile at the given position, nil if none.
func (l *TileLayer) TileAt(x, y int) *Tile {
	return l.CellAt(x, y).Tile
}

// FlipAt returns the flip flags at the given position.
func (l *TileLayer) FlipAt(x, y int) spec.Flip {
	return l.CellAt(x, y).Flip
}

// Cells iterates all placed (non-empty) cells in unspecified order.
func (l *TileLayer) Cells() iter.Seq2[CellPos, Cell] {
	return l.store.all()
}

type cellStore interface {
	at(pos CellPos) Cell
	all() iter.Seq2[CellPos, Cell]
}

// newCellStore computes the tight bounding box of cells (which holds only
// non-empty cells) and picks the representation: sparse when the tile count
// is below a quarter of the bounding-box area, dense otherwise.
func newCellStore(cells map[CellPos]Cell) (Rect, cellStore) {
	if len(cells) == 0 {
		return Rect{}, sparseStore(nil)
	}

	first := true
	var minX, minY, maxX, maxY int
	for pos := range cells {
		if first {
			minX, maxX = pos.X, pos.X
			minY, maxY = pos.Y, pos.Y
			first = false
			continue
		}
		minX = min(minX, pos.X)
		maxX = max(maxX, pos.X)
		minY = min(minY, pos.Y)
		maxY = max(maxY, pos.Y)
	}
	bounds := Rect{X: minX, Y: minY, Width: maxX - minX + 1, Height: maxY - minY + 1}

	if 4*len(cells) < bounds.Area() {
		return bounds, sparseStore(cells)
	}

	dense := &denseStore{bounds: bounds, cells: make([]Cell, bounds.Area())}
	for pos, cell := range cells {
		dense.cells[(pos.Y-bounds.Y)*bounds.Width+(pos.X-bounds.X)] = cell
	}
	return bounds, dense
}

type sparseStore map[CellPos]Cell

func (s sparseStore) at(pos CellPos) Cell { return s[pos] }

func (s sparseStore) all() iter.Seq2[CellPos, Cell] {
	return func(yield func(CellPos, Cell) bool) {
		for pos, cell := range s {
			if !yield(pos, cell) {
				return
			}
		}
	}
}

type denseStore struct {
	bounds Rect
	cells  []Cell
}

func (d *denseStore) at(pos CellPos) Cell {
	return d.cells[(pos.Y-d.bounds.Y)*d.bounds.Width+(pos.X-d.bounds.X)]
}

func (d *denseStore) all() iter.Seq2[CellPos, Cell] {
	return func(yield func(CellPos, Cell) bool) {
		for i, cell := range d.cells {
			if cell == (Cell{}) {
				continue
			}
			pos := CellPos{
				X: d.bounds.X + i%d.bounds.Width,
				Y: d.bounds.Y + i/d.bounds.Width,
			}
			if !yield(pos, cell) {
				return
			}
		}
	}
}
