package tmx

// Orientation of a map's tile grid.
type Orientation string

const (
	OrientationOrthogonal Orientation = "orthogonal"
	OrientationIsometric  Orientation = "isometric"
	OrientationStaggered  Orientation = "staggered"
	OrientationHexagonal  Orientation = "hexagonal"
)

// RenderOrder is the order tiles of a layer are drawn in.
type RenderOrder string

const (
	RenderRightDown RenderOrder = "right-down"
	RenderRightUp   RenderOrder = "right-up"
	RenderLeftDown  RenderOrder = "left-down"
	RenderLeftUp    RenderOrder = "left-up"
)

// TilesetRef pairs a referenced tileset with the first global tile ID of its
// range in the map's global ID space.
type TilesetRef struct {
	Tileset  *Tileset
	FirstGID uint32
}

// Map is the top-level document: dimensions, the ordered tileset references
// and the layer tree.
type Map struct {
	resource

	Orientation   Orientation
	RenderOrder   RenderOrder
	Class         string
	Width         int
	Height        int
	TileWidth     int
	TileHeight    int
	Infinite      bool
	HexSideLength int
	StaggerAxis   string
	StaggerIndex  string

	// BackgroundColor is nil when the map declares none.
	BackgroundColor *Color

	// Tilesets are the referenced tilesets in document order.
	Tilesets []TilesetRef

	Props Properties

	layers []Layer
	flat   []Layer
}

// Layers returns the top-level layers in document order.
func (m *Map) Layers() []Layer { return m.layers }

// FlatLayers returns all non-group layers of the tree in document order.
func (m *Map) FlatLayers() []Layer { return m.flat }

// LayerByName returns the first non-group layer with the given name, nil if
// none.
func (m *Map) LayerByName(name string) Layer {
	for _, layer := range m.flat {
		if layer.Info().Name == name {
			return layer
		}
	}
	return nil
}

func flattenLayers(layers []Layer, out []Layer) []Layer {
	for _, layer := range layers {
		if group, ok := layer.(*GroupLayer); ok {
			out = flattenLayers(group.Layers(), out)
			continue
		}
		out = append(out, layer)
	}
	return out
}
