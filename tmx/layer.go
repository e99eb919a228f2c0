package tmx

// LayerAttrs are the drawing attributes every layer kind carries. A layer
// stores them twice: as authored (relative to its parent group) and composed
// down from the root of the layer tree.
type LayerAttrs struct {
	Opacity   float64
	Visible   bool
	Tint      Color
	OffsetX   float64
	OffsetY   float64
	ParallaxX float64
	ParallaxY float64
}

func defaultLayerAttrs() LayerAttrs {
	return LayerAttrs{Opacity: 1, Visible: true, Tint: White, ParallaxX: 1, ParallaxY: 1}
}

// compose derives the absolute attributes of a child authored with a under
// the absolute parent attributes.
func (a LayerAttrs) compose(parent LayerAttrs) LayerAttrs {
	return LayerAttrs{
		Opacity:   parent.Opacity * a.Opacity,
		Visible:   parent.Visible && a.Visible,
		Tint:      parent.Tint.blend(a.Tint),
		OffsetX:   parent.OffsetX + a.OffsetX,
		OffsetY:   parent.OffsetY + a.OffsetY,
		ParallaxX: parent.ParallaxX * a.ParallaxX,
		ParallaxY: parent.ParallaxY * a.ParallaxY,
	}
}

// LayerInfo is the part shared by all layer kinds. Rel holds the attributes
// as authored; Abs is a pure function of Rel and the parent chain, computed
// once at construction.
type LayerInfo struct {
	ID    int
	Name  string
	Class string
	Rel   LayerAttrs
	Abs   LayerAttrs
	Props Properties

	parent *GroupLayer
}

// Info gives access to the shared layer attributes; it also makes every
// concrete layer kind satisfy the Layer interface by embedding.
func (li *LayerInfo) Info() *LayerInfo { return li }

// Parent returns the owning group, nil for top-level layers.
func (li *LayerInfo) Parent() *GroupLayer { return li.parent }

// Layer is one node of a map's layer tree: a TileLayer, ObjectLayer,
// ImageLayer or GroupLayer.
type Layer interface {
	Info() *LayerInfo
	Parent() *GroupLayer
}

// GroupLayer owns an ordered list of child layers; this ownership is the
// only hierarchical relationship in the model.
type GroupLayer struct {
	LayerInfo
	layers []Layer
}

// Layers returns the direct children in document order.
func (g *GroupLayer) Layers() []Layer { return g.layers }

// ImageLayer is a layer consisting of a single image.
type ImageLayer struct {
	LayerInfo
	Image   *Image
	RepeatX bool
	RepeatY bool
}

// ObjectLayer holds free-form objects.
type ObjectLayer struct {
	LayerInfo
	Color     Color
	DrawOrder string
	objects   []*Object
}

// Objects returns the layer's objects in document order.
func (l *ObjectLayer) Objects() []*Object { return l.objects }

// Image is a graphic asset referenced by a tileset, tile or image layer.
type Image struct {
	Source           string
	Format           string
	TransparentColor *Color
	Width            int
	Height           int
}
