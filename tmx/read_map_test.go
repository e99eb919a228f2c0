package tmx_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/eak1mov/go-libtmx/internal"
	"github.com/eak1mov/go-libtmx/tmx"
	"github.com/eak1mov/go-libtmx/tmx/spec"
	"github.com/google/go-cmp/cmp"
)

const embeddedTileset = `<tileset firstgid="1" name="t" tilewidth="16" tileheight="16" tilecount="4" columns="2">
 <image source="t.png" width="32" height="32"/>
</tileset>`

// readMapDoc loads a single self-contained map document.
func readMapDoc(t *testing.T, doc string) *tmx.Map {
	t.Helper()
	engine := newTestEngine(t, internal.MemBackend{"/m.tmx": doc})
	m, err := engine.ReadMap("/m.tmx")
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func readMapErr(t *testing.T, doc string) error {
	t.Helper()
	engine := newTestEngine(t, internal.MemBackend{"/m.tmx": doc})
	_, err := engine.ReadMap("/m.tmx")
	if err == nil {
		t.Fatal("load succeeded, want an error")
	}
	return err
}

func TestTileLayerEncodings(t *testing.T) {
	// Every variant encodes the same 2x2 grid: tile 0, tile 1 flipped
	// horizontally, tile 2, empty.
	for _, tc := range []struct {
		name string
		data string
	}{
		{"csv", `<data encoding="csv">1,2147483650,3,0</data>`},
		{"base64", `<data encoding="base64">AQAAAAIAAIADAAAAAAAAAA==</data>`},
		{"base64 gzip", `<data encoding="base64" compression="gzip">H4sIAAAAAAACA2NkYGBgYmBoYGaAAAD3QzJGEAAAAA==</data>`},
		{"base64 zlib", `<data encoding="base64" compression="zlib">eJxjZGBgYGJgaGBmgAAABNAAhw==</data>`},
		{"tags", `<data><tile gid="1"/><tile gid="2147483650"/><tile gid="3"/><tile/></data>`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			m := readMapDoc(t, fmt.Sprintf(`<map version="1.10" width="2" height="2" tilewidth="16" tileheight="16">
 %s
 <layer id="1" name="ground" width="2" height="2">%s</layer>
</map>`, embeddedTileset, tc.data))

			layer := m.Layers()[0].(*tmx.TileLayer)
			if diff := cmp.Diff(tmx.Rect{X: 0, Y: 0, Width: 2, Height: 2}, layer.Bounds()); diff != "" {
				t.Fatalf("bounds mismatch (-want +got):\n%s", diff)
			}

			for _, want := range []struct {
				x, y int
				tile uint32
				flip spec.Flip
			}{
				{0, 0, 0, 0},
				{1, 0, 1, spec.FlippedHorizontally},
				{0, 1, 2, 0},
			} {
				cell := layer.CellAt(want.x, want.y)
				if cell.Tile == nil {
					t.Fatalf("cell at (%v,%v) is empty", want.x, want.y)
				}
				if got := cell.Tile.ID; got != want.tile {
					t.Errorf("tile at (%v,%v) = %v, want = %v", want.x, want.y, got, want.tile)
				}
				if got := cell.Flip; got != want.flip {
					t.Errorf("flip at (%v,%v) = %v, want = %v", want.x, want.y, got, want.flip)
				}
			}
			if got := layer.CellAt(1, 1); got != (tmx.Cell{}) {
				t.Errorf("cell at (1,1) = %v, want empty", got)
			}
			if got := layer.CellAt(-1, 0); got != (tmx.Cell{}) {
				t.Errorf("cell at (-1,0) = %v, want empty", got)
			}
			if got := layer.CellAt(2, 0); got != (tmx.Cell{}) {
				t.Errorf("cell at (2,0) = %v, want empty", got)
			}
		})
	}
}

func TestChunkedInfiniteMap(t *testing.T) {
	m := readMapDoc(t, fmt.Sprintf(`<map version="1.10" width="4" height="4" tilewidth="16" tileheight="16" infinite="1">
 %s
 <layer id="1" name="ground" width="4" height="4">
  <data encoding="csv">
   <chunk x="-4" y="-4" width="4" height="4">0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,1</chunk>
   <chunk x="0" y="0" width="4" height="4">2,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0</chunk>
  </data>
 </layer>
</map>`, embeddedTileset))

	if !m.Infinite {
		t.Fatal("map is not infinite")
	}
	layer := m.Layers()[0].(*tmx.TileLayer)
	if diff := cmp.Diff(tmx.Rect{X: -1, Y: -1, Width: 2, Height: 2}, layer.Bounds()); diff != "" {
		t.Fatalf("bounds mismatch (-want +got):\n%s", diff)
	}
	if got, want := layer.TileAt(-1, -1).ID, uint32(0); got != want {
		t.Errorf("tile at (-1,-1) = %v, want = %v", got, want)
	}
	if got, want := layer.TileAt(0, 0).ID, uint32(1); got != want {
		t.Errorf("tile at (0,0) = %v, want = %v", got, want)
	}
}

func TestGridErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		data string
		want error
	}{
		{"short csv", `<data encoding="csv">1,2,3</data>`, spec.ErrCellCount},
		{"short tags", `<data><tile gid="1"/></data>`, spec.ErrCellCount},
		{"unknown encoding", `<data encoding="hex">00</data>`, spec.ErrUnknownEncoding},
		{"unknown compression", `<data encoding="base64" compression="lzma">00</data>`, spec.ErrUnknownCompression},
		{"unknown gid", `<data encoding="csv">999,0,0,0</data>`, tmx.ErrUnknownGID},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := readMapErr(t, fmt.Sprintf(`<map version="1.10" width="2" height="2" tilewidth="16" tileheight="16">
 %s
 <layer id="1" name="ground" width="2" height="2">%s</layer>
</map>`, embeddedTileset, tc.data))
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestDuplicateGID(t *testing.T) {
	mapDoc := `<map version="1.10" width="2" height="2" tilewidth="16" tileheight="16">
 <tileset firstgid="1" name="a" tilewidth="16" tileheight="16" tilecount="4" columns="2">
  <image source="a.png" width="32" height="32"/>
 </tileset>
 <tileset firstgid="%v" name="b" tilewidth="16" tileheight="16" tilecount="4" columns="2">
  <image source="b.png" width="32" height="32"/>
 </tileset>
 <layer id="1" name="ground" width="2" height="2">
  <data encoding="csv">1,0,0,0</data>
 </layer>
</map>`

	err := readMapErr(t, fmt.Sprintf(mapDoc, 3))
	if !errors.Is(err, tmx.ErrDuplicateGID) {
		t.Fatalf("err = %v, want ErrDuplicateGID", err)
	}

	// firstgid 5 starts right after tileset a's range.
	m := readMapDoc(t, fmt.Sprintf(mapDoc, 5))
	if got, want := len(m.Tilesets), 2; got != want {
		t.Fatalf("len(m.Tilesets) = %v, want = %v", got, want)
	}
}

func TestGroupLayerComposition(t *testing.T) {
	m := readMapDoc(t, `<map version="1.10" width="2" height="2" tilewidth="16" tileheight="16">
 <group id="1" name="back" opacity="0.5" tintcolor="#808080" offsetx="10" parallaxx="2" visible="0">
  <objectgroup id="2" name="things" opacity="0.5" tintcolor="#80ff00" offsetx="5" parallaxx="1.5"/>
 </group>
</map>`)

	group := m.Layers()[0].(*tmx.GroupLayer)
	child := group.Layers()[0].(*tmx.ObjectLayer)

	if got := child.Parent(); got != group {
		t.Fatalf("child.Parent() = %v, want the group", got)
	}

	rel := child.Info().Rel
	if got, want := rel.Opacity, 0.5; got != want {
		t.Errorf("rel.Opacity = %v, want = %v", got, want)
	}
	if got, want := rel.Visible, true; got != want {
		t.Errorf("rel.Visible = %v, want = %v", got, want)
	}

	abs := child.Info().Abs
	if got, want := abs.Opacity, 0.25; got != want {
		t.Errorf("abs.Opacity = %v, want = %v", got, want)
	}
	if got, want := abs.Visible, false; got != want {
		t.Errorf("abs.Visible = %v, want = %v", got, want)
	}
	if got, want := abs.OffsetX, 15.0; got != want {
		t.Errorf("abs.OffsetX = %v, want = %v", got, want)
	}
	if got, want := abs.ParallaxX, 3.0; got != want {
		t.Errorf("abs.ParallaxX = %v, want = %v", got, want)
	}
	if got, want := abs.Tint, (tmx.Color{R: 0x40, G: 0x80, B: 0x00, A: 0xff}); got != want {
		t.Errorf("abs.Tint = %v, want = %v", got, want)
	}
}

func TestFlatLayers(t *testing.T) {
	m := readMapDoc(t, `<map version="1.10" width="2" height="2" tilewidth="16" tileheight="16">
 <group id="1" name="back">
  <imagelayer id="2" name="sky" repeatx="1">
   <image source="sky.png" width="256" height="256"/>
  </imagelayer>
  <group id="3" name="inner">
   <objectgroup id="4" name="things"/>
  </group>
 </group>
 <objectgroup id="5" name="front"/>
</map>`)

	var names []string
	for _, layer := range m.FlatLayers() {
		names = append(names, layer.Info().Name)
	}
	want := []string{"sky", "things", "front"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("flat layer names mismatch (-want +got):\n%s", diff)
	}

	sky, ok := m.LayerByName("sky").(*tmx.ImageLayer)
	if !ok {
		t.Fatalf("LayerByName(sky) = %T, want *tmx.ImageLayer", m.LayerByName("sky"))
	}
	if !sky.RepeatX || sky.RepeatY {
		t.Errorf("sky repeat = (%v,%v), want (true,false)", sky.RepeatX, sky.RepeatY)
	}
	if got, want := sky.Image.Source, "sky.png"; got != want {
		t.Errorf("sky image = %v, want = %v", got, want)
	}
	if m.LayerByName("nothing") != nil {
		t.Error("LayerByName(nothing) found a layer")
	}
}

func TestMapAttributes(t *testing.T) {
	m := readMapDoc(t, `<map version="1.10" orientation="hexagonal" renderorder="left-up" width="3" height="4"
 tilewidth="14" tileheight="12" hexsidelength="6" staggeraxis="y" staggerindex="odd"
 backgroundcolor="#80102030">
 <properties>
  <property name="music" value="overworld.ogg"/>
 </properties>
</map>`)

	if got, want := m.Orientation, tmx.OrientationHexagonal; got != want {
		t.Errorf("m.Orientation = %v, want = %v", got, want)
	}
	if got, want := m.RenderOrder, tmx.RenderLeftUp; got != want {
		t.Errorf("m.RenderOrder = %v, want = %v", got, want)
	}
	if got, want := m.HexSideLength, 6; got != want {
		t.Errorf("m.HexSideLength = %v, want = %v", got, want)
	}
	if got, want := *m.BackgroundColor, (tmx.Color{R: 0x10, G: 0x20, B: 0x30, A: 0x80}); got != want {
		t.Errorf("m.BackgroundColor = %v, want = %v", got, want)
	}
	if got, want := m.Props["music"].Value, "overworld.ogg"; got != want {
		t.Errorf("music property = %v, want = %v", got, want)
	}

	err := readMapErr(t, `<map version="1.10" orientation="spherical" width="1" height="1" tilewidth="16" tileheight="16"></map>`)
	if !errors.Is(err, tmx.ErrBadEnum) {
		t.Fatalf("err = %v, want ErrBadEnum", err)
	}
}
