package tmx_test

import (
	"testing"

	"github.com/eak1mov/go-libtmx/internal"
	"github.com/eak1mov/go-libtmx/tmx"
	"github.com/eak1mov/go-libtmx/tmx/spec"
	"github.com/google/go-cmp/cmp"
)

func readObjects(t *testing.T, body string) []*tmx.Object {
	t.Helper()
	m := readMapDoc(t, `<map version="1.10" width="2" height="2" tilewidth="16" tileheight="16">
 `+embeddedTileset+`
 <objectgroup id="1" name="things">`+body+`</objectgroup>
</map>`)
	return m.Layers()[0].(*tmx.ObjectLayer).Objects()
}

func TestObjectShapes(t *testing.T) {
	objects := readObjects(t, `
  <object id="1" name="box" x="1" y="2" width="3" height="4" rotation="45"/>
  <object id="2" x="5" y="6" width="3" height="4"><ellipse/></object>
  <object id="3" x="7" y="8"><point/></object>
  <object id="4" x="0" y="0"><polygon points="0,0 16,0 8,-8"/></object>
  <object id="5" x="0" y="0" visible="0"><polyline points="0,0 4.5,8"/></object>`)

	if got, want := len(objects), 5; got != want {
		t.Fatalf("len(objects) = %v, want = %v", got, want)
	}

	box := objects[0]
	if got, want := box.Shape, tmx.ShapeRectangle; got != want {
		t.Errorf("box.Shape = %v, want = %v", got, want)
	}
	if got, want := box.Rotation, 45.0; got != want {
		t.Errorf("box.Rotation = %v, want = %v", got, want)
	}
	if !box.Visible {
		t.Error("box.Visible = false, want true")
	}

	if got, want := objects[1].Shape, tmx.ShapeEllipse; got != want {
		t.Errorf("objects[1].Shape = %v, want = %v", got, want)
	}
	if got, want := objects[2].Shape, tmx.ShapePoint; got != want {
		t.Errorf("objects[2].Shape = %v, want = %v", got, want)
	}

	polygon := objects[3]
	if got, want := polygon.Shape, tmx.ShapePolygon; got != want {
		t.Errorf("polygon.Shape = %v, want = %v", got, want)
	}
	wantPoints := []tmx.PointF{{X: 0, Y: 0}, {X: 16, Y: 0}, {X: 8, Y: -8}}
	if diff := cmp.Diff(wantPoints, polygon.Points); diff != "" {
		t.Errorf("polygon points mismatch (-want +got):\n%s", diff)
	}

	polyline := objects[4]
	if got, want := polyline.Shape, tmx.ShapePolyline; got != want {
		t.Errorf("polyline.Shape = %v, want = %v", got, want)
	}
	if polyline.Visible {
		t.Error("polyline.Visible = true, want false")
	}
}

func TestTileObject(t *testing.T) {
	objects := readObjects(t, `<object id="1" gid="2147483650" x="16" y="32" width="16" height="16"/>`)

	obj := objects[0]
	if obj.Tile == nil {
		t.Fatal("obj.Tile = nil")
	}
	if got, want := obj.Tile.ID, uint32(1); got != want {
		t.Errorf("obj.Tile.ID = %v, want = %v", got, want)
	}
	if got, want := obj.Flip, spec.FlippedHorizontally; got != want {
		t.Errorf("obj.Flip = %v, want = %v", got, want)
	}
}

func TestTextObject(t *testing.T) {
	objects := readObjects(t, `
  <object id="1" x="0" y="0" width="64" height="16">
   <text fontfamily="serif" pixelsize="24" wrap="1" bold="1" color="#ff0000" halign="center">Game Over</text>
  </object>
  <object id="2" x="0" y="0"><text>hint</text></object>`)

	styled := objects[0]
	if got, want := styled.Shape, tmx.ShapeText; got != want {
		t.Fatalf("styled.Shape = %v, want = %v", got, want)
	}
	want := &tmx.TextStyle{
		Text:       "Game Over",
		FontFamily: "serif",
		PixelSize:  24,
		Wrap:       true,
		Bold:       true,
		Color:      tmx.Color{R: 0xff, A: 0xff},
		Kerning:    true,
		HAlign:     "center",
		VAlign:     "top",
	}
	if diff := cmp.Diff(want, styled.Text); diff != "" {
		t.Errorf("text style mismatch (-want +got):\n%s", diff)
	}

	plain := objects[1].Text
	if got, want := plain.FontFamily, "sans-serif"; got != want {
		t.Errorf("plain.FontFamily = %v, want = %v", got, want)
	}
	if got, want := plain.PixelSize, 16; got != want {
		t.Errorf("plain.PixelSize = %v, want = %v", got, want)
	}
	if !plain.Kerning {
		t.Error("plain.Kerning = false, want true")
	}
}

const itemsTSX = `<?xml version="1.0"?>
<tileset version="1.10" name="items" tilewidth="16" tileheight="16" tilecount="2" columns="2">
 <image source="items.png" width="32" height="16"/>
 <tile id="0">
  <properties>
   <property name="weight" type="int" value="5"/>
   <property name="loot" value="from-tile"/>
  </properties>
 </tile>
</tileset>`

const chestTX = `<?xml version="1.0"?>
<template>
 <tileset firstgid="1" source="items.tsx"/>
 <object name="chest" type="Container" gid="1" width="16" height="16">
  <properties>
   <property name="locked" type="bool" value="true"/>
   <property name="loot" value="common"/>
  </properties>
 </object>
</template>`

func TestTemplateObject(t *testing.T) {
	containerType := &tmx.ObjectType{
		Name: "Container",
		Props: tmx.Properties{
			"capacity": {Kind: tmx.PropertyInt, Value: 10},
			"loot":     {Kind: tmx.PropertyString, Value: "from-type"},
		},
	}
	engine := newTestEngine(t, internal.MemBackend{
		"/maps/level.tmx": `<?xml version="1.0"?>
<map version="1.10" width="2" height="2" tilewidth="16" tileheight="16">
 <objectgroup id="1" name="things">
  <object id="7" template="chest.tx" x="32" y="48">
   <properties>
    <property name="loot" value="rare"/>
   </properties>
  </object>
  <object id="8" template="chest.tx" x="64" y="48" name="mimic"/>
 </objectgroup>
</map>`,
		"/maps/chest.tx":  chestTX,
		"/maps/items.tsx": itemsTSX,
	}, tmx.WithObjectTypes(tmx.ObjectTypes{"Container": containerType}))

	m, err := engine.ReadMap("/maps/level.tmx")
	if err != nil {
		t.Fatal(err)
	}
	objects := m.Layers()[0].(*tmx.ObjectLayer).Objects()
	chest, mimic := objects[0], objects[1]

	// Seeded from the template, overridden by authored attributes.
	if got, want := chest.Name, "chest"; got != want {
		t.Errorf("chest.Name = %v, want = %v", got, want)
	}
	if got, want := chest.ID, 7; got != want {
		t.Errorf("chest.ID = %v, want = %v", got, want)
	}
	if got, want := chest.X, 32.0; got != want {
		t.Errorf("chest.X = %v, want = %v", got, want)
	}
	if got, want := chest.Width, 16.0; got != want {
		t.Errorf("chest.Width = %v, want = %v", got, want)
	}
	if chest.Tile == nil || chest.Tile.ID != 0 {
		t.Errorf("chest.Tile = %v, want items tile 0", chest.Tile)
	}
	if chest.Template == nil {
		t.Fatal("chest.Template = nil")
	}
	if got, want := mimic.Name, "mimic"; got != want {
		t.Errorf("mimic.Name = %v, want = %v", got, want)
	}

	// Tier order: own, template, tile, type defaults.
	for _, tc := range []struct {
		key  string
		want any
	}{
		{"loot", "rare"},
		{"locked", true},
		{"weight", 5},
		{"capacity", 10},
	} {
		prop, ok := chest.Effective().Get(tc.key)
		if !ok {
			t.Errorf("chest has no %q property", tc.key)
			continue
		}
		if prop.Value != tc.want {
			t.Errorf("chest %q = %v, want = %v", tc.key, prop.Value, tc.want)
		}
	}

	// The sibling authored no loot override, so the template tier wins.
	prop, ok := mimic.Effective().Get("loot")
	if !ok || prop.Value != "common" {
		t.Errorf("mimic loot = %v (%v), want common", prop.Value, ok)
	}

	// Both map objects share the cached template and its tileset.
	if chest.Template != mimic.Template {
		t.Error("template was not shared through the cache")
	}
	if chest.Template.Tileset == nil {
		t.Error("template tileset reference was not kept")
	}
}

func TestObjectTypeFallbackToTile(t *testing.T) {
	crateType := &tmx.ObjectType{
		Name:  "Crate",
		Props: tmx.Properties{"stackable": {Kind: tmx.PropertyBool, Value: true}},
	}
	engine := newTestEngine(t, internal.MemBackend{
		"/m.tmx": `<?xml version="1.0"?>
<map version="1.10" width="2" height="2" tilewidth="16" tileheight="16">
 <tileset firstgid="1" name="t" tilewidth="16" tileheight="16" tilecount="1" columns="1">
  <image source="t.png" width="16" height="16"/>
  <tile id="0" type="Crate"/>
 </tileset>
 <objectgroup id="1" name="things">
  <object id="1" gid="1" x="0" y="16" width="16" height="16"/>
 </objectgroup>
</map>`,
	}, tmx.WithObjectTypes(tmx.ObjectTypes{"Crate": crateType}))

	m, err := engine.ReadMap("/m.tmx")
	if err != nil {
		t.Fatal(err)
	}
	obj := m.Layers()[0].(*tmx.ObjectLayer).Objects()[0]

	// The object has no type of its own; the tile's type supplies the
	// defaults tier.
	prop, ok := obj.Effective().Get("stackable")
	if !ok || prop.Value != true {
		t.Errorf("stackable = %v (%v), want true", prop.Value, ok)
	}
}
