package tmx

// Template is a reusable object prototype loaded from a .tx file. Its
// Object carries the default values an instantiating object starts from;
// position fields of the prototype are meaningless.
type Template struct {
	resource

	// Tileset is the tileset referenced for the prototype's tile, nil if
	// the prototype is not a tile object.
	Tileset *Tileset

	Object *Object
}
