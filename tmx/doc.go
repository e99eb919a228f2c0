// Package tmx reads map (.tmx), tileset (.tsx) and object-template (.tx)
// documents produced by the Tiled map editor into an immutable,
// cross-referenced document model.
//
// An Engine owns a resource cache keyed by canonical path: loading a map
// recursively loads the tilesets and templates it references through the
// same cache, records the reference edges, and either returns a fully built
// resource or fails without caching anything. Recoverable oddities in a
// document are logged as warnings and skipped; structural problems abort
// the whole load.
package tmx
