package tmx

// Resource is anything independently loadable from a file path: a Map, a
// Tileset or a Template. Resources are immutable once construction
// completes and are destroyed only by explicit cache eviction.
type Resource interface {
	// Path returns the canonical path the resource was loaded from, or ""
	// if it was embedded inline in a parent document.
	Path() string

	// Engine returns the engine that produced the resource.
	Engine() *Engine
}

type resource struct {
	path   string
	engine *Engine
}

func (r *resource) Path() string    { return r.path }
func (r *resource) Engine() *Engine { return r.engine }
