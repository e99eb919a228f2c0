// Package refcache caches independently loadable resources by canonical
// path and tracks which resource was loaded because another referenced it.
// Eviction can cascade along the reference graph, collecting resources that
// no longer have any referer.
//
// The cache is not internally synchronized; concurrent use requires external
// locking.
package refcache

import "errors"

// ErrLoadInProgress reports a load request for a path whose parse has started
// but not completed, which can only happen on a reference cycle.
var ErrLoadInProgress = errors.New("libtmx: resource load already in progress")

// Storage holds the cached resources themselves. The host environment may
// supply its own implementation; the reference graph always stays inside the
// Cache.
type Storage interface {
	Get(path string) (any, bool)
	Set(path string, resource any)
	Remove(path string)
	Clear()
}

// MapStorage is the default in-memory Storage.
type MapStorage map[string]any

func (s MapStorage) Get(path string) (any, bool) {
	resource, ok := s[path]
	return resource, ok
}

func (s MapStorage) Set(path string, resource any) { s[path] = resource }
func (s MapStorage) Remove(path string)            { delete(s, path) }
func (s MapStorage) Clear() {
	for path := range s {
		delete(s, path)
	}
}

type record struct {
	referers   map[string]struct{} // paths that loaded this one
	references map[string]struct{} // paths this one loaded
}

func newRecord() *record {
	return &record{
		referers:   make(map[string]struct{}),
		references: make(map[string]struct{}),
	}
}

// Cache is a canonical-path resource cache with a bidirectional reference
// graph.
type Cache struct {
	storage Storage
	records map[string]*record
	loading map[string]struct{}
}

// New creates a Cache over the given Storage; nil storage gets a MapStorage.
func New(storage Storage) *Cache {
	if storage == nil {
		storage = make(MapStorage)
	}
	return &Cache{
		storage: storage,
		records: make(map[string]*record),
		loading: make(map[string]struct{}),
	}
}

// Get returns the completed resource cached at path, if any.
func (c *Cache) Get(path string) (any, bool) {
	if _, ok := c.loading[path]; ok {
		return nil, false
	}
	return c.storage.Get(path)
}

// Begin registers an empty reference record before parsing starts, so that
// recursive loads reaching path observe it as in progress instead of absent.
// It fails with ErrLoadInProgress on a reference cycle.
func (c *Cache) Begin(path string) error {
	if _, ok := c.loading[path]; ok {
		return ErrLoadInProgress
	}
	c.loading[path] = struct{}{}
	if _, ok := c.records[path]; !ok {
		c.records[path] = newRecord()
	}
	return nil
}

// Loading reports whether a load of path has begun but not completed.
func (c *Cache) Loading(path string) bool {
	_, ok := c.loading[path]
	return ok
}

// Complete stores the fully parsed resource and marks the load finished.
func (c *Cache) Complete(path string, resource any) {
	delete(c.loading, path)
	c.storage.Set(path, resource)
}

// Abort rolls back a failed load: the record and every edge registered while
// parsing path are removed, leaving no partial state behind.
func (c *Cache) Abort(path string) {
	delete(c.loading, path)
	rec, ok := c.records[path]
	if !ok {
		return
	}
	delete(c.records, path)
	for to := range rec.references {
		if toRec, ok := c.records[to]; ok {
			delete(toRec.referers, path)
		}
	}
	for from := range rec.referers {
		if fromRec, ok := c.records[from]; ok {
			delete(fromRec.references, path)
		}
	}
}

// AddReference records that the document being parsed at from successfully
// loaded the resource at to.
func (c *Cache) AddReference(from, to string) {
	fromRec, ok := c.records[from]
	if !ok {
		fromRec = newRecord()
		c.records[from] = fromRec
	}
	toRec, ok := c.records[to]
	if !ok {
		toRec = newRecord()
		c.records[to] = toRec
	}
	fromRec.references[to] = struct{}{}
	toRec.referers[from] = struct{}{}
}

// Evict removes the record and cached resource at path and reports whether
// anything was present. With cascade, every resource path referenced loses
// its back-edge and is recursively evicted once no referers remain.
func (c *Cache) Evict(path string, cascade bool) bool {
	rec, hadRecord := c.records[path]
	_, hadResource := c.storage.Get(path)
	if !hadRecord && !hadResource {
		return false
	}

	delete(c.records, path)
	delete(c.loading, path)
	c.storage.Remove(path)

	if rec == nil {
		return hadResource
	}
	for from := range rec.referers {
		if fromRec, ok := c.records[from]; ok {
			delete(fromRec.references, path)
		}
	}
	if cascade {
		for to := range rec.references {
			toRec, ok := c.records[to]
			if !ok {
				continue
			}
			delete(toRec.referers, path)
			if len(toRec.referers) == 0 {
				c.Evict(to, true)
			}
		}
	}
	return true
}

// Clear drops all cache state unconditionally.
func (c *Cache) Clear() {
	c.storage.Clear()
	c.records = make(map[string]*record)
	c.loading = make(map[string]struct{})
}
