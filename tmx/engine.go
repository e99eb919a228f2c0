package tmx

import (
	"fmt"

	"github.com/eak1mov/go-libtmx/refcache"
	"github.com/sirupsen/logrus"
)

// FormatVersion is the TMX format version this engine expects; other
// versions load with a warning.
const FormatVersion = "1.10"

type resourceKind uint8

const (
	kindMap resourceKind = iota
	kindTileset
	kindTemplate
)

func (k resourceKind) String() string {
	switch k {
	case kindMap:
		return "map"
	case kindTileset:
		return "tileset"
	case kindTemplate:
		return "template"
	}
	return "unknown"
}

// Engine reads TMX resources through a shared canonical-path cache. It is
// designed for single-threaded, synchronous use; concurrent use of one
// engine requires external synchronization.
type Engine struct {
	backend     Backend
	storage     refcache.Storage
	cache       *refcache.Cache
	log         logrus.FieldLogger
	objectTypes ObjectTypes
}

// Option configures an Engine.
type Option func(*Engine)

// WithBackend replaces the default filesystem backend.
func WithBackend(backend Backend) Option {
	return func(e *Engine) { e.backend = backend }
}

// WithLogger replaces the warning logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(e *Engine) { e.log = log }
}

// WithStorage supplies the cache storage for parsed resources.
func WithStorage(storage refcache.Storage) Option {
	return func(e *Engine) { e.storage = storage }
}

// WithObjectTypes installs the object-type defaults applied to resources
// loaded afterwards.
func WithObjectTypes(types ObjectTypes) Option {
	return func(e *Engine) { e.objectTypes = types }
}

func NewEngine(options ...Option) *Engine {
	e := &Engine{
		backend:     OSBackend{},
		log:         logrus.StandardLogger(),
		objectTypes: make(ObjectTypes),
	}
	for _, option := range options {
		option(e)
	}
	e.cache = refcache.New(e.storage)
	return e
}

// ReadMap loads the map at path, or returns it from the cache.
func (e *Engine) ReadMap(path string) (*Map, error) {
	res, err := e.load(kindMap, path)
	if err != nil {
		return nil, err
	}
	return res.(*Map), nil
}

// ReadTileset loads the tileset at path, or returns it from the cache.
func (e *Engine) ReadTileset(path string) (*Tileset, error) {
	res, err := e.load(kindTileset, path)
	if err != nil {
		return nil, err
	}
	return res.(*Tileset), nil
}

// ReadTemplate loads the object template at path, or returns it from the
// cache.
func (e *Engine) ReadTemplate(path string) (*Template, error) {
	res, err := e.load(kindTemplate, path)
	if err != nil {
		return nil, err
	}
	return res.(*Template), nil
}

// ReadObjectTypes parses an object-type side file. Object-type files are
// not resources: they are never cached and never referenced by documents.
func (e *Engine) ReadObjectTypes(path string) (ObjectTypes, error) {
	canonical, err := e.backend.Canonicalize(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	stream, err := e.backend.Open(canonical)
	if err != nil {
		return nil, &ParseError{Path: canonical, Err: err}
	}
	defer stream.Close()

	types, err := e.newParser(stream, canonical).readObjectTypes()
	if err != nil {
		return nil, &ParseError{Path: canonical, Err: err}
	}
	return types, nil
}

// SetObjectTypes installs the object-type defaults applied to resources
// loaded afterwards. Already-built resources keep the views they were
// constructed with.
func (e *Engine) SetObjectTypes(types ObjectTypes) {
	if types == nil {
		types = make(ObjectTypes)
	}
	e.objectTypes = types
}

// EvictResource removes the resource at path from the cache and reports
// whether it was present. With cascade, resources it referenced are
// recursively evicted once nothing else references them.
func (e *Engine) EvictResource(path string, cascade bool) (bool, error) {
	canonical, err := e.backend.Canonicalize(path)
	if err != nil {
		return false, &ParseError{Path: path, Err: err}
	}
	return e.cache.Evict(canonical, cascade), nil
}

// ClearResources drops the whole cache.
func (e *Engine) ClearResources() {
	e.cache.Clear()
}

func checkKind(kind resourceKind, cached any) (Resource, error) {
	switch kind {
	case kindMap:
		if res, ok := cached.(*Map); ok {
			return res, nil
		}
	case kindTileset:
		if res, ok := cached.(*Tileset); ok {
			return res, nil
		}
	case kindTemplate:
		if res, ok := cached.(*Template); ok {
			return res, nil
		}
	}
	return nil, fmt.Errorf("%w: want %v, have %T", ErrKindMismatch, kind, cached)
}

func (e *Engine) load(kind resourceKind, path string) (Resource, error) {
	canonical, err := e.backend.Canonicalize(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	if cached, ok := e.cache.Get(canonical); ok {
		res, err := checkKind(kind, cached)
		if err != nil {
			return nil, &ParseError{Path: canonical, Err: err}
		}
		return res, nil
	}

	if err := e.cache.Begin(canonical); err != nil {
		return nil, &ParseError{Path: canonical, Err: ErrResourceCycle}
	}

	res, err := e.parse(kind, canonical)
	if err != nil {
		e.cache.Abort(canonical)
		// Errors of a recursively loaded resource propagate unchanged.
		if _, ok := err.(*ParseError); ok {
			return nil, err
		}
		return nil, &ParseError{Path: canonical, Err: err}
	}

	e.cache.Complete(canonical, res)
	return res, nil
}

func (e *Engine) parse(kind resourceKind, canonical string) (Resource, error) {
	stream, err := e.backend.Open(canonical)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	p := e.newParser(stream, canonical)
	switch kind {
	case kindMap:
		return p.readMap()
	case kindTileset:
		return p.readTilesetFile()
	case kindTemplate:
		return p.readTemplate()
	}
	return nil, fmt.Errorf("libtmx: unknown resource kind %v", kind)
}

// loadRef loads a resource referenced from the document at fromCanonical
// and records the reference edge.
func (e *Engine) loadRef(kind resourceKind, fromCanonical, source string) (Resource, error) {
	res, err := e.load(kind, e.backend.Join(fromCanonical, source))
	if err != nil {
		return nil, err
	}
	e.cache.AddReference(fromCanonical, res.Path())
	return res, nil
}
