package tmx

import "github.com/eak1mov/go-libtmx/tiered"

// PropertyKind is the declared type of a custom property.
type PropertyKind uint8

const (
	PropertyString PropertyKind = iota
	PropertyInt
	PropertyFloat
	PropertyBool
	PropertyColor
	PropertyFile
	PropertyObject
)

// Property is one typed custom property value. Value holds string, int,
// float64, bool, Color, a file path string or an object ID int depending on
// Kind.
type Property struct {
	Kind  PropertyKind
	Value any
}

// Properties is one tier of custom properties.
type Properties map[string]Property

// PropertyView is the read-only layered view over several Properties tiers,
// highest priority first.
type PropertyView = tiered.View[string, Property]
