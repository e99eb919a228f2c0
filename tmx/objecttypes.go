package tmx

// ObjectType is a named default-property bundle applied as the
// lowest-priority tier to objects and tiles whose type name matches.
type ObjectType struct {
	Name  string
	Color Color
	Props Properties
}

// ObjectTypes indexes object types by name.
type ObjectTypes map[string]*ObjectType

// defaults returns the default properties for a type name, nil if unknown.
func (t ObjectTypes) defaults(name string) Properties {
	if name == "" {
		return nil
	}
	if objectType, ok := t[name]; ok {
		return objectType.Props
	}
	return nil
}
