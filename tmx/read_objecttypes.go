package tmx

import (
	"github.com/eak1mov/go-libtmx/xmlscan"
)

// readObjectTypes reads an object-types catalog. It is a separate document
// format: property defaults are authored on a "default" attribute and only
// named defaults exist, no multiline bodies.
func (p *parser) readObjectTypes() (ObjectTypes, error) {
	if _, err := p.cur.Root("objecttypes"); err != nil {
		return nil, err
	}

	types := make(ObjectTypes)
	for {
		child, err := p.cur.NextChild()
		if err != nil {
			return nil, err
		}
		if child == nil {
			return types, nil
		}
		if child.Name.Local != "objecttype" {
			if err := p.skipUnknown(child, "objecttypes"); err != nil {
				return nil, err
			}
			continue
		}

		attrs, err := p.cur.Attributes(*child, xmlscan.Schema{
			Required: []string{"name"},
			Optional: []string{"color"},
		})
		if err != nil {
			return nil, err
		}
		objectType := &ObjectType{Name: attrs.String("name", ""), Props: make(Properties)}
		if objectType.Color, err = p.color(attrs, "color", Color{}); err != nil {
			return nil, err
		}
		if err := p.readObjectTypeProps(objectType); err != nil {
			return nil, err
		}
		types[objectType.Name] = objectType
	}
}

func (p *parser) readObjectTypeProps(objectType *ObjectType) error {
	for {
		child, err := p.cur.NextChild()
		if err != nil {
			return err
		}
		if child == nil {
			return nil
		}
		if child.Name.Local != "property" {
			if err := p.skipUnknown(child, "objecttype"); err != nil {
				return err
			}
			continue
		}

		attrs, err := p.cur.Attributes(*child, xmlscan.Schema{
			Required: []string{"name"},
			Optional: []string{"type", "default"},
		})
		if err != nil {
			return err
		}
		name := attrs.String("name", "")
		kind := attrs.String("type", "string")

		// A property without a default still declares its existence; it
		// contributes the type's zero value for its kind.
		property, err := parseProperty(kind, attrs.String("default", defaultRaw(kind)))
		if err != nil {
			return err
		}
		if err := p.cur.ExpectEmpty("property"); err != nil {
			return err
		}
		objectType.Props[name] = property
	}
}

// defaultRaw gives a parseable zero value for each property kind.
func defaultRaw(kind string) string {
	switch kind {
	case "int", "float":
		return "0"
	case "bool":
		return "false"
	}
	return ""
}
