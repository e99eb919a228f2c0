package tmx

import (
	"fmt"
	"strconv"

	"github.com/eak1mov/go-libtmx/xmlscan"
)

// readProperties reads a <properties> block into one property tier.
func (p *parser) readProperties() (Properties, error) {
	props := make(Properties)
	for {
		child, err := p.cur.NextChild()
		if err != nil {
			return nil, err
		}
		if child == nil {
			return props, nil
		}
		if child.Name.Local != "property" {
			if err := p.skipUnknown(child, "properties"); err != nil {
				return nil, err
			}
			continue
		}

		attrs, err := p.cur.Attributes(*child, xmlscan.Schema{
			Required: []string{"name"},
			Optional: []string{"type", "value", "propertytype"},
		})
		if err != nil {
			return nil, err
		}

		name := attrs.String("name", "")
		kind := attrs.String("type", "string")
		if kind == "class" {
			p.cur.Warnf("ignoring unsupported class property %q", name)
			if err := p.cur.Skip(); err != nil {
				return nil, err
			}
			continue
		}

		// Multiline string values are stored as element content instead of
		// a value attribute.
		var raw string
		if attrs.Has("value") {
			raw = attrs.String("value", "")
			if err := p.cur.ExpectEmpty("property"); err != nil {
				return nil, err
			}
		} else {
			if raw, err = p.cur.Text(); err != nil {
				return nil, err
			}
		}

		property, err := parseProperty(kind, raw)
		if err != nil {
			return nil, err
		}
		props[name] = property
	}
}

func parseProperty(kind, raw string) (Property, error) {
	switch kind {
	case "string", "":
		return Property{Kind: PropertyString, Value: raw}, nil

	case "int":
		value, err := strconv.Atoi(raw)
		if err != nil {
			return Property{}, fmt.Errorf("libtmx: invalid int property %q: %w", raw, err)
		}
		return Property{Kind: PropertyInt, Value: value}, nil

	case "float":
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Property{}, fmt.Errorf("libtmx: invalid float property %q: %w", raw, err)
		}
		return Property{Kind: PropertyFloat, Value: value}, nil

	case "bool":
		switch raw {
		case "true":
			return Property{Kind: PropertyBool, Value: true}, nil
		case "false":
			return Property{Kind: PropertyBool, Value: false}, nil
		}
		return Property{}, fmt.Errorf("libtmx: invalid bool property %q", raw)

	case "color":
		if raw == "" {
			return Property{Kind: PropertyColor, Value: Color{}}, nil
		}
		color, err := ParseColor(raw)
		if err != nil {
			return Property{}, err
		}
		return Property{Kind: PropertyColor, Value: color}, nil

	case "file":
		return Property{Kind: PropertyFile, Value: raw}, nil

	case "object":
		if raw == "" {
			return Property{Kind: PropertyObject, Value: 0}, nil
		}
		value, err := strconv.Atoi(raw)
		if err != nil {
			return Property{}, fmt.Errorf("libtmx: invalid object property %q: %w", raw, err)
		}
		return Property{Kind: PropertyObject, Value: value}, nil
	}
	return Property{}, fmt.Errorf("%w: property type %q", ErrBadEnum, kind)
}
