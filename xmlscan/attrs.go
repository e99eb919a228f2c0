package xmlscan

import (
	"encoding/xml"
	"fmt"
	"strconv"
)

// Schema declares the attributes a tag may carry.
type Schema struct {
	Required []string
	Optional []string
}

// Attrs holds the schema-checked attributes of one start element.
type Attrs struct {
	values map[string]string
	cur    *Cursor
}

// Attributes classifies the attributes of el against schema. Unknown
// attributes are reported and dropped, duplicates are reported and the first
// value kept, and a missing required attribute is a fatal error.
func (c *Cursor) Attributes(el xml.StartElement, schema Schema) (Attrs, error) {
	declared := make(map[string]struct{}, len(schema.Required)+len(schema.Optional))
	for _, name := range schema.Required {
		declared[name] = struct{}{}
	}
	for _, name := range schema.Optional {
		declared[name] = struct{}{}
	}

	values := make(map[string]string, len(el.Attr))
	for _, attr := range el.Attr {
		name := attr.Name.Local
		if attr.Name.Space == "xmlns" || name == "xmlns" {
			continue
		}
		if _, ok := declared[name]; !ok {
			c.Warnf("ignoring unknown attribute %q on <%v>", name, el.Name.Local)
			continue
		}
		if _, dup := values[name]; dup {
			c.Warnf("duplicate attribute %q on <%v>, keeping first value", name, el.Name.Local)
			continue
		}
		values[name] = attr.Value
	}

	for _, name := range schema.Required {
		if _, ok := values[name]; !ok {
			return Attrs{}, c.fail(fmt.Errorf("%w: %q on <%v>", ErrMissingAttribute, name, el.Name.Local))
		}
	}
	return Attrs{values: values, cur: c}, nil
}

// Has reports whether the attribute was present.
func (a Attrs) Has(name string) bool {
	_, ok := a.values[name]
	return ok
}

// String returns the attribute value, or def if absent.
func (a Attrs) String(name, def string) string {
	if value, ok := a.values[name]; ok {
		return value
	}
	return def
}

func (a Attrs) badValue(name, raw string, err error) error {
	return a.cur.fail(fmt.Errorf("%w: %v=%q: %v", ErrBadValue, name, raw, err))
}

// Int returns the attribute parsed as an integer, or def if absent.
func (a Attrs) Int(name string, def int) (int, error) {
	raw, ok := a.values[name]
	if !ok {
		return def, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, a.badValue(name, raw, err)
	}
	return value, nil
}

// Uint32 returns the attribute parsed as an unsigned 32-bit integer, or def
// if absent.
func (a Attrs) Uint32(name string, def uint32) (uint32, error) {
	raw, ok := a.values[name]
	if !ok {
		return def, nil
	}
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, a.badValue(name, raw, err)
	}
	return uint32(value), nil
}

// Float returns the attribute parsed as a float, or def if absent.
func (a Attrs) Float(name string, def float64) (float64, error) {
	raw, ok := a.values[name]
	if !ok {
		return def, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, a.badValue(name, raw, err)
	}
	return value, nil
}

// Bool returns the attribute parsed as "0"/"1"/"false"/"true", or def if
// absent.
func (a Attrs) Bool(name string, def bool) (bool, error) {
	raw, ok := a.values[name]
	if !ok {
		return def, nil
	}
	switch raw {
	case "0", "false":
		return false, nil
	case "1", "true":
		return true, nil
	}
	return false, a.badValue(name, raw, strconv.ErrSyntax)
}
