package tmx

import (
	"github.com/eak1mov/go-libtmx/xmlscan"
)

// readTemplate reads a template document: an optional tileset reference
// followed by the prototype object. Template documents carry no version of
// their own, so none is checked.
func (p *parser) readTemplate() (*Template, error) {
	root, err := p.cur.Root("template")
	if err != nil {
		return nil, err
	}
	if _, err := p.cur.Attributes(root, xmlscan.Schema{}); err != nil {
		return nil, err
	}

	template := &Template{resource: resource{path: p.path, engine: p.engine}}
	for {
		child, err := p.cur.NextChild()
		if err != nil {
			return nil, err
		}
		if child == nil {
			break
		}
		switch child.Name.Local {
		case "tileset":
			if err := p.readTilesetRef(*child); err != nil {
				return nil, err
			}
		case "object":
			if template.Object, err = p.readObject(*child); err != nil {
				return nil, err
			}
		default:
			if err := p.skipUnknown(child, "template"); err != nil {
				return nil, err
			}
		}
	}

	if len(p.gids.refs) > 0 {
		template.Tileset = p.gids.refs[0].Tileset
	}
	if template.Object == nil {
		return nil, ErrMissingObject
	}
	return template, nil
}
