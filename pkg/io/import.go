package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/umldraw/pkg/errors"
	"github.com/matzehuels/umldraw/pkg/uml"
)

// ReadJSON decodes a class model written by [WriteJSON].
//
// Each class must have an "id" and a "name". Class and attribute names must
// be identifiers, and attribute names must be unique within a class. Relation kinds are taken as written: an unknown kind
// survives the import and is reported when the model is rendered, exactly as
// it would be for a freshly extracted model.
//
// Classes in the returned model mint ids for newly added elements from a
// [uml.UUIDGenerator]. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*uml.Model, error) {
	var data model
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	m := &uml.Model{Classes: make([]*uml.Class, 0, len(data.Classes))}
	ids := uml.UUIDGenerator{}

	for i, cl := range data.Classes {
		if cl.ID == "" || cl.Name == "" {
			return nil, fmt.Errorf("class %d: missing id or name", i)
		}
		if err := errors.ValidateIdentifier(cl.Name); err != nil {
			return nil, fmt.Errorf("class %d: %w", i, err)
		}
		c := uml.RestoreClass(cl.ID, cl.Name, cl.Bases, ids)

		for _, a := range cl.Attributes {
			if err := errors.ValidateIdentifier(a.Name); err != nil {
				return nil, fmt.Errorf("class %s: %w", cl.Name, err)
			}
			attr := &uml.Attribute{ID: a.ID, Name: a.Name, Primary: a.Primary, Secondary: a.Secondary}
			if !c.Attributes.Add(attr) {
				return nil, fmt.Errorf("class %s: duplicate attribute %q", cl.Name, a.Name)
			}
		}
		for _, fn := range cl.Methods {
			c.Methods = append(c.Methods, &uml.Method{
				ID: fn.ID, Name: fn.Name, Params: fn.Params, Returns: fn.Returns, Doc: fn.Doc, Async: fn.Async,
			})
		}
		for _, rel := range cl.Relations {
			c.Relations = append(c.Relations, &uml.Relation{
				ID: rel.ID, Kind: uml.RelationKind(rel.Kind), Target: rel.Target, Source: rel.Source,
			})
		}
		m.Classes = append(m.Classes, c)
	}
	return m, nil
}

// ImportJSON reads a class model from a JSON file at path.
// This is a convenience wrapper around [ReadJSON] for file-based input.
func ImportJSON(path string) (*uml.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
