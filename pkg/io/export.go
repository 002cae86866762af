package io

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/umldraw/pkg/uml"
)

type model struct {
	Classes []class `json:"classes"`
}

type class struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Bases      []string    `json:"bases,omitempty"`
	Attributes []attribute `json:"attributes,omitempty"`
	Methods    []method    `json:"methods,omitempty"`
	Relations  []relation  `json:"relations,omitempty"`
}

type attribute struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Primary   string `json:"primary"`
	Secondary string `json:"secondary,omitempty"`
}

type method struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Params  []string `json:"params"`
	Returns string   `json:"returns"`
	Doc     string   `json:"doc,omitempty"`
	Async   bool     `json:"async,omitempty"`
}

type relation struct {
	ID     string `json:"id"`
	Kind   string `json:"kind"`
	Target string `json:"target"`
	Source string `json:"source,omitempty"`
}

// WriteJSON encodes a class model as JSON and writes it to w.
// Classes, attributes, methods and relations keep their model order and ids.
// This format can be re-imported with [ReadJSON].
func WriteJSON(m *uml.Model, w io.Writer) error {
	out := model{Classes: make([]class, len(m.Classes))}

	for i, c := range m.Classes {
		cl := class{ID: c.ID, Name: c.Name, Bases: c.Bases}
		for _, a := range c.Attributes.All() {
			cl.Attributes = append(cl.Attributes, attribute{
				ID: a.ID, Name: a.Name, Primary: a.Primary, Secondary: a.Secondary,
			})
		}
		for _, fn := range c.Methods {
			params := fn.Params
			if params == nil {
				params = []string{}
			}
			cl.Methods = append(cl.Methods, method{
				ID: fn.ID, Name: fn.Name, Params: params, Returns: fn.Returns, Doc: fn.Doc, Async: fn.Async,
			})
		}
		for _, r := range c.Relations {
			cl.Relations = append(cl.Relations, relation{
				ID: r.ID, Kind: string(r.Kind), Target: r.Target, Source: r.Source,
			})
		}
		out.Classes[i] = cl
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
