package drawio

import (
	"fmt"

	"github.com/matzehuels/umldraw/pkg/uml"
)

// Edge is a relation whose endpoints were found in the model.
type Edge struct {
	ID   string
	Kind uml.RelationKind
	// Source is a class id for aggregation and an attribute id for
	// composition.
	Source string
	// Target is always a class id.
	Target string
}

// Diagnostic explains why a relation was left out of the diagram.
type Diagnostic struct {
	Class    string
	Relation uml.Relation
	// Unsupported is set when the relation kind is unknown; otherwise an
	// endpoint could not be found.
	Unsupported bool
}

// String returns a one-line description.
func (d Diagnostic) String() string {
	r := d.Relation
	if d.Unsupported {
		return fmt.Sprintf("relation type %s not supported", r.Kind)
	}
	return fmt.Sprintf("relation %s with %s (source variable: %s) could not be added", r.Kind, r.Target, r.Source)
}

// Resolve maps every relation in m to class and attribute ids. Relations of
// an unknown kind, and relations whose source attribute or target class does
// not exist, are returned as diagnostics instead of edges.
func Resolve(m *uml.Model) ([]Edge, []Diagnostic) {
	var edges []Edge
	var diags []Diagnostic

	for _, c := range m.Classes {
		for _, r := range c.Relations {
			if !r.Kind.Valid() {
				diags = append(diags, Diagnostic{Class: c.Name, Relation: *r, Unsupported: true})
				continue
			}

			source := sourceID(c, r)
			target := ""
			if t, ok := m.ClassByName(r.Target); ok {
				target = t.ID
			}
			if source == "" || target == "" {
				diags = append(diags, Diagnostic{Class: c.Name, Relation: *r})
				continue
			}
			edges = append(edges, Edge{ID: r.ID, Kind: r.Kind, Source: source, Target: target})
		}
	}
	return edges, diags
}

func sourceID(c *uml.Class, r *uml.Relation) string {
	if r.Kind == uml.Aggregation {
		return c.ID
	}
	if a, ok := c.Attributes.Get(r.Source); ok {
		return a.ID
	}
	return ""
}
