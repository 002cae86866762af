package pipeline

import (
	"github.com/matzehuels/umldraw/pkg/render/drawio"
	"github.com/matzehuels/umldraw/pkg/uml"
)

// Plan is the layout of a model together with the relations that could and
// could not be drawn.
type Plan struct {
	Layout      drawio.Layout
	Edges       []drawio.Edge
	Diagnostics []drawio.Diagnostic
}

// ComputePlan lays out the classes of m and resolves their relations.
func ComputePlan(m *uml.Model, opts Options) Plan {
	edges, diags := drawio.Resolve(m)
	return Plan{
		Layout:      drawio.ComputeLayout(m, opts.Layout),
		Edges:       edges,
		Diagnostics: diags,
	}
}
