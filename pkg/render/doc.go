// Package render groups the diagram renderers for extracted class models.
//
// # Overview
//
// Two renderers consume a [uml.Model]:
//
//   - [drawio]: the primary output, a draw.io document with one UML class box
//     per class laid out on a single row, editable in the draw.io desktop or
//     web application.
//   - [nodelink]: a Graphviz preview (DOT source or SVG) that lets Graphviz
//     rank and route the classes.
//
// Both resolve relations with [drawio.Resolve], so they agree on which edges
// exist.
//
//	res, err := drawio.Render(model)
//	dot := nodelink.ToDOT(model, nodelink.Options{Members: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [uml.Model]: github.com/matzehuels/umldraw/pkg/uml
// [drawio]: github.com/matzehuels/umldraw/pkg/render/drawio
// [drawio.Resolve]: github.com/matzehuels/umldraw/pkg/render/drawio
// [nodelink]: github.com/matzehuels/umldraw/pkg/render/nodelink
package render
