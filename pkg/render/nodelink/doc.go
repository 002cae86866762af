// Package nodelink renders a class model as a Graphviz node-link diagram.
//
// # Overview
//
// This package is a preview companion to the draw.io output: each class
// becomes a record-shaped node listing its attributes and methods, and
// Graphviz takes care of placement. Unlike the draw.io layout, which puts
// every class on one row, Graphviz ranks classes by their relations, which
// reads better for larger files.
//
// # Usage
//
// Convert a model to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(model, nodelink.Options{Inheritance: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Members: When true, nodes list attributes and methods; otherwise only
//     the class name is shown.
//   - Inheritance: When true, edges to base classes defined in the same file
//     are drawn with hollow arrowheads.
//
// # Edges
//
// Relations are resolved with the same rules as the draw.io renderer, so a
// relation missing from one output is missing from the other. Aggregation
// edges are dashed with an open diamond; composition edges are solid with a
// filled diamond.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering, so no Graphviz installation is required.
package nodelink
