// Package pkg holds the libraries behind umldraw, which turns the classes of
// one Python file into a draw.io class diagram.
//
// # Overview
//
// The packages follow the data as it moves through a run:
//
//  1. [source/python] - parse Python with tree-sitter into a small syntax model
//  2. [uml] - extract classes, attributes, methods and relations from it
//  3. [render/drawio] - size and place class boxes, resolve relations, write the document
//  4. [render/nodelink] - Graphviz DOT and SVG previews of the same model
//  5. [io] - JSON export and import of an extracted model
//  6. [pipeline] - options, config files and the staged runner tying it together
//
// Supporting packages are [errors] for coded errors, [observability] for
// pipeline hooks and [buildinfo] for version metadata.
//
// # Architecture
//
//	Python source
//	     ↓
//	[source/python] Parse
//	     ↓
//	[uml] Extractor.Extract  →  [io] WriteJSON
//	     ↓
//	[render/drawio] ComputeLayout + Resolve
//	     ↓
//	draw.io XML, JSON, DOT or SVG
//
// # Quick Start
//
//	import (
//	    "os"
//
//	    "github.com/matzehuels/umldraw/pkg/render/drawio"
//	    "github.com/matzehuels/umldraw/pkg/source/python"
//	    "github.com/matzehuels/umldraw/pkg/uml"
//	)
//
//	src, _ := os.ReadFile("models.py")
//	mod, err := python.Parse(src)
//	if err != nil {
//	    return err
//	}
//	model := uml.NewExtractor(uml.WithDocs(true)).Extract(mod)
//
//	res, err := drawio.Render(model)
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("output.drawio", res.Data, 0o644)
//
// The [pipeline] package wraps these steps with validation, logging and
// hooks; the umldraw command is a thin cobra layer over [pipeline.Runner].
package pkg
