package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/umldraw/pkg/render/drawio"
	"github.com/matzehuels/umldraw/pkg/uml"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Members lists attributes and methods inside each node.
	Members bool
	// Inheritance draws edges from classes to their bases.
	Inheritance bool
}

// ToDOT converts a class model to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG].
func ToDOT(m *uml.Model, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=record, fontname=\"Helvetica\", fontsize=12];\n")
	buf.WriteString("  edge [fontname=\"Helvetica\", fontsize=10];\n")
	buf.WriteString("\n")

	for _, c := range m.Classes {
		fmt.Fprintf(&buf, "  %s [label=%s];\n", quote(c.ID), quote(fmtLabel(c, opts.Members)))
	}

	names := make(map[string]string, len(m.Classes))
	for _, c := range m.Classes {
		if _, ok := names[c.Name]; !ok {
			names[c.Name] = c.ID
		}
	}

	buf.WriteString("\n")
	if opts.Inheritance {
		for _, c := range m.Classes {
			for _, base := range c.Bases {
				if id, ok := names[base]; ok {
					fmt.Fprintf(&buf, "  %s -> %s [arrowhead=empty];\n", quote(c.ID), quote(id))
				}
			}
		}
	}

	owners := attributeOwners(m)
	edges, _ := drawio.Resolve(m)
	for _, e := range edges {
		from := e.Source
		if owner, ok := owners[from]; ok {
			from = owner
		}
		fmt.Fprintf(&buf, "  %s -> %s [%s];\n", quote(from), quote(e.Target), edgeAttrs(e.Kind))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// attributeOwners maps attribute ids to their class id; composition edges
// start at an attribute, which has no node of its own here.
func attributeOwners(m *uml.Model) map[string]string {
	owners := make(map[string]string)
	for _, c := range m.Classes {
		for _, a := range c.Attributes.All() {
			owners[a.ID] = c.ID
		}
	}
	return owners
}

func edgeAttrs(kind uml.RelationKind) string {
	if kind == uml.Aggregation {
		return `style=dashed, dir=back, arrowtail=odiamond`
	}
	return `dir=back, arrowtail=diamond`
}

func fmtLabel(c *uml.Class, members bool) string {
	name := escapeRecord(c.Name)
	if !members {
		return name
	}

	var attrs, methods strings.Builder
	for _, a := range c.Attributes.All() {
		attrs.WriteString(escapeRecord(a.Label()))
		attrs.WriteString(`\l`)
	}
	for _, m := range c.Methods {
		methods.WriteString(escapeRecord(m.Label()))
		methods.WriteString(`\l`)
	}
	return "{" + name + "|" + attrs.String() + "|" + methods.String() + "}"
}

var recordSpecial = strings.NewReplacer(
	`\`, `\\`,
	`{`, `\{`,
	`}`, `\}`,
	`|`, `\|`,
	`<`, `\<`,
	`>`, `\>`,
)

// quote wraps s as a DOT string. Backslashes are left alone so record
// escapes and line breaks reach Graphviz intact.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

// escapeRecord escapes characters with meaning in record labels.
func escapeRecord(s string) string {
	return recordSpecial.Replace(s)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the SVG scales with its
// container instead of Graphviz's point-based size.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
