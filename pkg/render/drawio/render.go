package drawio

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/umldraw/pkg/uml"
)

// Option configures rendering via [Render].
type Option func(*renderer)

type renderer struct {
	layout   Options
	document DocumentOptions
}

// WithLayout overrides the box metrics.
func WithLayout(o Options) Option { return func(r *renderer) { r.layout = o } }

// WithDocument overrides the <mxfile> header values.
func WithDocument(d DocumentOptions) Option { return func(r *renderer) { r.document = d } }

// Result is a rendered diagram together with the intermediate layout and the
// relations that could not be drawn.
type Result struct {
	Data        []byte
	Layout      Layout
	Edges       []Edge
	Diagnostics []Diagnostic
}

// Render lays out m, resolves its relations and serializes the diagram as a
// draw.io document. Unresolvable relations do not fail the render; they are
// reported in Result.Diagnostics.
func Render(m *uml.Model, opts ...Option) (*Result, error) {
	r := renderer{layout: DefaultOptions(), document: DefaultDocumentOptions()}
	for _, opt := range opts {
		opt(&r)
	}

	l := ComputeLayout(m, r.layout)
	edges, diags := Resolve(m)

	data, err := Encode(l, edges, r.document)
	if err != nil {
		return nil, err
	}

	return &Result{
		Data:        data,
		Layout:      l,
		Edges:       edges,
		Diagnostics: diags,
	}, nil
}

// Encode serializes an already computed layout and its edges. Edges must
// reference ids present in the layout; Encode does not check.
func Encode(l Layout, edges []Edge, opts DocumentOptions) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(Header)
	if err := xml.NewEncoder(&buf).Encode(buildDocument(l, edges, opts)); err != nil {
		return nil, fmt.Errorf("encode drawio: %w", err)
	}
	return buf.Bytes(), nil
}
