package uml

import (
	"github.com/matzehuels/umldraw/pkg/source/python"
)

const (
	constructorName = "__init__"
	receiverName    = "self"
)

// ExtractOption configures an [Extractor].
type ExtractOption func(*Extractor)

// WithDocs enables capturing method docstrings.
func WithDocs(enabled bool) ExtractOption {
	return func(e *Extractor) { e.docs = enabled }
}

// WithIDGenerator sets the id source. The default is [UUIDGenerator].
func WithIDGenerator(ids IDGenerator) ExtractOption {
	return func(e *Extractor) {
		if ids != nil {
			e.ids = ids
		}
	}
}

// Extractor builds a [Model] from a parsed module.
type Extractor struct {
	docs bool
	ids  IDGenerator
}

// NewExtractor returns an extractor with the given options applied.
func NewExtractor(opts ...ExtractOption) *Extractor {
	e := &Extractor{ids: UUIDGenerator{}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract builds one class record per class definition in mod, in source
// order. Classes sharing a name are kept as separate records.
func (e *Extractor) Extract(mod *python.Module) *Model {
	m := &Model{}
	if mod == nil {
		return m
	}
	for _, def := range mod.Classes {
		m.Classes = append(m.Classes, e.extractClass(def))
	}
	return m
}

func (e *Extractor) extractClass(def *python.ClassDef) *Class {
	var bases []string
	for _, b := range def.Bases {
		if b.Shape == python.ShapeName {
			bases = append(bases, b.Name)
		}
	}
	c := NewClass(def.Name, bases, e.ids)

	for _, stmt := range def.Body {
		switch s := stmt.(type) {
		case *python.Assign:
			e.assign(c, s, Aggregation)
		case *python.AnnAssign:
			e.annAssign(c, s, Aggregation)
		case *python.FunctionDef:
			if s.Name == constructorName {
				e.constructor(c, s)
				continue
			}
			e.method(c, s)
		}
	}
	return c
}

func (e *Extractor) constructor(c *Class, fn *python.FunctionDef) {
	for _, stmt := range fn.Body {
		switch s := stmt.(type) {
		case *python.Assign:
			e.assign(c, s, Composition)
		case *python.AnnAssign:
			e.annAssign(c, s, Composition)
		}
	}
}

func (e *Extractor) assign(c *Class, s *python.Assign, kind RelationKind) {
	for _, target := range s.Targets {
		name, ok := target.SelfAttr()
		if !ok {
			continue
		}
		tp, isCall := InferAssignType(s.Value)
		if isCall {
			c.AddRelation(kind, tp.Secondary, name)
		}
		c.SetAttribute(name, tp.Primary, tp.Secondary)
	}
}

// annAssign records an annotated attribute. Unlike plain assignment, every
// annotated attribute records a relation: to the annotation's argument when
// it has one, otherwise to the annotation itself.
func (e *Extractor) annAssign(c *Class, s *python.AnnAssign, kind RelationKind) {
	name, ok := s.Target.SelfAttr()
	if !ok {
		return
	}
	tp := InferAnnotationType(s.Annotation)
	c.SetAttribute(name, tp.Primary, tp.Secondary)

	target := tp.Secondary
	if target == "" {
		target = tp.Primary
	}
	c.AddRelation(kind, target, name)
}

func (e *Extractor) method(c *Class, fn *python.FunctionDef) {
	params := make([]string, 0, len(fn.Params))
	for _, p := range fn.Params {
		if p != receiverName {
			params = append(params, p)
		}
	}
	var doc string
	if e.docs {
		doc = fn.Doc
	}
	m := c.AddMethod(fn.Name, params, ReturnTypeLabel(fn.Returns), doc)
	m.Async = fn.Async
}
