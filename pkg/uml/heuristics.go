package uml

import (
	"strings"

	"github.com/matzehuels/umldraw/pkg/source/python"
)

// TypePair is the two-part type label of an attribute. Primary describes the
// syntactic shape of the assigning expression; Secondary, when non-empty,
// names a concrete type or constructor.
type TypePair struct {
	Primary   string
	Secondary string
}

// InferAssignType derives the type pair for the right-hand side of a plain
// assignment. The second result reports whether value is a call to a bare
// identifier, the shape that records a relation to the callee.
func InferAssignType(value *python.Expr) (TypePair, bool) {
	if value == nil {
		return TypePair{}, false
	}
	tp := TypePair{Primary: value.Kind}
	switch value.Shape {
	case python.ShapeCall:
		if value.Func != nil && value.Func.Shape == python.ShapeName {
			tp.Secondary = value.Func.Name
			return tp, true
		}
	case python.ShapeConstant:
		tp.Secondary = value.LiteralType
	case python.ShapeSubscript:
		tp.Secondary = subscriptLabel(value)
	}
	return tp, false
}

// InferAnnotationType derives the type pair for an annotation. For
// "Base[Arg]" it is (Base, Arg); a multi-argument subscript reports its
// argument as a tuple, the way Python parses "Dict[str, int]". Any other
// annotation reports itself as primary with no secondary.
func InferAnnotationType(annotation *python.Expr) TypePair {
	if annotation == nil {
		return TypePair{}
	}
	if annotation.Shape != python.ShapeSubscript {
		return TypePair{Primary: annotation.NameOrKind()}
	}
	tp := TypePair{Primary: annotation.Base.NameOrKind()}
	switch len(annotation.Args) {
	case 0:
	case 1:
		tp.Secondary = annotation.Args[0].NameOrKind()
	default:
		tp.Secondary = "Tuple"
	}
	return tp
}

// ReturnTypeLabel renders a method's return annotation. A missing annotation
// yields NoneType.
func ReturnTypeLabel(returns *python.Expr) string {
	if returns == nil {
		return NoneType
	}
	switch returns.Shape {
	case python.ShapeName:
		return returns.Name
	case python.ShapeSubscript:
		if label := subscriptLabel(returns); label != "" {
			return label
		}
		return returns.Base.NameOrKind()
	case python.ShapeConstant:
		return returns.Literal
	}
	return returns.Kind
}

// subscriptLabel renders "Tuple[A, B]" for a Tuple subscript and the base
// name for any other subscript. It returns "" when the base is not a bare
// identifier.
func subscriptLabel(e *python.Expr) string {
	if e.Base == nil || e.Base.Shape != python.ShapeName {
		return ""
	}
	if e.Base.Name != "Tuple" {
		return e.Base.Name
	}
	names := make([]string, len(e.Args))
	for i, arg := range e.Args {
		names[i] = arg.NameOrKind()
	}
	return "Tuple[" + strings.Join(names, ", ") + "]"
}
