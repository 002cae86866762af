package python

// Shape is the closed set of expression shapes the class extractor
// distinguishes. Everything else collapses into ShapeOther and keeps only its
// kind label.
type Shape int

const (
	ShapeOther Shape = iota
	ShapeCall
	ShapeConstant
	ShapeSubscript
	ShapeName
	ShapeAttribute
)

// String returns the shape name.
func (s Shape) String() string {
	switch s {
	case ShapeCall:
		return "call"
	case ShapeConstant:
		return "constant"
	case ShapeSubscript:
		return "subscript"
	case ShapeName:
		return "name"
	case ShapeAttribute:
		return "attribute"
	default:
		return "other"
	}
}

// Expr is one expression node. Which fields are populated depends on Shape:
//
//   - ShapeCall: Func
//   - ShapeConstant: Literal, LiteralType
//   - ShapeSubscript: Base, Args
//   - ShapeName: Name
//   - ShapeAttribute: Object, Attr
//
// Kind is always set and uses the Python ast vocabulary ("Call", "Constant",
// "Subscript", "Name", "List", "BinOp", ...).
type Expr struct {
	Shape Shape
	Kind  string

	Name string

	Func *Expr

	Base *Expr
	Args []*Expr

	// Literal is the literal's value as Python would print it: string
	// contents without quotes, "None", "True", numbers as written.
	Literal     string
	LiteralType string

	Object *Expr
	Attr   string
}

// IsName reports whether e is the bare identifier name.
func (e *Expr) IsName(name string) bool {
	return e != nil && e.Shape == ShapeName && e.Name == name
}

// NameOrKind returns the identifier for a name expression and the kind label
// for anything else.
func (e *Expr) NameOrKind() string {
	if e == nil {
		return ""
	}
	if e.Shape == ShapeName {
		return e.Name
	}
	return e.Kind
}

// SelfAttr returns the attribute name when e is "self.<attr>".
func (e *Expr) SelfAttr() (string, bool) {
	if e == nil || e.Shape != ShapeAttribute || !e.Object.IsName("self") {
		return "", false
	}
	return e.Attr, true
}

// Stmt is implemented by the statement types the extractor inspects.
type Stmt interface {
	stmt()
}

// Assign is a plain assignment. Chained assignments ("a = b = v") produce a
// single Assign with several targets, left to right.
type Assign struct {
	Targets []*Expr
	Value   *Expr
	Line    int
}

// AnnAssign is an annotated assignment; Value is nil for a bare annotation.
type AnnAssign struct {
	Target     *Expr
	Annotation *Expr
	Value      *Expr
	Line       int
}

// FunctionDef is a function or method definition.
type FunctionDef struct {
	Name string
	// Params lists positional parameter names in order, receiver included.
	Params  []string
	Returns *Expr // nil when unannotated
	Doc     string
	Async   bool
	Body    []Stmt
	Line    int
}

// OtherStmt is any statement the extractor does not look into.
type OtherStmt struct {
	Kind string
	Line int
}

func (*Assign) stmt()      {}
func (*AnnAssign) stmt()   {}
func (*FunctionDef) stmt() {}
func (*OtherStmt) stmt()   {}

// ClassDef is a class definition.
type ClassDef struct {
	Name  string
	Bases []*Expr
	Body  []Stmt
	Line  int
}

// Module is a parsed source file reduced to its class definitions.
type Module struct {
	// Classes holds every class definition in source pre-order, including
	// classes nested in other classes, functions and compound statements.
	Classes []*ClassDef
}
