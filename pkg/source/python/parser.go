// Package python turns Python source text into the small syntax model the
// class extractor consumes.
//
// Parsing is delegated to tree-sitter and its Python grammar. The resulting
// concrete tree is reduced to a closed set of statement and expression types
// (see [Stmt] and [Shape]) so that callers can switch exhaustively over the
// shapes they care about without inspecting tree-sitter node kinds.
//
// Only what a class diagram needs is kept: class definitions with their base
// expressions, assignments, annotated assignments and method signatures.
// Expressions outside those shapes keep just their kind label, named after
// Python's ast vocabulary ("List", "BinOp", ...).
package python

import (
	"strings"
	"unicode/utf8"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"

	"github.com/matzehuels/umldraw/pkg/errors"
)

// Parse parses src as a Python module and returns every class definition in
// it. Malformed source is rejected with an ErrCodeInvalidSource error that
// wraps an *errors.SourceError locating the first problem; no partial module
// is returned.
func Parse(src []byte) (*Module, error) {
	if !utf8.Valid(src) {
		return nil, errors.New(errors.ErrCodeInvalidSource, "source is not valid UTF-8")
	}

	parser := tree_sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(tree_sitter.NewLanguage(tree_sitter_python.Language())); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load python grammar")
	}

	tree := parser.Parse(src, nil)
	if tree == nil {
		return nil, errors.New(errors.ErrCodeInternal, "tree-sitter returned no tree")
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, errors.Wrap(errors.ErrCodeInvalidSource, locateError(root, src), "parse python source")
	}
	if n := findPython2Statement(root); n != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSource, sourceErrorAt(n, src), "python 2 %s statement", n.Child(0).Kind())
	}

	c := converter{src: src}
	mod := &Module{}
	c.collectClasses(root, mod)
	return mod, nil
}

// locateError finds the first ERROR or MISSING node in pre-order.
func locateError(root *tree_sitter.Node, src []byte) *errors.SourceError {
	var found *tree_sitter.Node
	var visit func(n *tree_sitter.Node)
	visit = func(n *tree_sitter.Node) {
		if found != nil || !n.HasError() && !n.IsMissing() {
			return
		}
		if n.IsError() || n.IsMissing() {
			found = n
			return
		}
		for i := uint(0); i < n.ChildCount(); i++ {
			if child := n.Child(i); child != nil {
				visit(child)
			}
		}
	}
	visit(root)

	if found == nil {
		found = root
	}
	return sourceErrorAt(found, src)
}

// python2Statements are accepted by the grammar for compatibility but are
// syntax errors in Python 3.
var python2Statements = map[string]bool{
	"print_statement": true,
	"exec_statement":  true,
}

// findPython2Statement returns the first Python 2 only statement in
// pre-order, or nil.
func findPython2Statement(n *tree_sitter.Node) *tree_sitter.Node {
	if python2Statements[n.Kind()] {
		return n
	}
	for _, child := range namedChildren(n) {
		if found := findPython2Statement(child); found != nil {
			return found
		}
	}
	return nil
}

func sourceErrorAt(n *tree_sitter.Node, src []byte) *errors.SourceError {
	pos := n.StartPosition()
	near := strings.TrimSpace(n.Utf8Text(src))
	if i := strings.IndexByte(near, '\n'); i >= 0 {
		near = near[:i]
	}
	if len(near) > 40 {
		near = near[:40]
	}
	return &errors.SourceError{Line: int(pos.Row) + 1, Column: int(pos.Column) + 1, Near: near}
}

type converter struct {
	src []byte
}

func (c *converter) text(n *tree_sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Utf8Text(c.src)
}

func line(n *tree_sitter.Node) int {
	return int(n.StartPosition().Row) + 1
}

// namedChildren returns the named children of n without comments.
func namedChildren(n *tree_sitter.Node) []*tree_sitter.Node {
	if n == nil {
		return nil
	}
	out := make([]*tree_sitter.Node, 0, n.NamedChildCount())
	for i := uint(0); i < n.NamedChildCount(); i++ {
		child := n.NamedChild(i)
		if child == nil || child.Kind() == "comment" {
			continue
		}
		out = append(out, child)
	}
	return out
}

func firstNamed(n *tree_sitter.Node) *tree_sitter.Node {
	if kids := namedChildren(n); len(kids) > 0 {
		return kids[0]
	}
	return nil
}

// collectClasses appends every class definition under n in pre-order: a class
// is recorded before the classes nested inside it.
func (c *converter) collectClasses(n *tree_sitter.Node, mod *Module) {
	if n.Kind() == "class_definition" {
		mod.Classes = append(mod.Classes, c.classDef(n))
	}
	for _, child := range namedChildren(n) {
		c.collectClasses(child, mod)
	}
}

func (c *converter) classDef(n *tree_sitter.Node) *ClassDef {
	cls := &ClassDef{
		Name: c.text(n.ChildByFieldName("name")),
		Line: line(n),
	}
	for _, arg := range namedChildren(n.ChildByFieldName("superclasses")) {
		switch arg.Kind() {
		case "keyword_argument", "dictionary_splat":
			continue
		}
		cls.Bases = append(cls.Bases, c.expr(arg))
	}
	cls.Body = c.block(n.ChildByFieldName("body"))
	return cls
}

func (c *converter) block(n *tree_sitter.Node) []Stmt {
	var out []Stmt
	for _, child := range namedChildren(n) {
		out = append(out, c.stmt(child))
	}
	return out
}

func (c *converter) stmt(n *tree_sitter.Node) Stmt {
	switch n.Kind() {
	case "expression_statement":
		if inner := firstNamed(n); inner != nil && inner.Kind() == "assignment" {
			return c.assignment(inner)
		}
	case "function_definition":
		return c.functionDef(n)
	case "decorated_definition":
		if def := n.ChildByFieldName("definition"); def != nil {
			return c.stmt(def)
		}
	}
	return &OtherStmt{Kind: kindLabel(n.Kind()), Line: line(n)}
}

func (c *converter) assignment(n *tree_sitter.Node) Stmt {
	if typ := n.ChildByFieldName("type"); typ != nil {
		return &AnnAssign{
			Target:     c.expr(n.ChildByFieldName("left")),
			Annotation: c.expr(typ),
			Value:      c.expr(n.ChildByFieldName("right")),
			Line:       line(n),
		}
	}

	a := &Assign{Line: line(n)}
	for {
		a.Targets = append(a.Targets, c.expr(n.ChildByFieldName("left")))
		right := n.ChildByFieldName("right")
		if right != nil && right.Kind() == "assignment" && right.ChildByFieldName("type") == nil {
			n = right
			continue
		}
		a.Value = c.expr(right)
		return a
	}
}

func (c *converter) functionDef(n *tree_sitter.Node) *FunctionDef {
	fn := &FunctionDef{
		Name:    c.text(n.ChildByFieldName("name")),
		Params:  c.params(n.ChildByFieldName("parameters")),
		Returns: c.expr(n.ChildByFieldName("return_type")),
		Line:    line(n),
	}
	if first := n.Child(0); first != nil && first.Kind() == "async" {
		fn.Async = true
	}
	body := n.ChildByFieldName("body")
	fn.Body = c.block(body)
	fn.Doc = c.docstring(body)
	return fn
}

// params returns the names Python reports in args.args: positional-only
// parameters, *args, keyword-only parameters and **kwargs are left out.
func (c *converter) params(n *tree_sitter.Node) []string {
	var names []string
	for _, p := range namedChildren(n) {
		switch p.Kind() {
		case "identifier":
			names = append(names, c.text(p))
		case "typed_parameter":
			first := firstNamed(p)
			if first == nil {
				continue
			}
			if first.Kind() != "identifier" {
				return names
			}
			names = append(names, c.text(first))
		case "default_parameter", "typed_default_parameter":
			names = append(names, c.text(p.ChildByFieldName("name")))
		case "positional_separator":
			names = nil
		case "list_splat_pattern", "keyword_separator":
			return names
		}
	}
	return names
}

func (c *converter) docstring(body *tree_sitter.Node) string {
	first := firstNamed(body)
	if first == nil || first.Kind() != "expression_statement" {
		return ""
	}
	lit := firstNamed(first)
	if lit == nil {
		return ""
	}
	e := c.expr(lit)
	if e.Shape != ShapeConstant || e.LiteralType != "str" {
		return ""
	}
	return cleanDoc(e.Literal)
}

// expr converts an expression node. Parentheses and the "type" wrapper used
// for annotations are transparent.
func (c *converter) expr(n *tree_sitter.Node) *Expr {
	if n == nil {
		return nil
	}
	switch n.Kind() {
	case "type", "parenthesized_expression":
		if inner := firstNamed(n); inner != nil {
			return c.expr(inner)
		}
	case "identifier":
		return &Expr{Shape: ShapeName, Kind: "Name", Name: c.text(n)}
	case "call":
		return &Expr{Shape: ShapeCall, Kind: "Call", Func: c.expr(n.ChildByFieldName("function"))}
	case "attribute":
		return &Expr{
			Shape:  ShapeAttribute,
			Kind:   "Attribute",
			Object: c.expr(n.ChildByFieldName("object")),
			Attr:   c.text(n.ChildByFieldName("attribute")),
		}
	case "member_type":
		kids := namedChildren(n)
		if len(kids) >= 2 {
			return &Expr{Shape: ShapeAttribute, Kind: "Attribute", Object: c.expr(kids[0]), Attr: c.text(kids[len(kids)-1])}
		}
	case "subscript":
		e := &Expr{Shape: ShapeSubscript, Kind: "Subscript", Base: c.expr(n.ChildByFieldName("value"))}
		cursor := n.Walk()
		defer cursor.Close()
		for _, arg := range n.ChildrenByFieldName("subscript", cursor) {
			e.Args = append(e.Args, c.expr(&arg))
		}
		return e
	case "generic_type":
		kids := namedChildren(n)
		if len(kids) == 0 {
			break
		}
		e := &Expr{Shape: ShapeSubscript, Kind: "Subscript", Base: c.expr(kids[0])}
		for _, k := range kids[1:] {
			if k.Kind() != "type_parameter" {
				continue
			}
			for _, arg := range namedChildren(k) {
				e.Args = append(e.Args, c.expr(arg))
			}
		}
		return e
	case "string":
		return c.stringLiteral([]*tree_sitter.Node{n})
	case "concatenated_string":
		return c.stringLiteral(namedChildren(n))
	case "integer", "float":
		text := c.text(n)
		typ := n.Kind()
		if typ == "integer" {
			typ = "int"
		}
		if strings.HasSuffix(text, "j") || strings.HasSuffix(text, "J") {
			typ = "complex"
		}
		return &Expr{Shape: ShapeConstant, Kind: "Constant", Literal: text, LiteralType: typ}
	case "true":
		return &Expr{Shape: ShapeConstant, Kind: "Constant", Literal: "True", LiteralType: "bool"}
	case "false":
		return &Expr{Shape: ShapeConstant, Kind: "Constant", Literal: "False", LiteralType: "bool"}
	case "none":
		return &Expr{Shape: ShapeConstant, Kind: "Constant", Literal: "None", LiteralType: "NoneType"}
	case "ellipsis":
		return &Expr{Shape: ShapeConstant, Kind: "Constant", Literal: "Ellipsis", LiteralType: "ellipsis"}
	}
	return &Expr{Shape: ShapeOther, Kind: kindLabel(n.Kind())}
}

// stringLiteral converts one string or the parts of an implicitly
// concatenated string. Any f-string part makes the whole a JoinedStr.
func (c *converter) stringLiteral(parts []*tree_sitter.Node) *Expr {
	var b strings.Builder
	typ := "str"
	for _, part := range parts {
		if part.Kind() != "string" {
			continue
		}
		start := firstChildOfKind(part, "string_start")
		end := firstChildOfKind(part, "string_end")
		prefix := strings.ToLower(c.text(start))
		if strings.Contains(prefix, "f") || strings.Contains(prefix, "t") {
			return &Expr{Shape: ShapeOther, Kind: "JoinedStr"}
		}
		isBytes := strings.Contains(prefix, "b")
		if isBytes {
			typ = "bytes"
		}
		if start != nil && end != nil && end.StartByte() >= start.EndByte() {
			body := string(c.src[start.EndByte():end.StartByte()])
			if !strings.Contains(prefix, "r") {
				body = decodeEscapes(body, isBytes)
			}
			b.WriteString(body)
		}
	}
	return &Expr{Shape: ShapeConstant, Kind: "Constant", Literal: b.String(), LiteralType: typ}
}

func firstChildOfKind(n *tree_sitter.Node, kind string) *tree_sitter.Node {
	for i := uint(0); i < n.ChildCount(); i++ {
		if child := n.Child(i); child != nil && child.Kind() == kind {
			return child
		}
	}
	return nil
}
