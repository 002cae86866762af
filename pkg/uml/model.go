package uml

import (
	"fmt"
	"strings"
)

// RelationKind classifies how a class holds a reference to another class.
type RelationKind string

const (
	// Aggregation is recorded for class-body attributes and annotated
	// attributes outside the constructor.
	Aggregation RelationKind = "aggregation"
	// Composition is recorded for attributes assigned in __init__.
	Composition RelationKind = "composition"
)

// Valid reports whether k is one of the two known relation kinds.
func (k RelationKind) Valid() bool {
	return k == Aggregation || k == Composition
}

// NoneType is the return type reported for unannotated methods.
const NoneType = "None"

// Model is the set of classes extracted from one source unit, in source
// order.
type Model struct {
	Classes []*Class
}

// ClassByName returns the first class with the given name.
func (m *Model) ClassByName(name string) (*Class, bool) {
	for _, c := range m.Classes {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// DuplicateNames returns the class names that occur more than once, in order
// of their second occurrence. Duplicates are kept as separate classes.
func (m *Model) DuplicateNames() []string {
	seen := make(map[string]int, len(m.Classes))
	var dups []string
	for _, c := range m.Classes {
		seen[c.Name]++
		if seen[c.Name] == 2 {
			dups = append(dups, c.Name)
		}
	}
	return dups
}

// RelationCount returns the number of relations recorded across all classes.
func (m *Model) RelationCount() int {
	n := 0
	for _, c := range m.Classes {
		n += len(c.Relations)
	}
	return n
}

// Class is one class definition.
type Class struct {
	ID         string
	Name       string
	Bases      []string
	Attributes *AttributeSet
	Methods    []*Method
	Relations  []*Relation

	ids IDGenerator
}

// NewClass creates an empty class whose id, and the ids of everything added
// to it, come from ids.
func NewClass(name string, bases []string, ids IDGenerator) *Class {
	return &Class{
		ID:         "Class_" + ids.Next(),
		Name:       name,
		Bases:      bases,
		Attributes: newAttributeSet(),
		ids:        ids,
	}
}

// RestoreClass recreates a class with a known id, as read back from an
// export. Elements added later still draw their ids from ids.
func RestoreClass(id, name string, bases []string, ids IDGenerator) *Class {
	return &Class{
		ID:         id,
		Name:       name,
		Bases:      bases,
		Attributes: newAttributeSet(),
		ids:        ids,
	}
}

func (c *Class) childID() string {
	return c.ID + "_" + c.ids.Next()
}

// SetAttribute records an attribute type. A new name is appended; an existing
// name keeps its position and id and takes the new types.
func (c *Class) SetAttribute(name, primary, secondary string) *Attribute {
	if a, ok := c.Attributes.Get(name); ok {
		a.Primary = primary
		a.Secondary = secondary
		return a
	}
	a := &Attribute{Name: name, Primary: primary, Secondary: secondary, ID: c.childID()}
	c.Attributes.add(a)
	return a
}

// AddMethod appends a method. Methods with the same name are not merged.
func (c *Class) AddMethod(name string, params []string, returns, doc string) *Method {
	if returns == "" {
		returns = NoneType
	}
	m := &Method{Name: name, Params: params, Returns: returns, Doc: doc, ID: c.childID()}
	c.Methods = append(c.Methods, m)
	return m
}

// AddRelation appends a relation to the class named target. source names the
// attribute the relation starts from, or is empty for the class itself.
func (c *Class) AddRelation(kind RelationKind, target, source string) *Relation {
	r := &Relation{Kind: kind, Target: target, Source: source, ID: c.childID()}
	c.Relations = append(c.Relations, r)
	return r
}

// Attribute is one instance attribute row.
type Attribute struct {
	ID        string
	Name      string
	Primary   string
	Secondary string
}

// Label renders the attribute as shown in the diagram.
func (a *Attribute) Label() string {
	return FormatAttribute(a.Name, a.Primary, a.Secondary)
}

// Method is one method row.
type Method struct {
	ID      string
	Name    string
	Params  []string
	Returns string
	Doc     string
	// Async marks an "async def". The diagram label does not show it.
	Async bool
}

// Label renders the method as shown in the diagram.
func (m *Method) Label() string {
	return FormatMethod(m.Name, m.Params, m.Returns)
}

// Relation is an unresolved reference from a class (or one of its attributes)
// to another class by name.
type Relation struct {
	ID     string
	Kind   RelationKind
	Target string
	Source string
}

func (r *Relation) String() string {
	return fmt.Sprintf("%s with %s (source variable: %s)", r.Kind, r.Target, r.Source)
}

// FormatAttribute renders "name : primary" or "name : primary, secondary".
func FormatAttribute(name, primary, secondary string) string {
	if secondary == "" {
		return name + " : " + primary
	}
	return name + " : " + primary + ", " + secondary
}

// FormatMethod renders "name(a, b): returns".
func FormatMethod(name string, params []string, returns string) string {
	return name + "(" + strings.Join(params, ", ") + "): " + returns
}

// AttributeSet is an insertion-ordered set of attributes keyed by name.
type AttributeSet struct {
	order  []*Attribute
	byName map[string]*Attribute
}

func newAttributeSet() *AttributeSet {
	return &AttributeSet{byName: make(map[string]*Attribute)}
}

func (s *AttributeSet) add(a *Attribute) {
	s.order = append(s.order, a)
	s.byName[a.Name] = a
}

// Add appends a with its id unchanged. It reports false, leaving the set
// untouched, if an attribute of that name already exists.
func (s *AttributeSet) Add(a *Attribute) bool {
	if _, ok := s.byName[a.Name]; ok {
		return false
	}
	s.add(a)
	return true
}

// Get returns the attribute with the given name.
func (s *AttributeSet) Get(name string) (*Attribute, bool) {
	a, ok := s.byName[name]
	return a, ok
}

// Len returns the number of attributes.
func (s *AttributeSet) Len() int { return len(s.order) }

// All returns the attributes in first-assignment order.
func (s *AttributeSet) All() []*Attribute { return s.order }
