// Package uml extracts a class model from parsed Python source.
//
// A [Model] holds one [Class] per class definition. Each class carries its
// base class names, typed attributes, method signatures and the relations it
// declares to other classes by name. Relations are resolved to concrete
// classes only when a diagram is rendered.
//
// # Type Heuristics
//
// Attribute types are inferred from syntax alone and reported as a pair: the
// primary part names the shape of the assigning expression ("Call",
// "Constant", "Subscript", ...) and the optional secondary part names a
// concrete type when one can be read off the expression:
//
//	self.owner = Person()      -> owner : Call, Person
//	self.label = "x"           -> label : Constant, str
//	self.pair = Tuple[int, str] -> pair : Subscript, Tuple[int, str]
//	self.items: List[Task] = [] -> items : List, Task
//
// # Relations
//
// Assignments inside __init__ record composition relations; assignments in
// the class body record aggregation. Plain assignments record a relation only
// when the value is a call to a bare name. Annotated assignments always
// record one.
//
// # Identifiers
//
// Every class, attribute, method and relation gets an id from an
// [IDGenerator]. Child ids are prefixed with their class id.
package uml
