// Package types holds the checked type model the engine renders in hover
// text, completion details and symbol outlines. The type checker itself
// lives in the compiler pipeline; this package only describes its output.
package types

// Type is one node of a checked type. The set of implementations is closed.
type Type interface {
	typeNode()
}

// Named is a concrete type such as Int, List(a) or a user-defined type.
type Named struct {
	Name    string
	Module  string // defining module, e.g. "gleam/list"
	Package string // owning package, e.g. "gleam_stdlib"
	Args    []Type
}

// Fn is a function type.
type Fn struct {
	Args   []Type
	Return Type
}

// Var is an unbound type variable.
type Var struct {
	Name string
}

// Tuple is an anonymous product type.
type Tuple struct {
	Elems []Type
}

func (*Named) typeNode() {}
func (*Fn) typeNode()    {}
func (*Var) typeNode()   {}
func (*Tuple) typeNode() {}
