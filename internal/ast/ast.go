// Package ast describes the type-checked syntax tree the engine queries.
// Trees are produced by the compiler pipeline and are immutable once built;
// the engine only ever holds read-only references into them.
package ast

import "gleamls/internal/types"

// NoDoc marks a definition without attached documentation.
const NoDoc = -1

// Module is the type-checked tree for one source file.
type Module struct {
	Name        string
	Definitions []Definition

	// UnusedImports is computed during type checking and drives the
	// remove-unused-imports code action.
	UnusedImports []Span
}

// Definition is a module-level statement. The set of implementations is
// closed: Function, TypeAlias, CustomType, Import and ModuleConstant.
type Definition interface {
	definitionNode()
	// Location is the definition's own span, excluding documentation and,
	// for functions and custom types, excluding the body.
	DefLocation() Span
}

// Function is a module-level function definition.
type Function struct {
	Name     string
	NameSpan Span
	// Location spans the head, from `pub`/`fn` to the return annotation.
	Location Span
	// EndOffset is the byte offset just past the closing brace of the body.
	EndOffset     int
	DocStart      int // NoDoc when absent
	Documentation string
	Deprecated    bool

	Arguments        []*Argument
	ReturnType       types.Type
	ReturnAnnotation *Span
	Body             []Statement
	BodySpan         Span
}

// Argument is one function parameter.
type Argument struct {
	Name     string
	Location Span
	Type     types.Type
	// AnnotationSpan covers the written type annotation, when present.
	AnnotationSpan *Span
}

// TypeAlias is a `type Name = Other` definition.
type TypeAlias struct {
	Alias         string
	AliasSpan     Span
	Location      Span
	DocStart      int
	Documentation string
	Deprecated    bool
	Type          types.Type
}

// CustomType is a custom type definition with its constructors.
type CustomType struct {
	Name     string
	NameSpan Span
	// Location spans from `pub`/`type` to the end of the name.
	Location Span
	// EndOffset is the byte offset just past the last constructor.
	EndOffset     int
	DocStart      int
	Documentation string
	Deprecated    bool
	Constructors  []*RecordConstructor
}

// RecordConstructor is one variant of a custom type.
type RecordConstructor struct {
	Name string
	// Location spans just the constructor's name.
	Location      Span
	DocStart      int
	Documentation string
	Arguments     []*RecordConstructorArg
}

// RecordConstructorArg is one argument of a record constructor. Label is
// empty for positional arguments.
type RecordConstructorArg struct {
	Label         string
	LabelSpan     *Span
	Location      Span
	DocStart      int
	Documentation string
	Type          types.Type
}

// Import is an `import mod/name` statement.
type Import struct {
	Location Span
	// Module is the imported module's name, e.g. "gleam/list".
	Module string
	// Package is the dependency the module belongs to, e.g. "gleam_stdlib".
	Package     string
	AsName      string
	Unqualified []*UnqualifiedImport
}

// UnqualifiedImport is one `.{name}` member of an import statement.
type UnqualifiedImport struct {
	Name string
	// Module is the name of the module the member is imported from.
	Module   string
	IsType   bool
	Location Span
}

// ModuleConstant is a `const name = value` definition.
type ModuleConstant struct {
	Name string
	// Location spans just the constant's name.
	Location      Span
	ValueEnd      int // byte offset just past the constant's value
	DocStart      int
	Documentation string
	Deprecated    bool
	Type          types.Type
}

func (*Function) definitionNode()       {}
func (*TypeAlias) definitionNode()      {}
func (*CustomType) definitionNode()     {}
func (*Import) definitionNode()         {}
func (*ModuleConstant) definitionNode() {}

func (f *Function) DefLocation() Span       { return f.Location }
func (t *TypeAlias) DefLocation() Span      { return t.Location }
func (c *CustomType) DefLocation() Span     { return c.Location }
func (i *Import) DefLocation() Span         { return i.Location }
func (m *ModuleConstant) DefLocation() Span { return m.Location }

// FullSpan is the definition's span extended over its documentation and,
// where applicable, its body. Used for outline ranges and node lookup.
func FullSpan(d Definition) Span {
	switch d := d.(type) {
	case *Function:
		return Span{Start: docOr(d.DocStart, d.Location.Start), End: d.EndOffset}
	case *TypeAlias:
		return Span{Start: docOr(d.DocStart, d.Location.Start), End: d.Location.End}
	case *CustomType:
		return Span{Start: docOr(d.DocStart, d.Location.Start), End: d.EndOffset}
	case *Import:
		return d.Location
	case *ModuleConstant:
		return Span{Start: docOr(d.DocStart, d.Location.Start), End: d.ValueEnd}
	}
	return Span{}
}

func docOr(docStart, fallback int) int {
	if docStart == NoDoc {
		return fallback
	}
	return docStart
}
