package ast

import "gleamls/internal/types"

// Located classifies the smallest syntactic entity enclosing a byte
// offset. The set of implementations is closed; query handlers switch over
// it exhaustively.
type Located interface {
	locatedNode()
}

type LocatedExpression struct{ Expression Expression }
type LocatedPattern struct{ Pattern Pattern }
type LocatedStatement struct{ Statement Statement }
type LocatedFunctionBody struct{ Function *Function }
type LocatedArgument struct{ Argument *Argument }
type LocatedAnnotation struct {
	Location Span
	Type     types.Type
}
type LocatedUnqualifiedImport struct{ Import *UnqualifiedImport }
type LocatedModuleStatement struct{ Definition Definition }

func (LocatedExpression) locatedNode()        {}
func (LocatedPattern) locatedNode()           {}
func (LocatedStatement) locatedNode()         {}
func (LocatedFunctionBody) locatedNode()      {}
func (LocatedArgument) locatedNode()          {}
func (LocatedAnnotation) locatedNode()        {}
func (LocatedUnqualifiedImport) locatedNode() {}
func (LocatedModuleStatement) locatedNode()   {}

// FindNode resolves a byte offset to the smallest enclosing node, or nil
// when the offset falls outside every definition's span.
func (m *Module) FindNode(offset int) Located {
	for _, definition := range m.Definitions {
		if !FullSpan(definition).Contains(offset) {
			continue
		}
		return findInDefinition(definition, offset)
	}
	return nil
}

func findInDefinition(definition Definition, offset int) Located {
	switch d := definition.(type) {
	case *Function:
		return findInFunction(d, offset)

	case *Import:
		for _, unqualified := range d.Unqualified {
			if unqualified.Location.Contains(offset) {
				return LocatedUnqualifiedImport{Import: unqualified}
			}
		}
		return LocatedModuleStatement{Definition: d}

	default:
		return LocatedModuleStatement{Definition: definition}
	}
}

func findInFunction(fn *Function, offset int) Located {
	for _, arg := range fn.Arguments {
		if !arg.Location.Contains(offset) {
			continue
		}
		if arg.AnnotationSpan != nil && arg.AnnotationSpan.Contains(offset) {
			return LocatedAnnotation{Location: *arg.AnnotationSpan, Type: arg.Type}
		}
		return LocatedArgument{Argument: arg}
	}

	if fn.ReturnAnnotation != nil && fn.ReturnAnnotation.Contains(offset) {
		return LocatedAnnotation{Location: *fn.ReturnAnnotation, Type: fn.ReturnType}
	}

	for _, statement := range fn.Body {
		if !statement.StmtSpan().Contains(offset) {
			continue
		}
		return findInStatement(statement, offset)
	}

	if fn.BodySpan.Contains(offset) {
		return LocatedFunctionBody{Function: fn}
	}
	return LocatedModuleStatement{Definition: fn}
}

func findInStatement(statement Statement, offset int) Located {
	switch s := statement.(type) {
	case *ExpressionStatement:
		return findInExpression(s.Expression, offset)

	case *Assignment:
		if s.Pattern.PatternSpan().Contains(offset) {
			return LocatedPattern{Pattern: s.Pattern}
		}
		if s.Value.ExprSpan().Contains(offset) {
			return findInExpression(s.Value, offset)
		}
		return LocatedStatement{Statement: s}
	}
	return LocatedStatement{Statement: statement}
}

func findInExpression(expression Expression, offset int) Located {
	if call, ok := expression.(*Call); ok {
		if call.Fun.ExprSpan().Contains(offset) {
			return findInExpression(call.Fun, offset)
		}
		for _, arg := range call.Args {
			if arg.ExprSpan().Contains(offset) {
				return findInExpression(arg, offset)
			}
		}
	}
	return LocatedExpression{Expression: expression}
}

// DefinitionLocation points at a node's definition. An empty Module means
// the definition lives in the module the node itself came from.
type DefinitionLocation struct {
	Module string
	Span   Span
}

// LocatedDefinition resolves the Located node to the place it was defined,
// consulting the importable-module table for cross-module nodes. Kinds
// with no meaningful target return nil.
func LocatedDefinition(node Located, importable map[string]*ModuleInterface) *DefinitionLocation {
	switch n := node.(type) {
	case LocatedExpression:
		return expressionDefinition(n.Expression)

	case LocatedStatement:
		if s, ok := n.Statement.(*ExpressionStatement); ok {
			return expressionDefinition(s.Expression)
		}
		return nil

	case LocatedPattern:
		if p, ok := n.Pattern.(*PatternConstructor); ok {
			return variantDefinition(&p.Constructor.Variant)
		}
		return nil

	case LocatedModuleStatement:
		if imported, ok := n.Definition.(*Import); ok {
			return &DefinitionLocation{Module: imported.Module}
		}
		return nil

	case LocatedUnqualifiedImport:
		iface, ok := importable[n.Import.Module]
		if !ok {
			return nil
		}
		if n.Import.IsType {
			if t, ok := iface.Types[n.Import.Name]; ok {
				return &DefinitionLocation{Module: n.Import.Module, Span: t.Location}
			}
			return nil
		}
		if v, ok := iface.Values[n.Import.Name]; ok {
			return &DefinitionLocation{Module: n.Import.Module, Span: v.Variant.Span}
		}
		return nil

	case LocatedAnnotation:
		named, ok := n.Type.(*types.Named)
		if !ok {
			return nil
		}
		iface, ok := importable[named.Module]
		if !ok {
			return nil
		}
		if t, ok := iface.Types[named.Name]; ok {
			return &DefinitionLocation{Module: named.Module, Span: t.Location}
		}
		return nil

	case LocatedFunctionBody, LocatedArgument:
		return nil
	}
	return nil
}

func expressionDefinition(expression Expression) *DefinitionLocation {
	switch e := expression.(type) {
	case *Var:
		return variantDefinition(&e.Constructor.Variant)
	case *ModuleSelect:
		return &DefinitionLocation{Module: e.TargetModule, Span: e.DefinitionSpan}
	case *Call:
		return expressionDefinition(e.Fun)
	}
	return nil
}

func variantDefinition(variant *ValueVariant) *DefinitionLocation {
	return &DefinitionLocation{Module: variant.Module, Span: variant.Span}
}

// ExpressionDocumentation returns documentation attached to the value the
// expression refers to, if any.
func ExpressionDocumentation(expression Expression) string {
	switch e := expression.(type) {
	case *Var:
		return e.Constructor.Documentation
	case *ModuleSelect:
		return e.Documentation
	}
	return ""
}

// QualifiedName reports the (module, member) pair an expression refers to
// when it names an importable value of another module.
func QualifiedName(expression Expression) (module, name string, ok bool) {
	switch e := expression.(type) {
	case *Var:
		if !e.Constructor.Public {
			return "", "", false
		}
		switch e.Constructor.Variant.Kind {
		case VariantModuleFn, VariantModuleConstant:
			return e.Constructor.Variant.Module, e.Name, true
		}
		return "", "", false

	case *ModuleSelect:
		return e.TargetModule, e.Label, true
	}
	return "", "", false
}
