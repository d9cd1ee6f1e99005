package ast

import "gleamls/internal/types"

// Statement is one statement inside a function body.
type Statement interface {
	statementNode()
	StmtSpan() Span
}

// ExpressionStatement is a bare expression used as a statement.
type ExpressionStatement struct {
	Expression Expression
}

// Assignment is a `let pattern = value` statement.
type Assignment struct {
	Location Span
	Pattern  Pattern
	Value    Expression
}

func (*ExpressionStatement) statementNode() {}
func (*Assignment) statementNode()          {}

func (s *ExpressionStatement) StmtSpan() Span { return s.Expression.ExprSpan() }
func (s *Assignment) StmtSpan() Span          { return s.Location }

// Expression is a checked expression node.
type Expression interface {
	expressionNode()
	ExprSpan() Span
	Type() types.Type
}

// Var is a reference to a bound name.
type Var struct {
	Location    Span
	Name        string
	Constructor *ValueConstructor
}

// ModuleSelect is a qualified access such as `list.first`.
type ModuleSelect struct {
	Location Span
	// TargetModule is the module the selected member lives in.
	TargetModule string
	Label        string
	// DefinitionSpan locates the member inside the target module.
	DefinitionSpan Span
	Typ            types.Type
	Documentation  string
}

// Call is a function application.
type Call struct {
	Location Span
	Fun      Expression
	Args     []Expression
	Typ      types.Type
}

// Literal is a literal value of any primitive kind.
type Literal struct {
	Location Span
	Value    string
	Typ      types.Type
}

func (*Var) expressionNode()          {}
func (*ModuleSelect) expressionNode() {}
func (*Call) expressionNode()         {}
func (*Literal) expressionNode()      {}

func (e *Var) ExprSpan() Span          { return e.Location }
func (e *ModuleSelect) ExprSpan() Span { return e.Location }
func (e *Call) ExprSpan() Span         { return e.Location }
func (e *Literal) ExprSpan() Span      { return e.Location }

func (e *Var) Type() types.Type { return e.Constructor.Type }
func (e *ModuleSelect) Type() types.Type { return e.Typ }
func (e *Call) Type() types.Type    { return e.Typ }
func (e *Literal) Type() types.Type { return e.Typ }

// Pattern is a checked pattern node.
type Pattern interface {
	patternNode()
	PatternSpan() Span
	Type() types.Type
}

// PatternVar binds a new name.
type PatternVar struct {
	Location Span
	Name     string
	Typ      types.Type
}

// PatternDiscard is a `_name` pattern.
type PatternDiscard struct {
	Location Span
	Name     string
	Typ      types.Type
}

// PatternConstructor matches a record constructor.
type PatternConstructor struct {
	Location    Span
	Name        string
	Constructor *ValueConstructor
}

func (*PatternVar) patternNode()         {}
func (*PatternDiscard) patternNode()     {}
func (*PatternConstructor) patternNode() {}

func (p *PatternVar) PatternSpan() Span         { return p.Location }
func (p *PatternDiscard) PatternSpan() Span     { return p.Location }
func (p *PatternConstructor) PatternSpan() Span { return p.Location }

func (p *PatternVar) Type() types.Type         { return p.Typ }
func (p *PatternDiscard) Type() types.Type     { return p.Typ }
func (p *PatternConstructor) Type() types.Type { return p.Constructor.Type }

// ValueConstructor carries the checked information attached to a value
// reference: its type, visibility, documentation and origin.
type ValueConstructor struct {
	Type          types.Type
	Public        bool
	Documentation string
	Variant       ValueVariant
}

// VariantKind distinguishes how a referenced value was defined.
type VariantKind int

const (
	VariantLocal VariantKind = iota
	VariantModuleFn
	VariantModuleConstant
	VariantRecord
)

// ValueVariant locates a value's definition.
type ValueVariant struct {
	Kind VariantKind
	// Module is the defining module's name; empty for local bindings.
	Module string
	Name   string
	Span   Span
}
