package engine

import (
	"fmt"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"gleamls/internal/ast"
	"gleamls/internal/compiler"
	"gleamls/internal/line"
	"gleamls/internal/types"
)

// Hover renders a type signature and attached documentation for the node
// under the cursor. Values imported from registry-sourced packages also
// get a documentation-site link.
func (e *Engine) Hover(params *protocol.HoverParams) Response[*protocol.Hover] {
	return respond(e, func() (*protocol.Hover, error) {
		module, node := e.nodeAtPosition(params.TextDocumentPositionParams)
		if node == nil {
			return nil, nil
		}
		lines := module.Lines

		switch n := node.(type) {
		case ast.LocatedStatement:
			return nil, nil

		case ast.LocatedFunctionBody:
			return nil, nil

		case ast.LocatedModuleStatement:
			switch d := n.Definition.(type) {
			case *ast.Function:
				return e.hoverForFunctionHead(d, lines), nil
			case *ast.ModuleConstant:
				return e.hoverForModuleConstant(d, lines), nil
			}
			return nil, nil

		case ast.LocatedUnqualifiedImport:
			return e.hoverForUnqualifiedImport(n.Import, lines), nil

		case ast.LocatedPattern:
			return e.hoverForPattern(n.Pattern, lines), nil

		case ast.LocatedExpression:
			return e.hoverForExpression(n.Expression, lines, module), nil

		case ast.LocatedArgument:
			return e.hoverForArgument(n.Argument, lines), nil

		case ast.LocatedAnnotation:
			return e.hoverForAnnotation(n, lines), nil
		}
		return nil, nil
	})
}

func (e *Engine) hoverForFunctionHead(fn *ast.Function, lines *line.LineNumbers) *protocol.Hover {
	return makeHover(e.printer.Print(functionType(fn)), fn.Documentation, "", fn.Location, lines)
}

func (e *Engine) hoverForModuleConstant(constant *ast.ModuleConstant, lines *line.LineNumbers) *protocol.Hover {
	return makeHover(e.printer.Print(constant.Type), constant.Documentation, "", constant.Location, lines)
}

func (e *Engine) hoverForPattern(pattern ast.Pattern, lines *line.LineNumbers) *protocol.Hover {
	var doc string
	if p, ok := pattern.(*ast.PatternConstructor); ok {
		doc = p.Constructor.Documentation
	}
	return makeHover(e.printer.Print(pattern.Type()), doc, "", pattern.PatternSpan(), lines)
}

func (e *Engine) hoverForArgument(arg *ast.Argument, lines *line.LineNumbers) *protocol.Hover {
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: fmt.Sprintf("```gleam\n%s\n```", e.printer.Print(arg.Type)),
		},
		Range: ptr(lines.SpanToRange(arg.Location)),
	}
}

func (e *Engine) hoverForExpression(expression ast.Expression, lines *line.LineNumbers, module *compiler.Module) *protocol.Hover {
	var linkSection string
	if moduleName, name, ok := ast.QualifiedName(expression); ok {
		linkSection = hexdocsLinkSection(moduleName, name, module.AST, e.hexDeps)
	}

	doc := ast.ExpressionDocumentation(expression)
	return makeHover(e.printer.Print(expression.Type()), doc, linkSection, expression.ExprSpan(), lines)
}

// hoverForUnqualifiedImport resolves the imported module's interface and
// indexes it by name and kind; either lookup missing yields no hover.
func (e *Engine) hoverForUnqualifiedImport(imported *ast.UnqualifiedImport, lines *line.LineNumbers) *protocol.Hover {
	iface, ok := e.compiler.ImportableModules()[imported.Module]
	if !ok {
		return nil
	}

	if imported.IsType {
		t, ok := iface.Types[imported.Name]
		if !ok {
			return nil
		}
		return makeHover(e.printer.Print(t.Type), t.Documentation, "", imported.Location, lines)
	}

	value, ok := iface.Values[imported.Name]
	if !ok {
		return nil
	}
	var linkSection string
	if _, hex := e.hexDeps[iface.Package]; hex {
		linkSection = formatHexdocsLink(iface.Package, iface.Name, imported.Name)
	}
	return makeHover(e.printer.Print(value.Type), value.Documentation, linkSection, imported.Location, lines)
}

func (e *Engine) hoverForAnnotation(annotation ast.LocatedAnnotation, lines *line.LineNumbers) *protocol.Hover {
	var doc string
	if named, ok := annotation.Type.(*types.Named); ok {
		if iface, ok := e.compiler.ImportableModules()[named.Module]; ok {
			if constructor, ok := iface.Types[named.Name]; ok {
				doc = constructor.Documentation
			}
		}
	}
	return makeHover(e.printer.Print(annotation.Type), doc, "", annotation.Location, lines)
}

func makeHover(typeText, doc, linkSection string, span ast.Span, lines *line.LineNumbers) *protocol.Hover {
	contents := fmt.Sprintf("```gleam\n%s\n```\n%s%s", typeText, doc, linkSection)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: contents,
		},
		Range: ptr(lines.SpanToRange(span)),
	}
}

func functionType(fn *ast.Function) types.Type {
	args := make([]types.Type, 0, len(fn.Arguments))
	for _, arg := range fn.Arguments {
		args = append(args, arg.Type)
	}
	return &types.Fn{Args: args, Return: fn.ReturnType}
}
