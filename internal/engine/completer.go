package engine

import (
	"sort"
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"gleamls/internal/ast"
	"gleamls/internal/compiler"
	"gleamls/internal/types"
)

// Completion computes completion items for the cursor position.
// Import-statement completions are tried first and short-circuit the rest
// of the flow; otherwise the located node picks one of the value, type, or
// imported-member strategies.
func (e *Engine) Completion(params *protocol.CompletionParams) Response[[]protocol.CompletionItem] {
	return respond(e, func() ([]protocol.CompletionItem, error) {
		module := e.moduleForURI(params.TextDocument.URI)
		if module == nil {
			return nil, nil
		}

		c := &completer{
			module:   module,
			position: params.Position,
			compiler: e.compiler,
			printer:  e.printer,
		}

		// Check if an import is being written and handle it separately
		// from the rest of the completion flow.
		if items, ok := c.importCompletions(); ok {
			return items, nil
		}

		offset := module.Lines.ByteIndex(params.Position.Line, params.Position.Character)
		node := module.AST.FindNode(offset)
		if node == nil {
			return nil, nil
		}

		switch n := node.(type) {
		case ast.LocatedPattern:
			return nil, nil

		case ast.LocatedStatement, ast.LocatedExpression, ast.LocatedFunctionBody:
			return c.completionValues(), nil

		case ast.LocatedAnnotation:
			return c.completionTypes(), nil

		case ast.LocatedUnqualifiedImport, ast.LocatedArgument:
			return nil, nil

		case ast.LocatedModuleStatement:
			switch d := n.Definition.(type) {
			case *ast.Function, *ast.TypeAlias, *ast.CustomType:
				return c.completionTypes(), nil

			case *ast.Import:
				// The import completions produced nothing, so offer the
				// imported module's unqualified members instead.
				iface, ok := e.compiler.ImportableModules()[d.Module]
				if !ok {
					return nil, nil
				}
				return c.unqualifiedCompletionsFromModule(iface), nil

			case *ast.ModuleConstant:
				return nil, nil
			}
		}
		return nil, nil
	})
}

type completer struct {
	module   *compiler.Module
	position protocol.Position
	compiler *compiler.ProjectCompiler
	printer  types.Printer
}

// importCompletions offers importable module paths while the user is still
// typing an import statement. Once the typed path names a known module the
// flow falls through to member completion.
func (c *completer) importCompletions() ([]protocol.CompletionItem, bool) {
	text := c.currentLine()
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "import") {
		return nil, false
	}

	partial := strings.TrimSpace(strings.TrimPrefix(trimmed, "import"))
	if strings.Contains(partial, ".{") {
		return nil, false
	}

	importable := c.compiler.ImportableModules()
	if _, known := importable[partial]; known {
		return nil, false
	}

	var items []protocol.CompletionItem
	for name := range importable {
		if name == c.module.Name || !strings.HasPrefix(name, partial) {
			continue
		}
		items = append(items, protocol.CompletionItem{
			Label: name,
			Kind:  ptr(protocol.CompletionItemKindModule),
		})
	}
	if len(items) == 0 {
		return nil, false
	}
	sortItems(items)
	return items, true
}

// completionValues offers the module's own functions and constants plus
// its unqualified value imports.
func (c *completer) completionValues() []protocol.CompletionItem {
	var items []protocol.CompletionItem
	for _, definition := range c.module.AST.Definitions {
		switch d := definition.(type) {
		case *ast.Function:
			items = append(items, protocol.CompletionItem{
				Label:  d.Name,
				Kind:   ptr(protocol.CompletionItemKindFunction),
				Detail: ptr(c.printer.Print(functionType(d))),
			})

		case *ast.ModuleConstant:
			items = append(items, protocol.CompletionItem{
				Label:  d.Name,
				Kind:   ptr(protocol.CompletionItemKindConstant),
				Detail: ptr(c.printer.Print(d.Type)),
			})

		case *ast.Import:
			for _, unqualified := range d.Unqualified {
				if unqualified.IsType {
					continue
				}
				items = append(items, c.importedValueItem(d, unqualified))
			}
		}
	}
	sortItems(items)
	return items
}

// completionTypes offers the module's own types and aliases plus its
// unqualified type imports.
func (c *completer) completionTypes() []protocol.CompletionItem {
	var items []protocol.CompletionItem
	for _, definition := range c.module.AST.Definitions {
		switch d := definition.(type) {
		case *ast.CustomType:
			items = append(items, protocol.CompletionItem{
				Label: d.Name,
				Kind:  ptr(protocol.CompletionItemKindClass),
			})

		case *ast.TypeAlias:
			items = append(items, protocol.CompletionItem{
				Label:  d.Alias,
				Kind:   ptr(protocol.CompletionItemKindClass),
				Detail: ptr(c.printer.Print(d.Type)),
			})

		case *ast.Import:
			for _, unqualified := range d.Unqualified {
				if !unqualified.IsType {
					continue
				}
				items = append(items, protocol.CompletionItem{
					Label: unqualified.Name,
					Kind:  ptr(protocol.CompletionItemKindClass),
				})
			}
		}
	}
	sortItems(items)
	return items
}

// unqualifiedCompletionsFromModule offers every exported member of the
// imported module.
func (c *completer) unqualifiedCompletionsFromModule(iface *ast.ModuleInterface) []protocol.CompletionItem {
	var items []protocol.CompletionItem
	for name, value := range iface.Values {
		items = append(items, protocol.CompletionItem{
			Label:  name,
			Kind:   ptr(valueCompletionKind(value)),
			Detail: ptr(c.printer.Print(value.Type)),
		})
	}
	for name, t := range iface.Types {
		items = append(items, protocol.CompletionItem{
			Label:  name,
			Kind:   ptr(protocol.CompletionItemKindClass),
			Detail: ptr(c.printer.Print(t.Type)),
		})
	}
	sortItems(items)
	return items
}

func (c *completer) importedValueItem(imported *ast.Import, unqualified *ast.UnqualifiedImport) protocol.CompletionItem {
	item := protocol.CompletionItem{
		Label: unqualified.Name,
		Kind:  ptr(protocol.CompletionItemKindValue),
	}
	if iface, ok := c.compiler.ImportableModules()[imported.Module]; ok {
		if value, ok := iface.Values[unqualified.Name]; ok {
			item.Kind = ptr(valueCompletionKind(value))
			item.Detail = ptr(c.printer.Print(value.Type))
		}
	}
	return item
}

func (c *completer) currentLine() string {
	lines := c.module.Lines
	idx := int(c.position.Line)
	if idx >= len(lines.LineStarts) {
		return ""
	}
	start := lines.LineStarts[idx]
	end := lines.Length
	if idx+1 < len(lines.LineStarts) {
		end = lines.LineStarts[idx+1]
	}
	return strings.TrimRight(c.module.Code[start:end], "\r\n")
}

func valueCompletionKind(value *ast.ValueConstructor) protocol.CompletionItemKind {
	switch value.Variant.Kind {
	case ast.VariantModuleFn:
		return protocol.CompletionItemKindFunction
	case ast.VariantModuleConstant:
		return protocol.CompletionItemKindConstant
	case ast.VariantRecord:
		return protocol.CompletionItemKindConstructor
	}
	if _, ok := value.Type.(*types.Fn); ok {
		return protocol.CompletionItemKindFunction
	}
	return protocol.CompletionItemKindValue
}

func sortItems(items []protocol.CompletionItem) {
	sort.Slice(items, func(i, j int) bool { return items[i].Label < items[j].Label })
}
