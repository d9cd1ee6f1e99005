package engine

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"gleamls/internal/ast"
	"gleamls/internal/line"
)

// DocumentSymbols walks top-level definitions in declaration order and
// emits the outline tree: one symbol per function, type alias, custom
// type and constant. Custom types nest their constructors, and labeled
// constructor arguments become field symbols. Imports emit nothing.
func (e *Engine) DocumentSymbols(params *protocol.DocumentSymbolParams) Response[[]protocol.DocumentSymbol] {
	return respond(e, func() ([]protocol.DocumentSymbol, error) {
		var symbols []protocol.DocumentSymbol
		module := e.moduleForURI(params.TextDocument.URI)
		if module == nil {
			return symbols, nil
		}
		lines := module.Lines

		for _, definition := range module.AST.Definitions {
			switch d := definition.(type) {
			case *ast.Function:
				// The function's own location ends right after the return
				// type; the full symbol range covers documentation and body.
				symbols = append(symbols, protocol.DocumentSymbol{
					Name:           d.Name,
					Detail:         ptr(e.printer.Print(functionType(d))),
					Kind:           protocol.SymbolKindFunction,
					Tags:           deprecatedTags(d.Deprecated),
					Range:          lines.SpanToRange(ast.FullSpan(d)),
					SelectionRange: lines.SpanToRange(d.NameSpan),
				})

			case *ast.TypeAlias:
				symbols = append(symbols, protocol.DocumentSymbol{
					Name:           d.Alias,
					Detail:         ptr(e.printer.Print(d.Type)),
					Kind:           protocol.SymbolKindClass,
					Tags:           deprecatedTags(d.Deprecated),
					Range:          lines.SpanToRange(ast.FullSpan(d)),
					SelectionRange: lines.SpanToRange(d.AliasSpan),
				})

			case *ast.CustomType:
				symbols = append(symbols, e.customTypeSymbol(d, lines))

			case *ast.Import:
				// Not part of the outline.

			case *ast.ModuleConstant:
				symbols = append(symbols, protocol.DocumentSymbol{
					Name:           d.Name,
					Detail:         ptr(e.printer.Print(d.Type)),
					Kind:           protocol.SymbolKindConstant,
					Tags:           deprecatedTags(d.Deprecated),
					Range:          lines.SpanToRange(ast.FullSpan(d)),
					SelectionRange: lines.SpanToRange(d.Location),
				})
			}
		}

		return symbols, nil
	})
}

func (e *Engine) customTypeSymbol(custom *ast.CustomType, lines *line.LineNumbers) protocol.DocumentSymbol {
	constructors := make([]protocol.DocumentSymbol, 0, len(custom.Constructors))
	for _, constructor := range custom.Constructors {
		var fields []protocol.DocumentSymbol

		// Labeled arguments become field symbols; positional ones are
		// omitted because they have no name to show.
		for _, arg := range constructor.Arguments {
			if arg.Label == "" {
				continue
			}

			selection := arg.Location
			if arg.LabelSpan != nil {
				selection = *arg.LabelSpan
			}
			fullArg := ast.Span{Start: docOr(arg.DocStart, arg.Location.Start), End: arg.Location.End}

			fields = append(fields, protocol.DocumentSymbol{
				Name:           arg.Label,
				Detail:         ptr(e.printer.Print(arg.Type)),
				Kind:           protocol.SymbolKindField,
				Range:          lines.SpanToRange(fullArg),
				SelectionRange: lines.SpanToRange(selection),
			})
		}

		// The constructor's location only covers its name; extend the
		// full range to just past the last argument.
		end := constructor.Location.End
		if len(constructor.Arguments) > 0 {
			end = constructor.Arguments[len(constructor.Arguments)-1].Location.End + 1
		}
		fullConstructor := ast.Span{
			Start: docOr(constructor.DocStart, constructor.Location.Start),
			End:   end,
		}

		kind := protocol.SymbolKindEnumMember
		if len(constructor.Arguments) > 0 {
			kind = protocol.SymbolKindConstructor
		}

		constructors = append(constructors, protocol.DocumentSymbol{
			Name:           constructor.Name,
			Kind:           kind,
			Range:          lines.SpanToRange(fullConstructor),
			SelectionRange: lines.SpanToRange(constructor.Location),
			Children:       fields,
		})
	}

	return protocol.DocumentSymbol{
		Name:           custom.Name,
		Kind:           protocol.SymbolKindClass,
		Tags:           deprecatedTags(custom.Deprecated),
		Range:          lines.SpanToRange(ast.FullSpan(custom)),
		SelectionRange: lines.SpanToRange(custom.NameSpan),
		Children:       constructors,
	}
}

func deprecatedTags(deprecated bool) []protocol.SymbolTag {
	if !deprecated {
		return nil
	}
	return []protocol.SymbolTag{protocol.SymbolTagDeprecated}
}

func docOr(docStart, fallback int) int {
	if docStart == ast.NoDoc {
		return fallback
	}
	return docStart
}
