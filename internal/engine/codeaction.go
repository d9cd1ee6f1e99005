package engine

import (
	"sort"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"gleamls/internal/ast"
	"gleamls/internal/compiler"
	"gleamls/internal/line"
)

// CodeActions offers automatic fixes applicable at the request range.
// Currently: removing unused imports.
func (e *Engine) CodeActions(params *protocol.CodeActionParams) Response[[]protocol.CodeAction] {
	return respond(e, func() ([]protocol.CodeAction, error) {
		module := e.moduleForURI(params.TextDocument.URI)
		if module == nil {
			return nil, nil
		}

		var actions []protocol.CodeAction
		codeActionUnusedImports(module, params, &actions)
		return actions, nil
	})
}

func codeActionUnusedImports(module *compiler.Module, params *protocol.CodeActionParams, actions *[]protocol.CodeAction) {
	unused := module.AST.UnusedImports
	if len(unused) == 0 {
		return
	}

	lines := module.Lines
	hovered := false
	edits := make([]protocol.TextEdit, 0, len(unused))

	for _, span := range unused {
		// When the import owns its whole line, extend the deletion by one
		// byte so the line terminator goes with it.
		adjustedEnd := span.End
		if deleteWholeLine(span, lines) {
			adjustedEnd++
		}

		rng := lines.SpanToRange(ast.Span{Start: span.Start, End: adjustedEnd})
		hovered = hovered || line.Overlaps(params.Range, rng)

		edits = append(edits, protocol.TextEdit{Range: rng, NewText: ""})
	}

	// The action is only offered when the cursor is on one of the imports.
	if !hovered {
		return
	}

	sort.Slice(edits, func(i, j int) bool {
		return positionLess(edits[i].Range.Start, edits[j].Range.Start)
	})

	newCodeActionBuilder("Remove unused imports").
		kind(protocol.CodeActionKindQuickFix).
		changes(params.TextDocument.URI, edits).
		preferred(true).
		pushTo(actions)
}

// deleteWholeLine reports whether removing the span empties its line: the
// span must start exactly at a line start and end exactly before the next
// line's start.
func deleteWholeLine(span ast.Span, lines *line.LineNumbers) bool {
	return lines.IsLineStart(span.Start) && lines.IsLineStart(span.End+1)
}

func positionLess(a, b protocol.Position) bool {
	if a.Line != b.Line {
		return a.Line < b.Line
	}
	return a.Character < b.Character
}

type codeActionBuilder struct {
	action protocol.CodeAction
}

func newCodeActionBuilder(title string) *codeActionBuilder {
	return &codeActionBuilder{action: protocol.CodeAction{Title: title}}
}

func (b *codeActionBuilder) kind(kind protocol.CodeActionKind) *codeActionBuilder {
	b.action.Kind = &kind
	return b
}

func (b *codeActionBuilder) changes(uri protocol.DocumentUri, edits []protocol.TextEdit) *codeActionBuilder {
	if b.action.Edit == nil {
		b.action.Edit = &protocol.WorkspaceEdit{
			Changes: map[protocol.DocumentUri][]protocol.TextEdit{},
		}
	}
	b.action.Edit.Changes[uri] = append(b.action.Edit.Changes[uri], edits...)
	return b
}

func (b *codeActionBuilder) preferred(preferred bool) *codeActionBuilder {
	b.action.IsPreferred = &preferred
	return b
}

func (b *codeActionBuilder) pushTo(actions *[]protocol.CodeAction) {
	*actions = append(*actions, b.action)
}
