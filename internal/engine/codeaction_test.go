package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"gleamls/internal/ast"
	"gleamls/internal/compiler"
	"gleamls/internal/line"
)

func codeActionEngine(t *testing.T, code string, unused []ast.Span) *Engine {
	t.Helper()
	build := compiler.NewMemoryBuild()
	build.AddModule(&compiler.Module{
		Name: "app", Path: appPath, Code: code, Lines: line.New(code),
		AST: &ast.Module{Name: "app", UnusedImports: unused},
	})

	eng := newTestEngine(t, build)
	require.NoError(t, eng.CompilePlease().Err)
	return eng
}

func codeActionsAt(t *testing.T, eng *Engine, rng protocol.Range) Response[[]protocol.CodeAction] {
	t.Helper()
	return eng.CodeActions(&protocol.CodeActionParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: appURI()},
		Range:        rng,
	})
}

func cursorAt(line, character protocol.UInteger) protocol.Range {
	position := protocol.Position{Line: line, Character: character}
	return protocol.Range{Start: position, End: position}
}

func TestCodeActionUnusedImports(t *testing.T) {
	t.Run("an import owning its line is deleted whole", func(t *testing.T) {
		code := "import gleam/list\n\npub fn main() {\n  0\n}\n"
		eng := codeActionEngine(t, code, []ast.Span{spanOf(t, code, "import gleam/list")})

		resp := codeActionsAt(t, eng, cursorAt(0, 3))
		require.NoError(t, resp.Err)
		require.Len(t, resp.Result, 1)

		action := resp.Result[0]
		assert.Equal(t, "Remove unused imports", action.Title)
		assert.Equal(t, protocol.CodeActionKindQuickFix, *action.Kind)
		require.NotNil(t, action.IsPreferred)
		assert.True(t, *action.IsPreferred)

		edits := action.Edit.Changes[appURI()]
		require.Len(t, edits, 1)
		assert.Empty(t, edits[0].NewText)
		assert.Equal(t, protocol.Range{
			Start: protocol.Position{Line: 0, Character: 0},
			End:   protocol.Position{Line: 1, Character: 0},
		}, edits[0].Range)
	})

	t.Run("aliased imports behave the same", func(t *testing.T) {
		code := "import gleam/list as list\n\npub fn main() {\n  0\n}\n"
		eng := codeActionEngine(t, code, []ast.Span{spanOf(t, code, "import gleam/list as list")})

		resp := codeActionsAt(t, eng, cursorAt(0, 10))
		require.NoError(t, resp.Err)
		require.Len(t, resp.Result, 1)

		edits := resp.Result[0].Edit.Changes[appURI()]
		require.Len(t, edits, 1)
		assert.Equal(t, protocol.Range{
			Start: protocol.Position{Line: 0, Character: 0},
			End:   protocol.Position{Line: 1, Character: 0},
		}, edits[0].Range)
	})

	t.Run("an import sharing its line is deleted exactly", func(t *testing.T) {
		code := "import gleam/list // keep this note\n\npub fn main() {\n  0\n}\n"
		eng := codeActionEngine(t, code, []ast.Span{spanOf(t, code, "import gleam/list")})

		resp := codeActionsAt(t, eng, cursorAt(0, 3))
		require.NoError(t, resp.Err)
		require.Len(t, resp.Result, 1)

		edits := resp.Result[0].Edit.Changes[appURI()]
		require.Len(t, edits, 1)
		assert.Equal(t, protocol.Range{
			Start: protocol.Position{Line: 0, Character: 0},
			End:   protocol.Position{Line: 0, Character: 17},
		}, edits[0].Range)
	})

	t.Run("one action removes every unused import", func(t *testing.T) {
		code := "import gleam/list\nimport gleam/int\n\npub fn main() {\n  0\n}\n"
		eng := codeActionEngine(t, code, []ast.Span{
			spanOf(t, code, "import gleam/int"),
			spanOf(t, code, "import gleam/list"),
		})

		resp := codeActionsAt(t, eng, cursorAt(1, 5))
		require.NoError(t, resp.Err)
		require.Len(t, resp.Result, 1)

		edits := resp.Result[0].Edit.Changes[appURI()]
		require.Len(t, edits, 2)
		// Edits come out in document order regardless of input order.
		assert.Equal(t, protocol.UInteger(0), edits[0].Range.Start.Line)
		assert.Equal(t, protocol.UInteger(1), edits[1].Range.Start.Line)
	})

	t.Run("cursor away from the imports offers nothing", func(t *testing.T) {
		code := "import gleam/list\n\npub fn main() {\n  0\n}\n"
		eng := codeActionEngine(t, code, []ast.Span{spanOf(t, code, "import gleam/list")})

		resp := codeActionsAt(t, eng, cursorAt(3, 1))
		require.NoError(t, resp.Err)
		assert.Empty(t, resp.Result)
	})

	t.Run("no unused imports offers nothing", func(t *testing.T) {
		code := "import gleam/list\n\npub fn main() {\n  0\n}\n"
		eng := codeActionEngine(t, code, nil)

		resp := codeActionsAt(t, eng, cursorAt(0, 3))
		require.NoError(t, resp.Err)
		assert.Empty(t, resp.Result)
	})

	t.Run("unknown document offers nothing", func(t *testing.T) {
		code := "import gleam/list\n"
		eng := codeActionEngine(t, code, []ast.Span{spanOf(t, code, "import gleam/list")})

		resp := eng.CodeActions(&protocol.CodeActionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: "file:///project/src/other.gleam"},
			Range:        cursorAt(0, 0),
		})
		require.NoError(t, resp.Err)
		assert.Empty(t, resp.Result)
	})
}
