package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"gleamls/internal/ast"
	"gleamls/internal/compiler"
	"gleamls/internal/line"
	"gleamls/internal/types"
)

func completionAt(t *testing.T, eng *Engine, uri protocol.DocumentUri, position protocol.Position) Response[[]protocol.CompletionItem] {
	t.Helper()
	return eng.Completion(&protocol.CompletionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
			Position:     position,
		},
	})
}

func labels(items []protocol.CompletionItem) []string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Label)
	}
	return names
}

// importFixture is a one-line document for exercising import completion.
func importFixture(t *testing.T, code string, definitions ...ast.Definition) *Engine {
	t.Helper()
	build := compiler.NewMemoryBuild()
	build.AddModule(&compiler.Module{
		Name: "app", Path: appPath, Code: code, Lines: line.New(code),
		AST: &ast.Module{Name: "app", Definitions: definitions},
	})
	build.AddInterface(&ast.ModuleInterface{Name: "app"})
	build.AddInterface(&ast.ModuleInterface{Name: "gleam/int", Package: "gleam_stdlib"})
	build.AddInterface(&ast.ModuleInterface{
		Name:    "gleam/list",
		Package: "gleam_stdlib",
		Types: map[string]*ast.TypeConstructor{
			"Queue": {Type: queueType(), Module: "gleam/list"},
		},
		Values: map[string]*ast.ValueConstructor{
			"first": {
				Type:    firstFn,
				Public:  true,
				Variant: ast.ValueVariant{Kind: ast.VariantModuleFn, Module: "gleam/list", Name: "first"},
			},
		},
	})
	build.AddInterface(&ast.ModuleInterface{Name: "local/util", Package: "utility"})

	eng := newTestEngine(t, build, "gleam_stdlib")
	require.NoError(t, eng.CompilePlease().Err)
	return eng
}

func TestCompletionImports(t *testing.T) {
	t.Run("module paths while typing an import", func(t *testing.T) {
		eng := importFixture(t, "import gleam\n")

		resp := completionAt(t, eng, appURI(), protocol.Position{Line: 0, Character: 12})
		require.NoError(t, resp.Err)

		assert.Equal(t, []string{"gleam/int", "gleam/list"}, labels(resp.Result))
		for _, item := range resp.Result {
			assert.Equal(t, protocol.CompletionItemKindModule, *item.Kind)
		}
	})

	t.Run("the module itself is never offered", func(t *testing.T) {
		eng := importFixture(t, "import \n")

		resp := completionAt(t, eng, appURI(), protocol.Position{Line: 0, Character: 7})
		require.NoError(t, resp.Err)

		assert.NotContains(t, labels(resp.Result), "app")
		assert.Contains(t, labels(resp.Result), "local/util")
	})

	t.Run("a fully typed module path offers its members", func(t *testing.T) {
		code := "import gleam/list\n"
		eng := importFixture(t, code, &ast.Import{
			Location: ast.Span{Start: 0, End: 17},
			Module:   "gleam/list",
			Package:  "gleam_stdlib",
		})

		resp := completionAt(t, eng, appURI(), protocol.Position{Line: 0, Character: 10})
		require.NoError(t, resp.Err)

		require.Equal(t, []string{"Queue", "first"}, labels(resp.Result))
		assert.Equal(t, protocol.CompletionItemKindClass, *resp.Result[0].Kind)
		assert.Equal(t, protocol.CompletionItemKindFunction, *resp.Result[1].Kind)
	})

	t.Run("no matching module falls through to nothing", func(t *testing.T) {
		eng := importFixture(t, "import zzz\n")

		resp := completionAt(t, eng, appURI(), protocol.Position{Line: 0, Character: 10})
		require.NoError(t, resp.Err)
		assert.Empty(t, resp.Result)
	})
}

func TestCompletionValues(t *testing.T) {
	t.Run("function body offers values", func(t *testing.T) {
		eng := fixtureEngine(t)

		resp := eng.Completion(&protocol.CompletionParams{
			TextDocumentPositionParams: positionParams(t, appURI(), appCode, "list.first"),
		})
		require.NoError(t, resp.Err)

		require.Equal(t, []string{"double", "first", "limit"}, labels(resp.Result))

		byLabel := make(map[string]protocol.CompletionItem)
		for _, item := range resp.Result {
			byLabel[item.Label] = item
		}
		assert.Equal(t, protocol.CompletionItemKindFunction, *byLabel["double"].Kind)
		assert.Equal(t, "fn(Int) -> Int", *byLabel["double"].Detail)
		assert.Equal(t, protocol.CompletionItemKindFunction, *byLabel["first"].Kind)
		assert.Equal(t, "fn(List(a)) -> a", *byLabel["first"].Detail)
		assert.Equal(t, protocol.CompletionItemKindConstant, *byLabel["limit"].Kind)
	})

	t.Run("annotations offer types", func(t *testing.T) {
		eng := fixtureEngine(t)

		params := &protocol.CompletionParams{
			TextDocumentPositionParams: positionParams(t, appURI(), appCode, "x: Int"),
		}
		params.Position.Character += 3
		resp := eng.Completion(params)
		require.NoError(t, resp.Err)

		require.Equal(t, []string{"Queue"}, labels(resp.Result))
		assert.Equal(t, protocol.CompletionItemKindClass, *resp.Result[0].Kind)
	})

	t.Run("unknown document offers nothing", func(t *testing.T) {
		eng := fixtureEngine(t)

		resp := completionAt(t, eng, "file:///project/src/other.gleam", protocol.Position{})
		require.NoError(t, resp.Err)
		assert.Empty(t, resp.Result)
	})
}

func queueType() *types.Named {
	return &types.Named{Name: "Queue", Module: "gleam/list", Package: "gleam_stdlib"}
}
