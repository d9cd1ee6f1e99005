package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"gleamls/internal/line"
)

func definitionParams(t *testing.T, fragment string) *protocol.DefinitionParams {
	t.Helper()
	return &protocol.DefinitionParams{
		TextDocumentPositionParams: positionParams(t, appURI(), appCode, fragment),
	}
}

func TestGotoDefinition(t *testing.T) {
	t.Run("qualified access jumps to the defining module", func(t *testing.T) {
		eng := fixtureEngine(t)

		resp := eng.GotoDefinition(definitionParams(t, "list.first"))
		require.NoError(t, resp.Err)
		require.NotNil(t, resp.Result)

		assert.Equal(t, protocol.DocumentUri("file://"+listPath), resp.Result.URI)
		assert.Equal(t, line.New(listCode).SpanToRange(spanOf(t, listCode, "first")), resp.Result.Range)
	})

	t.Run("git package member jumps into the build directory", func(t *testing.T) {
		eng := fixtureEngine(t)

		resp := eng.GotoDefinition(definitionParams(t, "util.helper"))
		require.NoError(t, resp.Err)
		require.NotNil(t, resp.Result)
		assert.Equal(t, protocol.DocumentUri("file://"+utilPath), resp.Result.URI)
	})

	t.Run("unqualified import member resolves through the interface", func(t *testing.T) {
		eng := fixtureEngine(t)

		resp := eng.GotoDefinition(definitionParams(t, "first"))
		require.NoError(t, resp.Err)
		require.NotNil(t, resp.Result)
		assert.Equal(t, protocol.DocumentUri("file://"+listPath), resp.Result.URI)
	})

	t.Run("import statement jumps to the module's file", func(t *testing.T) {
		eng := fixtureEngine(t)

		resp := eng.GotoDefinition(definitionParams(t, "import gleam/list"))
		require.NoError(t, resp.Err)
		require.NotNil(t, resp.Result)
		assert.Equal(t, protocol.DocumentUri("file://"+listPath), resp.Result.URI)
		assert.Equal(t, protocol.Range{}, resp.Result.Range)
	})

	t.Run("position without a node finds nothing", func(t *testing.T) {
		eng := fixtureEngine(t)

		params := &protocol.DefinitionParams{
			TextDocumentPositionParams: protocol.TextDocumentPositionParams{
				TextDocument: protocol.TextDocumentIdentifier{URI: appURI()},
				Position:     protocol.Position{Line: 2, Character: 0},
			},
		}
		resp := eng.GotoDefinition(params)
		require.NoError(t, resp.Err)
		assert.Nil(t, resp.Result)
	})

	t.Run("function head has no definition target", func(t *testing.T) {
		eng := fixtureEngine(t)

		resp := eng.GotoDefinition(definitionParams(t, "double"))
		require.NoError(t, resp.Err)
		assert.Nil(t, resp.Result)
	})

	t.Run("unknown document finds nothing", func(t *testing.T) {
		eng := fixtureEngine(t)

		params := &protocol.DefinitionParams{
			TextDocumentPositionParams: protocol.TextDocumentPositionParams{
				TextDocument: protocol.TextDocumentIdentifier{URI: "file:///project/src/other.gleam"},
			},
		}
		resp := eng.GotoDefinition(params)
		require.NoError(t, resp.Err)
		assert.Nil(t, resp.Result)
	})
}
