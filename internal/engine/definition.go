package engine

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"gleamls/internal/ast"
)

// GotoDefinition resolves the node under the cursor to the location it was
// defined at, possibly in another module. Nodes with no meaningful target
// and modules without a compiled record both answer "nothing found".
func (e *Engine) GotoDefinition(params *protocol.DefinitionParams) Response[*protocol.Location] {
	return respond(e, func() (*protocol.Location, error) {
		module, node := e.nodeAtPosition(params.TextDocumentPositionParams)
		if node == nil {
			return nil, nil
		}

		location := ast.LocatedDefinition(node, e.compiler.ImportableModules())
		if location == nil {
			return nil, nil
		}

		uri := params.TextDocument.URI
		lines := module.Lines
		if location.Module != "" && location.Module != module.Name {
			target := e.compiler.Module(location.Module)
			if target == nil || target.Path == "" {
				return nil, nil
			}
			uri = pathToURI(target.Path)
			lines = target.Lines
		}

		return &protocol.Location{
			URI:   uri,
			Range: lines.SpanToRange(location.Span),
		}, nil
	})
}
