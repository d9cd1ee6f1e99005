package engine

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"gleamls/internal/compiler"
)

// Diagnostics converts drained warnings into protocol diagnostics grouped
// per document, ready to publish.
func (e *Engine) Diagnostics(warnings []compiler.Warning) []protocol.PublishDiagnosticsParams {
	byPath := make(map[string][]protocol.Diagnostic)
	lineTables := make(map[string]*compiler.Module)
	for _, module := range e.compiler.Modules() {
		if module.Path == "" {
			continue
		}
		lineTables[module.Path] = module
	}

	for _, warning := range warnings {
		var rng protocol.Range
		if module, ok := lineTables[warning.Path]; ok {
			rng = module.Lines.SpanToRange(warning.Span)
		}
		byPath[warning.Path] = append(byPath[warning.Path], protocol.Diagnostic{
			Range:    rng,
			Severity: ptr(protocol.DiagnosticSeverityWarning),
			Source:   ptr("gleam"),
			Message:  warning.Message,
		})
	}

	params := make([]protocol.PublishDiagnosticsParams, 0, len(byPath))
	for path, diagnostics := range byPath {
		params = append(params, protocol.PublishDiagnosticsParams{
			URI:         pathToURI(path),
			Diagnostics: diagnostics,
		})
	}
	return params
}
