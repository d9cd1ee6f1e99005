// Package engine answers editor queries against the compiled project:
// goto-definition, hover, completion, document symbols and code actions.
// One engine owns one project's compiler; requests are resolved one at a
// time, so no locking guards the compiled state.
package engine

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"
	"go.uber.org/zap"

	"gleamls/internal/ast"
	"gleamls/internal/compiler"
	"gleamls/internal/config"
	"gleamls/internal/manifest"
	"gleamls/internal/types"
	"gleamls/internal/vcs"
)

// Compilation reports whether a response's request window saw any
// compilation, and which module paths were produced by it.
type Compilation struct {
	Compiled bool
	Modules  []string
}

// Response is the envelope every query returns. Result and Err describe
// the query's own outcome; Warnings and Compilation report project state
// accumulated since the previous response, independent of the result.
type Response[T any] struct {
	Result      T
	Err         error
	Warnings    []compiler.Warning
	Compilation Compilation
}

// Engine is the language-server engine for one project.
type Engine struct {
	cfg      *config.PackageConfig
	srcDir   string
	compiler *compiler.ProjectCompiler
	printer  types.Printer

	modulesCompiled       []string
	compiledSinceFeedback bool

	// hexDeps gates the "View on HexDocs" link when hovering imported
	// values: only registry-sourced packages get one.
	hexDeps map[string]struct{}

	log *zap.Logger
}

// New constructs an engine. Git-sourced dependencies are downloaded first
// so the compiler sees an up-to-date package set; a retrieval failure
// aborts construction before any compiler state exists.
func New(ctx context.Context, cfg *config.PackageConfig, m *manifest.Manifest, build compiler.Build, downloader *vcs.Downloader, log *zap.Logger) (*Engine, error) {
	if downloader != nil {
		if err := downloader.DownloadGitPackages(ctx, m.GitPackages(), cfg.Name); err != nil {
			return nil, fmt.Errorf("failed to download dependencies: %w", err)
		}
	}

	return &Engine{
		cfg:      cfg,
		srcDir:   filepath.Join(cfg.Project.Root, cfg.Project.SrcDir),
		compiler: compiler.New(build, log),
		printer:  types.NewPrinter(),
		hexDeps:  m.HexPackages(),
		log:      log,
	}, nil
}

// respond runs a handler and assembles the envelope: warnings are drained
// unconditionally, and the compilation feedback is reset exactly once per
// response even when the handler itself never compiled anything.
func respond[T any](e *Engine, handler func() (T, error)) Response[T] {
	result, err := handler()
	warnings := e.compiler.TakeWarnings()

	var compilation Compilation
	if e.compiledSinceFeedback {
		compilation = Compilation{Compiled: true, Modules: e.modulesCompiled}
		e.modulesCompiled = nil
		e.compiledSinceFeedback = false
	}

	return Response[T]{
		Result:      result,
		Err:         err,
		Warnings:    warnings,
		Compilation: compilation,
	}
}

// CompilePlease compiles the project and reports through the envelope.
func (e *Engine) CompilePlease() Response[struct{}] {
	return respond(e, func() (struct{}, error) {
		return struct{}{}, e.compile()
	})
}

// compile recompiles everything invalidated since the last compile. Module
// paths are recorded for feedback even when compilation fails partway.
func (e *Engine) compile() error {
	e.compiledSinceFeedback = true

	e.log.Debug("compilation started")
	modules, err := e.compiler.Compile()
	e.modulesCompiled = append(e.modulesCompiled, modules...)
	return err
}

// UpdateSource installs new text for the document and invalidates its
// module and all dependents. Unknown documents are ignored.
func (e *Engine) UpdateSource(uri protocol.DocumentUri, text string) {
	name, ok := e.moduleNameForURI(uri)
	if !ok {
		return
	}
	e.compiler.SourceChanged(name, text)
}

func (e *Engine) moduleForURI(uri protocol.DocumentUri) *compiler.Module {
	name, ok := e.moduleNameForURI(uri)
	if !ok {
		return nil
	}
	module := e.compiler.Module(name)
	if module == nil || module.AST == nil {
		// Records the pipeline has not parsed yet cannot answer
		// positional queries.
		return nil
	}
	return module
}

func (e *Engine) moduleNameForURI(uri protocol.DocumentUri) (string, bool) {
	path := uriToPath(uri)
	rel, err := filepath.Rel(e.srcDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}
	if !strings.HasSuffix(rel, ".gleam") {
		return "", false
	}
	return strings.TrimSuffix(filepath.ToSlash(rel), ".gleam"), true
}

// nodeAtPosition resolves the request position to the smallest enclosing
// node of the document's module, or nil when either lookup misses.
func (e *Engine) nodeAtPosition(params protocol.TextDocumentPositionParams) (*compiler.Module, ast.Located) {
	module := e.moduleForURI(params.TextDocument.URI)
	if module == nil {
		return nil, nil
	}
	offset := module.Lines.ByteIndex(params.Position.Line, params.Position.Character)
	return module, module.AST.FindNode(offset)
}

func uriToPath(uri protocol.DocumentUri) string {
	parsed, err := url.Parse(string(uri))
	if err != nil || parsed.Scheme != "file" {
		return string(uri)
	}
	return parsed.Path
}

func pathToURI(path string) protocol.DocumentUri {
	slashed := filepath.ToSlash(path)
	if !strings.HasPrefix(slashed, "/") {
		slashed = "/" + slashed
	}
	return protocol.DocumentUri("file://" + slashed)
}

func ptr[T any](v T) *T {
	return &v
}
