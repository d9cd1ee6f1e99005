// Package compiler wraps the batch compiler pipeline behind a repeatable
// interface and owns the compiled state the engine queries: one replaceable
// record per module, the warning backlog, and the import graph used to
// decide what a source change invalidates.
package compiler

import (
	"sort"

	"go.uber.org/zap"

	"gleamls/internal/ast"
	"gleamls/internal/line"
)

// Module is the compiled record for one source file. Records are replaced
// wholesale on recompilation and never mutated in place.
type Module struct {
	Name  string
	Path  string
	Code  string
	Lines *line.LineNumbers
	AST   *ast.Module
}

// Warning is one diagnostic accumulated during compilation.
type Warning struct {
	Path    string
	Span    ast.Span
	Message string
}

// Build is the boundary to the batch compiler pipeline (parsing, import
// resolution, type checking). It is supplied from outside this package.
type Build interface {
	// Compile type-checks the named modules, or every known module when
	// names is empty, returning newly compiled records and any warnings
	// produced. A partial result may accompany an error.
	Compile(names []string) ([]*Module, []Warning, error)

	// ImportableModules maps module name to exported interface.
	ImportableModules() map[string]*ast.ModuleInterface

	// SetSource replaces the in-memory text of one module, shadowing the
	// on-disk file until the next compile.
	SetSource(name, text string)
}

// ProjectCompiler supports repeat compilation of the root package, keeping
// module records valid across failed attempts.
type ProjectCompiler struct {
	build    Build
	modules  map[string]*Module
	graph    *ImportGraph
	warnings []Warning

	dirty      map[string]struct{}
	compileAll bool

	log *zap.Logger
}

// New wraps a build. The first Compile call compiles everything.
func New(build Build, log *zap.Logger) *ProjectCompiler {
	return &ProjectCompiler{
		build:      build,
		modules:    make(map[string]*Module),
		graph:      NewImportGraph(),
		dirty:      make(map[string]struct{}),
		compileAll: true,
		log:        log,
	}
}

// Compile recompiles everything invalidated since the last successful
// compile and returns the paths of newly compiled modules. On failure the
// error is returned alongside whatever was compiled before it; records of
// unaffected modules stay valid and the dirty set is kept for a retry.
func (c *ProjectCompiler) Compile() ([]string, error) {
	var names []string
	if !c.compileAll {
		names = make([]string, 0, len(c.dirty))
		for name := range c.dirty {
			names = append(names, name)
		}
		sort.Strings(names)
	}

	compiled, warnings, err := c.build.Compile(names)
	c.warnings = append(c.warnings, warnings...)

	paths := make([]string, 0, len(compiled))
	for _, module := range compiled {
		c.modules[module.Name] = module
		c.graph.SetImports(module.Name, moduleImports(module.AST))
		paths = append(paths, module.Path)
	}

	if err != nil {
		return paths, err
	}

	c.compileAll = false
	c.dirty = make(map[string]struct{})
	c.log.Debug("compilation finished", zap.Int("modules", len(paths)))
	return paths, nil
}

// SourceChanged installs new text for a module and marks it and all of its
// transitive dependents for recompilation.
func (c *ProjectCompiler) SourceChanged(name, text string) {
	c.build.SetSource(name, text)
	for _, invalidated := range c.graph.Invalidate(name) {
		c.dirty[invalidated] = struct{}{}
	}
}

// TakeWarnings drains the warning backlog.
func (c *ProjectCompiler) TakeWarnings() []Warning {
	warnings := c.warnings
	c.warnings = nil
	return warnings
}

// Module returns the compiled record for a module name, or nil.
func (c *ProjectCompiler) Module(name string) *Module {
	return c.modules[name]
}

// Modules returns the current module-record table keyed by module name.
func (c *ProjectCompiler) Modules() map[string]*Module {
	return c.modules
}

// ImportableModules exposes the interfaces of every compiled module.
func (c *ProjectCompiler) ImportableModules() map[string]*ast.ModuleInterface {
	return c.build.ImportableModules()
}

func moduleImports(m *ast.Module) []string {
	if m == nil {
		return nil
	}
	var imports []string
	for _, definition := range m.Definitions {
		if imported, ok := definition.(*ast.Import); ok {
			imports = append(imports, imported.Module)
		}
	}
	return imports
}
