package compiler

import (
	"sort"

	"gleamls/internal/ast"
	"gleamls/internal/line"
)

// MemoryBuild is a Build backed by preloaded, already-checked module
// records. It stands in for the batch compiler pipeline, which lives
// outside this repository: the serve command plugs the real pipeline in
// through the same interface, and the test suite uses MemoryBuild
// directly.
type MemoryBuild struct {
	modules    map[string]*Module
	interfaces map[string]*ast.ModuleInterface
	warnings   []Warning
	pending    map[string]struct{}
	failNext   error
}

// NewMemoryBuild creates an empty build.
func NewMemoryBuild() *MemoryBuild {
	return &MemoryBuild{
		modules:    make(map[string]*Module),
		interfaces: make(map[string]*ast.ModuleInterface),
		pending:    make(map[string]struct{}),
	}
}

// AddModule registers a compiled record and queues it for the next Compile.
func (b *MemoryBuild) AddModule(module *Module) {
	b.modules[module.Name] = module
	b.pending[module.Name] = struct{}{}
}

// AddInterface registers a module's exported interface.
func (b *MemoryBuild) AddInterface(iface *ast.ModuleInterface) {
	b.interfaces[iface.Name] = iface
}

// AddSource registers an on-disk module by its raw text. The record has
// no syntax tree until the pipeline parses it, so it cannot answer
// positional queries yet.
func (b *MemoryBuild) AddSource(name, path, text string) {
	b.modules[name] = &Module{Name: name, Path: path, Code: text, Lines: line.New(text)}
	b.pending[name] = struct{}{}
}

// QueueWarning queues a diagnostic for the next Compile.
func (b *MemoryBuild) QueueWarning(warning Warning) {
	b.warnings = append(b.warnings, warning)
}

// FailNext makes the next Compile return err after surfacing any queued
// warnings.
func (b *MemoryBuild) FailNext(err error) {
	b.failNext = err
}

// SetSource replaces a module's text with a fresh record; the previous
// record stays untouched for readers holding it.
func (b *MemoryBuild) SetSource(name, text string) {
	current, ok := b.modules[name]
	if !ok {
		b.modules[name] = &Module{Name: name, Code: text, Lines: line.New(text)}
		b.pending[name] = struct{}{}
		return
	}

	replacement := *current
	replacement.Code = text
	replacement.Lines = line.New(text)
	b.modules[name] = &replacement
	b.pending[name] = struct{}{}
}

// Compile hands out every pending record in name order.
func (b *MemoryBuild) Compile([]string) ([]*Module, []Warning, error) {
	warnings := b.warnings
	b.warnings = nil

	if b.failNext != nil {
		err := b.failNext
		b.failNext = nil
		return nil, warnings, err
	}

	names := make([]string, 0, len(b.pending))
	for name := range b.pending {
		names = append(names, name)
	}
	sort.Strings(names)
	b.pending = make(map[string]struct{})

	compiled := make([]*Module, 0, len(names))
	for _, name := range names {
		compiled = append(compiled, b.modules[name])
	}
	return compiled, warnings, nil
}

// ImportableModules implements Build.
func (b *MemoryBuild) ImportableModules() map[string]*ast.ModuleInterface {
	return b.interfaces
}
