package compiler

import "sort"

// ImportGraph tracks which modules import which, so a change to one module
// can invalidate everything that depends on it. The unit of invalidation
// is a whole module.
type ImportGraph struct {
	// imports maps a module to the modules it imports.
	imports map[string][]string
	// dependents is the reverse index: module -> modules importing it.
	dependents map[string]map[string]struct{}
}

// NewImportGraph creates an empty graph.
func NewImportGraph() *ImportGraph {
	return &ImportGraph{
		imports:    make(map[string][]string),
		dependents: make(map[string]map[string]struct{}),
	}
}

// SetImports replaces a module's outgoing edges.
func (g *ImportGraph) SetImports(module string, imports []string) {
	for _, old := range g.imports[module] {
		delete(g.dependents[old], module)
	}

	g.imports[module] = imports
	for _, imported := range imports {
		if g.dependents[imported] == nil {
			g.dependents[imported] = make(map[string]struct{})
		}
		g.dependents[imported][module] = struct{}{}
	}
}

// Invalidate returns the module itself plus every transitive dependent,
// sorted for deterministic compile order.
func (g *ImportGraph) Invalidate(module string) []string {
	seen := map[string]bool{module: true}
	queue := []string{module}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for dependent := range g.dependents[current] {
			if !seen[dependent] {
				seen[dependent] = true
				queue = append(queue, dependent)
			}
		}
	}

	invalidated := make([]string, 0, len(seen))
	for name := range seen {
		invalidated = append(invalidated, name)
	}
	sort.Strings(invalidated)
	return invalidated
}
