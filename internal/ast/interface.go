package ast

import "gleamls/internal/types"

// ModuleInterface is the exported surface of a compiled module, as seen by
// code that imports it.
type ModuleInterface struct {
	Name    string
	Package string
	Types   map[string]*TypeConstructor
	Values  map[string]*ValueConstructor
}

// TypeConstructor is one exported type of a module interface.
type TypeConstructor struct {
	Type          types.Type
	Module        string
	Location      Span
	Documentation string
	Deprecated    bool
}
