package engine

import (
	"fmt"

	"gleamls/internal/ast"
)

// formatHexdocsLink renders the documentation-site link for one member.
// The URL format is fixed by the documentation host.
func formatHexdocsLink(packageName, moduleName, name string) string {
	link := fmt.Sprintf("https://hexdocs.pm/%s/%s.html#%s", packageName, moduleName, name)
	return fmt.Sprintf("\nView on [HexDocs](%s)", link)
}

// hexdocsLinkSection finds the import of moduleName in the referencing
// module and, when the declared package is registry-sourced, renders a
// link. The referencing module's imports are scanned because they carry
// the package identity the rendering needs.
func hexdocsLinkSection(moduleName, name string, m *ast.Module, hexDeps map[string]struct{}) string {
	for _, definition := range m.Definitions {
		imported, ok := definition.(*ast.Import)
		if !ok || imported.Module != moduleName {
			continue
		}
		if _, hex := hexDeps[imported.Package]; hex {
			return formatHexdocsLink(imported.Package, moduleName, name)
		}
	}
	return ""
}
