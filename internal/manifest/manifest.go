// Package manifest models the project's resolved dependency manifest: one
// entry per package, each with the source it is fetched from.
package manifest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SourceKind is where a dependency's code comes from.
type SourceKind string

const (
	// SourceHex is the public package registry.
	SourceHex SourceKind = "hex"
	// SourceGit is a version-control repository, optionally pinned.
	SourceGit SourceKind = "git"
	// SourceLocal is a path on the local filesystem.
	SourceLocal SourceKind = "local"
)

// Package is one resolved dependency.
type Package struct {
	Name    string     `yaml:"name"`
	Version string     `yaml:"version,omitempty"`
	Source  SourceKind `yaml:"source"`

	// Repo and Revision are set for git-sourced packages.
	Repo     string `yaml:"repo,omitempty"`
	Revision string `yaml:"revision,omitempty"`

	// Path is set for local-path packages.
	Path string `yaml:"path,omitempty"`
}

// Manifest is the full resolved dependency set.
type Manifest struct {
	Packages []Package `yaml:"packages"`
}

// Load reads and decodes a manifest file.
func Load(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}
	return &m, nil
}

// HexPackages returns the names of registry-sourced dependencies. Only
// these are eligible for documentation-site links.
func (m *Manifest) HexPackages() map[string]struct{} {
	hex := make(map[string]struct{})
	for _, pkg := range m.Packages {
		if pkg.Source == SourceHex {
			hex[pkg.Name] = struct{}{}
		}
	}
	return hex
}

// GitPackages returns the git-sourced dependencies, which must be present
// locally before compilation can proceed.
func (m *Manifest) GitPackages() []Package {
	var git []Package
	for _, pkg := range m.Packages {
		if pkg.Source == SourceGit {
			git = append(git, pkg)
		}
	}
	return git
}
