package config

import (
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// PackageConfig is the project's own configuration.
type PackageConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Project struct {
		Root   string `yaml:"root"`
		SrcDir string `yaml:"src,omitempty"`
	} `yaml:"project"`
	Manifest string `yaml:"manifest,omitempty"` // path to the resolved dependency manifest
}

// LoadConfig reads the project configuration file.
func LoadConfig(path string) (*PackageConfig, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	// 2. Load YAML config
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg PackageConfig
	if err := yaml.Unmarshal(file, &cfg); err != nil {
		return nil, err
	}
	if cfg.Project.SrcDir == "" {
		cfg.Project.SrcDir = "src"
	}
	if cfg.Manifest == "" {
		cfg.Manifest = "manifest.yaml"
	}

	// 3. Override with Environment Variables if present
	if root := os.Getenv("GLEAMLS_PROJECT_ROOT"); root != "" {
		cfg.Project.Root = root
	}
	if manifestPath := os.Getenv("GLEAMLS_MANIFEST"); manifestPath != "" {
		cfg.Manifest = manifestPath
	}

	return &cfg, nil
}
