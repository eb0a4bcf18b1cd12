// Package sources loads the YAML seed files that declare which feeds the
// service ingests. Subscriptions and filters belong to users and are managed
// through the settings UI, not through these files.
package sources

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Seed describes one content source to register at startup.
type Seed struct {
	URL             string `yaml:"url"`
	Name            string `yaml:"name"`
	RefreshInterval int    `yaml:"refresh_interval"` // seconds, 0 = service default
}

// Loader handles loading and validation of source seed files.
type Loader struct {
	dir string
}

// NewLoader creates a new seed loader for the given directory.
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// LoadAll loads every YAML seed file from the directory, keyed by file path.
// A missing directory is not an error; it just means no seeds.
func (l *Loader) LoadAll() (map[string]*Seed, error) {
	seeds := make(map[string]*Seed)

	if _, err := os.Stat(l.dir); os.IsNotExist(err) {
		return seeds, nil
	}

	files, err := filepath.Glob(filepath.Join(l.dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to find YAML files: %w", err)
	}
	ymlFiles, err := filepath.Glob(filepath.Join(l.dir, "*.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to find YML files: %w", err)
	}
	files = append(files, ymlFiles...)

	for _, file := range files {
		seed, err := l.loadFile(file)
		if err != nil {
			return nil, fmt.Errorf("error loading %s: %w", file, err)
		}
		if err := l.validate(seed); err != nil {
			return nil, fmt.Errorf("invalid seed %s: %w", file, err)
		}
		seeds[file] = seed
	}

	return seeds, nil
}

func (l *Loader) loadFile(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return &seed, nil
}

func (l *Loader) validate(seed *Seed) error {
	if seed.URL == "" {
		return fmt.Errorf("source URL is required")
	}
	if seed.Name == "" {
		return fmt.Errorf("source name is required")
	}
	if seed.RefreshInterval < 0 {
		return fmt.Errorf("refresh interval must be non-negative")
	}
	return nil
}
