package table

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// tableFile is the top-level YAML structure for roll table files.
type tableFile struct {
	Table Table `yaml:"table"`
}

// LoadTableFromFile reads and validates a single roll table YAML file.
//
// Precondition: path must point to a valid YAML table file.
// Postcondition: Returns a validated Table or a non-nil error.
func LoadTableFromFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading table file %s: %w", path, err)
	}
	return LoadTableFromBytes(data)
}

// LoadTableFromBytes parses and validates a roll table from YAML bytes.
//
// Precondition: data must be valid YAML conforming to the table schema.
// Postcondition: Returns a validated Table or a non-nil error.
func LoadTableFromBytes(data []byte) (*Table, error) {
	var file tableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing table YAML: %w", err)
	}

	t := file.Table
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("validating table: %w", err)
	}

	return &t, nil
}

// LoadTablesFromDir loads all YAML files in a directory as roll tables.
//
// Precondition: dir must be a valid directory path.
// Postcondition: Returns all validated tables, with unique names, or the
// first error encountered.
func LoadTablesFromDir(dir string) ([]*Table, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading table directory %s: %w", dir, err)
	}

	var tables []*Table
	seen := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}
		t, err := LoadTableFromFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("loading table from %s: %w", name, err)
		}
		if prev, ok := seen[t.Name]; ok {
			return nil, fmt.Errorf("table %q in %s already defined in %s", t.Name, name, prev)
		}
		seen[t.Name] = name
		tables = append(tables, t)
	}

	if len(tables) == 0 {
		return nil, fmt.Errorf("no table files found in %s", dir)
	}

	return tables, nil
}
