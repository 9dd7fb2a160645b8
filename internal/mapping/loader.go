package mapping

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"transmuter/internal/common"
)

var (
	// ErrMissingMappingFile is returned by Load when the mapping file does not exist.
	ErrMissingMappingFile = errors.New("mapping file not found")
	// ErrMappingLoad is returned by Load when the mapping file cannot be read or parsed.
	ErrMappingLoad = errors.New("mapping file could not be loaded")
)

// tableDoc is the on-disk layout of the mapping file.
type tableDoc struct {
	Functions yaml.Node             `yaml:"functions"`
	Classes   map[string]ClassEntry `yaml:"classes"`
	Outdated  Outdated              `yaml:"outdated"`
}

// Load loads and parses a YAML mapping file from the given path.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrMissingMappingFile, path)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrMappingLoad, path, err)
	}

	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMappingLoad, path, err)
	}

	return t, nil
}

// LoadOrEmpty loads the mapping file, falling back to an empty table when it
// is missing or unreadable. With strict set, any load failure is returned.
func LoadOrEmpty(path string, strict bool, log *slog.Logger) (*Table, error) {
	t, err := Load(path)
	if err == nil {
		return t, nil
	}

	if strict {
		return nil, err
	}

	log.Warn("starting from an empty mapping table", slog.String("path", path), slog.Any("reason", err))

	return NewTable(), nil
}

// Parse parses YAML data into a Table.
func Parse(data []byte) (*Table, error) {
	var doc tableDoc

	err := yaml.Unmarshal(data, &doc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mapping YAML: %w", err)
	}

	t := NewTable()

	err = decodeOrderedFunctions(&doc.Functions, t)
	if err != nil {
		return nil, err
	}

	for name, e := range doc.Classes {
		t.Classes[name] = e
	}

	for name, o := range doc.Outdated.Functions {
		t.Outdated.Functions[name] = o
	}

	for name, o := range doc.Outdated.Classes {
		t.Outdated.Classes[name] = o
	}

	return t, nil
}

// Marshal serializes a Table to YAML with stable ordering.
func Marshal(t *Table) ([]byte, error) {
	functions, err := mappingNode(SortedFunctionNames(t), func(k string) FunctionEntry { return t.Functions[k] })
	if err != nil {
		return nil, fmt.Errorf("functions: %w", err)
	}

	classes, err := mappingNode(common.SortedKeys(t.Classes), func(k string) ClassEntry { return t.Classes[k] })
	if err != nil {
		return nil, fmt.Errorf("classes: %w", err)
	}

	outdatedFns, err := mappingNode(common.SortedKeys(t.Outdated.Functions),
		func(k string) OutdatedFunction { return t.Outdated.Functions[k] })
	if err != nil {
		return nil, fmt.Errorf("outdated functions: %w", err)
	}

	outdatedClasses, err := mappingNode(common.SortedKeys(t.Outdated.Classes),
		func(k string) OutdatedClass { return t.Outdated.Classes[k] })
	if err != nil {
		return nil, fmt.Errorf("outdated classes: %w", err)
	}

	outdated := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Content: []*yaml.Node{
		strNode("functions"), outdatedFns,
		strNode("classes"), outdatedClasses,
	}}

	root := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Content: []*yaml.Node{
		strNode("functions"), functions,
		strNode("classes"), classes,
		strNode("outdated"), outdated,
	}}

	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	err = enc.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}})
	if err != nil {
		return nil, fmt.Errorf("failed to encode mapping YAML: %w", err)
	}

	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode mapping YAML: %w", err)
	}

	return buf.Bytes(), nil
}

// WriteFile writes a Table to the given path.
func WriteFile(t *Table, path string) error {
	data, err := Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to marshal mapping: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write mapping file %s: %w", path, err)
	}

	return nil
}

func strNode(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}
