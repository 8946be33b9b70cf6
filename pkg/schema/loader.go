package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadYAML decodes a schema from YAML (or JSON, which is valid YAML).
func LoadYAML(data []byte) (Schema, error) {
	doc, err := NewDocument(SourceInline(""), data)
	if err != nil {
		return Schema{}, err
	}
	return Decode(doc)
}

// LoadFile reads and decodes a schema file from disk.
func LoadFile(path string) (Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Schema{}, fmt.Errorf("schema: read %s: %w", path, err)
	}
	doc, err := NewDocument(SourceFromFile(path), data)
	if err != nil {
		return Schema{}, fmt.Errorf("schema: %s: %w", path, err)
	}
	return Decode(doc)
}

// LoadFS decodes every .yaml, .yml and .json file in fsys, keyed by schema
// name. Schemas without a name take the file's base name.
func LoadFS(fsys fs.FS) (map[string]Schema, error) {
	out := make(map[string]Schema)
	if fsys == nil {
		return out, nil
	}

	var paths []string
	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !entry.IsDir() && isSchemaFile(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("schema: walk: %w", err)
	}
	sort.Strings(paths)

	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("schema: read %s: %w", path, err)
		}
		doc, err := NewDocument(SourceFromFS(path), data)
		if err != nil {
			return nil, fmt.Errorf("schema: %s: %w", path, err)
		}
		s, err := Decode(doc)
		if err != nil {
			return nil, err
		}
		if s.Name == "" {
			s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		if _, exists := out[s.Name]; exists {
			return nil, fmt.Errorf("schema: duplicate schema %q (file %s)", s.Name, path)
		}
		out[s.Name] = s
	}
	return out, nil
}

// Decode parses a document into a Schema. Unknown keys are rejected so
// typos in hint names surface early.
func Decode(doc Document) (Schema, error) {
	dec := yaml.NewDecoder(bytes.NewReader(doc.raw))
	dec.KnownFields(true)

	var s Schema
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return Schema{}, fmt.Errorf("schema: %s is empty", doc.Location())
		}
		return Schema{}, fmt.Errorf("schema: parse %s: %w", doc.Location(), err)
	}
	s.Name = strings.TrimSpace(s.Name)
	for idx, prop := range s.Properties {
		if strings.TrimSpace(prop.Path) == "" {
			return Schema{}, fmt.Errorf("schema: %s: property %d has no path", doc.Location(), idx)
		}
		s.Properties[idx].Path = strings.TrimSpace(prop.Path)
	}
	for idx, prop := range s.Fields {
		if strings.TrimSpace(prop.Path) == "" {
			return Schema{}, fmt.Errorf("schema: %s: field %d has no path", doc.Location(), idx)
		}
		s.Fields[idx].Path = strings.TrimSpace(prop.Path)
	}
	return s, nil
}

func isSchemaFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}
