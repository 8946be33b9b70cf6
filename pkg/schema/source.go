package schema

import "path/filepath"

// Source identifies where a schema document originated so loaders and error
// messages can refer to files and fs.FS entries alike.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile   SourceKind = "file"
	SourceKindFS     SourceKind = "fs"
	SourceKindInline SourceKind = "inline"
)

type fileSource struct {
	path string
}

func (s fileSource) Location() string { return s.path }

func (s fileSource) Kind() SourceKind { return SourceKindFile }

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

type fsSource struct {
	name string
}

func (s fsSource) Location() string { return s.name }

func (s fsSource) Kind() SourceKind { return SourceKindFS }

// SourceFromFS returns a Source identifying a resource inside an fs.FS.
func SourceFromFS(name string) Source {
	return fsSource{name: name}
}

type inlineSource struct {
	label string
}

func (s inlineSource) Location() string { return s.label }

func (s inlineSource) Kind() SourceKind { return SourceKindInline }

// SourceInline labels a payload that came from memory, such as an embedded
// string or a request body.
func SourceInline(label string) Source {
	if label == "" {
		label = "inline"
	}
	return inlineSource{label: label}
}
