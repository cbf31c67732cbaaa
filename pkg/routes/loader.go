package routes

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// routeExtensions lists the file extensions considered route files.
var routeExtensions = map[string]bool{
	".yaml": true,
	".yml":  true,
	".json": true,
}

// LoadDir walks root depth-first in lexical order and merges every route
// file it finds into a single RawTable. A pattern declared by several files
// keeps the target of the last one. A missing root yields an empty table.
func LoadDir(fsys fs.FS, root string) (*RawTable, error) {
	raw := NewRawTable()
	root = cleanRoot(root)

	if _, err := fs.Stat(fsys, root); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return raw, nil
		}
		return nil, fmt.Errorf("routes: stat %s: %w", root, err)
	}

	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		table, ok, err := LoadFile(fsys, p)
		if err != nil {
			return err
		}
		if ok {
			raw.Merge(table)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return raw, nil
}

// LoadFile reads a single route file. It returns false without an error
// when the file is not a route file: a different extension, an empty
// document, or a document that is not a mapping of patterns to targets.
func LoadFile(fsys fs.FS, name string) (*RawTable, bool, error) {
	if !routeExtensions[strings.ToLower(path.Ext(name))] {
		return nil, false, nil
	}

	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, false, fmt.Errorf("routes: read %s: %w", name, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, false, fmt.Errorf("%w: %s: %w", ErrInvalidFile, name, err)
	}

	return decodeTable(&doc)
}

// decodeTable walks the mapping node in document order.
func decodeTable(doc *yaml.Node) (*RawTable, bool, error) {
	node := doc
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil, false, nil
		}
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return nil, false, nil
	}

	raw := NewRawTable()
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			return nil, false, nil
		}

		target, ok := decodeTarget(value)
		if !ok {
			return nil, false, nil
		}
		raw.Set(key.Value, target)
	}

	return raw, true, nil
}

// decodeTarget accepts a mapping or a null value. Keys whose values are
// not non-empty strings are dropped.
func decodeTarget(node *yaml.Node) (Target, bool) {
	var t Target
	if node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null" {
		return t, true
	}
	if node.Kind != yaml.MappingNode {
		return t, false
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if value.Kind != yaml.ScalarNode || value.ShortTag() != "!!str" || value.Value == "" {
			continue
		}
		switch key.Value {
		case "controller":
			t.Controller = value.Value
		case "action":
			t.Action = value.Value
		case "layout":
			t.Layout = value.Value
		}
	}
	return t, true
}

// cleanRoot converts a manifest directory into an fs.FS path.
func cleanRoot(root string) string {
	root = Normalize(strings.ReplaceAll(root, `\`, "/"))
	if root == "" {
		return "."
	}
	return path.Clean(root)
}
