package source

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Parse reads entries from YAML or JSON data.
//
// A top-level mapping lists literal tokens in file order. Each value is
// either a constant or an entry body:
//
//	"{user}": alice
//	"{port}": 8080
//	"{home}": {env: HOME}
//
// A top-level sequence lists full entries and is the only form that
// supports patterns:
//
//	- token: "{user}"
//	  value: alice
//	- pattern: '<(?P<name>\w+)>'
//	  group: name
//	  lookup: {downloads: /tmp/dl}
//
// Empty input yields no entries.
func Parse(data []byte) ([]Entry, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse values: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	switch root.Kind {
	case yaml.MappingNode:
		return parseMapping(root)
	case yaml.SequenceNode:
		var entries []Entry
		if err := root.Decode(&entries); err != nil {
			return nil, fmt.Errorf("parse values: %w", err)
		}
		return entries, nil
	default:
		return nil, fmt.Errorf("parse values: line %d: expected a mapping or a sequence", root.Line)
	}
}

// parseMapping keeps the key order of the mapping node.
func parseMapping(root *yaml.Node) ([]Entry, error) {
	entries := make([]Entry, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]

		var e Entry
		if val.Kind == yaml.MappingNode {
			if err := val.Decode(&e); err != nil {
				return nil, fmt.Errorf("parse values: key %q: %w", key.Value, err)
			}
			if e.Token == "" && e.Pattern == "" {
				e.Token = key.Value
			}
		} else {
			e.Token = key.Value
			if err := val.Decode(&e.Value); err != nil {
				return nil, fmt.Errorf("parse values: key %q: %w", key.Value, err)
			}
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// LoadFile reads entries from a YAML or JSON file.
func LoadFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read values file: %w", err)
	}
	return Parse(data)
}
