package file

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Format is the encoding of a descriptor file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// documents splits data into its top-level documents. Empty documents are skipped.
func documents(data []byte, format Format) ([]map[string]any, error) {
	if format == FormatJSON {
		return jsonDocuments(data)
	}

	var docs []map[string]any
	dec := yaml.NewDecoder(bytes.NewReader(data))
	for i := 1; ; i++ {
		var node yaml.Node
		err := dec.Decode(&node)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		v, err := plain(&node)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		if v == nil {
			continue
		}
		m, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("document %d: expected a mapping, got %T", i, v)
		}
		docs = append(docs, m)
	}
	return docs, nil
}

// plain converts a YAML node to generic values. Scalars stay strings so a
// symbol such as 0 or 1 keeps its spelling, and null keys become "".
func plain(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return plain(n.Content[0])
	case yaml.AliasNode:
		return plain(n.Alias)
	case yaml.ScalarNode:
		if n.ShortTag() == "!!null" {
			return nil, nil
		}
		return n.Value, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := plain(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.MappingNode:
		out := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			if k.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping keys must be scalars", k.Line)
			}
			key := k.Value
			if k.ShortTag() == "!!null" {
				key = ""
			}
			if _, dup := out[key]; dup {
				return nil, fmt.Errorf("line %d: duplicate key %q", k.Line, key)
			}
			v, err := plain(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			out[key] = v
		}
		return out, nil
	}
	return nil, fmt.Errorf("line %d: unsupported YAML node", n.Line)
}

// jsonDocuments accepts a single object, an array of objects, or a stream of objects.
func jsonDocuments(data []byte) ([]map[string]any, error) {
	var docs []map[string]any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	for {
		var v any
		err := dec.Decode(&v)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", len(docs)+1, err)
		}
		items, ok := v.([]any)
		if !ok {
			items = []any{v}
		}
		for _, item := range items {
			if item == nil {
				continue
			}
			m, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("document %d: expected an object, got %T", len(docs)+1, item)
			}
			docs = append(docs, m)
		}
	}
	return docs, nil
}
