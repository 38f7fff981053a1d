package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/acceptor/pkg/adapters/memory"
	"github.com/aretw0/acceptor/pkg/automaton"
)

// Loader implements ports.MachineLoader over a descriptor file.
// The file is read once, when the loader is created.
type Loader struct {
	*memory.Loader
	path string
}

// NewLoader reads and decodes the descriptor file at path.
func NewLoader(path string) (*Loader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read descriptor file: %w", err)
	}
	defs, err := Parse(data, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	mem, err := memory.NewLoader(defs...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Loader{Loader: mem, path: path}, nil
}

// Path returns the descriptor file the loader was created from.
func (l *Loader) Path() string {
	return l.path
}

// FormatOf picks the format from the file extension; anything but .json is YAML.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Parse decodes every machine document in data, in order. Problems in
// separate documents are all reported, joined into one error.
func Parse(data []byte, format Format) ([]automaton.Definition, error) {
	docs, err := documents(data, format)
	if err != nil {
		return nil, err
	}

	var (
		defs []automaton.Definition
		errs []error
		seen = make(map[string]struct{}, len(docs))
	)
	for _, doc := range docs {
		def, err := definition(doc)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if _, dup := seen[def.MachineName()]; dup {
			errs = append(errs, fieldErr(def.MachineName(), "name", "duplicate machine name"))
			continue
		}
		seen[def.MachineName()] = struct{}{}
		defs = append(defs, def)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return defs, nil
}
