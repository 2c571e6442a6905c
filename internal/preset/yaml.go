package preset

import (
	"bytes"
	"errors"
	"io"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/roach88/dicerules/internal/roll"
)

// yamlFile is the top-level shape of a YAML preset file.
type yamlFile struct {
	Presets map[string]yamlPreset `yaml:"presets"`
}

type yamlPreset struct {
	Description  string `yaml:"description,omitempty"`
	roll.Options `yaml:",inline"`
}

// CompileYAML parses every preset declared in a YAML source file.
// Unknown fields are rejected.
func CompileYAML(filename string, src []byte) ([]Preset, []error) {
	dec := yaml.NewDecoder(bytes.NewReader(src))
	dec.KnownFields(true)

	var f yamlFile
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, []error{&CompileError{File: filename, Field: "yaml", Message: err.Error()}}
	}

	names := make([]string, 0, len(f.Presets))
	for name := range f.Presets {
		names = append(names, name)
	}
	sort.Strings(names)

	var presets []Preset
	var errs []error
	for _, name := range names {
		yp := f.Presets[name]
		if yp.Expression == "" {
			errs = append(errs, &CompileError{File: filename, Preset: name, Field: "expression", Message: "expression is required"})
			continue
		}
		presets = append(presets, Preset{
			Name:        name,
			Description: yp.Description,
			Options:     yp.Options,
			Source:      filename,
		})
	}
	return presets, errs
}
