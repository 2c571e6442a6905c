package preset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/roach88/dicerules/internal/roll"
)

// Preset is a named, reusable set of roll options.
type Preset struct {
	Name        string
	Description string
	Options     roll.Options

	// Source is the file the preset was loaded from.
	Source string
}

// Build validates the preset's options.
func (p Preset) Build() (*roll.Plan, error) {
	plan, err := p.Options.Build()
	if err != nil {
		return nil, fmt.Errorf("preset %q: %w", p.Name, err)
	}
	return plan, nil
}

// CanonicalMap returns the map form accepted by ir.MarshalCanonical.
func (p Preset) CanonicalMap() map[string]any {
	m := p.Options.CanonicalMap()
	if p.Description != "" {
		m["description"] = p.Description
	}
	return m
}

// LoadMode controls how errors are handled during loading.
type LoadMode int

const (
	// LoadModeFailFast stops on the first error encountered.
	LoadModeFailFast LoadMode = iota
	// LoadModeCollectAll collects all errors before returning.
	LoadModeCollectAll
)

// LoadResult holds the presets found under a path.
type LoadResult struct {
	// Presets are sorted by name.
	Presets   []Preset
	FileCount int
}

// Find returns the preset with the given name.
func (r *LoadResult) Find(name string) (Preset, bool) {
	for _, p := range r.Presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

// Names returns every preset name in order.
func (r *LoadResult) Names() []string {
	names := make([]string, len(r.Presets))
	for i, p := range r.Presets {
		names[i] = p.Name
	}
	return names
}

// Load reads presets from a file or from every .cue, .yaml and .yml file
// under a directory. Preset names must be unique across files.
func Load(path string, mode LoadMode) (*LoadResult, []error) {
	files, err := FindPresetFiles(path)
	if err != nil {
		return nil, []error{err}
	}
	if len(files) == 0 {
		return nil, []error{fmt.Errorf("no preset files found in %s", path)}
	}

	result := &LoadResult{FileCount: len(files)}
	seen := make(map[string]string)
	var errs []error

	for _, file := range files {
		presets, fileErrs := LoadFile(file)
		errs = append(errs, fileErrs...)
		if len(errs) > 0 && mode == LoadModeFailFast {
			return result, errs[:1]
		}

		for _, p := range presets {
			if prev, dup := seen[p.Name]; dup {
				errs = append(errs, &CompileError{
					File:    file,
					Preset:  p.Name,
					Field:   "name",
					Message: "duplicate preset, first defined in " + prev,
				})
				if mode == LoadModeFailFast {
					return result, errs
				}
				continue
			}
			seen[p.Name] = file
			result.Presets = append(result.Presets, p)
		}
	}

	sort.Slice(result.Presets, func(i, j int) bool {
		return result.Presets[i].Name < result.Presets[j].Name
	})
	return result, errs
}

// LoadFile reads presets from a single file, choosing the format by
// extension.
func LoadFile(file string) ([]Preset, []error) {
	src, err := os.ReadFile(file)
	if err != nil {
		return nil, []error{fmt.Errorf("read preset file: %w", err)}
	}

	switch strings.ToLower(filepath.Ext(file)) {
	case ".cue":
		return CompileCUE(file, src)
	case ".yaml", ".yml":
		return CompileYAML(file, src)
	}
	return nil, []error{fmt.Errorf("unsupported preset file %s: want .cue, .yaml or .yml", file)}
}

// FindPresetFiles returns path itself when it is a file, or every preset
// file beneath it in lexical order.
func FindPresetFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("presets path: %w", err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(p)) {
		case ".cue", ".yaml", ".yml":
			files = append(files, p)
		}
		return nil
	})
	return files, err
}

// Validate builds every preset and returns all failures.
func Validate(presets []Preset) []error {
	var errs []error
	for _, p := range presets {
		if _, err := p.Build(); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
