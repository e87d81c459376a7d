package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/beka-birhanu/vinom-pcg/game/problem"
	"gopkg.in/yaml.v3"
)

// problemsFile is the layout of a problem definitions file.
type problemsFile struct {
	Problems []problem.Config `yaml:"problems"`
}

// LoadProblems reads problem definitions from a YAML file. The built-in problems are always
// present; definitions in the file add to them or replace them by name. An empty path yields
// the built-in problems only.
func LoadProblems(path string) (map[string]problem.Config, error) {
	problems := problem.Defaults()
	if path == "" {
		return problems, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading problems file: %w", err)
	}
	defs, err := ParseProblems(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for name, cfg := range defs {
		problems[name] = cfg
	}
	return problems, nil
}

// ParseProblems decodes and validates problem definitions. Unknown fields are rejected.
func ParseProblems(data []byte) (map[string]problem.Config, error) {
	var file problemsFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding problems: %w", err)
	}

	defs := make(map[string]problem.Config, len(file.Problems))
	for n, cfg := range file.Problems {
		if cfg.Name == "" {
			return nil, fmt.Errorf("problem %d has no name", n)
		}
		if _, dup := defs[cfg.Name]; dup {
			return nil, fmt.Errorf("problem %q defined twice", cfg.Name)
		}
		if _, err := problem.New(cfg); err != nil {
			return nil, fmt.Errorf("problem %q: %w", cfg.Name, err)
		}
		defs[cfg.Name] = cfg
	}
	return defs, nil
}
