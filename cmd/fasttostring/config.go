package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// yamlConfig loads flag defaults from a YAML mapping of flag names to values:
//
//	method: Name
//	tags: [integration, linux]
//
// Command line flags take precedence.
func yamlConfig(r io.Reader) (kong.Resolver, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	values := make(map[string]any)
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &values); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
	}
	return yamlResolver(values), nil
}

type yamlResolver map[string]any

func (r yamlResolver) Validate(app *kong.Application) error {
	// Resolve ranges over the map, so spellings of one flag must not compete.
	spellings := make(map[string][]string, len(r))
	for key := range r {
		spellings[normalize(key)] = append(spellings[normalize(key)], key)
	}
	var dups []string
	for name, keys := range spellings {
		if len(keys) > 1 {
			sort.Strings(keys)
			dups = append(dups, fmt.Sprintf("%s (%s)", name, strings.Join(keys, ", ")))
		}
	}
	if len(dups) > 0 {
		sort.Strings(dups)
		return fmt.Errorf("config: keys set more than once: %s", strings.Join(dups, "; "))
	}

	known := make(map[string]bool)
	collectFlags(app.Node, known)

	var unknown []string
	for key := range r {
		if !known[normalize(key)] {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("config: unknown keys %s", strings.Join(unknown, ", "))
	}
	return nil
}

func (r yamlResolver) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	for key, v := range r {
		if normalize(key) != flag.Name {
			continue
		}
		return flagValue(v)
	}
	return nil, nil
}

func collectFlags(node *kong.Node, known map[string]bool) {
	for _, f := range node.Flags {
		known[f.Name] = true
	}
	for _, child := range node.Children {
		collectFlags(child, known)
	}
}

// normalize maps snake_case keys to kong flag names.
func normalize(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}

// flagValue renders a YAML value the way it would be written on the command line.
func flagValue(v any) (any, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case []any:
		parts := make([]string, 0, len(v))
		for _, e := range v {
			s, err := flagValue(e)
			if err != nil {
				return nil, err
			}
			parts = append(parts, fmt.Sprint(s))
		}
		return strings.Join(parts, ","), nil
	case map[string]any:
		return nil, fmt.Errorf("config: nested mappings are not supported")
	default:
		return fmt.Sprint(v), nil
	}
}
