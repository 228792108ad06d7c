// Copyright (c) 2025 Ayga
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package registry turns the static parser catalog into dispatchable tools.
// Each parser becomes a tool named prefix + task kind whose argument schema
// is derived from the parser category. The registry lists tools, resolves
// names, and normalizes call arguments into task submissions.
//
// A Registry is built once at start-up and never mutated, so it is safe for
// concurrent use without locking.
package registry

import "fmt"

// Descriptor identifies a tool and, for parser tools, the remote task kind it runs.
type Descriptor struct {
	Name        string
	TaskKind    string
	Prefix      string
	Title       string
	Description string
	Category    Category
}

// IsParser reports whether invoking the tool submits a remote task.
func (d Descriptor) IsParser() bool { return d.TaskKind != "" }

// Tool pairs a descriptor with its derived argument schema.
type Tool struct {
	Descriptor
	Schema Schema
}

func (t Tool) clone() Tool {
	t.Schema = NewSchema(t.Schema.fields...)
	return t
}

// Registry is an immutable, ordered set of tools.
type Registry struct {
	tools  []Tool
	byName map[string]int
}

// New builds a registry from catalog entries followed by the fixed metadata and key-value tools.
// It fails on duplicate or empty names.
func New(entries []Entry) (*Registry, error) {
	r := &Registry{byName: make(map[string]int, len(entries)+5)}
	for _, e := range entries {
		if e.TaskKind == "" {
			return nil, fmt.Errorf("catalog entry %q has no task kind", e.Title)
		}
		prefix := e.Prefix
		if prefix == "" {
			prefix = PrefixSearch
		}
		cat := Categorize(e.TaskKind)
		t := Tool{
			Descriptor: Descriptor{
				Name:        prefix + e.TaskKind,
				TaskKind:    e.TaskKind,
				Prefix:      prefix,
				Title:       e.Title,
				Description: e.Description,
				Category:    cat,
			},
			Schema: DeriveSchema(cat),
		}
		if err := r.add(t); err != nil {
			return nil, err
		}
	}
	for _, t := range fixedTools() {
		if err := r.add(t); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Default returns the registry built from Catalog.
func Default() *Registry {
	r, err := New(Catalog)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Registry) add(t Tool) error {
	if _, dup := r.byName[t.Name]; dup {
		return fmt.Errorf("duplicate tool name %q", t.Name)
	}
	r.byName[t.Name] = len(r.tools)
	r.tools = append(r.tools, t)
	return nil
}

// List returns every tool in declaration order. The result is a fresh copy on each call.
func (r *Registry) List() []Tool {
	out := make([]Tool, len(r.tools))
	for i, t := range r.tools {
		out[i] = t.clone()
	}
	return out
}

// Lookup finds any tool, parser or fixed, by exact name.
func (r *Registry) Lookup(name string) (Tool, bool) {
	i, ok := r.byName[name]
	if !ok {
		return Tool{}, false
	}
	return r.tools[i].clone(), true
}

// Resolve finds a parser tool by exact name. Fixed tools and unknown names
// both report false.
func (r *Registry) Resolve(name string) (Descriptor, bool) {
	t, ok := r.Lookup(name)
	if !ok || !t.IsParser() {
		return Descriptor{}, false
	}
	return t.Descriptor, true
}

// Len returns the number of registered tools.
func (r *Registry) Len() int { return len(r.tools) }
