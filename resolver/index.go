package resolver

import (
	"fmt"
	"sort"

	"github.com/jnbooth/ritual/model"
)

// Index provides lookups over an immutable metadata type map.
type Index struct {
	meta *model.Metadata
}

// NewIndex wraps a parsed metadata graph.
func NewIndex(meta *model.Metadata) *Index {
	return &Index{meta: meta}
}

// Metadata returns the wrapped metadata.
func (x *Index) Metadata() *model.Metadata {
	return x.meta
}

// Lookup finds the descriptor for a qualified C++ type name.
func (x *Index) Lookup(name string) (*model.TypeInfo, bool) {
	info, ok := x.meta.Types[name]
	return info, ok
}

// ResolveAlias follows an alias chain to the first non-alias type use.
// Indirection and constness of the use site are preserved when the alias
// target does not carry its own. Cycles and dangling targets are errors.
func (x *Index) ResolveAlias(t model.CppType) (model.CppType, error) {
	seen := map[string]bool{}
	for {
		info, ok := x.Lookup(t.Base)
		if !ok {
			return model.CppType{}, fmt.Errorf("type %q not found in metadata", t.Base)
		}
		if info.Kind != model.KindAlias {
			return t, nil
		}
		if seen[t.Base] {
			return model.CppType{}, fmt.Errorf("alias cycle through %q", t.Base)
		}
		seen[t.Base] = true
		if info.Target == nil {
			return model.CppType{}, fmt.Errorf("alias %q has no target", t.Base)
		}
		next := *info.Target
		if next.Indirection == model.IndirectNone {
			next.Indirection = t.Indirection
		}
		next.Const = next.Const || t.Const
		t = next
	}
}

// HeaderUnit is one generation unit: an owning header with its types and
// methods. Every library type and every method belongs to exactly one unit.
type HeaderUnit struct {
	Name    string
	Types   []string       // sorted qualified type names owned by the header
	Methods []model.Method // metadata order
}

// Partition groups the metadata's types and methods by owning header.
// Units are returned in sorted header order so generation is deterministic.
func (x *Index) Partition() []HeaderUnit {
	byHeader := map[string]*HeaderUnit{}
	unit := func(name string) *HeaderUnit {
		u, ok := byHeader[name]
		if !ok {
			u = &HeaderUnit{Name: name}
			byHeader[name] = u
		}
		return u
	}

	for name, info := range x.meta.Types {
		if info.Origin == model.OriginLibrary && info.Header != "" {
			u := unit(info.Header)
			u.Types = append(u.Types, name)
		}
	}
	for _, h := range x.meta.Headers {
		u := unit(h.Name)
		u.Methods = append(u.Methods, h.Methods...)
	}

	names := make([]string, 0, len(byHeader))
	for name := range byHeader {
		names = append(names, name)
	}
	sort.Strings(names)

	units := make([]HeaderUnit, 0, len(names))
	for _, name := range names {
		u := byHeader[name]
		sort.Strings(u.Types)
		units = append(units, *u)
	}
	return units
}
