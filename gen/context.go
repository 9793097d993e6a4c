package gen

import (
	"github.com/jnbooth/ritual/model"
	"github.com/jnbooth/ritual/resolver"
)

// PlaceMode selects which allocation-place variants to generate for
// constructors, destructors and by-value class returns.
type PlaceMode string

const (
	PlaceModeHeap  PlaceMode = "heap"
	PlaceModeStack PlaceMode = "stack"
	PlaceModeBoth  PlaceMode = "both"
)

// Valid reports whether the mode is one of heap, stack or both.
func (m PlaceMode) Valid() bool {
	switch m {
	case PlaceModeHeap, PlaceModeStack, PlaceModeBoth:
		return true
	}
	return false
}

// Places returns the allocation places to generate under this mode.
func (m PlaceMode) Places() []AllocationPlace {
	switch m {
	case PlaceModeStack:
		return []AllocationPlace{PlaceStack}
	case PlaceModeBoth:
		return []AllocationPlace{PlaceHeap, PlaceStack}
	default:
		return []AllocationPlace{PlaceHeap}
	}
}

// Context holds everything a generator needs to produce output.
type Context struct {
	Meta      *model.Metadata
	Index     *resolver.Index
	OutputDir string
	Place     PlaceMode
	Verbose   bool
	Quiet     bool
	DryRun    bool
}

// NewContext creates a new generation context.
func NewContext(meta *model.Metadata, idx *resolver.Index, outputDir string) *Context {
	return &Context{
		Meta:      meta,
		Index:     idx,
		OutputDir: outputDir,
		Place:     PlaceModeBoth,
	}
}
