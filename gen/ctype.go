package gen

import (
	"strings"

	"github.com/jnbooth/ritual/model"
)

// IndirectionChange describes how a value's indirection differs between
// the C++ and C sides of the boundary.
type IndirectionChange int

const (
	NoChange IndirectionChange = iota
	ValueToPointer
	ReferenceToPointer
)

func (c IndirectionChange) String() string {
	switch c {
	case NoChange:
		return "no-change"
	case ValueToPointer:
		return "value-to-pointer"
	case ReferenceToPointer:
		return "reference-to-pointer"
	}
	return "invalid"
}

// AllocationPlace decides where wrapper-constructed objects live: in
// caller-supplied storage or heap-allocated and returned by pointer.
// Only meaningful for constructors, destructors and by-value class
// returns.
type AllocationPlace int

const (
	PlaceHeap AllocationPlace = iota
	PlaceStack
)

func (p AllocationPlace) String() string {
	if p == PlaceStack {
		return "stack"
	}
	return "heap"
}

// RoleKind classifies a C argument's relation to the original C++ call.
type RoleKind int

const (
	RolePositional RoleKind = iota
	RoleThis
	RoleReturnSlot
)

// ArgumentRole carries a RoleKind plus the positional index when the
// kind is RolePositional.
type ArgumentRole struct {
	Kind  RoleKind
	Index int
}

func positional(i int) ArgumentRole { return ArgumentRole{Kind: RolePositional, Index: i} }
func thisReceiver() ArgumentRole    { return ArgumentRole{Kind: RoleThis} }
func returnSlot() ArgumentRole      { return ArgumentRole{Kind: RoleReturnSlot} }

// CType is the C-side spelling of a type: base identifier plus pointer
// indirection depth.
type CType struct {
	Base        string
	Indirection int
}

// CCode returns the C spelling, e.g. "QPoint*".
func (t CType) CCode() string {
	return t.Base + strings.Repeat("*", t.Indirection)
}

// Conversion describes how values of a type cross the boundary.
type Conversion struct {
	Indirection IndirectionChange
	// Renamed marks that the C name differs from the C++ name; crossing
	// requires a bit-preserving reinterpretation at both sides.
	Renamed bool
	// FlagsToUint marks a bitmask-flags type carried as an unsigned
	// integer on the C side.
	FlagsToUint bool
}

// CTypeExt pairs a C type with the C++ type it represents and the
// conversion between them.
type CTypeExt struct {
	CType      CType
	CppType    model.CppType
	Conversion Conversion
}

// IsVoid reports whether the C side is plain void.
func (e CTypeExt) IsVoid() bool {
	return e.CType.Base == "void" && e.CType.Indirection == 0
}

func voidExt() CTypeExt {
	return CTypeExt{
		CType:   CType{Base: "void"},
		CppType: model.CppType{Base: "void"},
	}
}
