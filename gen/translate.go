package gen

import (
	"fmt"

	"github.com/jnbooth/ritual/model"
	"github.com/jnbooth/ritual/resolver"
)

// Translate maps one C++ type use to its C-side representation plus the
// conversion applied when values of the type cross the boundary.
// Unsupported/unknown kinds and unrecognized origins must have been
// filtered upstream; reaching here is a metadata defect and aborts the
// run.
func Translate(idx *resolver.Index, t model.CppType) (CTypeExt, error) {
	info, ok := idx.Lookup(t.Base)
	if !ok {
		return CTypeExt{}, &MetadataError{Type: t.Base, Detail: "type not found in metadata"}
	}
	if info.Origin == model.OriginUnrecognized {
		return CTypeExt{}, &MetadataError{Type: t.Base, Detail: "unrecognized origin should have been filtered upstream"}
	}

	switch info.Kind {
	case model.KindUnsupported, model.KindUnknown:
		return CTypeExt{}, &MetadataError{Type: t.Base, Detail: fmt.Sprintf("kind %q should have been filtered upstream", info.Kind)}

	case model.KindPrimitive:
		return translateDirect(t), nil

	case model.KindEnum:
		// Enum representation is integer-compatible by construction, so
		// only the name changes when the C++ name is qualified.
		ext := translateDirect(t)
		cName := SanitizeName(t.Base)
		ext.CType.Base = cName
		ext.Conversion.Renamed = cName != t.Base
		return ext, nil

	case model.KindFlags:
		// Flags cross the boundary as a plain unsigned integer; the C
		// name is typedef'd to unsigned int at declaration time.
		return CTypeExt{
			CType:      CType{Base: SanitizeName(t.Base)},
			CppType:    t,
			Conversion: Conversion{FlagsToUint: true},
		}, nil

	case model.KindClass:
		cName := SanitizeName(t.Base)
		ext := CTypeExt{
			CType:   CType{Base: cName, Indirection: 1},
			CppType: t,
		}
		switch t.Indirection {
		case model.IndirectNone:
			ext.Conversion.Indirection = ValueToPointer
		case model.IndirectRef:
			ext.Conversion.Indirection = ReferenceToPointer
		case model.IndirectPtr:
			// Already a pointer on the C++ side.
		}
		ext.Conversion.Renamed = cName != t.Base
		return ext, nil

	case model.KindAlias:
		resolved, err := idx.ResolveAlias(t)
		if err != nil {
			return CTypeExt{}, &MetadataError{Type: t.Base, Detail: err.Error()}
		}
		ext, err := Translate(idx, resolved)
		if err != nil {
			return CTypeExt{}, err
		}
		cName := SanitizeName(t.Base)
		if cName != resolved.Base {
			ext.Conversion.Renamed = true
		}
		ext.CType.Base = cName
		ext.CppType = t
		return ext, nil
	}

	return CTypeExt{}, &MetadataError{Type: t.Base, Detail: fmt.Sprintf("unhandled kind %q", info.Kind)}
}

// translateDirect maps a type whose C spelling equals its C++ spelling.
// A reference becomes a pointer; everything else is unchanged.
func translateDirect(t model.CppType) CTypeExt {
	ext := CTypeExt{CType: CType{Base: t.Base}, CppType: t}
	switch t.Indirection {
	case model.IndirectPtr:
		ext.CType.Indirection = 1
	case model.IndirectRef:
		ext.CType.Indirection = 1
		ext.Conversion.Indirection = ReferenceToPointer
	}
	return ext
}
