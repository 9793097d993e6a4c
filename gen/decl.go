package gen

import (
	"fmt"
	"strings"

	"github.com/jnbooth/ritual/model"
	"github.com/jnbooth/ritual/resolver"
)

// DeclaredSet tracks C type names already declared within one output
// unit. State is scoped to that unit's generation and discarded after.
type DeclaredSet map[string]bool

// Has reports whether a C type name was already declared.
func (s DeclaredSet) Has(name string) bool { return s[name] }

// Add records a C type name as declared.
func (s DeclaredSet) Add(name string) { s[name] = true }

// TypeDeclaration emits the C-visible declaration for one translated
// type. A full declaration is emitted when the type's owning header is
// the unit being generated, a forward declaration otherwise. The call
// is idempotent per declared set: already-declared names yield empty
// text.
func TypeDeclaration(idx *resolver.Index, ext CTypeExt, currentHeader string, declared DeclaredSet) (string, error) {
	cName := ext.CType.Base
	if declared.Has(cName) || cName == "void" {
		return "", nil
	}
	if cName == "wchar_t" {
		declared.Add(cName)
		return onlyCCode("#include <wchar.h>\n"), nil
	}

	cppName := ext.CppType.Base
	info, ok := idx.Lookup(cppName)
	if !ok {
		return "", &MetadataError{Type: cppName, Detail: "type not found in metadata"}
	}
	switch info.Origin {
	case model.OriginBuiltIn:
		return "", nil
	case model.OriginUnrecognized:
		return "", &MetadataError{Type: cppName, Detail: "unrecognized origin should have been filtered upstream"}
	}

	full := info.Header == currentHeader

	var decl string
	switch info.Kind {
	case model.KindUnknown, model.KindUnsupported:
		return "", &MetadataError{Type: cppName, Detail: fmt.Sprintf("kind %q should have been filtered upstream", info.Kind)}

	case model.KindPrimitive:
		// Library-owned primitives need no declaration of their own.

	case model.KindEnum:
		decl = onlyCCode(enumDeclaration(cName, info.Enumerators, full))

	case model.KindFlags:
		decl = flagsTypedef(cName)

	case model.KindAlias:
		if info.Target == nil {
			return "", &MetadataError{Type: cppName, Detail: "alias has no target"}
		}
		target, err := Translate(idx, *info.Target)
		if err != nil {
			return "", err
		}
		inner, err := TypeDeclaration(idx, target, currentHeader, declared)
		if err != nil {
			return "", err
		}
		decl = inner + onlyCCode(typedefLine(target.CType.CCode(), cName))

	case model.KindClass:
		text, err := structDeclaration(cName, info, full)
		if err != nil {
			return "", err
		}
		decl = onlyCCode(text)
	}

	declared.Add(cName)

	// Renamed types get a C++-only typedef aliasing the real C++ name to
	// the C name so bit-preserving reinterpretations at call sites see a
	// complete type.
	if ext.Conversion.Renamed && cppName != cName {
		decl += onlyCppCode(typedefLine(cppName, cName))
	}
	return decl, nil
}

// structDeclaration formats the opaque struct declaration for a class.
// The full form reserves exactly the class's recorded byte size; a class
// of unknown size can only be forward-declared.
func structDeclaration(cName string, info *model.TypeInfo, full bool) (string, error) {
	if strings.Contains(cName, "::") {
		return "", &MetadataError{Type: cName, Detail: "struct name is not a valid C identifier"}
	}
	var b strings.Builder
	if full {
		if info.Size == nil {
			return "", &MetadataError{Type: cName, Detail: "cannot emit full declaration for class of unknown size"}
		}
		fmt.Fprintf(&b, "struct QTCW_%s { char space[%d]; };\n", cName, *info.Size)
	} else {
		fmt.Fprintf(&b, "struct QTCW_%s;\n", cName)
	}
	fmt.Fprintf(&b, "typedef struct QTCW_%s %s;\n\n", cName, cName)
	return b.String(), nil
}

// enumDeclaration formats an enum declaration. The full form lists every
// enumerator with its literal value, qualified as <Type>_<Enumerator>;
// the forward form introduces only the tag.
func enumDeclaration(cName string, values []model.Enumerator, full bool) string {
	if !full {
		return fmt.Sprintf("typedef enum QTCW_%[1]s %[1]s;\n", cName)
	}
	lines := make([]string, 0, len(values))
	for _, v := range values {
		lines = append(lines, fmt.Sprintf("  %s_%s = %d", cName, v.Name, v.Value))
	}
	return fmt.Sprintf("typedef enum QTCW_%[1]s {\n%[2]s\n} %[1]s;\n", cName, strings.Join(lines, ", \n"))
}

// flagsTypedef formats the unsigned-integer typedef of a flags type.
// Flags need no forward/full distinction.
func flagsTypedef(cName string) string {
	return fmt.Sprintf("typedef unsigned int %s;\n", cName)
}

// typedefLine formats a plain typedef.
func typedefLine(from, to string) string {
	return fmt.Sprintf("typedef %s %s;\n", from, to)
}
