package gen

import (
	"fmt"
	"strings"

	"github.com/jnbooth/ritual/model"
)

// SanitizeName flattens a qualified C++ name into a C identifier,
// e.g. "Qt::AlignmentFlag" → "Qt_AlignmentFlag".
func SanitizeName(name string) string {
	return strings.ReplaceAll(name, "::", "_")
}

// WrapperBaseName builds the C entry point name for a method, without
// any allocation-place suffix: qtcw_<Class>_<name>, with constructors
// named "new" and destructors "delete".
func WrapperBaseName(m *model.Method) string {
	parts := []string{"qtcw"}
	if m.Class != "" {
		parts = append(parts, SanitizeName(m.Class))
	}
	switch {
	case m.Constructor:
		parts = append(parts, "new")
	case m.Destructor:
		parts = append(parts, "delete")
	default:
		parts = append(parts, SanitizeName(m.Name))
	}
	return strings.Join(parts, "_")
}

// StackSuffix is appended to wrapper names of stack-place variants when
// both allocation places are generated.
const StackSuffix = "_SA"

// IncludeGuard returns the include guard macro for a header unit,
// e.g. "qpoint" → "QTCW_QPOINT_H".
func IncludeGuard(header string) string {
	return "QTCW_" + strings.ToUpper(SanitizeName(header)) + "_H"
}

// UnitHeaderFile returns the generated header file name for a unit.
func UnitHeaderFile(header string) string {
	return "qtcw_" + header + ".h"
}

// UnitSourceFile returns the generated source file name for a unit.
func UnitSourceFile(header string) string {
	return "qtcw_" + header + ".cpp"
}

// onlyCCode wraps declaration text so it is visible to C compilers only.
func onlyCCode(code string) string {
	return fmt.Sprintf("#ifndef __cplusplus // if C\n%s#endif // if C\n\n", code)
}

// onlyCppCode wraps declaration text so it is visible to C++ compilers only.
func onlyCppCode(code string) string {
	return fmt.Sprintf("#ifdef __cplusplus // if C++\n%s#endif // if C++\n\n", code)
}
