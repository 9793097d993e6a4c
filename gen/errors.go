package gen

import "fmt"

// MetadataError reports a type that must have been filtered upstream
// (unsupported/unknown kind or unrecognized origin) reaching the
// generator. It is a defect in the extractor output, not a user error,
// and aborts the run.
type MetadataError struct {
	Type   string // qualified C++ type name
	Detail string
}

func (e *MetadataError) Error() string {
	return fmt.Sprintf("invalid metadata for type %q: %s", e.Type, e.Detail)
}

// MappingError reports a C argument role that could not be located among
// a wrapped method's C arguments. The method is malformed and must not
// produce a plausible-but-wrong wrapper.
type MappingError struct {
	Method string // generated C function name
	Role   string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("method %s: no C argument with role %s", e.Method, e.Role)
}

// ConventionViolation reports a breach of a structural convention the
// emitters rely on, such as a stack-place wrapper with a non-void return.
type ConventionViolation struct {
	Method string
	Detail string
}

func (e *ConventionViolation) Error() string {
	return fmt.Sprintf("method %s: %s", e.Method, e.Detail)
}
