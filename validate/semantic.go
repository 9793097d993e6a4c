package validate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jnbooth/ritual/model"
	"github.com/jnbooth/ritual/resolver"
)

// ValidationError represents a single semantic validation error.
type ValidationError struct {
	Path    string // e.g., "headers[0].methods[1].returns"
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidationResult holds all validation errors.
type ValidationResult struct {
	Errors []ValidationError
}

func (r *ValidationResult) addError(path, message string) {
	r.Errors = append(r.Errors, ValidationError{Path: path, Message: message})
}

func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

func (r *ValidationResult) Error() string {
	if r.IsValid() {
		return ""
	}
	var msgs []string
	for _, e := range r.Errors {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "\n")
}

// Validate performs semantic validation on parsed extractor metadata.
// Everything flagged here would otherwise surface as a fatal generation
// error; catching it up front gives the extractor author one complete
// report instead of the first failure.
func Validate(meta *model.Metadata, idx *resolver.Index) *ValidationResult {
	result := &ValidationResult{}

	validateTypes(meta, idx, result)
	validateHeaders(meta, idx, result)

	return result
}

func validateTypes(meta *model.Metadata, idx *resolver.Index, result *ValidationResult) {
	names := make([]string, 0, len(meta.Types))
	for name := range meta.Types {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		info := meta.Types[name]
		path := fmt.Sprintf("types[%s]", name)

		if !info.Kind.Wrappable() {
			result.addError(path+".kind", fmt.Sprintf("kind %q cannot be wrapped; the extractor must filter it out", info.Kind))
			continue
		}
		if info.Origin == model.OriginUnrecognized {
			result.addError(path+".origin", "unrecognized origin; the extractor must filter it out")
			continue
		}
		if info.Origin == model.OriginLibrary && info.Header == "" {
			result.addError(path+".header", "library type has no owning header")
		}

		switch info.Kind {
		case model.KindClass:
			// A library class is fully declared in its owning unit, which
			// needs the exact byte size.
			if info.Origin == model.OriginLibrary && info.Size == nil {
				result.addError(path+".size", "class byte size is unknown; a full declaration cannot be emitted")
			}
		case model.KindEnum:
			if info.Origin == model.OriginLibrary && len(info.Enumerators) == 0 {
				result.addError(path+".enumerators", "library enum has no enumerators")
			}
		case model.KindFlags:
			if info.Enum != "" {
				underlying, ok := idx.Lookup(info.Enum)
				if !ok {
					result.addError(path+".enum", fmt.Sprintf("underlying enum %q not found in metadata", info.Enum))
				} else if underlying.Kind != model.KindEnum {
					result.addError(path+".enum", fmt.Sprintf("underlying type %q is %s, not an enum", info.Enum, underlying.Kind))
				}
			}
		case model.KindAlias:
			if info.Target == nil {
				result.addError(path+".target", "alias has no target")
			} else if _, err := idx.ResolveAlias(model.CppType{Base: name}); err != nil {
				result.addError(path+".target", err.Error())
			}
		}
	}
}

func validateHeaders(meta *model.Metadata, idx *resolver.Index, result *ValidationResult) {
	headerSeen := make(map[string]bool)
	for i, h := range meta.Headers {
		headerPath := fmt.Sprintf("headers[%d]", i)
		if headerSeen[h.Name] {
			result.addError(headerPath+".name", fmt.Sprintf("duplicate header name %q", h.Name))
		}
		headerSeen[h.Name] = true

		for j := range h.Methods {
			method := &h.Methods[j]
			methodPath := fmt.Sprintf("%s.methods[%d]", headerPath, j)
			validateMethod(method, methodPath, idx, result)
		}
	}
}

func validateMethod(method *model.Method, path string, idx *resolver.Index, result *ValidationResult) {
	if method.Constructor && method.Destructor {
		result.addError(path, fmt.Sprintf("method %q is both constructor and destructor", method.Name))
	}
	if (method.Constructor || method.Destructor) && method.Class == "" {
		result.addError(path+".class", fmt.Sprintf("constructor/destructor %q outside class scope", method.Name))
	}
	if method.Static && (method.Constructor || method.Destructor) {
		result.addError(path, fmt.Sprintf("constructor/destructor %q cannot be static", method.Name))
	}
	if method.Destructor {
		if len(method.Args) > 0 {
			result.addError(path+".args", fmt.Sprintf("destructor %q takes arguments", method.Name))
		}
		if method.Returns != nil {
			result.addError(path+".returns", fmt.Sprintf("destructor %q declares a return type", method.Name))
		}
	}

	if method.Class != "" {
		info, ok := idx.Lookup(method.Class)
		switch {
		case !ok:
			result.addError(path+".class", fmt.Sprintf("class %q not found in metadata", method.Class))
		case info.Kind != model.KindClass:
			result.addError(path+".class", fmt.Sprintf("type %q is %s, not a class", method.Class, info.Kind))
		}
	}

	for k, arg := range method.Args {
		if _, ok := idx.Lookup(arg.Type.Base); !ok {
			result.addError(fmt.Sprintf("%s.args[%d].type", path, k),
				fmt.Sprintf("type %q not found in metadata", arg.Type.Base))
		}
	}
	if method.Returns != nil && !method.Destructor {
		if _, ok := idx.Lookup(method.Returns.Base); !ok {
			result.addError(path+".returns",
				fmt.Sprintf("type %q not found in metadata", method.Returns.Base))
		}
	}
}
