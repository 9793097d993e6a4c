package gen

import (
	"fmt"
	"strings"

	"github.com/jnbooth/ritual/model"
	"github.com/jnbooth/ritual/resolver"
)

// CArgument is one argument of a generated C function. Every argument
// carries exactly one role, used to reconstruct the original C++ call.
type CArgument struct {
	Name string
	Type CTypeExt
	Role ArgumentRole
}

// CSignature is the C-side signature of a wrapped method.
type CSignature struct {
	ReturnType CTypeExt
	Args       []CArgument
}

// WrappedMethod pairs a C++ method with its synthesized C signature at a
// chosen allocation place.
type WrappedMethod struct {
	Method model.Method
	Place  AllocationPlace
	CName  string
	Sig    CSignature
}

// BuildWrapper synthesizes the C signature for one method. A this
// receiver is inserted for non-static instance methods and destructors;
// a return value slot is appended when the return value is constructed
// into caller-supplied storage (stack place).
func BuildWrapper(idx *resolver.Index, method model.Method, place AllocationPlace, cName string) (*WrappedMethod, error) {
	w := &WrappedMethod{Method: method, Place: place, CName: cName}

	if method.Class != "" && !method.Static && !method.Constructor {
		w.Sig.Args = append(w.Sig.Args, CArgument{
			Name: "self",
			Type: CTypeExt{
				CType:   CType{Base: SanitizeName(method.Class), Indirection: 1},
				CppType: model.CppType{Base: method.Class, Indirection: model.IndirectPtr},
			},
			Role: thisReceiver(),
		})
	}

	for i, a := range method.Args {
		ext, err := Translate(idx, a.Type)
		if err != nil {
			return nil, err
		}
		name := a.Name
		if name == "" {
			name = fmt.Sprintf("arg%d", i+1)
		}
		w.Sig.Args = append(w.Sig.Args, CArgument{Name: name, Type: ext, Role: positional(i)})
	}

	ret, slot, err := buildReturn(idx, &method, place)
	if err != nil {
		return nil, err
	}
	w.Sig.ReturnType = ret
	if slot != nil {
		w.Sig.Args = append(w.Sig.Args, *slot)
	}
	return w, nil
}

// buildReturn derives the C return type, plus the return value slot
// argument when the stack place moves construction to the caller.
func buildReturn(idx *resolver.Index, method *model.Method, place AllocationPlace) (CTypeExt, *CArgument, error) {
	if method.Destructor {
		return voidExt(), nil, nil
	}

	var ret model.CppType
	switch {
	case method.Constructor:
		ret = model.CppType{Base: method.Class}
	case method.Returns != nil:
		ret = *method.Returns
	default:
		return voidExt(), nil, nil
	}

	ext, err := Translate(idx, ret)
	if err != nil {
		return CTypeExt{}, nil, err
	}
	if place == PlaceStack && ext.Conversion.Indirection == ValueToPointer {
		slot := &CArgument{Name: "output", Type: ext, Role: returnSlot()}
		return voidExt(), slot, nil
	}
	return ext, nil, nil
}

func (m *WrappedMethod) findArg(kind RoleKind, index int) (*CArgument, bool) {
	for i := range m.Sig.Args {
		a := &m.Sig.Args[i]
		if a.Role.Kind != kind {
			continue
		}
		if kind == RolePositional && a.Role.Index != index {
			continue
		}
		return a, true
	}
	return nil, false
}

// argsToCCode renders the C parameter list.
func (m *WrappedMethod) argsToCCode() string {
	if len(m.Sig.Args) == 0 {
		return "void"
	}
	parts := make([]string, 0, len(m.Sig.Args))
	for _, a := range m.Sig.Args {
		parts = append(parts, a.Type.CType.CCode()+" "+a.Name)
	}
	return strings.Join(parts, ", ")
}

// HeaderCode renders the exported C declaration of the wrapper.
func (m *WrappedMethod) HeaderCode() string {
	return fmt.Sprintf("%s QTCW_EXPORT %s(%s);\n",
		m.Sig.ReturnType.CType.CCode(), m.CName, m.argsToCCode())
}

// SourceCode renders the C++ definition of the wrapper.
func (m *WrappedMethod) SourceCode() (string, error) {
	body, err := m.sourceBody()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s %s(%s) {\n  %s}\n\n",
		m.Sig.ReturnType.CType.CCode(), m.CName, m.argsToCCode(), body), nil
}

func (m *WrappedMethod) sourceBody() (string, error) {
	if m.Method.Destructor && m.Place == PlaceHeap {
		this, ok := m.findArg(RoleThis, 0)
		if !ok {
			return "", &MappingError{Method: m.CName, Role: "this receiver"}
		}
		return fmt.Sprintf("delete %s;\n", this.Name), nil
	}
	expr, err := m.returnedExpression()
	if err != nil {
		return "", err
	}
	keyword := "return "
	if m.Sig.ReturnType.IsVoid() {
		keyword = ""
	}
	return fmt.Sprintf("%s%s;\n", keyword, expr), nil
}

// returnedExpression builds the C++ expression performing the actual
// call, then applies the return conversions.
func (m *WrappedMethod) returnedExpression() (string, error) {
	if m.Method.Destructor {
		this, ok := m.findArg(RoleThis, 0)
		if !ok {
			return "", &MappingError{Method: m.CName, Role: "this receiver"}
		}
		return m.convertReturnType(fmt.Sprintf("qtcw_call_destructor(%s)", this.Name))
	}

	var target string
	switch {
	case m.Method.Constructor:
		if m.Method.Class == "" {
			return "", &ConventionViolation{Method: m.CName, Detail: "constructor outside class scope"}
		}
		switch m.Place {
		case PlaceStack:
			slot, ok := m.findArg(RoleReturnSlot, 0)
			if !ok {
				return "", &MappingError{Method: m.CName, Role: "return value slot"}
			}
			target = fmt.Sprintf("new(%s) %s", slot.Name, m.Method.Class)
		case PlaceHeap:
			target = "new " + m.Method.Class
		}
	case m.Method.Class != "":
		if m.Method.Static {
			target = m.Method.Class + "::" + m.Method.Name
		} else {
			this, ok := m.findArg(RoleThis, 0)
			if !ok {
				return "", &MappingError{Method: m.CName, Role: "this receiver"}
			}
			target = this.Name + "->" + m.Method.Name
		}
	default:
		target = m.Method.Name
	}

	args, err := m.argumentValues()
	if err != nil {
		return "", err
	}
	return m.convertReturnType(fmt.Sprintf("%s(%s)", target, args))
}

// argumentValues unwraps every positional C argument back into the C++
// value the wrapped call expects: dereference once on an indirection
// change, reinterpret if renamed, reconstruct a flags object from the
// integer.
func (m *WrappedMethod) argumentValues() (string, error) {
	values := make([]string, 0, len(m.Method.Args))
	for i, cppArg := range m.Method.Args {
		c, ok := m.findArg(RolePositional, i)
		if !ok {
			return "", &MappingError{Method: m.CName, Role: fmt.Sprintf("positional argument %d", i)}
		}
		v := c.Name
		switch c.Type.Conversion.Indirection {
		case ValueToPointer, ReferenceToPointer:
			v = "*" + v
		case NoChange:
		}
		if c.Type.Conversion.Renamed {
			v = fmt.Sprintf("reinterpret_cast<%s>(%s)", cppArg.Type.CppCode(), v)
		}
		if c.Type.Conversion.FlagsToUint {
			v = fmt.Sprintf("%s(%s)", cppArg.Type.Base, v)
		}
		values = append(values, v)
	}
	return strings.Join(values, ", "), nil
}

// convertReturnType applies the return conversions in fixed order:
// indirection change, bit-preserving reinterpretation, narrowing to
// unsigned integer, and finally placement construction into the return
// value slot for stack-place wrappers.
func (m *WrappedMethod) convertReturnType(expr string) (string, error) {
	conv := m.Sig.ReturnType.Conversion
	switch conv.Indirection {
	case NoChange:
	case ValueToPointer:
		if m.Place == PlaceStack {
			return "", &ConventionViolation{Method: m.CName, Detail: "stack-place wrapper must return void"}
		}
		// Constructors already return a pointer through `new`; any other
		// by-value result is copied to the heap.
		if !m.Method.Constructor {
			if m.Method.Returns == nil {
				return "", &ConventionViolation{Method: m.CName, Detail: "value-to-pointer return without a C++ return type"}
			}
			expr = fmt.Sprintf("new %s(%s)", m.Method.Returns.Base, expr)
		}
	case ReferenceToPointer:
		expr = "&" + expr
	}
	if conv.Renamed {
		expr = fmt.Sprintf("reinterpret_cast<%s>(%s)", m.Sig.ReturnType.CType.CCode(), expr)
	}
	if conv.FlagsToUint {
		expr = fmt.Sprintf("uint(%s)", expr)
	}
	if m.Place == PlaceStack && !m.Method.Constructor {
		if slot, ok := m.findArg(RoleReturnSlot, 0); ok {
			if m.Method.Returns == nil {
				return "", &ConventionViolation{Method: m.CName, Detail: "return value slot present without a C++ return type"}
			}
			expr = fmt.Sprintf("new(%s) %s(%s)", slot.Name, m.Method.Returns.Base, expr)
		}
	}
	return expr, nil
}
