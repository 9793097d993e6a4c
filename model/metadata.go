package model

// Metadata is the top-level structure of an extractor metadata YAML file.
// It describes every C++ type and method of the wrapped library that the
// generator needs to produce the C wrapper layer.
type Metadata struct {
	Library LibraryInfo          `yaml:"library"`
	Types   map[string]*TypeInfo `yaml:"types"`
	Headers []HeaderDef          `yaml:"headers"`
}

// LibraryInfo holds library-level metadata.
type LibraryInfo struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version,omitempty"`
	// Include is the umbrella include of the wrapped library, used in the
	// C++-only region of each generated header. Defaults to Name.
	Include string `yaml:"include,omitempty"`
}

// EffectiveInclude returns the C++ include to use in generated headers.
func (l *LibraryInfo) EffectiveInclude() string {
	if l.Include != "" {
		return l.Include
	}
	return l.Name
}

// TypeKind classifies a C++ type descriptor. The set is closed; the
// generator switches over it exhaustively.
type TypeKind string

const (
	KindPrimitive   TypeKind = "primitive"
	KindEnum        TypeKind = "enum"
	KindFlags       TypeKind = "flags"
	KindClass       TypeKind = "class"
	KindAlias       TypeKind = "alias"
	KindUnsupported TypeKind = "unsupported"
	KindUnknown     TypeKind = "unknown"
)

// Wrappable reports whether a type of this kind may reach the generator.
// Unsupported and unknown kinds signal an upstream extractor defect.
func (k TypeKind) Wrappable() bool {
	switch k {
	case KindPrimitive, KindEnum, KindFlags, KindClass, KindAlias:
		return true
	}
	return false
}

// TypeOrigin identifies where a type is declared.
type TypeOrigin string

const (
	// OriginBuiltIn marks compiler built-ins; no declaration is emitted.
	OriginBuiltIn TypeOrigin = "builtin"
	// OriginLibrary marks types owned by a specific header of the wrapped
	// library.
	OriginLibrary TypeOrigin = "library"
	// OriginUnrecognized marks types the extractor could not place.
	// Reaching the generator with one is fatal.
	OriginUnrecognized TypeOrigin = "unrecognized"
)

// TypeInfo describes one C++ type.
type TypeInfo struct {
	Kind   TypeKind   `yaml:"kind"`
	Origin TypeOrigin `yaml:"origin"`
	// Header is the owning header id for library types.
	Header string `yaml:"header,omitempty"`
	// Size is the class byte size as computed by the extractor. The
	// generator trusts it verbatim; nil means the layout is unknown and
	// only a forward declaration is legal.
	Size *int `yaml:"size,omitempty"`
	// Enumerators lists the enum's values, in declaration order.
	Enumerators []Enumerator `yaml:"enumerators,omitempty"`
	// Enum names the underlying enum of a flags type.
	Enum string `yaml:"enum,omitempty"`
	// Target is the aliased type of an alias.
	Target *CppType `yaml:"target,omitempty"`
}

// Enumerator is one (name, value) pair of an enum.
type Enumerator struct {
	Name  string `yaml:"name"`
	Value int64  `yaml:"value"`
}

// Indirection is the C++-side indirection of a type use.
type Indirection string

const (
	IndirectNone Indirection = ""
	IndirectPtr  Indirection = "ptr"
	IndirectRef  Indirection = "ref"
)

// CppType is one use of a C++ type: base name plus indirection.
type CppType struct {
	Base        string      `yaml:"base"`
	Indirection Indirection `yaml:"indirection,omitempty"`
	Const       bool        `yaml:"const,omitempty"`
}

// CppCode returns the C++ spelling of the type use.
func (t CppType) CppCode() string {
	s := t.Base
	if t.Const {
		s = "const " + s
	}
	switch t.Indirection {
	case IndirectPtr:
		s += "*"
	case IndirectRef:
		s += "&"
	}
	return s
}

// Argument is one C++ method parameter.
type Argument struct {
	Name string  `yaml:"name"`
	Type CppType `yaml:"type"`
}

// Method describes one wrappable C++ method, constructor, destructor or
// free function.
type Method struct {
	Name        string     `yaml:"name"`
	Class       string     `yaml:"class,omitempty"`
	Constructor bool       `yaml:"constructor,omitempty"`
	Destructor  bool       `yaml:"destructor,omitempty"`
	Static      bool       `yaml:"static,omitempty"`
	Protected   bool       `yaml:"protected,omitempty"`
	Signal      bool       `yaml:"signal,omitempty"`
	Args        []Argument `yaml:"args,omitempty"`
	Returns     *CppType   `yaml:"returns,omitempty"`
}

// MethodScope identifies how a method is called.
type MethodScope int

const (
	ScopeFree MethodScope = iota
	ScopeInstance
	ScopeStatic
)

// Scope derives the method's scope from its class and static flags.
func (m *Method) Scope() MethodScope {
	switch {
	case m.Class == "":
		return ScopeFree
	case m.Static:
		return ScopeStatic
	default:
		return ScopeInstance
	}
}

// QualifiedName returns the method's C++ name qualified by its class.
func (m *Method) QualifiedName() string {
	if m.Class == "" {
		return m.Name
	}
	return m.Class + "::" + m.Name
}

// ShortText renders a one-line signature for diagnostics.
func (m *Method) ShortText() string {
	s := m.QualifiedName() + "("
	for i, a := range m.Args {
		if i > 0 {
			s += ", "
		}
		s += a.Type.CppCode() + " " + a.Name
	}
	s += ")"
	if m.Returns != nil {
		s = m.Returns.CppCode() + " " + s
	}
	return s
}

// HeaderDef lists the methods declared in one source header of the
// wrapped library.
type HeaderDef struct {
	Name    string   `yaml:"name"`
	Methods []Method `yaml:"methods,omitempty"`
}
