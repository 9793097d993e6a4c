package gen

import (
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jnbooth/ritual/model"
	"github.com/jnbooth/ritual/resolver"
)

func init() {
	Register("wrappers", func() Generator { return &WrapperGenerator{} })
}

// WrapperGenerator produces the C wrapper layer: one header/source pair
// per source header of the wrapped library, plus the umbrella header
// aggregating them.
type WrapperGenerator struct{}

func (g *WrapperGenerator) Name() string { return "wrappers" }

func (g *WrapperGenerator) Generate(ctx *Context) ([]*OutputFile, error) {
	units := ctx.Index.Partition()

	// Units share no state, so they can be generated concurrently.
	// Output stays deterministic: each unit's bytes are a pure function
	// of the metadata and the umbrella is built from the sorted list.
	perUnit := make([][]*OutputFile, len(units))
	var eg errgroup.Group
	for i := range units {
		i := i
		unit := units[i]
		eg.Go(func() error {
			files, err := g.generateUnit(ctx, unit)
			if err != nil {
				return fmt.Errorf("header %s: %w", unit.Name, err)
			}
			perUnit[i] = files
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	files := make([]*OutputFile, 0, len(units)*2+1)
	for _, f := range perUnit {
		files = append(files, f...)
	}
	files = append(files, umbrellaHeader(units))
	return files, nil
}

// generateUnit writes one header/source pair. Declarations for every
// type referenced by the unit's signatures precede the method
// declarations themselves.
func (g *WrapperGenerator) generateUnit(ctx *Context, unit resolver.HeaderUnit) ([]*OutputFile, error) {
	idx := ctx.Index
	var h, cpp strings.Builder

	guard := IncludeGuard(unit.Name)
	fmt.Fprintf(&h, "#ifndef %s\n#define %s\n\n", guard, guard)
	h.WriteString("#include \"qtcw_global.h\"\n\n")
	fmt.Fprintf(&h, "#ifdef __cplusplus\n#include <%s>\n#endif\n\n", ctx.Meta.Library.EffectiveInclude())
	h.WriteString("QTCW_EXTERN_C_BEGIN\n\n")

	fmt.Fprintf(&cpp, "#include \"%s\"\n", UnitHeaderFile(unit.Name))
	cpp.WriteString("#include <new>\n\n")

	declared := DeclaredSet{}

	// The unit's own types first, so their full declarations precede any
	// reference from a signature.
	for _, name := range unit.Types {
		ext, err := Translate(idx, model.CppType{Base: name})
		if err != nil {
			return nil, err
		}
		decl, err := TypeDeclaration(idx, ext, unit.Name, declared)
		if err != nil {
			return nil, err
		}
		h.WriteString(decl)
	}

	methods, err := g.wrapMethods(ctx, unit)
	if err != nil {
		return nil, err
	}

	for _, m := range methods {
		decl, err := TypeDeclaration(idx, m.Sig.ReturnType, unit.Name, declared)
		if err != nil {
			return nil, err
		}
		h.WriteString(decl)
		for _, a := range m.Sig.Args {
			decl, err := TypeDeclaration(idx, a.Type, unit.Name, declared)
			if err != nil {
				return nil, err
			}
			h.WriteString(decl)
		}
	}

	for _, m := range methods {
		h.WriteString(m.HeaderCode())
		src, err := m.SourceCode()
		if err != nil {
			return nil, err
		}
		cpp.WriteString(src)
	}

	h.WriteString("\nQTCW_EXTERN_C_END\n\n")
	fmt.Fprintf(&h, "#endif // %s\n", guard)

	return []*OutputFile{
		{Path: "include/" + UnitHeaderFile(unit.Name), Content: []byte(h.String())},
		{Path: "src/" + UnitSourceFile(unit.Name), Content: []byte(cpp.String())},
	}, nil
}

// wrapMethods filters and synthesizes the unit's wrappers. Protected
// methods and signals are skipped with a diagnostic, never an error.
func (g *WrapperGenerator) wrapMethods(ctx *Context, unit resolver.HeaderUnit) ([]*WrappedMethod, error) {
	var wrapped []*WrappedMethod
	used := map[string]bool{}
	for _, method := range unit.Methods {
		if method.Protected {
			if ctx.Verbose {
				fmt.Printf("  Skipping protected method: %s\n", method.ShortText())
			}
			continue
		}
		if method.Signal {
			if !ctx.Quiet {
				fmt.Printf("  Skipping signal: %s\n", method.ShortText())
			}
			continue
		}

		places := []AllocationPlace{PlaceHeap}
		suffixed := false
		if placeSensitive(ctx.Index, &method) {
			places = ctx.Place.Places()
			suffixed = len(places) > 1
		}

		base := uniqueName(used, WrapperBaseName(&method))
		for _, place := range places {
			name := base
			if suffixed && place == PlaceStack {
				name += StackSuffix
			}
			w, err := BuildWrapper(ctx.Index, method, place, name)
			if err != nil {
				return nil, err
			}
			wrapped = append(wrapped, w)
		}
	}
	return wrapped, nil
}

// placeSensitive reports whether a method's wrapper differs between
// allocation places: constructors, destructors, and methods returning a
// class by value.
func placeSensitive(idx *resolver.Index, m *model.Method) bool {
	if m.Constructor || m.Destructor {
		return true
	}
	if m.Returns == nil {
		return false
	}
	ext, err := Translate(idx, *m.Returns)
	if err != nil {
		// The error surfaces in BuildWrapper with full context.
		return false
	}
	return ext.Conversion.Indirection == ValueToPointer
}

// uniqueName disambiguates flattened C++ overloads deterministically.
func uniqueName(used map[string]bool, base string) string {
	name := base
	for n := 2; used[name]; n++ {
		name = fmt.Sprintf("%s_%d", base, n)
	}
	used[name] = true
	return name
}

// umbrellaHeader aggregates every generated per-unit header.
func umbrellaHeader(units []resolver.HeaderUnit) *OutputFile {
	var b strings.Builder
	b.WriteString("#ifndef QTCW_H\n#define QTCW_H\n\n")
	for _, u := range units {
		fmt.Fprintf(&b, "#include \"%s\"\n", UnitHeaderFile(u.Name))
	}
	b.WriteString("\n#endif // QTCW_H\n")
	return &OutputFile{Path: "include/qtcw.h", Content: []byte(b.String())}
}
