package gen

import (
	"path/filepath"
	"testing"

	"github.com/jnbooth/ritual/loader"
	"github.com/jnbooth/ritual/model"
	"github.com/jnbooth/ritual/resolver"
)

// loadTestMeta builds a generation context from a testdata fixture.
func loadTestMeta(t *testing.T, name string) *Context {
	t.Helper()
	meta, err := loader.LoadMetadata(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("loading %s: %v", name, err)
	}
	ctx := NewContext(meta, resolver.NewIndex(meta), t.TempDir())
	ctx.Quiet = true
	return ctx
}

func intPtr(v int) *int { return &v }

// testIndex builds a small in-code metadata graph shared by the
// translator, declaration and method emitter tests.
func testIndex() *resolver.Index {
	meta := &model.Metadata{
		Library: model.LibraryInfo{Name: "QtCore"},
		Types: map[string]*model.TypeInfo{
			"void":    {Kind: model.KindPrimitive, Origin: model.OriginBuiltIn},
			"int":     {Kind: model.KindPrimitive, Origin: model.OriginBuiltIn},
			"double":  {Kind: model.KindPrimitive, Origin: model.OriginBuiltIn},
			"wchar_t": {Kind: model.KindPrimitive, Origin: model.OriginBuiltIn},
			"qreal": {
				Kind:   model.KindAlias,
				Origin: model.OriginLibrary,
				Header: "qglobal",
				Target: &model.CppType{Base: "double"},
			},
			"QPoint": {Kind: model.KindClass, Origin: model.OriginLibrary, Header: "qpoint", Size: intPtr(8)},
			"QRect":  {Kind: model.KindClass, Origin: model.OriginLibrary, Header: "qrect", Size: intPtr(16)},
			// No recorded byte size: only forward declarations are legal.
			"QBuffer": {Kind: model.KindClass, Origin: model.OriginLibrary, Header: "qbuffer"},
			"Qt::AspectRatioMode": {
				Kind:   model.KindEnum,
				Origin: model.OriginLibrary,
				Header: "qnamespace",
				Enumerators: []model.Enumerator{
					{Name: "IgnoreAspectRatio", Value: 0},
					{Name: "KeepAspectRatio", Value: 1},
				},
			},
			"Qt::AlignmentFlag": {
				Kind:   model.KindEnum,
				Origin: model.OriginLibrary,
				Header: "qnamespace",
				Enumerators: []model.Enumerator{
					{Name: "AlignLeft", Value: 1},
					{Name: "AlignRight", Value: 2},
				},
			},
			"Qt::Alignment": {
				Kind:   model.KindFlags,
				Origin: model.OriginLibrary,
				Header: "qnamespace",
				Enum:   "Qt::AlignmentFlag",
			},
			"QModelIndexList": {Kind: model.KindUnknown, Origin: model.OriginLibrary, Header: "qabstractitemmodel"},
			"QStringRef":      {Kind: model.KindClass, Origin: model.OriginUnrecognized},
		},
	}
	return resolver.NewIndex(meta)
}
