package gen

import (
	"errors"
	"testing"

	"github.com/jnbooth/ritual/model"
)

func TestTranslate(t *testing.T) {
	idx := testIndex()

	tests := []struct {
		name     string
		cpp      model.CppType
		wantC    string
		wantConv Conversion
	}{
		{
			name:  "primitive by value",
			cpp:   model.CppType{Base: "int"},
			wantC: "int",
		},
		{
			name:     "primitive by reference",
			cpp:      model.CppType{Base: "double", Indirection: model.IndirectRef},
			wantC:    "double*",
			wantConv: Conversion{Indirection: ReferenceToPointer},
		},
		{
			name:  "primitive by pointer",
			cpp:   model.CppType{Base: "int", Indirection: model.IndirectPtr},
			wantC: "int*",
		},
		{
			name:     "class by value",
			cpp:      model.CppType{Base: "QPoint"},
			wantC:    "QPoint*",
			wantConv: Conversion{Indirection: ValueToPointer},
		},
		{
			name:     "class by reference",
			cpp:      model.CppType{Base: "QRect", Indirection: model.IndirectRef, Const: true},
			wantC:    "QRect*",
			wantConv: Conversion{Indirection: ReferenceToPointer},
		},
		{
			name:  "class by pointer",
			cpp:   model.CppType{Base: "QPoint", Indirection: model.IndirectPtr},
			wantC: "QPoint*",
		},
		{
			name:     "qualified enum",
			cpp:      model.CppType{Base: "Qt::AspectRatioMode"},
			wantC:    "Qt_AspectRatioMode",
			wantConv: Conversion{Renamed: true},
		},
		{
			name:     "flags",
			cpp:      model.CppType{Base: "Qt::Alignment"},
			wantC:    "Qt_Alignment",
			wantConv: Conversion{FlagsToUint: true},
		},
		{
			name:     "alias",
			cpp:      model.CppType{Base: "qreal"},
			wantC:    "qreal",
			wantConv: Conversion{Renamed: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext, err := Translate(idx, tt.cpp)
			if err != nil {
				t.Fatalf("Translate(%v) failed: %v", tt.cpp, err)
			}
			if got := ext.CType.CCode(); got != tt.wantC {
				t.Errorf("C type = %q, want %q", got, tt.wantC)
			}
			if ext.Conversion != tt.wantConv {
				t.Errorf("conversion = %+v, want %+v", ext.Conversion, tt.wantConv)
			}
		})
	}
}

func TestTranslate_MetadataErrors(t *testing.T) {
	idx := testIndex()

	tests := []struct {
		name string
		cpp  model.CppType
	}{
		{"missing type", model.CppType{Base: "QMissing"}},
		{"unknown kind", model.CppType{Base: "QModelIndexList"}},
		{"unrecognized origin", model.CppType{Base: "QStringRef"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Translate(idx, tt.cpp)
			var metaErr *MetadataError
			if !errors.As(err, &metaErr) {
				t.Fatalf("Translate(%v) = %v, want MetadataError", tt.cpp, err)
			}
		})
	}
}

func TestTranslate_AliasKeepsIndirection(t *testing.T) {
	idx := testIndex()

	ext, err := Translate(idx, model.CppType{Base: "qreal", Indirection: model.IndirectRef})
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if got := ext.CType.CCode(); got != "qreal*" {
		t.Errorf("C type = %q, want %q", got, "qreal*")
	}
	if ext.Conversion.Indirection != ReferenceToPointer {
		t.Errorf("indirection change = %v, want %v", ext.Conversion.Indirection, ReferenceToPointer)
	}
}
