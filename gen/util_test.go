package gen

import (
	"testing"

	"github.com/jnbooth/ritual/model"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"QPoint", "QPoint"},
		{"Qt::AlignmentFlag", "Qt_AlignmentFlag"},
		{"Qt::Outer::Inner", "Qt_Outer_Inner"},
	}
	for _, tt := range tests {
		if got := SanitizeName(tt.in); got != tt.want {
			t.Errorf("SanitizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWrapperBaseName(t *testing.T) {
	tests := []struct {
		name   string
		method model.Method
		want   string
	}{
		{
			name:   "instance method",
			method: model.Method{Name: "setX", Class: "QPoint"},
			want:   "qtcw_QPoint_setX",
		},
		{
			name:   "constructor",
			method: model.Method{Name: "QPoint", Class: "QPoint", Constructor: true},
			want:   "qtcw_QPoint_new",
		},
		{
			name:   "destructor",
			method: model.Method{Name: "~QPoint", Class: "QPoint", Destructor: true},
			want:   "qtcw_QPoint_delete",
		},
		{
			name:   "free function",
			method: model.Method{Name: "qAbs"},
			want:   "qtcw_qAbs",
		},
		{
			name:   "nested class",
			method: model.Method{Name: "isValid", Class: "QMetaObject::Connection"},
			want:   "qtcw_QMetaObject_Connection_isValid",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WrapperBaseName(&tt.method); got != tt.want {
				t.Errorf("WrapperBaseName = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIncludeGuard(t *testing.T) {
	if got, want := IncludeGuard("qpoint"), "QTCW_QPOINT_H"; got != want {
		t.Errorf("IncludeGuard = %q, want %q", got, want)
	}
}

func TestUnitFileNames(t *testing.T) {
	if got, want := UnitHeaderFile("qpoint"), "qtcw_qpoint.h"; got != want {
		t.Errorf("UnitHeaderFile = %q, want %q", got, want)
	}
	if got, want := UnitSourceFile("qpoint"), "qtcw_qpoint.cpp"; got != want {
		t.Errorf("UnitSourceFile = %q, want %q", got, want)
	}
}
