package gen

import (
	"bytes"
	"strings"
	"testing"
)

func findFile(t *testing.T, files []*OutputFile, path string) *OutputFile {
	t.Helper()
	for _, f := range files {
		if f.Path == path {
			return f
		}
	}
	t.Fatalf("no output file %q; got %d files", path, len(files))
	return nil
}

func generateAll(t *testing.T, ctx *Context) []*OutputFile {
	t.Helper()
	g := &WrapperGenerator{}
	files, err := g.Generate(ctx)
	if err != nil {
		t.Fatalf("generation failed: %v", err)
	}
	return files
}

func TestWrapperGenerator_FileSet(t *testing.T) {
	ctx := loadTestMeta(t, "qtcore.yaml")
	files := generateAll(t, ctx)

	// One header/source pair per unit (qglobal, qnamespace, qpoint,
	// qrect) plus the umbrella header.
	if len(files) != 9 {
		t.Fatalf("expected 9 output files, got %d", len(files))
	}
	for _, path := range []string{
		"include/qtcw.h",
		"include/qtcw_qpoint.h", "src/qtcw_qpoint.cpp",
		"include/qtcw_qrect.h", "src/qtcw_qrect.cpp",
		"include/qtcw_qnamespace.h", "src/qtcw_qnamespace.cpp",
		"include/qtcw_qglobal.h", "src/qtcw_qglobal.cpp",
	} {
		findFile(t, files, path)
	}
}

func TestWrapperGenerator_UmbrellaHeader(t *testing.T) {
	ctx := loadTestMeta(t, "qtcore.yaml")
	files := generateAll(t, ctx)

	umbrella := string(findFile(t, files, "include/qtcw.h").Content)
	for _, want := range []string{
		"#ifndef QTCW_H",
		"#include \"qtcw_qglobal.h\"",
		"#include \"qtcw_qnamespace.h\"",
		"#include \"qtcw_qpoint.h\"",
		"#include \"qtcw_qrect.h\"",
		"#endif // QTCW_H",
	} {
		if !strings.Contains(umbrella, want) {
			t.Errorf("umbrella missing %q:\n%s", want, umbrella)
		}
	}
}

func TestWrapperGenerator_UnitHeader(t *testing.T) {
	ctx := loadTestMeta(t, "qtcore.yaml")
	files := generateAll(t, ctx)

	h := string(findFile(t, files, "include/qtcw_qpoint.h").Content)
	for _, want := range []string{
		"#ifndef QTCW_QPOINT_H",
		"#include \"qtcw_global.h\"",
		"#include <QtCore>",
		"QTCW_EXTERN_C_BEGIN",
		"struct QTCW_QPoint { char space[8]; };",
		"QPoint* QTCW_EXPORT qtcw_QPoint_new(int xpos, int ypos);",
		"void QTCW_EXPORT qtcw_QPoint_new_SA(int xpos, int ypos, QPoint* output);",
		"void QTCW_EXPORT qtcw_QPoint_delete(QPoint* self);",
		"void QTCW_EXPORT qtcw_QPoint_delete_SA(QPoint* self);",
		"int QTCW_EXPORT qtcw_QPoint_x(QPoint* self);",
		"QTCW_EXTERN_C_END",
		"#endif // QTCW_QPOINT_H",
	} {
		if !strings.Contains(h, want) {
			t.Errorf("qpoint header missing %q:\n%s", want, h)
		}
	}
}

func TestWrapperGenerator_UnitSource(t *testing.T) {
	ctx := loadTestMeta(t, "qtcore.yaml")
	files := generateAll(t, ctx)

	src := string(findFile(t, files, "src/qtcw_qrect.cpp").Content)
	for _, want := range []string{
		"#include \"qtcw_qrect.h\"",
		"return new QPoint(self->center());",
		"new(output) QPoint(self->center());",
		"return new QRect(self->intersected(*other));",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("qrect source missing %q:\n%s", want, src)
		}
	}
}

func TestWrapperGenerator_ForwardDeclarationAcrossUnits(t *testing.T) {
	ctx := loadTestMeta(t, "qtcore.yaml")
	files := generateAll(t, ctx)

	// QPoint is owned by qpoint; qrect may only forward-declare it.
	h := string(findFile(t, files, "include/qtcw_qrect.h").Content)
	if !strings.Contains(h, "struct QTCW_QPoint;") {
		t.Errorf("qrect header missing QPoint forward declaration:\n%s", h)
	}
	if strings.Contains(h, "struct QTCW_QPoint {") {
		t.Errorf("qrect header carries QPoint's sized payload:\n%s", h)
	}
	if !strings.Contains(h, "struct QTCW_QRect { char space[16]; };") {
		t.Errorf("qrect header missing its own full declaration:\n%s", h)
	}
}

func TestWrapperGenerator_NoDuplicateDeclarations(t *testing.T) {
	ctx := loadTestMeta(t, "qtcore.yaml")
	files := generateAll(t, ctx)

	// QRect appears as the unit's own type, as a this receiver, as an
	// argument and as a return type; it must be declared exactly once.
	h := string(findFile(t, files, "include/qtcw_qrect.h").Content)
	if got := strings.Count(h, "typedef struct QTCW_QRect QRect;"); got != 1 {
		t.Errorf("QRect declared %d times, want 1:\n%s", got, h)
	}
	if got := strings.Count(h, "typedef struct QTCW_QPoint QPoint;"); got != 1 {
		t.Errorf("QPoint declared %d times, want 1:\n%s", got, h)
	}
}

func TestWrapperGenerator_FiltersProtectedAndSignals(t *testing.T) {
	ctx := loadTestMeta(t, "qtcore.yaml")
	files := generateAll(t, ctx)

	h := string(findFile(t, files, "include/qtcw_qpoint.h").Content)
	src := string(findFile(t, files, "src/qtcw_qpoint.cpp").Content)
	for _, banned := range []string{"manhattanLength", "xChanged"} {
		if strings.Contains(h, banned) {
			t.Errorf("protected/signal method %q leaked into header", banned)
		}
		if strings.Contains(src, banned) {
			t.Errorf("protected/signal method %q leaked into source", banned)
		}
	}
}

func TestWrapperGenerator_RenamedAliasReturn(t *testing.T) {
	ctx := loadTestMeta(t, "qtcore.yaml")
	files := generateAll(t, ctx)

	src := string(findFile(t, files, "src/qtcw_qrect.cpp").Content)
	if !strings.Contains(src, "return reinterpret_cast<qreal>(self->width());") {
		t.Errorf("missing reinterpretation of aliased return in:\n%s", src)
	}
	h := string(findFile(t, files, "include/qtcw_qrect.h").Content)
	if !strings.Contains(h, "typedef double qreal;") {
		t.Errorf("missing alias typedef in qrect header:\n%s", h)
	}
}

func TestWrapperGenerator_HeapOnlyPlaceMode(t *testing.T) {
	ctx := loadTestMeta(t, "qtcore.yaml")
	ctx.Place = PlaceModeHeap
	files := generateAll(t, ctx)

	h := string(findFile(t, files, "include/qtcw_qpoint.h").Content)
	if strings.Contains(h, "_SA") {
		t.Errorf("heap-only mode emitted stack variants:\n%s", h)
	}
	if !strings.Contains(h, "qtcw_QPoint_new(") {
		t.Errorf("heap-only mode missing heap constructor:\n%s", h)
	}
}

func TestWrapperGenerator_Idempotent(t *testing.T) {
	ctx := loadTestMeta(t, "qtcore.yaml")
	first := generateAll(t, ctx)
	second := generateAll(t, ctx)

	if len(first) != len(second) {
		t.Fatalf("file counts differ: %d vs %d", len(first), len(second))
	}
	for _, f := range first {
		g := findFile(t, second, f.Path)
		if !bytes.Equal(f.Content, g.Content) {
			t.Errorf("content of %s differs between runs", f.Path)
		}
	}
}

func TestGlobalGenerator(t *testing.T) {
	ctx := loadTestMeta(t, "qtcore.yaml")
	g := &GlobalGenerator{}

	files, err := g.Generate(ctx)
	if err != nil {
		t.Fatalf("generation failed: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 output file, got %d", len(files))
	}
	f := files[0]
	if f.Path != "include/qtcw_global.h" {
		t.Errorf("path = %q, want %q", f.Path, "include/qtcw_global.h")
	}
	if !f.Scaffold {
		t.Error("qtcw_global.h should be a scaffold file")
	}
	content := string(f.Content)
	for _, want := range []string{
		"#define QTCW_EXPORT",
		"QTCW_EXTERN_C_BEGIN",
		"qtcw_call_destructor",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("global header missing %q", want)
		}
	}
}
