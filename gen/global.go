package gen

func init() {
	Register("global", func() Generator { return &GlobalGenerator{} })
}

// GlobalGenerator produces qtcw_global.h: the export-visibility macro,
// the extern-C markers, and the destructor helper that stack-place
// wrappers call. The file is a scaffold so a hand-tuned copy is never
// overwritten.
type GlobalGenerator struct{}

func (g *GlobalGenerator) Name() string { return "global" }

const globalHeader = `#ifndef QTCW_GLOBAL_H
#define QTCW_GLOBAL_H

#if defined(_WIN32)
  #if defined(QTCW_BUILD)
    #define QTCW_EXPORT __declspec(dllexport)
  #else
    #define QTCW_EXPORT __declspec(dllimport)
  #endif
#else
  #define QTCW_EXPORT __attribute__((visibility("default")))
#endif

#ifdef __cplusplus

#define QTCW_EXTERN_C_BEGIN extern "C" {
#define QTCW_EXTERN_C_END }

template<typename T>
void qtcw_call_destructor(T* value) {
  value->~T();
}

#else

#define QTCW_EXTERN_C_BEGIN
#define QTCW_EXTERN_C_END

#endif

#endif // QTCW_GLOBAL_H
`

func (g *GlobalGenerator) Generate(ctx *Context) ([]*OutputFile, error) {
	return []*OutputFile{
		{Path: "include/qtcw_global.h", Content: []byte(globalHeader), Scaffold: true},
	}, nil
}
