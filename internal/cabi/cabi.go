//go:build cgo

package cabi

/*
#cgo CFLAGS: -I${SRCDIR} -Wall
#include <stdio.h>
#include <stdlib.h>
#include <string.h>
#include "valist.h"

static void valist_listify_and_call(valist_callback cb, const char *format, ...)
{
	va_list args;

	va_start(args, format);
	cb(format, args);
	va_end(args);
}

static void valist_call_text_int(valist_callback cb, const char *format, const char *text, int integer)
{
	valist_listify_and_call(cb, format, text, integer);
}

static void valist_call_tagged(valist_tagged_callback cb, const char *format, const valist_value *values, size_t count)
{
	cb(format, values, count);
}

// Built-in sinks. Callers serialize access.

#define VALIST_SINK_MAX 8
#define VALIST_SINK_TEXT 128

static char valist_format_buf[256];

static void valist_format_sink(const char *format, va_list args)
{
	vsnprintf(valist_format_buf, sizeof(valist_format_buf), format, args);
}

static const char *valist_format_result(void)
{
	return valist_format_buf;
}

static char valist_tagged_format[VALIST_SINK_TEXT];
static valist_value valist_tagged_values[VALIST_SINK_MAX];
static char valist_tagged_text[VALIST_SINK_MAX][VALIST_SINK_TEXT];
static size_t valist_tagged_count;

static void valist_tagged_sink(const char *format, const valist_value *values, size_t count)
{
	snprintf(valist_tagged_format, sizeof(valist_tagged_format), "%s", format);
	valist_tagged_count = count;
	for (size_t i = 0; i < count && i < VALIST_SINK_MAX; i++) {
		valist_tagged_values[i] = values[i];
		if (values[i].kind == VALIST_TEXT && values[i].text != NULL) {
			snprintf(valist_tagged_text[i], VALIST_SINK_TEXT, "%s", values[i].text);
			valist_tagged_values[i].text = valist_tagged_text[i];
		}
	}
}

static const char *valist_tagged_result_format(void) { return valist_tagged_format; }
static size_t valist_tagged_result_count(void) { return valist_tagged_count; }
static const valist_value *valist_tagged_result_values(void) { return valist_tagged_values; }

// Reads the (text, int) shape back with va_arg.
static char valist_vaarg_format[VALIST_SINK_TEXT];
static char valist_vaarg_text[VALIST_SINK_TEXT];
static int valist_vaarg_integer;
static int valist_vaarg_calls;

static void valist_vaarg_sink(const char *format, va_list args)
{
	const char *text;

	valist_vaarg_calls++;
	snprintf(valist_vaarg_format, sizeof(valist_vaarg_format), "%s", format);
	text = va_arg(args, const char *);
	snprintf(valist_vaarg_text, sizeof(valist_vaarg_text), "%s", text != NULL ? text : "");
	valist_vaarg_integer = va_arg(args, int);
}

static const char *valist_vaarg_result_format(void) { return valist_vaarg_format; }
static const char *valist_vaarg_result_text(void) { return valist_vaarg_text; }
static int valist_vaarg_result_integer(void) { return valist_vaarg_integer; }
static int valist_vaarg_result_calls(void) { return valist_vaarg_calls; }
static void valist_vaarg_reset(void) { valist_vaarg_calls = 0; }

// Taking the address of a static function from Go needs a C accessor.
static valist_callback valist_format_sink_ptr(void) { return valist_format_sink; }
static valist_tagged_callback valist_tagged_sink_ptr(void) { return valist_tagged_sink; }
static valist_callback valist_vaarg_sink_ptr(void) { return valist_vaarg_sink; }

// Single-value snprintf, one entry per promoted C argument type.
static int valist_snprintf_int(char *buf, size_t n, const char *format, int v) { return snprintf(buf, n, format, v); }
static int valist_snprintf_llong(char *buf, size_t n, const char *format, long long v) { return snprintf(buf, n, format, v); }
static int valist_snprintf_double(char *buf, size_t n, const char *format, double v) { return snprintf(buf, n, format, v); }
static int valist_snprintf_text(char *buf, size_t n, const char *format, const char *v) { return snprintf(buf, n, format, v); }
*/
import "C"

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"unsafe"

	"github.com/hsiuhsiu/valist-go/pkg/valist"
)

// sinkMax mirrors VALIST_SINK_MAX.
const sinkMax = 8

var sinkMu sync.Mutex

// Trigger calls the C callback cb with the greeting format and a va_list
// holding its values. cb must be a non-NULL valist_callback.
func Trigger(cb unsafe.Pointer) error {
	format, values := valist.Greeting()
	return listifyAndCall(C.valist_callback(cb), format, values)
}

// TriggerTagged calls the C callback cb with the greeting format and the
// values as a valist_value array. cb must be a non-NULL
// valist_tagged_callback.
func TriggerTagged(cb unsafe.Pointer) error {
	format, values := valist.Greeting()
	return callTagged(C.valist_tagged_callback(cb), format, values)
}

func listifyAndCall(cb C.valist_callback, format string, values []valist.Value) error {
	if len(values) != 2 {
		return fmt.Errorf("%w: %d values", ErrUnsupportedShape, len(values))
	}
	text, ok := values[0].AsText()
	if !ok {
		return fmt.Errorf("%w: value 0 is %s", ErrUnsupportedShape, values[0].Kind())
	}
	n, ok := values[1].AsInt()
	if !ok {
		return fmt.Errorf("%w: value 1 is %s", ErrUnsupportedShape, values[1].Kind())
	}
	if n < math.MinInt32 || n > math.MaxInt32 {
		return fmt.Errorf("%w: %d does not fit a C int", ErrUnsupportedShape, n)
	}

	cFormat := C.CString(format)
	defer C.free(unsafe.Pointer(cFormat))
	cText := C.CString(text)
	defer C.free(unsafe.Pointer(cText))

	C.valist_call_text_int(cb, cFormat, cText, C.int(n))
	return nil
}

func callTagged(cb C.valist_tagged_callback, format string, values []valist.Value) error {
	cFormat := C.CString(format)
	defer C.free(unsafe.Pointer(cFormat))

	var arr *C.valist_value
	if len(values) > 0 {
		arr = (*C.valist_value)(C.calloc(C.size_t(len(values)), C.size_t(unsafe.Sizeof(C.valist_value{}))))
		if arr == nil {
			return fmt.Errorf("valist/internal/cabi: allocate %d values", len(values))
		}
		defer C.free(unsafe.Pointer(arr))
	}

	slots := unsafe.Slice(arr, len(values))
	var texts []*C.char
	defer func() {
		for _, s := range texts {
			C.free(unsafe.Pointer(s))
		}
	}()
	for i, v := range values {
		switch v.Kind() {
		case valist.KindText:
			s, _ := v.AsText()
			cs := C.CString(s)
			texts = append(texts, cs)
			slots[i].kind = C.int32_t(C.VALIST_TEXT)
			slots[i].text = cs
		case valist.KindInt:
			n, _ := v.AsInt()
			slots[i].kind = C.int32_t(C.VALIST_INT)
			slots[i].integer = C.int64_t(n)
		case valist.KindFloat:
			f, _ := v.AsFloat()
			slots[i].kind = C.int32_t(C.VALIST_FLOAT)
			slots[i].real = C.double(f)
		default:
			return fmt.Errorf("%w: value %d is %s", ErrUnsupportedShape, i, v.Kind())
		}
	}

	C.valist_call_tagged(cb, cFormat, arr, C.size_t(len(values)))
	return nil
}

// FormatNative runs the va_list path against a C sink that formats with
// vsnprintf and returns the resulting line.
func FormatNative() (string, error) {
	sinkMu.Lock()
	defer sinkMu.Unlock()

	format, values := valist.Greeting()
	if err := listifyAndCall(C.valist_format_sink_ptr(), format, values); err != nil {
		return "", err
	}
	return C.GoString(C.valist_format_result()), nil
}

// TaggedLoopback runs the tagged path against a C sink that copies what it
// receives, and decodes the copy back into Go values.
func TaggedLoopback() (string, []valist.Value, error) {
	sinkMu.Lock()
	defer sinkMu.Unlock()

	format, values := valist.Greeting()
	if err := callTagged(C.valist_tagged_sink_ptr(), format, values); err != nil {
		return "", nil, err
	}

	count := int(C.valist_tagged_result_count())
	if count > sinkMax {
		count = sinkMax
	}
	seen := unsafe.Slice(C.valist_tagged_result_values(), count)
	out := make([]valist.Value, 0, count)
	for i, v := range seen {
		switch v.kind {
		case C.VALIST_TEXT:
			out = append(out, valist.Text(C.GoString(v.text)))
		case C.VALIST_INT:
			out = append(out, valist.Int(int64(v.integer)))
		case C.VALIST_FLOAT:
			out = append(out, valist.Float(float64(v.real)))
		default:
			return "", nil, fmt.Errorf("valist/internal/cabi: sink value %d has kind %d", i, int32(v.kind))
		}
	}
	return C.GoString(C.valist_tagged_result_format()), out, nil
}

// vaargSink returns a valist_callback that reads its list with va_arg, for
// checking what Trigger delivers.
func vaargSink() unsafe.Pointer {
	C.valist_vaarg_reset()
	return unsafe.Pointer(C.valist_vaarg_sink_ptr())
}

// vaargResult reports what the va_arg sink saw since the last vaargSink.
func vaargResult() (format, text string, integer int, calls int) {
	return C.GoString(C.valist_vaarg_result_format()),
		C.GoString(C.valist_vaarg_result_text()),
		int(C.valist_vaarg_result_integer()),
		int(C.valist_vaarg_result_calls())
}

// snprintfOne formats a single conversion with the C library, passing v as
// the argument type C promotes it to for that conversion.
func snprintfOne(format string, v valist.Value) (string, error) {
	cFormat := C.CString(format)
	defer C.free(unsafe.Pointer(cFormat))

	var buf [256]C.char
	p, n := &buf[0], C.size_t(len(buf))
	var rc C.int
	switch v.Kind() {
	case valist.KindText:
		s, _ := v.AsText()
		cs := C.CString(s)
		defer C.free(unsafe.Pointer(cs))
		rc = C.valist_snprintf_text(p, n, cFormat, cs)
	case valist.KindInt:
		i, _ := v.AsInt()
		if longConversion(format) {
			rc = C.valist_snprintf_llong(p, n, cFormat, C.longlong(i))
		} else {
			rc = C.valist_snprintf_int(p, n, cFormat, C.int(int32(i)))
		}
	case valist.KindFloat:
		f, _ := v.AsFloat()
		rc = C.valist_snprintf_double(p, n, cFormat, C.double(f))
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedShape, v.Kind())
	}
	if rc < 0 || int(rc) >= len(buf) {
		return "", fmt.Errorf("valist/internal/cabi: snprintf returned %d", int(rc))
	}
	return C.GoString(p), nil
}

func longConversion(format string) bool {
	return strings.ContainsAny(format, "ljzt")
}
