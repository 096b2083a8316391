//go:build linux && amd64

package host

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hsiuhsiu/valist-go/pkg/valist"
	"github.com/hsiuhsiu/valist-go/pkg/valist/logging"
)

// vaListTag mirrors the System V x86-64 __va_list_tag.
type vaListTag struct {
	gpOffset        uint32
	fpOffset        uint32
	overflowArgArea uintptr
	regSaveArea     uintptr
}

// cValue mirrors valist_value from valist.h.
type cValue struct {
	kind    int32
	text    *byte
	integer int64
	real    float64
}

const (
	kindText  = 1
	kindInt   = 2
	kindFloat = 3
)

var (
	libcOnce  sync.Once
	libcErr   error
	vsnprintf func(buf *byte, size uintptr, format string, ap unsafe.Pointer) int32
)

func loadLibc() error {
	libcOnce.Do(func() {
		h, err := purego.Dlopen("libc.so.6", purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err != nil {
			libcErr = fmt.Errorf("valist/host: load libc: %w", err)
			return
		}
		purego.RegisterLibFunc(&vsnprintf, h, "vsnprintf")
	})
	return libcErr
}

// VaList is the argument list received by a Trigger callback. It is valid
// only until that callback returns.
type VaList struct {
	ptr   unsafe.Pointer
	alive *atomic.Bool
}

// Format renders format against the list with vsnprintf. The list itself is
// not consumed, so Format may be called more than once during the callback.
func (ap VaList) Format(format string) (string, error) {
	if ap.alive == nil || !ap.alive.Load() {
		return "", ErrVaListExpired
	}
	if err := loadLibc(); err != nil {
		return "", err
	}
	src := *(*vaListTag)(ap.ptr)

	sizing := src
	n := vsnprintf(nil, 0, format, unsafe.Pointer(&sizing))
	if n < 0 {
		return "", fmt.Errorf("valist/host: vsnprintf returned %d", n)
	}
	buf := make([]byte, int(n)+1)
	out := src
	vsnprintf(&buf[0], uintptr(len(buf)), format, unsafe.Pointer(&out))
	return string(buf[:n]), nil
}

// Library is a loaded libvalist. Triggers are serialized per Library.
type Library struct {
	mu     sync.Mutex
	handle uintptr
	closed bool
	log    logging.Logger
	counts *prometheus.CounterVec

	trigger       func(cb uintptr)
	triggerTagged func(cb uintptr)

	// purego callbacks are never released, so each Library creates one of
	// each and dispatches through the fields below.
	callback       uintptr
	taggedCallback uintptr
	current        func(format string, ap VaList)
	currentTagged  func(format string, values []valist.Value)
}

// Open loads the shared object at path and resolves its entry points.
// SymbolTrigger is required; SymbolTriggerTagged is optional.
func Open(path string, opts ...Option) (*Library, error) {
	o := buildOptions(opts)
	counts, err := newTriggerCounter(o.reg)
	if err != nil {
		return nil, err
	}

	h, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_LOCAL)
	if err != nil {
		return nil, fmt.Errorf("valist/host: load %s: %w", path, err)
	}

	sym, err := purego.Dlsym(h, SymbolTrigger)
	if err != nil || sym == 0 {
		_ = purego.Dlclose(h)
		return nil, fmt.Errorf("%w: %s in %s", ErrSymbolNotFound, SymbolTrigger, path)
	}

	l := &Library{
		handle: h,
		log:    o.log.With("library", path),
		counts: counts,
	}
	purego.RegisterFunc(&l.trigger, sym)
	l.callback = purego.NewCallback(l.dispatch)

	if tagged, err := purego.Dlsym(h, SymbolTriggerTagged); err == nil && tagged != 0 {
		purego.RegisterFunc(&l.triggerTagged, tagged)
		l.taggedCallback = purego.NewCallback(l.dispatchTagged)
	} else {
		l.log.Debug(context.Background(), "optional symbol missing", "symbol", SymbolTriggerTagged)
	}

	l.log.Info(context.Background(), "library loaded", "tagged", l.triggerTagged != nil)
	return l, nil
}

// dispatch runs on the goroutine blocked in Trigger.
func (l *Library) dispatch(format *byte, ap unsafe.Pointer) {
	fn := l.current
	if fn == nil {
		return
	}
	alive := new(atomic.Bool)
	alive.Store(true)
	defer alive.Store(false)
	fn(goString(format), VaList{ptr: ap, alive: alive})
}

func (l *Library) dispatchTagged(format *byte, values unsafe.Pointer, count uintptr) {
	fn := l.currentTagged
	if fn == nil {
		return
	}
	var out []valist.Value
	if count > 0 && values != nil {
		for _, v := range unsafe.Slice((*cValue)(values), int(count)) {
			switch v.kind {
			case kindText:
				out = append(out, valist.Text(goString(v.text)))
			case kindInt:
				out = append(out, valist.Int(v.integer))
			case kindFloat:
				out = append(out, valist.Float(v.real))
			default:
				l.log.Warn(context.Background(), "unknown value kind", "kind", v.kind)
			}
		}
	}
	fn(goString(format), out)
}

func goString(p *byte) string {
	if p == nil {
		return ""
	}
	n := 0
	for *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}
	return string(unsafe.Slice(p, n))
}

func (l *Library) count(symbol string) {
	if l.counts != nil {
		l.counts.WithLabelValues(symbol).Inc()
	}
}

// HasTagged reports whether the library exports SymbolTriggerTagged.
func (l *Library) HasTagged() bool {
	return l != nil && l.triggerTagged != nil
}

// Trigger calls SymbolTrigger and runs fn once with the format and va_list
// the library supplies.
func (l *Library) Trigger(fn func(format string, ap VaList)) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrLibraryClosed
	}
	l.current = fn
	defer func() { l.current = nil }()

	l.count(SymbolTrigger)
	l.trigger(l.callback)
	return nil
}

// TriggerFormatted calls SymbolTrigger and returns the line vsnprintf
// produces from the received format and va_list.
func (l *Library) TriggerFormatted() (string, error) {
	var line string
	var ferr error
	called := false
	err := l.Trigger(func(format string, ap VaList) {
		called = true
		line, ferr = ap.Format(format)
	})
	if err != nil {
		return "", err
	}
	if !called {
		return "", fmt.Errorf("valist/host: %s returned without calling back", SymbolTrigger)
	}
	return line, ferr
}

// TriggerTagged calls SymbolTriggerTagged, decodes the tagged values and
// formats them with valist.Sprintf.
func (l *Library) TriggerTagged() (string, []valist.Value, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return "", nil, ErrLibraryClosed
	}
	if l.triggerTagged == nil {
		return "", nil, fmt.Errorf("%w: %s", ErrSymbolNotFound, SymbolTriggerTagged)
	}

	var (
		format string
		values []valist.Value
		called bool
	)
	l.currentTagged = func(f string, vs []valist.Value) {
		called = true
		format, values = f, vs
	}
	defer func() { l.currentTagged = nil }()

	l.count(SymbolTriggerTagged)
	l.triggerTagged(l.taggedCallback)
	if !called {
		return "", nil, fmt.Errorf("valist/host: %s returned without calling back", SymbolTriggerTagged)
	}

	var line string
	var ferr error
	valist.ListifyAndCall(func(f string, args *valist.Args) {
		line, ferr = valist.Sprintf(f, args)
	}, format, values...)
	return line, values, ferr
}

// Close unloads the library. A second call returns ErrLibraryClosed.
func (l *Library) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrLibraryClosed
	}
	l.closed = true
	if err := purego.Dlclose(l.handle); err != nil {
		return fmt.Errorf("valist/host: unload: %w", err)
	}
	l.log.Debug(context.Background(), "library unloaded")
	return nil
}
