package host

import (
	"errors"
	"path/filepath"
	"runtime"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hsiuhsiu/valist-go/pkg/valist/logging"
)

const (
	// SymbolTrigger is the va_list entry point every libvalist exports.
	SymbolTrigger = "triggerCallback"
	// SymbolTriggerTagged is the optional tagged-array entry point.
	SymbolTriggerTagged = "triggerCallbackTagged"
)

var (
	// ErrPlatformNotSupported is returned by Open outside linux/amd64.
	ErrPlatformNotSupported = errors.New("valist/host: platform not supported")
	// ErrSymbolNotFound reports a required export missing from the library.
	ErrSymbolNotFound = errors.New("valist/host: symbol not found")
	// ErrLibraryClosed is returned by every call made after Close.
	ErrLibraryClosed = errors.New("valist/host: library closed")
	// ErrVaListExpired reports use of a VaList after its callback returned.
	ErrVaListExpired = errors.New("valist/host: va_list used after callback returned")
)

// ArchName maps GOARCH to the suffix used in library file names.
func ArchName(goarch string) string {
	switch goarch {
	case "amd64":
		return "x64"
	case "386":
		return "x86"
	default:
		return goarch
	}
}

// DefaultLibraryPath returns dir/build/libvalist.<arch>.so for the running
// architecture.
func DefaultLibraryPath(dir string) string {
	return filepath.Join(dir, "build", "libvalist."+ArchName(runtime.GOARCH)+".so")
}

// Option configures a Library.
type Option func(*options)

type options struct {
	log logging.Logger
	reg prometheus.Registerer
}

// WithLogger sets the logger for load and trigger events.
func WithLogger(l logging.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithRegisterer registers the trigger counter with r.
func WithRegisterer(r prometheus.Registerer) Option {
	return func(o *options) { o.reg = r }
}

func buildOptions(opts []Option) options {
	o := options{log: logging.Discard()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func newTriggerCounter(reg prometheus.Registerer) (*prometheus.CounterVec, error) {
	if reg == nil {
		return nil, nil
	}
	c := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "valist",
		Subsystem: "host",
		Name:      "triggers_total",
		Help:      "Total number of calls into the loaded library's entry points",
	}, []string{"symbol"})
	if err := reg.Register(c); err != nil {
		return nil, err
	}
	return c, nil
}
