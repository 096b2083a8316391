package valist

import (
	"context"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hsiuhsiu/valist-go/pkg/valist/logging"
)

// GreetingFormat is the format string TriggerCallback always delivers.
const GreetingFormat = "hello %s, the answer is %d"

// Callback receives a format string and the argument list it describes. args
// is valid only until the callback returns.
type Callback func(format string, args *Args)

// Greeting returns the fixed format and values forwarded by TriggerCallback.
// The native export layer uses it so both entry points hand out identical
// data.
func Greeting() (string, []Value) {
	return GreetingFormat, []Value{Text("world"), Int(42)}
}

// Option configures an Invoker.
type Option func(*Invoker)

// WithLogger sets the logger used for per-invocation debug records.
func WithLogger(l logging.Logger) Option {
	return func(inv *Invoker) {
		if l != nil {
			inv.log = l
		}
	}
}

// WithRegisterer registers the invocation counter with r.
func WithRegisterer(r prometheus.Registerer) Option {
	return func(inv *Invoker) { inv.reg = r }
}

// Invoker builds argument lists and hands them to callbacks. It is safe for
// concurrent use; every call owns its own handle.
type Invoker struct {
	log     logging.Logger
	reg     prometheus.Registerer
	calls   atomic.Uint64
	counter prometheus.Counter
}

// NewInvoker returns an Invoker configured by opts. Registration fails when a
// counter with the same name already exists in the registerer.
func NewInvoker(opts ...Option) (*Invoker, error) {
	inv := &Invoker{log: logging.Discard()}
	for _, opt := range opts {
		opt(inv)
	}
	if inv.reg != nil {
		c := prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "valist",
			Name:      "callback_invocations_total",
			Help:      "Total number of callback invocations made by the invoker",
		})
		if err := inv.reg.Register(c); err != nil {
			return nil, err
		}
		inv.counter = c
	}
	return inv, nil
}

// ListifyAndCall wraps values in a fresh handle, invokes cb exactly once and
// releases the handle on every exit path, including a panicking callback.
func (inv *Invoker) ListifyAndCall(cb Callback, format string, values ...Value) {
	args := newArgs(values)
	defer args.release()

	inv.calls.Add(1)
	if inv.counter != nil {
		inv.counter.Inc()
	}
	inv.log.Debug(context.Background(), "invoking callback", "format", format, "values", len(values))
	cb(format, args)
}

// TriggerCallback invokes cb once with GreetingFormat, "world" and 42.
func (inv *Invoker) TriggerCallback(cb Callback) {
	format, values := Greeting()
	inv.ListifyAndCall(cb, format, values...)
}

// Invocations reports how many callbacks this Invoker has started.
func (inv *Invoker) Invocations() uint64 {
	return inv.calls.Load()
}

var defaultInvoker = &Invoker{log: logging.Discard()}

// ListifyAndCall calls cb through the package default Invoker.
func ListifyAndCall(cb Callback, format string, values ...Value) {
	defaultInvoker.ListifyAndCall(cb, format, values...)
}

// TriggerCallback calls cb through the package default Invoker.
func TriggerCallback(cb Callback) {
	defaultInvoker.TriggerCallback(cb)
}
