//go:build !cgo

package cabi

import (
	"unsafe"

	"github.com/hsiuhsiu/valist-go/pkg/valist"
)

// Stub implementations for non-cgo builds. They let the module compile and
// report ErrCGONotEnabled when called.

func Trigger(unsafe.Pointer) error { return ErrCGONotEnabled }

func TriggerTagged(unsafe.Pointer) error { return ErrCGONotEnabled }

func FormatNative() (string, error) { return "", ErrCGONotEnabled }

func TaggedLoopback() (string, []valist.Value, error) { return "", nil, ErrCGONotEnabled }
