package cabi

import "errors"

var (
	// ErrCGONotEnabled signals that the package was compiled without cgo and
	// therefore cannot build a va_list.
	ErrCGONotEnabled = errors.New("valist/internal/cabi: cgo not enabled")

	// ErrUnsupportedShape reports an argument list the variadic shim has no
	// fixed-arity entry for. Only (text, int) is spelled out in C.
	ErrUnsupportedShape = errors.New("valist/internal/cabi: unsupported argument shape")
)
