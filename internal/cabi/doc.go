// Package cabi contains all cgo code of the module apart from the //export
// stubs in cmd/libvalist.
//
// # Design Principles
//
// 1. Isolation: no other package imports "C" except cmd/libvalist, which only
//    declares the exported symbols and forwards to this package.
//
// 2. Variadics stay in C: cgo cannot call a variadic C function, so the
//    preamble provides fixed-arity shims that forward to
//    valist_listify_and_call, which owns va_start and va_end.
//
// 3. Memory: every C string allocated for a call is freed after the
//    callback returns. Callbacks must not keep pointers into the argument
//    list.
//
// 4. Visibility: everything in the preamble is static. Only the symbols in
//    cmd/libvalist are exported from the shared object.
//
// # Threading
//
// Trigger and TriggerTagged may be called concurrently. The built-in sinks
// used by FormatNative and TaggedLoopback write static buffers and are
// serialized by a package mutex.
package cabi
