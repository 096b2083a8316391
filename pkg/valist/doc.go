// Package valist passes a printf-style format string and an ordered list of
// typed values to a callback, the Go counterpart of handing a C callback a
// va_list.
//
// The argument list is a tagged sequence rather than an untyped cursor over
// the call stack: each Value carries its Kind, and the callback decodes by
// walking the handle with Next, NextText, NextInt or NextFloat.
//
// # Lifetime
//
// An *Args handle is owned by the invoker. It is valid only while the
// callback runs; once ListifyAndCall returns, every accessor on the handle
// (and on any Copy taken from it) reports ErrArgsReleased. Callbacks must not
// keep the handle for later use.
//
// # Entry point
//
// TriggerCallback is the single operation the native library exports:
//
//	valist.TriggerCallback(func(format string, args *valist.Args) {
//	    line, err := valist.Sprintf(format, args)
//	    if err != nil {
//	        return
//	    }
//	    fmt.Println(line) // hello world, the answer is 42
//	})
//
// The callback must be non-nil. A nil callback panics, just as calling a NULL
// function pointer is undefined in C.
package valist
