// Package host loads a built libvalist shared object at run time and drives
// its exported entry points from Go, without cgo.
//
// Loading and symbol lookup go through purego. The va_list handed to the
// host callback is formatted with the C library's vsnprintf; because
// vsnprintf consumes the list, each pass works on a copy of the x86-64
// va_list structure.
//
//	lib, err := host.Open(host.DefaultLibraryPath("."))
//	if err != nil {
//	    return err
//	}
//	defer lib.Close()
//
//	line, err := lib.TriggerFormatted() // hello world, the answer is 42
//
// Only linux/amd64 is supported; other platforms return
// ErrPlatformNotSupported from Open.
package host
