// Command libvalist is built as a C shared library:
//
//	go build -buildmode=c-shared -o build/libvalist.x64.so ./cmd/libvalist
//
// It exports triggerCallback, which hands a valist_callback the format
// "hello %s, the answer is %d" and a va_list holding "world" and 42, and
// triggerCallbackTagged, which delivers the same data as a valist_value
// array. The C declarations live in internal/cabi/valist.h.
package main

import (
	"log/slog"
	"os"

	"github.com/hsiuhsiu/valist-go/pkg/valist/logging"
)

// logger reports failures the C boundary cannot return.
var logger = logging.New(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))).With("component", "libvalist")

func main() {}
