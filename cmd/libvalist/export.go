//go:build cgo

package main

/*
#cgo CFLAGS: -I${SRCDIR}/../../internal/cabi
#include "valist.h"
*/
import "C"

import (
	"context"
	"unsafe"

	"github.com/hsiuhsiu/valist-go/internal/cabi"
)

//export triggerCallback
func triggerCallback(cb C.valist_callback) {
	if err := cabi.Trigger(unsafe.Pointer(cb)); err != nil {
		logger.Error(context.Background(), "triggerCallback failed", "err", err)
	}
}

//export triggerCallbackTagged
func triggerCallbackTagged(cb C.valist_tagged_callback) {
	if err := cabi.TriggerTagged(unsafe.Pointer(cb)); err != nil {
		logger.Error(context.Background(), "triggerCallbackTagged failed", "err", err)
	}
}
