//go:build !(linux && amd64)

package host

import "github.com/hsiuhsiu/valist-go/pkg/valist"

// Library is unavailable on this platform.
type Library struct{}

// VaList is unavailable on this platform.
type VaList struct{}

func Open(string, ...Option) (*Library, error) { return nil, ErrPlatformNotSupported }

func (l *Library) Close() error { return ErrPlatformNotSupported }

func (l *Library) HasTagged() bool { return false }

func (l *Library) Trigger(func(string, VaList)) error { return ErrPlatformNotSupported }

func (l *Library) TriggerFormatted() (string, error) { return "", ErrPlatformNotSupported }

func (l *Library) TriggerTagged() (string, []valist.Value, error) {
	return "", nil, ErrPlatformNotSupported
}

func (ap VaList) Format(string) (string, error) { return "", ErrPlatformNotSupported }
