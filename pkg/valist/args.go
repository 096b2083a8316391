package valist

import (
	"fmt"
	"sync/atomic"
)

// scope is shared by a handle and every copy taken from it. Releasing the
// scope invalidates all of them at once, the way va_end ends the list that
// va_start opened.
type scope struct {
	released atomic.Bool
}

// Args is the argument-list handle delivered to a Callback. The zero value is
// not usable; handles are only created by the invoker.
type Args struct {
	scope  *scope
	values []Value
	pos    int
}

func newArgs(values []Value) *Args {
	vs := make([]Value, len(values))
	copy(vs, values)
	return &Args{scope: &scope{}, values: vs}
}

func (a *Args) release() {
	if a != nil && a.scope != nil {
		a.scope.released.Store(true)
	}
}

func (a *Args) live() error {
	if a == nil || a.scope == nil || a.scope.released.Load() {
		return ErrArgsReleased
	}
	return nil
}

// Len reports the total number of values in the list.
func (a *Args) Len() (int, error) {
	if err := a.live(); err != nil {
		return 0, err
	}
	return len(a.values), nil
}

// Remaining reports how many values the cursor has not consumed yet.
func (a *Args) Remaining() (int, error) {
	if err := a.live(); err != nil {
		return 0, err
	}
	return len(a.values) - a.pos, nil
}

// Next returns the value under the cursor and advances it.
func (a *Args) Next() (Value, error) {
	if err := a.live(); err != nil {
		return Value{}, err
	}
	if a.pos >= len(a.values) {
		return Value{}, fmt.Errorf("%w: position %d of %d", ErrExhausted, a.pos, len(a.values))
	}
	v := a.values[a.pos]
	a.pos++
	return v, nil
}

// next advances only when the value under the cursor has kind want.
func (a *Args) next(want Kind) (Value, error) {
	if err := a.live(); err != nil {
		return Value{}, err
	}
	if a.pos >= len(a.values) {
		return Value{}, fmt.Errorf("%w: want %s at position %d", ErrExhausted, want, a.pos)
	}
	v := a.values[a.pos]
	if v.kind != want {
		return Value{}, fmt.Errorf("%w: want %s at position %d, have %s", ErrKindMismatch, want, a.pos, v.kind)
	}
	a.pos++
	return v, nil
}

// NextText consumes a text value, failing with ErrKindMismatch otherwise.
func (a *Args) NextText() (string, error) {
	v, err := a.next(KindText)
	return v.text, err
}

// NextInt consumes an integer value.
func (a *Args) NextInt() (int64, error) {
	v, err := a.next(KindInt)
	return v.num, err
}

// NextFloat consumes a floating-point value.
func (a *Args) NextFloat() (float64, error) {
	v, err := a.next(KindFloat)
	return v.real, err
}

// Copy returns an independent cursor positioned where a is. The copy lives
// in the same scope as a and is released together with it.
func (a *Args) Copy() (*Args, error) {
	if err := a.live(); err != nil {
		return nil, err
	}
	return &Args{scope: a.scope, values: a.values, pos: a.pos}, nil
}

// Values returns every value in the list regardless of the cursor.
func (a *Args) Values() ([]Value, error) {
	if err := a.live(); err != nil {
		return nil, err
	}
	out := make([]Value, len(a.values))
	copy(out, a.values)
	return out, nil
}
