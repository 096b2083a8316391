package valist

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTriggerCallbackDisplayString(t *testing.T) {
	var got string
	var ferr error
	TriggerCallback(func(format string, args *Args) {
		got, ferr = Sprintf(format, args)
	})
	require.NoError(t, ferr)
	assert.Equal(t, "hello world, the answer is 42", got)
}

func TestTriggerCallbackFormatAndValues(t *testing.T) {
	var format string
	var text string
	var num int64
	TriggerCallback(func(f string, args *Args) {
		format = f
		var err error
		text, err = args.NextText()
		require.NoError(t, err)
		num, err = args.NextInt()
		require.NoError(t, err)
		_, err = args.Next()
		assert.ErrorIs(t, err, ErrExhausted)
	})
	assert.Equal(t, "hello %s, the answer is %d", format)
	assert.Equal(t, "world", text)
	assert.EqualValues(t, 42, num)
}

func TestTriggerCallbackCountsInvocations(t *testing.T) {
	inv, err := NewInvoker()
	require.NoError(t, err)

	calls := 0
	cb := func(string, *Args) { calls++ }

	inv.TriggerCallback(cb)
	assert.Equal(t, 1, calls)

	for i := 0; i < 9; i++ {
		inv.TriggerCallback(cb)
	}
	assert.Equal(t, 10, calls)
	assert.EqualValues(t, 10, inv.Invocations())
}

func TestHandleReleasedAfterReturn(t *testing.T) {
	var kept, copied *Args
	TriggerCallback(func(_ string, args *Args) {
		kept = args
		var err error
		copied, err = args.Copy()
		require.NoError(t, err)
	})

	_, err := kept.Next()
	assert.ErrorIs(t, err, ErrArgsReleased)
	_, err = copied.NextText()
	assert.ErrorIs(t, err, ErrArgsReleased)
	_, err = kept.Values()
	assert.ErrorIs(t, err, ErrArgsReleased)
	_, err = Sprintf(GreetingFormat, kept)
	assert.ErrorIs(t, err, ErrArgsReleased)
}

func TestHandleReleasedWhenCallbackPanics(t *testing.T) {
	var kept *Args
	boom := errors.New("boom")
	func() {
		defer func() {
			r := recover()
			assert.Equal(t, boom, r)
		}()
		TriggerCallback(func(_ string, args *Args) {
			kept = args
			panic(boom)
		})
	}()
	_, err := kept.Len()
	assert.ErrorIs(t, err, ErrArgsReleased)
}

func TestPartialConsumptionStillReleases(t *testing.T) {
	var kept *Args
	ListifyAndCall(func(_ string, args *Args) {
		kept = args
		_, _ = args.NextText()
	}, "%s %d %f", Text("a"), Int(1), Float(2.5))

	_, err := kept.Remaining()
	assert.ErrorIs(t, err, ErrArgsReleased)
}

func TestListifyAndCallCopiesValues(t *testing.T) {
	values := []Value{Text("x"), Int(7)}
	ListifyAndCall(func(_ string, args *Args) {
		values[0] = Text("mutated")
		s, err := args.NextText()
		require.NoError(t, err)
		assert.Equal(t, "x", s)
	}, "%s %d", values...)
}

func TestNilCallbackPanics(t *testing.T) {
	assert.Panics(t, func() { TriggerCallback(nil) })
}

func TestInvokerRegistersCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	inv, err := NewInvoker(WithRegisterer(reg))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		inv.TriggerCallback(func(string, *Args) {})
	}
	assert.Equal(t, float64(3), testutil.ToFloat64(inv.counter))

	_, err = NewInvoker(WithRegisterer(reg))
	assert.Error(t, err, "duplicate registration must fail")
}

func TestGreeting(t *testing.T) {
	format, values := Greeting()
	assert.Equal(t, GreetingFormat, format)
	require.Len(t, values, 2)
	s, ok := values[0].AsText()
	assert.True(t, ok)
	assert.Equal(t, "world", s)
	n, ok := values[1].AsInt()
	assert.True(t, ok)
	assert.EqualValues(t, 42, n)
}
