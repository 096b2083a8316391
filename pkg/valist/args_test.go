package valist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withArgs(t *testing.T, fn func(*Args), values ...Value) {
	t.Helper()
	called := false
	ListifyAndCall(func(_ string, args *Args) {
		called = true
		fn(args)
	}, "", values...)
	require.True(t, called)
}

func TestArgsKindMismatchDoesNotAdvance(t *testing.T) {
	withArgs(t, func(a *Args) {
		_, err := a.NextInt()
		assert.ErrorIs(t, err, ErrKindMismatch)

		s, err := a.NextText()
		require.NoError(t, err)
		assert.Equal(t, "world", s)

		_, err = a.NextFloat()
		assert.ErrorIs(t, err, ErrKindMismatch)
		n, err := a.NextInt()
		require.NoError(t, err)
		assert.EqualValues(t, 42, n)

		_, err = a.NextInt()
		assert.ErrorIs(t, err, ErrExhausted)
	}, Text("world"), Int(42))
}

func TestArgsCopyIsIndependent(t *testing.T) {
	withArgs(t, func(a *Args) {
		_, err := a.Next()
		require.NoError(t, err)

		c, err := a.Copy()
		require.NoError(t, err)

		f, err := c.NextFloat()
		require.NoError(t, err)
		assert.Equal(t, 1.5, f)

		rem, err := a.Remaining()
		require.NoError(t, err)
		assert.Equal(t, 1, rem)

		rem, err = c.Remaining()
		require.NoError(t, err)
		assert.Equal(t, 0, rem)
	}, Int(1), Float(1.5))
}

func TestArgsValuesIgnoresCursor(t *testing.T) {
	withArgs(t, func(a *Args) {
		_, _ = a.Next()
		vs, err := a.Values()
		require.NoError(t, err)
		assert.Equal(t, []Value{Text("a"), Int(2)}, vs)

		n, err := a.Len()
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	}, Text("a"), Int(2))
}

func TestZeroArgsIsReleased(t *testing.T) {
	var a Args
	_, err := a.Next()
	assert.ErrorIs(t, err, ErrArgsReleased)

	var nilArgs *Args
	_, err = nilArgs.Len()
	assert.ErrorIs(t, err, ErrArgsReleased)
}

func TestValueString(t *testing.T) {
	assert.Equal(t, `"world"`, Text("world").String())
	assert.Equal(t, "42", Int(42).String())
	assert.Equal(t, "0.25", Float(0.25).String())
	assert.Equal(t, "<invalid Kind(0)>", Value{}.String())
	assert.True(t, Value{}.IsZero())
	assert.Equal(t, "float", KindFloat.String())
}
