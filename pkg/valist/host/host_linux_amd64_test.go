//go:build linux && amd64

package host

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hsiuhsiu/valist-go/pkg/valist"
)

// openBuilt loads the library named by VALIST_LIB, built with
// go build -buildmode=c-shared ./cmd/libvalist.
func openBuilt(t *testing.T, opts ...Option) *Library {
	t.Helper()
	path := os.Getenv("VALIST_LIB")
	if path == "" {
		t.Skip("VALIST_LIB not set")
	}
	lib, err := Open(path, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = lib.Close() })
	return lib
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "libmissing.so"))
	assert.Error(t, err)
}

func TestOpenWithoutTriggerSymbol(t *testing.T) {
	_, err := Open("libc.so.6")
	assert.ErrorIs(t, err, ErrSymbolNotFound)
}

func TestTriggerFormatted(t *testing.T) {
	lib := openBuilt(t)
	line, err := lib.TriggerFormatted()
	require.NoError(t, err)
	assert.Equal(t, "hello world, the answer is 42", line)
}

func TestTriggerCallsBackOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	lib := openBuilt(t, WithRegisterer(reg))

	for n := 1; n <= 3; n++ {
		calls := 0
		var format string
		require.NoError(t, lib.Trigger(func(f string, ap VaList) {
			calls++
			format = f
			first, err := ap.Format(f)
			assert.NoError(t, err)
			second, err := ap.Format(f)
			assert.NoError(t, err)
			assert.Equal(t, first, second)
		}))
		assert.Equal(t, 1, calls)
		assert.Equal(t, valist.GreetingFormat, format)
	}
	assert.Equal(t, float64(3), testutil.ToFloat64(lib.counts.WithLabelValues(SymbolTrigger)))
}

func TestVaListExpiresAfterCallback(t *testing.T) {
	lib := openBuilt(t)
	var kept VaList
	require.NoError(t, lib.Trigger(func(_ string, ap VaList) { kept = ap }))
	_, err := kept.Format(valist.GreetingFormat)
	assert.ErrorIs(t, err, ErrVaListExpired)
}

func TestTriggerTagged(t *testing.T) {
	lib := openBuilt(t)
	require.True(t, lib.HasTagged())
	line, values, err := lib.TriggerTagged()
	require.NoError(t, err)
	assert.Equal(t, "hello world, the answer is 42", line)
	assert.Equal(t, []valist.Value{valist.Text("world"), valist.Int(42)}, values)
}

func TestCloseTwice(t *testing.T) {
	path := os.Getenv("VALIST_LIB")
	if path == "" {
		t.Skip("VALIST_LIB not set")
	}
	lib, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, lib.Close())
	assert.ErrorIs(t, lib.Close(), ErrLibraryClosed)
	assert.ErrorIs(t, lib.Trigger(func(string, VaList) {}), ErrLibraryClosed)
}
