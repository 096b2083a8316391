package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoadFormats(t *testing.T) {
	want := Config{Library: "/opt/libvalist.x64.so", LogLevel: "debug", LogFormat: "json", Count: 3, Native: true}
	d := t.TempDir()
	files := map[string]string{
		"cfg.yaml": "library: /opt/libvalist.x64.so\nlog_level: debug\nlog_format: json\ncount: 3\nnative: true\n",
		"cfg.yml":  "library: /opt/libvalist.x64.so\nlog_level: debug\nlog_format: json\ncount: 3\nnative: true\n",
		"cfg.json": `{"library":"/opt/libvalist.x64.so","log_level":"debug","log_format":"json","count":3,"native":true}`,
		"cfg.toml": "library=\"/opt/libvalist.x64.so\"\nlog_level=\"debug\"\nlog_format=\"json\"\ncount=3\nnative=true\n",
	}
	for name, content := range files {
		t.Run(name, func(t *testing.T) {
			cfg, err := Load(writeTempFile(t, d, name, content))
			require.NoError(t, err)
			assert.Equal(t, want, cfg)
		})
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := Load("")
	assert.Error(t, err)

	d := t.TempDir()
	_, err = Load(writeTempFile(t, d, "cfg.txt", "not supported"))
	assert.ErrorContains(t, err, "unsupported config extension")

	_, err = Load(writeTempFile(t, d, "bad.json", "{"))
	assert.ErrorContains(t, err, "parse")

	_, err = Load(filepath.Join(d, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMergeAndValidate(t *testing.T) {
	cfg := Merge(Default(), Config{Library: "lib.so", Count: 5})
	assert.Equal(t, Config{Library: "lib.so", LogLevel: "info", LogFormat: "console", Count: 5}, cfg)
	assert.NoError(t, cfg.Validate())

	cfg.Count = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.LogFormat = "xml"
	assert.Error(t, cfg.Validate())
}
