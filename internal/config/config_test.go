package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_AppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte("output: model/model.go\n"))
	require.NoError(t, err)

	assert.Equal(t, "model", cfg.Package)
	assert.Equal(t, "model/model.go", cfg.Output)
	assert.Equal(t, "xsdmodel/xmlmap", cfg.RuntimeImport)
	assert.Equal(t, 16, cfg.MaxDepth)
}

func TestParse_OverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
package: catalog
runtime_import: example.com/lib/xmlmap
max_depth: 8
`))
	require.NoError(t, err)

	assert.Equal(t, "catalog", cfg.Package)
	assert.Equal(t, "example.com/lib/xmlmap", cfg.RuntimeImport)
	assert.Equal(t, 8, cfg.MaxDepth)
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("package: [unterminated"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config YAML")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg = Default()
	cfg.Package = ""
	assert.ErrorContains(t, cfg.Validate(), "package")

	cfg = Default()
	cfg.RuntimeImport = ""
	assert.ErrorContains(t, cfg.Validate(), "runtime_import")

	cfg = Default()
	cfg.MaxDepth = 0
	assert.ErrorContains(t, cfg.Validate(), "max_depth")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xsdmodel.yaml")
	require.NoError(t, os.WriteFile(path, []byte("package: catalog\n"), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "catalog", cfg.Package)

	_, err = LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}
