package pattern

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRules(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadCustomSpecs(t *testing.T) {
	path := writeRules(t, `
patterns:
  - pattern:
      name: internal token
      regex: "ITK-[0-9]{8}"
      confidence: high
  - pattern:
      name: legacy session id
      regex: "sess_[a-f0-9]{16}"
      confidence: medium
`)

	specs, err := LoadCustomSpecs(path)
	require.NoError(t, err)
	require.Len(t, specs, 2)

	assert.Equal(t, Kind("custom_internal token"), specs[0].Kind)
	assert.Equal(t, ProtocolGeneric, specs[0].Protocol)
	assert.Equal(t, 10, specs[0].Precedence)
	assert.Len(t, specs[0].Find("token ITK-12345678 issued"), 1)
	assert.Empty(t, specs[0].Find("token ITK-1234 issued"))
}

func TestLoadCustomSpecsSkipsBrokenRegex(t *testing.T) {
	path := writeRules(t, `
patterns:
  - pattern:
      name: broken
      regex: "([unclosed"
  - pattern:
      name: fine
      regex: "OK-[0-9]+"
`)

	specs, err := LoadCustomSpecs(path)
	require.NoError(t, err)
	require.Len(t, specs, 1)
	assert.Equal(t, Kind("custom_fine"), specs[0].Kind)
}

func TestLoadCustomSpecsErrors(t *testing.T) {
	_, err := LoadCustomSpecs(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)

	path := writeRules(t, "patterns: [not a mapping")
	_, err = LoadCustomSpecs(path)
	assert.Error(t, err)
}
