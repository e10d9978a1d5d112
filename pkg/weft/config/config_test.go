package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSettings_Validate verifies required-field checks.
func TestSettings_Validate(t *testing.T) {
	valid := Settings{Project: "demo", Domain: "development"}
	assert.NoError(t, valid.Validate())

	err := Settings{Domain: "development"}.Validate()
	assert.True(t, errors.Is(err, ErrProjectRequired))

	err = Settings{Project: "demo"}.Validate()
	assert.True(t, errors.Is(err, ErrDomainRequired))

	// Both violations are reported together.
	err = Settings{}.Validate()
	assert.True(t, errors.Is(err, ErrProjectRequired))
	assert.True(t, errors.Is(err, ErrDomainRequired))
}

// TestSettings_Validate_NegativeDefaults verifies defaults sanity checks.
func TestSettings_Validate_NegativeDefaults(t *testing.T) {
	s := Settings{
		Project:  "demo",
		Domain:   "development",
		Defaults: Defaults{Retries: -1},
	}
	assert.Error(t, s.Validate())
}

// TestFromYAML verifies YAML parsing including defaults.
func TestFromYAML(t *testing.T) {
	data := []byte(`
project: demo
domain: development
version: v3
defaults:
  timeout: 30s
  retries: 2
`)
	s, err := FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, "demo", s.Project)
	assert.Equal(t, "development", s.Domain)
	assert.Equal(t, "v3", s.Version)
	assert.Equal(t, 30*time.Second, s.Defaults.Timeout)
	assert.Equal(t, 2, s.Defaults.Retries)
}

// TestFromYAML_Invalid verifies malformed and incomplete YAML are rejected.
func TestFromYAML_Invalid(t *testing.T) {
	_, err := FromYAML([]byte("project: [unclosed"))
	assert.Error(t, err)

	_, err = FromYAML([]byte("project: demo"))
	assert.True(t, errors.Is(err, ErrDomainRequired))
}

// TestFromJSON verifies JSON parsing.
func TestFromJSON(t *testing.T) {
	s, err := FromJSON([]byte(`{"project":"demo","domain":"production"}`))
	require.NoError(t, err)
	assert.Equal(t, "production", s.Domain)
}

// TestFromFile verifies extension-based dispatch.
func TestFromFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("project: demo\ndomain: dev\n"), 0o644))

	s, err := FromFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "demo", s.Project)

	txtPath := filepath.Join(dir, "settings.txt")
	require.NoError(t, os.WriteFile(txtPath, []byte("x"), 0o644))
	_, err = FromFile(txtPath)
	assert.ErrorContains(t, err, "unsupported settings file extension")

	_, err = FromFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
