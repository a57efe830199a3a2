package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", "/data")

	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("/data", "docdrift", "connections.db"), cfg.Registry.Path)
	assert.True(t, cfg.Credentials.Keyring)
	assert.Equal(t, "docdrift", cfg.Credentials.Service)
	assert.Equal(t, RendererTemplate, cfg.Migration.Renderer)
	assert.Equal(t, "builtin:arangosh", cfg.Migration.Template)
	assert.True(t, cfg.Progress)
	assert.False(t, cfg.Debug)
}

func TestLoad_FileFromConfigDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "docdrift"), 0755))
	yaml := "migration:\n  renderer: php\ncredentials:\n  keyring: false\nregistry:\n  path: /tmp/reg.db\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "docdrift", "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, RendererPHP, cfg.Migration.Renderer)
	assert.False(t, cfg.Credentials.Keyring)
	assert.Equal(t, "/tmp/reg.db", cfg.Registry.Path)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("migration:\n  template: builtin:arangosh\n"), 0644))
	t.Setenv("DOCDRIFT_MIGRATION_TEMPLATE", "builtin:mongosh")
	t.Setenv("DOCDRIFT_DEBUG", "true")

	cfg, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, "builtin:mongosh", cfg.Migration.Template)
	assert.True(t, cfg.Debug)
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"template", Config{Registry: RegistryConfig{Path: "r.db"}, Migration: MigrationConfig{Renderer: "template", Template: "builtin:mongosh"}}, false},
		{"php without template", Config{Registry: RegistryConfig{Path: "r.db"}, Migration: MigrationConfig{Renderer: "php"}}, false},
		{"unknown renderer", Config{Registry: RegistryConfig{Path: "r.db"}, Migration: MigrationConfig{Renderer: "sql"}}, true},
		{"template missing", Config{Registry: RegistryConfig{Path: "r.db"}, Migration: MigrationConfig{Renderer: "template"}}, true},
		{"no registry", Config{Migration: MigrationConfig{Renderer: "php"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
