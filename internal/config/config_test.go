package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "patchtool.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Shipped(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "config", "patchtool.toml"))
	require.NoError(t, err)
	assert.Equal(t, "TDS", cfg.Patch.Name)
	assert.Equal(t, "yaml", cfg.Data.Source)
	assert.Equal(t, 30*time.Minute, cfg.Database.ConnMaxLifetime)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "[logging]\nlevel = \"debug\"\n"))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "config", cfg.Patch.OpcodeDir)
	assert.Equal(t, "data/yaml/items.yaml", cfg.Data.ItemsPath)
	assert.Equal(t, 4, cfg.Database.MaxOpenConns)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"bad source", "[data]\nsource = \"csv\"\n", "data.source"},
		{"empty opcode dir", "[patch]\nopcode_dir = \"\"\n", "patch.opcode_dir"},
		{"bad toml", "[patch\n", "parse config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
