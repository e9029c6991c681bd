package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tessera-db/tessera/internal/convert"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "tessera.yml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return dir
}

func TestLoadFrom(t *testing.T) {
	dir := writeConfig(t, `
project_name: demo
dialect: sqlite
database:
  url: file:demo.db
converters:
  - source: Person
    target: text
  - source: text
    target: integer
    direction: reading
`)

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, "demo", cfg.ProjectName)
	assert.Equal(t, "sqlite", cfg.Dialect)
	assert.Equal(t, "file:demo.db", cfg.Database.URL)
	require.Len(t, cfg.Converters, 2)
	assert.Equal(t, "Person", cfg.Converters[0].Source)
	assert.Equal(t, "reading", cfg.Converters[1].Direction)
}

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Dialect)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Empty(t, cfg.Converters)
}

func TestLoadFrom_UnknownDialect(t *testing.T) {
	dir := writeConfig(t, "dialect: oracle\n")

	_, err := LoadFrom(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oracle")
}

func TestLoadFrom_IncompleteConverter(t *testing.T) {
	dir := writeConfig(t, `
converters:
  - source: Person
`)

	_, err := LoadFrom(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source and target")
}

func TestConverterConfigHint(t *testing.T) {
	tests := []struct {
		direction string
		want      convert.Hint
		wantErr   bool
	}{
		{"", convert.HintUnspecified, false},
		{"reading", convert.HintForceReading, false},
		{"writing", convert.HintForceWriting, false},
		{"sideways", convert.HintUnspecified, true},
	}

	for _, tt := range tests {
		c := ConverterConfig{Source: "a", Target: "b", Direction: tt.direction}
		hint, err := c.Hint()
		if tt.wantErr {
			assert.Error(t, err)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, hint)
	}
}
