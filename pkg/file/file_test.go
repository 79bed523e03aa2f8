package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileService_JsonRoundTrip(t *testing.T) {
	fs := NewFileService()
	path := filepath.Join(t.TempDir(), "prefs.json")

	exists, err := fs.IsFileExists(path)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, fs.WriteJsonFile(path, map[string]string{"@darkMode": "true"}))

	var got map[string]string
	require.NoError(t, fs.ReadJsonFile(path, &got))
	assert.Equal(t, map[string]string{"@darkMode": "true"}, got)

	// No temp files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileService_WriteJsonFile_KeepsOldContentOnEncodeError(t *testing.T) {
	fs := NewFileService()
	path := filepath.Join(t.TempDir(), "prefs.json")
	require.NoError(t, fs.WriteJsonFile(path, map[string]string{"a": "1"}))

	err := fs.WriteJsonFile(path, map[string]any{"bad": make(chan int)})
	assert.Error(t, err)

	var got map[string]string
	require.NoError(t, fs.ReadJsonFile(path, &got))
	assert.Equal(t, map[string]string{"a": "1"}, got)
}

func TestFileService_YamlRoundTrip(t *testing.T) {
	type doc struct {
		Path string `yaml:"path"`
	}
	fs := NewFileService()
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	require.NoError(t, fs.EnsureDir(path))
	require.NoError(t, fs.WriteYamlFile(path, doc{Path: "data/locations.db"}))

	var got doc
	require.NoError(t, fs.ReadYamlFile(path, &got))
	assert.Equal(t, "data/locations.db", got.Path)
}
