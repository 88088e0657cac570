package baseline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "baselines.json")
	store := NewFileStore(path)

	in := map[string]Profile{
		"10F1":   {SecurityNumber: "10F1", Color: "black", LastUpdated: learnTime},
		"SM2-23": {SecurityNumber: "SM2-23", Color: "blue", LastUpdated: learnTime},
	}
	require.NoError(t, store.Save(in))

	out, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, in, out)

	// Persisted form is a sorted JSON array of records.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.HasPrefix(text, "["))
	assert.Contains(t, text, `"securityNumber": "10F1"`)
	assert.Less(t, strings.Index(text, "10F1"), strings.Index(text, "SM2-23"))
}

func TestFileStoreLoadMissing(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "nope.json"))

	profiles, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, profiles)
}

func TestFileStoreLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "baselines.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := NewFileStore(path).Load()
	assert.Error(t, err)
}

func TestFileStoreLoadNormalizesKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "baselines.json")
	content := `[
  {"securityNumber": " 10f1 ", "color": "red", "lastUpdated": "2026-04-12T09:30:00Z"},
  {"securityNumber": "", "color": "blue", "lastUpdated": "2026-04-12T09:30:00Z"}
]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	profiles, err := NewFileStore(path).Load()
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "10F1", profiles["10F1"].SecurityNumber)
	assert.Equal(t, "red", profiles["10F1"].Color)
}

func TestFileStoreSaveCreatesParent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "baselines.json")
	store := NewFileStore(path)

	require.NoError(t, store.Save(map[string]Profile{
		"10F1": {SecurityNumber: "10F1", Color: "gray", LastUpdated: learnTime},
	}))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}
