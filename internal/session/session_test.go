package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sstent/atlog/internal/api"
)

func TestLoadMissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "session.json"))

	sess, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, sess, "no file means no session, not an error")
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewStore(path)

	require.NoError(t, store.Save(&Session{
		Username: "ana",
		Password: "s3cret",
		Country:  api.CountryES,
	}))

	sess, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "ana", sess.Username)
	assert.Equal(t, "s3cret", sess.Password)
	assert.Equal(t, api.CountryPT, sess.Country,
		"country selection is not persisted and always restores to PT")
}

func TestSavePersistsOnlyCredentials(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewStore(path)

	require.NoError(t, store.Save(&Session{Username: "ana", Password: "s3cret"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, map[string]any{"usuario": "ana", "senha": "s3cret"}, raw)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestSaveCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "session.json")
	store := NewStore(path)

	require.NoError(t, store.Save(&Session{Username: "ana", Password: "s3cret"}))

	sess, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, sess)
}

func TestClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewStore(path)

	require.NoError(t, store.Save(&Session{Username: "ana", Password: "s3cret"}))
	require.NoError(t, store.Clear())

	sess, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, sess)

	// Clearing an already-cleared session is not an error.
	require.NoError(t, store.Clear())
}
