package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type profile struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStoreAt(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("wx_user", profile{Name: "alice", Count: 2}))

	var got profile
	found, err := store.Get("wx_user", &got)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, profile{Name: "alice", Count: 2}, got)
}

func TestFileStoreGetMissingKey(t *testing.T) {
	store, err := NewFileStoreAt(t.TempDir())
	require.NoError(t, err)

	var got profile
	found, err := store.Get("absent", &got)
	require.NoError(t, err)
	require.False(t, found)
}

func TestFileStoreRemoveIsIdempotent(t *testing.T) {
	store, err := NewFileStoreAt(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("wx_token", "abc"))
	require.NoError(t, store.Remove("wx_token"))
	require.NoError(t, store.Remove("wx_token"))

	var got string
	found, err := store.Get("wx_token", &got)
	require.NoError(t, err)
	require.False(t, found)
}

func TestFileStoreOverwriteLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStoreAt(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set("k", 1))
	require.NoError(t, store.Set("k", 2))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "k.json", filepath.Base(entries[0].Name()))

	var got int
	found, err := store.Get("k", &got)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, 2, got)
}

func TestFileStoreCorruptValue(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStoreAt(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0600))

	var got profile
	_, err = store.Get("bad", &got)
	require.Error(t, err)
}

func TestMemStoreRoundTrip(t *testing.T) {
	store := NewMemStore()
	require.NoError(t, store.Set("k", []int{1, 2, 3}))
	require.Equal(t, 1, store.Len())

	var got []int
	found, err := store.Get("k", &got)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, []int{1, 2, 3}, got)

	require.NoError(t, store.Remove("k"))
	require.Equal(t, 0, store.Len())
}
