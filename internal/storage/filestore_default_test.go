package storage_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/3fenban/fanban-cli/internal/storage"
	"github.com/3fenban/fanban-cli/internal/testutil"
)

func TestNewFileStoreDefaultsUnderHome(t *testing.T) {
	home := testutil.WithTempHome(t)

	store, err := storage.NewFileStore()
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(store.Dir(), home), "store dir %q not under temp home", store.Dir())
	require.Equal(t, filepath.Join(home, ".cache", "fanban"), store.Dir())

	require.NoError(t, store.Set("wx_token", "tok"))
	var got string
	found, err := store.Get("wx_token", &got)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "tok", got)
}
