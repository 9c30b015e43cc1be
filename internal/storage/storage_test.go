package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPutGetDelete(t *testing.T) {
	st, err := New(t.TempDir())
	require.NoError(t, err)

	_, ok := st.Get("token")
	require.False(t, ok)

	require.NoError(t, st.Put("token", []byte("tok-1")))
	v, ok := st.Get("token")
	require.True(t, ok)
	require.Equal(t, "tok-1", string(v))

	require.NoError(t, st.Put("token", []byte("tok-2")))
	v, _ = st.Get("token")
	require.Equal(t, "tok-2", string(v))

	require.NoError(t, st.Delete("token"))
	_, ok = st.Get("token")
	require.False(t, ok)

	// Deleting an absent key succeeds.
	require.NoError(t, st.Delete("token"))
}

func TestNew_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "state")
	_, err := New(dir)
	require.NoError(t, err)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestPath_IgnoresTraversal(t *testing.T) {
	dir := t.TempDir()
	st, err := New(dir)
	require.NoError(t, err)

	require.NoError(t, st.Put("../escape", []byte("x")))
	_, err = os.Stat(filepath.Join(dir, "escape"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(filepath.Dir(dir), "escape"))
	require.True(t, os.IsNotExist(err))
}
