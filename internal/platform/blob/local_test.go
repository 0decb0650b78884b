package blob

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocalStorePut(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir)

	key := NewKey("front.jpg")
	ref, err := store.Put(context.Background(), key, "image/jpeg", strings.NewReader("jpegdata"))
	require.NoError(t, err)
	require.Equal(t, key, ref)

	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(ref)))
	require.NoError(t, err)
	require.Equal(t, "jpegdata", string(data))
}

func TestNewKeyPreservesExtension(t *testing.T) {
	key := NewKey("voice note.mp3")
	require.True(t, strings.HasPrefix(key, "uploads/"))
	require.True(t, strings.HasSuffix(key, ".mp3"))
	require.NotEqual(t, key, NewKey("voice note.mp3"))
}
