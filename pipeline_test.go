package ehex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
	return dir
}

func TestLibrary_Index(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a.ehex":          smallV2,
		"sub/b.ehex":      smallV1,
		"sub/deep/c.ehex": otherV2,
		".hidden/d.ehex":  smallV2,
		".e.ehex":         smallV2,
		"broken.ehex":     "EHEX2\nV9\nSIZE:1x1\nPIXELS:\n0\n",
		"notes.txt":       smallV2,
	})

	db := openTestCatalog(t)

	for _, workers := range []int{0, 1, 4} {
		n, err := New(db, nil).Index(dir, workers)
		require.NoError(t, err)
		assert.Equal(t, 3, n, "workers %d", workers)
	}

	entries, err := db.List()
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"a.ehex", "sub/b.ehex", "sub/deep/c.ehex"}, names)

	b, err := db.Get("sub/b.ehex")
	require.NoError(t, err)
	assert.Equal(t, smallV1, string(b))
}

func TestLibrary_IndexMissing(t *testing.T) {
	db := openTestCatalog(t)

	_, err := New(db, nil).Index(filepath.Join(t.TempDir(), "missing"), 2)
	assert.Error(t, err)
}
