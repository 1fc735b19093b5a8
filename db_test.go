package ehex

import (
	"crypto/sha1"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	smallV2 = "EHEX2\nV2\nSIZE:2x1\nPIXELS:\n0f\n"
	otherV2 = "EHEX2\nV2\nSIZE:3x2\nPIXELS:\n123\n456\n"
	smallV1 = "EHEX\nV1\nSIZE:1x1\nCHANNELS:4\nPIXELS:\n102030FF\n"
)

func openTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	db, err := OpenCatalog(filepath.Join(t.TempDir(), "ehex.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})
	return db
}

func TestCatalog_AddGet(t *testing.T) {
	db := openTestCatalog(t)

	e, err := db.Add("small", []byte(smallV2))
	require.NoError(t, err)
	assert.Equal(t, "small", e.Name)
	assert.Equal(t, FormatV2, e.Format)
	assert.Equal(t, 2, e.Width)
	assert.Equal(t, 1, e.Height)
	assert.Equal(t, fmt.Sprintf("%X", sha1.Sum([]byte(smallV2))), e.SHA1)

	b, err := db.Get("small")
	require.NoError(t, err)
	assert.Equal(t, smallV2, string(b))

	_, err = db.Get("missing")
	assert.Equal(t, ErrNotFound, err)
}

func TestCatalog_Replace(t *testing.T) {
	db := openTestCatalog(t)

	first, err := db.Add("pic", []byte(smallV2))
	require.NoError(t, err)

	again, err := db.Add("pic", []byte(smallV2))
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	changed, err := db.Add("pic", []byte(otherV2))
	require.NoError(t, err)
	assert.Equal(t, first.ID, changed.ID)
	assert.NotEqual(t, first.SHA1, changed.SHA1)

	entries, err := db.List()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 3, entries[0].Width)
	assert.Equal(t, 2, entries[0].Height)
}

func TestCatalog_AddInvalid(t *testing.T) {
	db := openTestCatalog(t)

	_, err := db.Add("bad", []byte("EHEX2\nV2\nSIZE:2x2\nPIXELS:\n00\n"))
	assert.Error(t, err)

	_, err = db.Add("worse", []byte("not an image"))
	assert.Error(t, err)

	entries, err := db.List()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCatalog_ListRemove(t *testing.T) {
	db := openTestCatalog(t)

	for name, body := range map[string]string{
		"b": smallV2,
		"a": smallV1,
		"c": otherV2,
	} {
		_, err := db.Add(name, []byte(body))
		require.NoError(t, err)
	}

	entries, err := db.List()
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "a", entries[0].Name)
	assert.Equal(t, FormatV1, entries[0].Format)
	assert.Equal(t, "b", entries[1].Name)
	assert.Equal(t, "c", entries[2].Name)

	require.NoError(t, db.Remove("b"))
	assert.Equal(t, ErrNotFound, db.Remove("b"))

	entries, err = db.List()
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestCatalog_FindBySHA1(t *testing.T) {
	db := openTestCatalog(t)

	for _, name := range []string{"two", "one"} {
		_, err := db.Add(name, []byte(smallV2))
		require.NoError(t, err)
	}
	_, err := db.Add("three", []byte(otherV2))
	require.NoError(t, err)

	names, err := db.FindBySHA1(fmt.Sprintf("%X", sha1.Sum([]byte(smallV2))))
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, names)

	names, err = db.FindBySHA1("0000")
	require.NoError(t, err)
	assert.Empty(t, names)
}
