package cache

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"minijson/internal/value"
)

func sampleTree() *value.Group {
	return value.NewRoot(
		value.NewString("name", "minijson"),
		value.NewGroup("limits",
			value.NewInt("depth", 64),
			value.NewGroup("empty"),
		),
		value.NewInt("zero", 0),
	)
}

func TestPutGetRoundTrip(t *testing.T) {
	c, err := Open(t.TempDir())
	require.NoError(t, err)

	key := KeyFor([32]byte{1, 2, 3}, 0)
	require.NoError(t, c.Put(key, sampleTree()))

	got, ok, err := c.Get(key)
	require.NoError(t, err)
	require.True(t, ok)
	if diff := cmp.Diff(sampleTree(), got); diff != "" {
		t.Fatalf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestEmptyRootRoundTrip(t *testing.T) {
	c, err := Open(t.TempDir())
	require.NoError(t, err)
	key := KeyFor([32]byte{}, 0)
	require.NoError(t, c.Put(key, value.NewRoot()))

	got, ok, err := c.Get(key)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, value.NewRoot(), got)
}

func TestGetMiss(t *testing.T) {
	c, err := Open(t.TempDir())
	require.NoError(t, err)
	got, ok, err := c.Get(KeyFor([32]byte{9}, 0))
	require.NoError(t, err)
	require.False(t, ok)
	require.Nil(t, got)
}

func TestKeyDependsOnDepthLimit(t *testing.T) {
	content := [32]byte{7}
	require.Equal(t, KeyFor(content, 0), KeyFor(content, 0))
	require.Equal(t, KeyFor(content, 0), KeyFor(content, -3))
	require.NotEqual(t, KeyFor(content, 0), KeyFor(content, 8))
	require.NotEqual(t, KeyFor(content, 0), KeyFor([32]byte{8}, 0))
}

func TestPutRejectsInvalidTree(t *testing.T) {
	c, err := Open(t.TempDir())
	require.NoError(t, err)
	err = c.Put(KeyFor([32]byte{}, 0), value.NewGroup("named"))
	require.ErrorIs(t, err, value.ErrInvalidTree)
}

func TestCorruptEntry(t *testing.T) {
	c, err := Open(t.TempDir())
	require.NoError(t, err)
	key := KeyFor([32]byte{4}, 0)
	require.NoError(t, os.MkdirAll(filepath.Dir(c.pathFor(key)), 0o755))

	require.NoError(t, os.WriteFile(c.pathFor(key), []byte{0xc1}, 0o600))
	_, _, err = c.Get(key)
	require.True(t, errors.Is(err, ErrCorrupt), "got %v", err)

	bad, err := msgpack.Marshal(&Payload{Schema: schemaVersion, Nodes: []Node{{Kind: nodeGroup, Children: 2}}})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(c.pathFor(key), bad, 0o600))
	_, _, err = c.Get(key)
	require.ErrorIs(t, err, ErrCorrupt)
}

func TestSchemaMismatchIsMiss(t *testing.T) {
	c, err := Open(t.TempDir())
	require.NoError(t, err)
	key := KeyFor([32]byte{5}, 0)
	require.NoError(t, os.MkdirAll(filepath.Dir(c.pathFor(key)), 0o755))
	old, err := msgpack.Marshal(&Payload{Schema: schemaVersion + 1, Nodes: []Node{{Kind: nodeGroup}}})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(c.pathFor(key), old, 0o600))

	_, ok, err := c.Get(key)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestDropAll(t *testing.T) {
	c, err := Open(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, c.DropAll())

	key := KeyFor([32]byte{6}, 0)
	require.NoError(t, c.Put(key, sampleTree()))
	require.NoError(t, c.DropAll())
	_, ok, err := c.Get(key)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestNilCache(t *testing.T) {
	var c *Cache
	require.NoError(t, c.Put(Digest{}, sampleTree()))
	_, ok, err := c.Get(Digest{})
	require.NoError(t, err)
	require.False(t, ok)
	require.Empty(t, c.Dir())
}

func TestDefaultDirUsesXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)
	got, err := DefaultDir("minijson")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "minijson"), got)
}
