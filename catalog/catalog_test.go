package catalog

import (
	"path/filepath"
	"testing"

	"github.com/bodgit/cte"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalog(t *testing.T) *Catalog {
	c, err := New(filepath.Join(t.TempDir(), "cte.db"))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestAdd(t *testing.T) {
	c := newCatalog(t)

	id, err := c.Add(Texture{Path: "b/font.img", Hash: 0xdeadbeefcafe, Format: cte.A8, Width: 256, Height: 64})
	require.NoError(t, err)

	// Same path replaces the existing entry
	again, err := c.Add(Texture{Path: "b/font.img", Hash: 0xffffffffffffffff, Format: cte.A8, Width: 128, Height: 64})
	require.NoError(t, err)
	assert.Equal(t, id, again)

	_, err = c.Add(Texture{Path: "a/font.img", Hash: 1, Format: cte.A8, Width: 8, Height: 8})
	require.NoError(t, err)

	textures, err := c.List()
	require.NoError(t, err)
	assert.Equal(t, []Texture{
		{Path: "a/font.img", Hash: 1, Format: cte.A8, Width: 8, Height: 8},
		{Path: "b/font.img", Hash: 0xffffffffffffffff, Format: cte.A8, Width: 128, Height: 64},
	}, textures)
}

func TestFindByHash(t *testing.T) {
	c := newCatalog(t)

	for _, p := range []string{"x.img", "y.img"} {
		_, err := c.Add(Texture{Path: p, Hash: 42, Format: cte.A8, Width: 8, Height: 8})
		require.NoError(t, err)
	}
	_, err := c.Add(Texture{Path: "z.img", Hash: 43, Format: cte.A8, Width: 8, Height: 8})
	require.NoError(t, err)

	textures, err := c.FindByHash(42)
	require.NoError(t, err)
	require.Len(t, textures, 2)
	assert.Equal(t, "x.img", textures[0].Path)
	assert.Equal(t, "y.img", textures[1].Path)

	textures, err = c.FindByHash(44)
	require.NoError(t, err)
	assert.Empty(t, textures)
}

func TestReopen(t *testing.T) {
	file := filepath.Join(t.TempDir(), "cte.db")

	c, err := New(file)
	require.NoError(t, err)
	_, err = c.Add(Texture{Path: "font.img", Hash: 7, Format: cte.A8, Width: 16, Height: 16})
	require.NoError(t, err)
	require.NoError(t, c.Close())

	c, err = New(file)
	require.NoError(t, err)
	defer c.Close()

	textures, err := c.List()
	require.NoError(t, err)
	assert.Len(t, textures, 1)
}
