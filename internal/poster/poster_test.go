package poster

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}

func TestImportCopies(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "picked.png")
	writePNG(t, src, 40, 20)

	store := NewStore(filepath.Join(tmp, "posters"), "placeholder.jpg", 0)
	store.now = func() time.Time { return time.UnixMilli(1760000000000) }

	dst, err := store.Import(src)
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(dst))
	assert.Equal(t, filepath.Join(tmp, "posters"), filepath.Dir(dst))
	assert.True(t, strings.HasPrefix(filepath.Base(dst), "poster_1760000000000_"))
	assert.Equal(t, ".png", filepath.Ext(dst))

	want, err := os.ReadFile(src)
	require.NoError(t, err)
	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = os.Stat(src)
	assert.NoError(t, err, "picked file must stay in place")
}

func TestImportNamesAreUnique(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "picked.png")
	writePNG(t, src, 4, 4)

	store := NewStore(filepath.Join(tmp, "posters"), "", 0)
	store.now = func() time.Time { return time.UnixMilli(1) }

	first, err := store.Import(src)
	require.NoError(t, err)
	second, err := store.Import(src)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestImportCrops(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "picked.png")
	writePNG(t, src, 300, 200)

	store := NewStore(filepath.Join(tmp, "posters"), "", 150)
	dst, err := store.Import(src)
	require.NoError(t, err)

	img, err := imaging.Open(dst)
	require.NoError(t, err)
	assert.Equal(t, 150, img.Bounds().Dx())
	assert.Equal(t, 150, img.Bounds().Dy())
}

func TestImportRejectsNonImage(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "notes.txt")
	require.NoError(t, os.WriteFile(src, []byte("just some text"), 0o644))

	_, err := NewStore(filepath.Join(tmp, "posters"), "", 0).Import(src)
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestImportMissingSource(t *testing.T) {
	_, err := NewStore(t.TempDir(), "", 0).Import(filepath.Join(t.TempDir(), "gone.png"))
	assert.Error(t, err)
}

func TestResolve(t *testing.T) {
	tmp := t.TempDir()
	present := filepath.Join(tmp, "present.png")
	writePNG(t, present, 2, 2)

	store := NewStore(tmp, "placeholder.jpg", 0)
	assert.Equal(t, present, store.Resolve(present))
	assert.Equal(t, "placeholder.jpg", store.Resolve(filepath.Join(tmp, "missing.png")))
	assert.Equal(t, "placeholder.jpg", store.Resolve(""))
	assert.Equal(t, "placeholder.jpg", store.Resolve(tmp), "directories are not posters")
}

func TestRemove(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "picked.png")
	writePNG(t, src, 4, 4)
	store := NewStore(filepath.Join(tmp, "posters"), "placeholder.jpg", 0)

	dst, err := store.Import(src)
	require.NoError(t, err)
	require.NoError(t, store.Remove(dst))
	_, err = os.Stat(dst)
	assert.ErrorIs(t, err, os.ErrNotExist)

	assert.NoError(t, store.Remove(dst), "already removed")
	assert.NoError(t, store.Remove(""))

	require.NoError(t, store.Remove(src))
	_, err = os.Stat(src)
	assert.NoError(t, err, "files outside the posters directory are never removed")
}

func TestEnsurePlaceholder(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "data", "nyx_icon.jpg")
	store := NewStore(filepath.Join(tmp, "posters"), path, 0)

	require.NoError(t, store.EnsurePlaceholder())
	img, err := imaging.Open(path)
	require.NoError(t, err)
	assert.Equal(t, placeholderSize, img.Bounds().Dx())
	assert.Equal(t, path, store.Resolve(filepath.Join(tmp, "missing.png")))

	t.Run("existing file is kept", func(t *testing.T) {
		custom := filepath.Join(tmp, "custom.png")
		writePNG(t, custom, 3, 3)
		before, err := os.ReadFile(custom)
		require.NoError(t, err)

		require.NoError(t, NewStore(tmp, custom, 0).EnsurePlaceholder())
		after, err := os.ReadFile(custom)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		assert.Error(t, NewStore(tmp, filepath.Join(tmp, "icon.xyz"), 0).EnsurePlaceholder())
	})
}
