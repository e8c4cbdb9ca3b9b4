package media

import (
	"bytes"
	"context"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helper "campusevents_backend/internals/helpers"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.RGBA{R: 200, A: 255})
	}
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func TestProcessImageDownscales(t *testing.T) {
	out, err := ProcessImage(pngBytes(t, 2560, 1440))
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.LessOrEqual(t, cfg.Width, MaxWidth)
	assert.LessOrEqual(t, cfg.Height, MaxHeight)
	assert.Equal(t, 1280, cfg.Width)
}

func TestProcessImageKeepsSmallImages(t *testing.T) {
	out, err := ProcessImage(pngBytes(t, 300, 200))
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 300, cfg.Width)
	assert.Equal(t, 200, cfg.Height)
}

// hugeCanvasPNG is a valid 1x1 PNG whose header claims width x height.
func hugeCanvasPNG(t *testing.T, width, height uint32) []byte {
	t.Helper()
	data := pngBytes(t, 1, 1)
	// signature(8) + length(4) + "IHDR"(4), then width and height
	require.Equal(t, "IHDR", string(data[12:16]))
	binary.BigEndian.PutUint32(data[16:20], width)
	binary.BigEndian.PutUint32(data[20:24], height)
	binary.BigEndian.PutUint32(data[29:33], crc32.ChecksumIEEE(data[12:29]))
	return data
}

func TestProcessImageRejectsHugeCanvas(t *testing.T) {
	_, err := ProcessImage(hugeCanvasPNG(t, 60_000, 60_000))
	require.Error(t, err)
	assert.True(t, helper.IsKind(err, helper.KindValidation))
	assert.Contains(t, err.Error(), "60000x60000")

	_, err = ProcessImage(hugeCanvasPNG(t, 9_000, 9_000))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceed")
}

func TestProcessImageRejectsText(t *testing.T) {
	_, err := ProcessImage([]byte("definitely not an image"))
	require.Error(t, err)
	assert.True(t, helper.IsKind(err, helper.KindValidation))

	_, err = ProcessImage(nil)
	assert.True(t, helper.IsKind(err, helper.KindValidation))
}

func TestLocalStoragePutDelete(t *testing.T) {
	dir := t.TempDir()
	ls, err := NewLocalStorage(dir, "/uploads")
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, ls.Put(ctx, "events/a.webp", bytes.NewReader([]byte("x")), "image/webp"))

	_, err = os.Stat(filepath.Join(dir, "events", "a.webp"))
	require.NoError(t, err)

	url := ls.URL("events/a.webp")
	assert.Equal(t, "/uploads/events/a.webp", url)

	key, ok := ls.KeyFromURL(url)
	require.True(t, ok)
	assert.Equal(t, "events/a.webp", key)

	_, ok = ls.KeyFromURL("soss.jpeg")
	assert.False(t, ok)

	require.NoError(t, ls.Delete(ctx, key))
	_, err = os.Stat(filepath.Join(dir, "events", "a.webp"))
	assert.True(t, os.IsNotExist(err))

	// deleting twice is fine
	assert.NoError(t, ls.Delete(ctx, key))
}

func TestSanitizeKeyBlocksTraversal(t *testing.T) {
	assert.Equal(t, "etc/passwd", sanitizeKey("/etc/passwd"))
	assert.NotContains(t, sanitizeKey("../../secret"), "..")
}
