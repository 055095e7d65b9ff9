package stamp

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestImage(t *testing.T, path string, w, h int) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 40, G: 40, B: 40, A: 255})
		}
	}

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	switch filepath.Ext(path) {
	case ".png":
		require.NoError(t, png.Encode(f, img))
	default:
		require.NoError(t, jpeg.Encode(f, img, nil))
	}
}

func TestStamp_WritesDecodableOutput(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "2022.09.21.jpg")
	dst := filepath.Join(dir, "out.jpg")
	writeTestImage(t, src, 320, 240)

	s, err := New()
	require.NoError(t, err)

	require.NoError(t, s.Stamp(src, dst, "2022.09.21", PositionBottomRight))

	f, err := os.Open(dst)
	require.NoError(t, err)
	defer f.Close()

	img, format, err := image.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, image.Rect(0, 0, 320, 240), img.Bounds())
}

func TestStamp_PNGStaysPNG(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "photo_2022-09-21.png")
	dst := filepath.Join(dir, "photo_2022-09-21.png.out.png")
	writeTestImage(t, src, 120, 90)

	s, err := New()
	require.NoError(t, err)
	require.NoError(t, s.Stamp(src, dst, "2022.09.21", PositionBottomCenter))

	f, err := os.Open(dst)
	require.NoError(t, err)
	defer f.Close()

	_, format, err := image.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
}

func TestStamp_ChangesPixels(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.png")
	dst := filepath.Join(dir, "out.png")
	writeTestImage(t, src, 200, 150)

	s, err := New()
	require.NoError(t, err)
	require.NoError(t, s.Stamp(src, dst, "0.0.0", PositionBottomCenter))

	f, err := os.Open(dst)
	require.NoError(t, err)
	defer f.Close()
	img, _, err := image.Decode(f)
	require.NoError(t, err)

	// Something near the bottom band must no longer be the uniform
	// background.
	changed := false
	bg := color.RGBA{R: 40, G: 40, B: 40, A: 255}
	for y := 100; y < 150 && !changed; y++ {
		for x := 0; x < 200; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			br, bgc, bb, _ := bg.RGBA()
			if r != br || g != bgc || b != bb {
				changed = true
				break
			}
		}
	}
	assert.True(t, changed, "label drawing left the image untouched")
}

func TestStamp_MissingSource(t *testing.T) {
	s, err := New()
	require.NoError(t, err)

	err = s.Stamp(filepath.Join(t.TempDir(), "nope.jpg"), filepath.Join(t.TempDir(), "out.jpg"), "x", PositionBottomCenter)
	assert.Error(t, err)
}

func TestNew_FontFallback(t *testing.T) {
	s, err := New(WithFontPaths([]string{filepath.Join(t.TempDir(), "missing.ttf")}))
	require.NoError(t, err)
	assert.True(t, s.UsingFallbackFont())
	assert.Equal(t, "embedded Go Regular", s.FontSource())
}

func TestOutputName(t *testing.T) {
	assert.Equal(t, "a_2022.09.21.jpg", OutputName("a_2022.09.21.jpg"))
	assert.Equal(t, "clip.jpg", OutputName("clip.webp"))
	assert.Equal(t, "clip.jpg", OutputName("clip.WEBP"))
	assert.Equal(t, "pic.png", OutputName("pic.png"))
}
