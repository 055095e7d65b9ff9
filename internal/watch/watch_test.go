package watch

import (
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nomadcxx/photostamp/internal/age"
	"github.com/Nomadcxx/photostamp/internal/labeler"
	"github.com/Nomadcxx/photostamp/internal/stamp"
)

func writeJPEG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 120, 90))
	for y := 0; y < 90; y++ {
		for x := 0; x < 120; x++ {
			img.Set(x, y, color.RGBA{R: 30, G: 30, B: 30, A: 255})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, jpeg.Encode(f, img, nil))
}

func TestWatch_StampsNewFile(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "output")
	require.NoError(t, os.MkdirAll(outDir, 0755))

	s, err := stamp.New()
	require.NoError(t, err)
	proc := labeler.New(age.TimestampLabeler{}, s, stamp.PositionBottomRight)

	// Buffered generously: Create and Write events for the same file
	// can each trigger a result.
	results := make(chan labeler.FileResult, 16)
	w, err := New(proc,
		WithSettleDelay(50*time.Millisecond),
		WithResultFunc(func(fr labeler.FileResult) { results <- fr }))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, dir, outDir) }()

	// Give the watcher a moment to register before creating the file.
	time.Sleep(200 * time.Millisecond)
	writeJPEG(t, filepath.Join(dir, "IMG_2022.09.21.jpg"))

	select {
	case fr := <-results:
		assert.Equal(t, "2022.09.21", fr.Label)
		assert.FileExists(t, filepath.Join(outDir, "IMG_2022.09.21.jpg"))
	case <-ctx.Done():
		t.Fatal("watcher did not process the new file in time")
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestWatch_IgnoresNonImages(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "output")
	require.NoError(t, os.MkdirAll(outDir, 0755))

	s, err := stamp.New()
	require.NoError(t, err)
	proc := labeler.New(age.TimestampLabeler{}, s, stamp.PositionBottomRight)

	results := make(chan labeler.FileResult, 16)
	w, err := New(proc,
		WithSettleDelay(50*time.Millisecond),
		WithResultFunc(func(fr labeler.FileResult) { results <- fr }))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx, dir, outDir)

	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes_2022.09.21.txt"), []byte("x"), 0644))

	select {
	case fr := <-results:
		t.Fatalf("non-image was processed: %+v", fr)
	case <-time.After(500 * time.Millisecond):
	}
}
