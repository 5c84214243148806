package framesink_test

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/e7canasta/camsim/framequeue"
	"github.com/e7canasta/camsim/framesink"
)

func rgbFrame(id int64, width, height int) *framequeue.Frame {
	return &framequeue.Frame{
		ID:        id,
		Width:     width,
		Height:    height,
		Data:      make([]byte, width*height*3),
		Timestamp: time.Now(),
	}
}

func TestSaverRejectsBadConfig(t *testing.T) {
	_, err := framesink.NewSaver(t.TempDir(), "bmp", 90)
	assert.ErrorIs(t, err, framesink.ErrUnsupportedFormat)

	_, err = framesink.NewSaver(t.TempDir(), "jpeg", 0)
	assert.Error(t, err)

	_, err = framesink.NewSaver(t.TempDir(), "jpeg", 101)
	assert.Error(t, err)
}

func TestSaverWritesPNG(t *testing.T) {
	dir := t.TempDir()
	saver, err := framesink.NewSaver(dir, framesink.FormatPNG, 0)
	require.NoError(t, err)

	require.NoError(t, saver.Persist(rgbFrame(7, 8, 6)))

	// Deterministic naming keyed by frame ID.
	path := filepath.Join(dir, "frame_000007.png")
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	img, err := png.Decode(file)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 8, 6), img.Bounds())

	saved, failed := saver.Stats()
	assert.Equal(t, uint64(1), saved)
	assert.Zero(t, failed)
}

func TestSaverWritesJPEG(t *testing.T) {
	dir := t.TempDir()
	saver, err := framesink.NewSaver(dir, framesink.FormatJPEG, 80)
	require.NoError(t, err)

	require.NoError(t, saver.Persist(rgbFrame(3, 16, 16)))

	_, err = os.Stat(filepath.Join(dir, "frame_000003.jpeg"))
	assert.NoError(t, err)
}

func TestSaverRejectsMismatchedPayload(t *testing.T) {
	saver, err := framesink.NewSaver(t.TempDir(), framesink.FormatPNG, 0)
	require.NoError(t, err)

	frame := rgbFrame(1, 8, 8)
	frame.Data = frame.Data[:10] // truncated payload

	err = saver.Persist(frame)
	assert.ErrorIs(t, err, framesink.ErrInvalidPayload)

	_, failed := saver.Stats()
	assert.Equal(t, uint64(1), failed)
}

func TestSaverCreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "outputs")
	_, err := framesink.NewSaver(dir, framesink.FormatPNG, 0)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestDiscardDelay(t *testing.T) {
	sink := &framesink.Discard{Delay: 30 * time.Millisecond}

	start := time.Now()
	require.NoError(t, sink.Persist(rgbFrame(1, 2, 2)))
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)

	fast := &framesink.Discard{}
	require.NoError(t, fast.Persist(rgbFrame(2, 2, 2)))
}
