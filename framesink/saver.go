package framesink

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/e7canasta/camsim/framequeue"
)

// Saver writes frames to disk as PNG or JPEG.
//
// Filenames are deterministic, keyed by frame ID:
//
//	frame_000042.png
//
// so a run's output directory can be correlated with the run's frame
// sequence after the fact.
//
// Thread-safe: Persist can be called from multiple consumers concurrently
// (each call touches a distinct file).
type Saver struct {
	outputDir   string
	format      string
	jpegQuality int

	saved  atomic.Uint64
	failed atomic.Uint64
}

// NewSaver creates a saver writing into outputDir.
//
// Format: "png" or "jpeg". JPEG quality: 1-100 (ignored for PNG).
// The output directory is created if it does not exist.
func NewSaver(outputDir, format string, jpegQuality int) (*Saver, error) {
	if format != FormatPNG && format != FormatJPEG {
		return nil, fmt.Errorf("%w: %q (must be png or jpeg)", ErrUnsupportedFormat, format)
	}
	if format == FormatJPEG && (jpegQuality < 1 || jpegQuality > 100) {
		return nil, fmt.Errorf("framesink: invalid JPEG quality %d (must be 1-100)", jpegQuality)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("framesink: failed to create output directory: %w", err)
	}

	return &Saver{
		outputDir:   outputDir,
		format:      format,
		jpegQuality: jpegQuality,
	}, nil
}

// Persist encodes the frame and writes it to disk (implements Sink).
func (s *Saver) Persist(frame *framequeue.Frame) error {
	img, err := rgbToRGBA(frame)
	if err != nil {
		s.failed.Add(1)
		return err
	}

	filename := fmt.Sprintf("frame_%06d.%s", frame.ID, s.format)
	path := filepath.Join(s.outputDir, filename)

	file, err := os.Create(path)
	if err != nil {
		s.failed.Add(1)
		return fmt.Errorf("framesink: failed to create %s: %w", filename, err)
	}
	defer file.Close()

	switch s.format {
	case FormatPNG:
		err = png.Encode(file, img)
	case FormatJPEG:
		err = jpeg.Encode(file, img, &jpeg.Options{Quality: s.jpegQuality})
	}
	if err != nil {
		s.failed.Add(1)
		return fmt.Errorf("framesink: %s encode of %s failed: %w", s.format, filename, err)
	}

	s.saved.Add(1)
	return nil
}

// Stats returns counts of successfully saved and failed frames.
func (s *Saver) Stats() (saved, failed uint64) {
	return s.saved.Load(), s.failed.Load()
}

// rgbToRGBA converts RGB raw bytes (3 bytes/pixel) to image.RGBA
// (4 bytes/pixel), adding an opaque alpha channel.
func rgbToRGBA(frame *framequeue.Frame) (*image.RGBA, error) {
	expectedSize := frame.Width * frame.Height * 3
	if len(frame.Data) != expectedSize {
		return nil, fmt.Errorf("%w: got %d bytes, expected %d (%dx%d*3)",
			ErrInvalidPayload, len(frame.Data), expectedSize, frame.Width, frame.Height)
	}

	img := image.NewRGBA(image.Rect(0, 0, frame.Width, frame.Height))
	for i := 0; i < frame.Width*frame.Height; i++ {
		img.Pix[i*4+0] = frame.Data[i*3+0] // R
		img.Pix[i*4+1] = frame.Data[i*3+1] // G
		img.Pix[i*4+2] = frame.Data[i*3+2] // B
		img.Pix[i*4+3] = 255               // A (opaque)
	}
	return img, nil
}
