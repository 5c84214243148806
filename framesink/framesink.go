// Package framesink persists frames to durable storage.
//
// The pipeline treats persistence as an external collaborator behind the
// Sink interface: the consumer pool hands each dequeued frame to the
// sink and records success or failure; a sink error is never fatal to
// the pipeline (the frame is discarded, at-most-once semantics).
package framesink

import (
	"errors"

	"github.com/e7canasta/camsim/framequeue"
)

// Supported output formats.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
)

var (
	// ErrUnsupportedFormat is returned by NewSaver for formats other
	// than png or jpeg.
	ErrUnsupportedFormat = errors.New("framesink: unsupported format")

	// ErrInvalidPayload is returned by Persist when the frame's data
	// length does not match its declared dimensions.
	ErrInvalidPayload = errors.New("framesink: payload size does not match dimensions")
)

// Sink attempts to durably persist one frame.
//
// Implementations must guarantee:
//   - Persist is safe for concurrent calls (the consumer pool is N-wide)
//   - Persist never panics into the pipeline's control flow
//   - An error reports a failed persist for that frame only; the sink
//     stays usable for subsequent frames
type Sink interface {
	Persist(frame *framequeue.Frame) error
}
