// Package framegen produces synthetic camera frames.
//
// The pipeline treats generation as an external collaborator: anything
// that yields an RGB payload on demand can drive it. Two generators are
// provided — RandomRGB (fresh noise every frame) and StaticRGB (noise
// generated once and reused, the cheap option for high frame rates where
// payload content is irrelevant).
package framegen

import (
	"errors"
	"math/rand"
	"sync"
	"time"
)

// ErrInvalidDimensions is returned by generator constructors for
// non-positive width or height.
var ErrInvalidDimensions = errors.New("framegen: width and height must be positive")

// Image is a generated RGB payload (3 bytes per pixel, row-major).
type Image struct {
	Width  int
	Height int
	Data   []byte
}

// Generator yields one frame payload per call.
//
// Implementations must guarantee:
//   - Generate() is safe for calls from a single producer goroutine
//   - Generate() has no side effects on pipeline state
//   - A failed Generate() leaves the generator usable for the next cycle
//
// Generate may be arbitrarily slow; the producer accounts for generation
// time in its pacing.
type Generator interface {
	Generate() (Image, error)
}

// RandomRGB generates a fresh random RGB image on every call.
type RandomRGB struct {
	width  int
	height int

	mu  sync.Mutex // rand.Rand is not safe for concurrent use
	rng *rand.Rand
}

// NewRandomRGB creates a generator for width×height random RGB frames.
func NewRandomRGB(width, height int) (*RandomRGB, error) {
	if width < 1 || height < 1 {
		return nil, ErrInvalidDimensions
	}
	return &RandomRGB{
		width:  width,
		height: height,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// Generate returns a new random RGB payload. Never fails.
func (g *RandomRGB) Generate() (Image, error) {
	data := make([]byte, g.width*g.height*3)

	g.mu.Lock()
	g.rng.Read(data)
	g.mu.Unlock()

	return Image{Width: g.width, Height: g.height, Data: data}, nil
}

// StaticRGB generates one random RGB image up front and returns the same
// payload on every call.
//
// This mirrors a camera simulation that only cares about frame cadence,
// not content: zero allocation per frame, so generation latency stays
// negligible even at very high target rates.
//
// Consumers share the payload by reference — the frame immutability
// contract (see framequeue.Frame) makes that safe.
type StaticRGB struct {
	img Image
}

// NewStaticRGB creates a generator with a single pre-rendered payload.
func NewStaticRGB(width, height int) (*StaticRGB, error) {
	inner, err := NewRandomRGB(width, height)
	if err != nil {
		return nil, err
	}
	img, _ := inner.Generate()
	return &StaticRGB{img: img}, nil
}

// Generate returns the pre-rendered payload. Never fails.
func (g *StaticRGB) Generate() (Image, error) {
	return g.img, nil
}
