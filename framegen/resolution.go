package framegen

// Resolution represents supported synthetic frame resolutions.
type Resolution int

const (
	// Res512p represents 910x512 resolution
	Res512p Resolution = iota
	// Res720p represents 1280x720 resolution (HD)
	Res720p
	// Res1080p represents 1920x1080 resolution (Full HD)
	Res1080p
)

// Dimensions returns the width and height for the resolution.
func (r Resolution) Dimensions() (width, height int) {
	switch r {
	case Res512p:
		return 910, 512
	case Res720p:
		return 1280, 720
	case Res1080p:
		return 1920, 1080
	default:
		// Safe default: 720p
		return 1280, 720
	}
}

// String returns a human-readable representation of the resolution.
func (r Resolution) String() string {
	switch r {
	case Res512p:
		return "512p"
	case Res720p:
		return "720p"
	case Res1080p:
		return "1080p"
	default:
		return "720p"
	}
}

// ParseResolution maps a CLI-style resolution name to a Resolution.
func ParseResolution(s string) (Resolution, bool) {
	switch s {
	case "512p":
		return Res512p, true
	case "720p":
		return Res720p, true
	case "1080p":
		return Res1080p, true
	default:
		return Res720p, false
	}
}
