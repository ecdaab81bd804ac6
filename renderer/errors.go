package renderer

import "github.com/cockroachdb/errors"

// Setup failures are unrecoverable: the caller is expected to log them and
// exit. They are still typed so that callers and tests can tell the classes
// apart without string matching.
var (
	// ErrLayerUnavailable means the mandatory validation layer is not
	// installed on this system.
	ErrLayerUnavailable = errors.New("validation layer not available")

	// ErrNoSuitableDevice means no enumerated physical device passed every
	// suitability check.
	ErrNoSuitableDevice = errors.New("no suitable physical device")

	// ErrMalformedShader means a shader binary is not aligned to 4-byte
	// SPIR-V words.
	ErrMalformedShader = errors.New("malformed shader binary")

	// ErrUnsupportedBackend means the window system in use has no surface
	// creation path here.
	ErrUnsupportedBackend = errors.New("unsupported windowing backend")
)
