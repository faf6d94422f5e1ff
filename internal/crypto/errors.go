package crypto

import "errors"

// Failure kinds. Both are fatal to the cheat being decoded and nothing else;
// callers match them with errors.Is.
var (
	// ErrMalformedInput covers truncated word streams, bit reads past the end
	// of a cheat and undecodable source text.
	ErrMalformedInput = errors.New("malformed input")

	// ErrUnsupportedMode is an AR2 control value outside 0-7.
	ErrUnsupportedMode = errors.New("unsupported mode")
)
