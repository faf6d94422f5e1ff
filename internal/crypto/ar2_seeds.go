package crypto

import "encoding/binary"

// AR2Seeds is the AR2 cipher state: control and table seed for the address
// word, then control and table seed for the value word.
//
// It is a value type. Every decode works on its own copy, so a re-key inside
// one cheat never leaks into another.
type AR2Seeds [4]byte

// AR2DefaultKey is the device key the AR2 state starts from.
const AR2DefaultKey uint32 = 0x04030209

// DefaultAR2Seeds returns the state derived from AR2DefaultKey.
func DefaultAR2Seeds() AR2Seeds {
	return RegenerateAR2Seeds(AR2DefaultKey)
}

// RegenerateAR2Seeds byte-reverses key and returns its bytes low to high,
// which is the key's big-endian byte image.
func RegenerateAR2Seeds(key uint32) AR2Seeds {
	var s AR2Seeds
	binary.BigEndian.PutUint32(s[:], key)
	return s
}
