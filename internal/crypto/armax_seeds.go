package crypto

import "sync"

// ARMAXSchedule holds the 32 round-key words consumed by DecryptARMAXPair,
// four per round, already in decryption order.
type ARMAXSchedule [32]uint32

// DefaultARMAXSchedule returns the schedule derived from the device key.
// It is generated once per process and must be treated as read-only.
var DefaultARMAXSchedule = sync.OnceValue(func() *ARMAXSchedule {
	s := GenerateARMAXSchedule()
	return &s
})

// GenerateARMAXSchedule derives the round keys from the fixed device tables.
func GenerateARMAXSchedule() ARMAXSchedule {
	var out ARMAXSchedule
	var bits, rotated [56]byte

	for i := range bits {
		t := armaxKeySelect[i] - 1
		// sign bit of (0 - x) is set for any non-zero x
		bits[i] = byte((0 - uint32(armaxKey[t>>3]&armaxBitMask[t&7])) >> 31)
	}

	for round := 0; round < 16; round++ {
		var packed [8]byte
		shift := armaxRotation[round]

		for j := byte(0); j < 56; j++ {
			t := shift + j
			if j > 0x1B {
				if t > 0x37 {
					t -= 0x1C
				}
			} else if t > 0x1B {
				t -= 0x1C
			}
			rotated[j] = bits[t]
		}

		for j := uint32(0); j < 48; j++ {
			if rotated[armaxCompress[j]-1] == 0 {
				continue
			}
			// j/6 without a divide
			bucket := (j*0x2AAB)>>16 - j>>31
			packed[bucket] |= armaxBitMask[j-bucket*6] >> 2
		}

		out[2*round] = uint32(packed[0])<<24 | uint32(packed[2])<<16 | uint32(packed[4])<<8 | uint32(packed[6])
		out[2*round+1] = uint32(packed[1])<<24 | uint32(packed[3])<<16 | uint32(packed[5])<<8 | uint32(packed[7])
	}

	// Decryption walks the rounds backwards; keep the two words of a round together.
	for lo, hi := 0, len(out)-2; lo < hi; lo, hi = lo+2, hi-2 {
		out[lo], out[hi] = out[hi], out[lo]
		out[lo+1], out[hi+1] = out[hi+1], out[lo+1]
	}

	return out
}
