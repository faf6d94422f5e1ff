package crypto

import (
	"fmt"
	"math/bits"
)

// AR2Resync is the decrypted address that announces a new AR2 key in the
// following value word.
const AR2Resync uint32 = 0xDEADFACE

// AR2Mode selects the per-word transform of the AR2 octet cipher.
type AR2Mode uint8

const (
	AR2ModeXOR       AR2Mode = iota // XOR with four rows
	AR2ModeNibbleXOR                // nibble swap, then XOR
	AR2ModeAdd                      // wrapping add
	AR2ModeSub                      // wrapping subtract
	AR2ModeXORAdd                   // XOR, then add the same entry
	AR2ModeSubXOR                   // subtract one row, XOR another
	AR2ModeMixed                    // add/subtract with offset seeds
	AR2ModeMeta                     // NibbleXOR for odd seeds, complement for even
)

var ar2ModeNames = [...]string{"xor", "nibble-xor", "add", "sub", "xor-add", "sub-xor", "mixed", "meta"}

// Valid reports whether m is one of the eight defined modes.
func (m AR2Mode) Valid() bool { return m <= AR2ModeMeta }

func (m AR2Mode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
	return ar2ModeNames[m]
}

// DecryptAR2Code decrypts a single AR2 word with the given control and table seed.
func DecryptAR2Code(word uint32, control, seed byte) (uint32, error) {
	mode := AR2Mode(control)
	if !mode.Valid() {
		return 0, fmt.Errorf("crypto: ar2 control %d: %w", control, ErrUnsupportedMode)
	}

	if mode == AR2ModeMeta {
		if seed&1 == 0 {
			return ^word, nil
		}
		mode = AR2ModeNibbleXOR
	}

	s := seed & 31
	t0, t1, t2, t3 := ar2Table[0][s], ar2Table[1][s], ar2Table[2][s], ar2Table[3][s]

	// b[3] is the most significant byte
	b := [4]byte{byte(word), byte(word >> 8), byte(word >> 16), byte(word >> 24)}

	switch mode {
	case AR2ModeXOR:
		b[3] ^= t0
		b[2] ^= t1
		b[1] ^= t2
		b[0] ^= t3
	case AR2ModeNibbleXOR:
		b[3] = swapNibbles(b[3]) ^ t0
		b[2] = swapNibbles(b[2]) ^ t2
		b[1] = swapNibbles(b[1]) ^ t3
		b[0] = swapNibbles(b[0]) ^ t1
	case AR2ModeAdd:
		b[3] += t0
		b[2] += t1
		b[1] += t2
		b[0] += t3
	case AR2ModeSub:
		b[3] -= t3
		b[2] -= t2
		b[1] -= t1
		b[0] -= t0
	case AR2ModeXORAdd:
		b[3] = (b[3] ^ t0) + t0
		b[2] = (b[2] ^ t3) + t3
		b[1] = (b[1] ^ t1) + t1
		b[0] = (b[0] ^ t2) + t2
	case AR2ModeSubXOR:
		b[3] = (b[3] - t1) ^ t0
		b[2] = (b[2] - t2) ^ t1
		b[1] = (b[1] - t3) ^ t2
		b[0] = (b[0] - t0) ^ t3
	case AR2ModeMixed:
		b[3] += t0
		b[2] -= ar2Table[1][(s+1)&31]
		b[1] += ar2Table[2][(s+2)&31]
		b[0] -= ar2Table[3][(s+3)&31]
	}

	return uint32(b[3])<<24 | uint32(b[2])<<16 | uint32(b[1])<<8 | uint32(b[0]), nil
}

// DecryptAR2Cheat decrypts an address/value word stream. A pair whose
// address decrypts to AR2Resync re-keys the cipher from its value and is
// dropped from the output. seeds is copied; the caller's state is untouched.
func DecryptAR2Cheat(words []uint32, seeds AR2Seeds) ([]uint32, error) {
	if len(words)%2 != 0 {
		return nil, fmt.Errorf("crypto: ar2 stream has %d words, want pairs: %w", len(words), ErrMalformedInput)
	}

	out := make([]uint32, 0, len(words))
	for i := 0; i < len(words); i += 2 {
		addr, err := DecryptAR2Code(words[i], seeds[0], seeds[1])
		if err != nil {
			return nil, fmt.Errorf("crypto: ar2 word %d: %w", i, err)
		}
		val, err := DecryptAR2Code(words[i+1], seeds[2], seeds[3])
		if err != nil {
			return nil, fmt.Errorf("crypto: ar2 word %d: %w", i+1, err)
		}

		if addr == AR2Resync {
			seeds = RegenerateAR2Seeds(val)
			continue
		}
		out = append(out, addr, val)
	}
	return out, nil
}

func swapNibbles(b byte) byte {
	return bits.RotateLeft8(b, 4)
}
