// Package armax decodes Action Replay MAX cheats: the 13-symbol text form,
// the metadata header, the verifier block and the layered ARMAX/AR2 payload.
package armax

import (
	"fmt"
	"math/bits"

	"armax-decoder/internal/crypto"
)

// crcMask clears the CRC nibble left in the first word after decryption.
const crcMask = 0x0FFFFFFF

// Decrypted is a fully decoded cheat.
type Decrypted struct {
	Codes         []uint32
	Meta          Metadata
	VerifierWords int
}

// Pairs returns Codes as address/value pairs.
func (d Decrypted) Pairs() [][2]uint32 {
	out := make([][2]uint32, 0, len(d.Codes)/2)
	for i := 0; i+1 < len(d.Codes); i += 2 {
		out = append(out, [2]uint32{d.Codes[i], d.Codes[i+1]})
	}
	return out
}

// DecryptCheat runs the whole decode of one encrypted cheat. The verifier
// words are kept as they leave the ARMAX cipher; everything after them is a
// byte-swapped AR2 stream decoded with its own copy of ar2.
// The CRC of the payload is not checked.
func DecryptCheat(codes []uint32, sched *crypto.ARMAXSchedule, ar2 crypto.AR2Seeds) (Decrypted, error) {
	if len(codes) == 0 || len(codes)%2 != 0 {
		return Decrypted{}, fmt.Errorf("armax: decrypt: %d words: %w", len(codes), crypto.ErrMalformedInput)
	}
	if sched == nil {
		sched = crypto.DefaultARMAXSchedule()
	}

	words := make([]uint32, len(codes))
	for i := 0; i < len(codes); i += 2 {
		words[i], words[i+1] = crypto.DecryptARMAXPair(codes[i], codes[i+1], sched)
	}

	meta, err := ReadMetadata(words)
	if err != nil {
		return Decrypted{}, fmt.Errorf("armax: decrypt: %w", err)
	}
	words[0] &= crcMask

	lines, err := VerifierLines(words)
	if err != nil {
		return Decrypted{}, fmt.Errorf("armax: decrypt: %w", err)
	}
	verifier := 2 * lines
	if verifier > len(words) {
		return Decrypted{}, fmt.Errorf("armax: decrypt: verifier needs %d words, have %d: %w",
			verifier, len(words), crypto.ErrMalformedInput)
	}

	out := Decrypted{Meta: meta, VerifierWords: verifier}
	if verifier == len(words) {
		out.Codes = words
		return out, nil
	}

	tail := words[verifier:]
	for i, w := range tail {
		tail[i] = bits.ReverseBytes32(w)
	}
	decoded, err := crypto.DecryptAR2Cheat(tail, ar2)
	if err != nil {
		return Decrypted{}, fmt.Errorf("armax: decrypt: %w", err)
	}

	out.Codes = make([]uint32, 0, verifier+len(decoded))
	out.Codes = append(out.Codes, words[:verifier]...)
	out.Codes = append(out.Codes, decoded...)
	return out, nil
}
