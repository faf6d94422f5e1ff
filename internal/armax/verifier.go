package armax

import (
	"fmt"

	"armax-decoder/internal/bitstream"
)

// expansionWidths gives the payload size of each verifier entry by its 3-bit selector.
var expansionWidths = [8]int{6, 10, 12, 19, 19, 8, 7, 32}

// firstLineBits is the room on the first line for terminator, selector and payload.
const firstLineBits = 24

// VerifierLines counts the leading 64-bit lines taken by the verifier header.
// The header is a run of (terminator=0, selector, payload) entries starting at
// bit 8 of the second word and closed by a terminator of 1.
func VerifierLines(words []uint32) (int, error) {
	c := bitstream.New(words, 1, 8)

	read := func(n int) (uint32, error) {
		v, err := c.ReadBits(n)
		if err != nil {
			return 0, fmt.Errorf("armax: verifier: %w", err)
		}
		return v, nil
	}

	term, err := read(1)
	if err != nil {
		return 0, err
	}
	for term == 0 {
		sel, err := read(3)
		if err != nil {
			return 0, err
		}
		if _, err := read(expansionWidths[sel]); err != nil {
			return 0, err
		}
		if term, err = read(1); err != nil {
			return 0, err
		}
	}

	lines := 1
	if n := c.Consumed(); n >= firstLineBits {
		lines++
		lines += (n - firstLineBits) / 64
	}
	return lines, nil
}
