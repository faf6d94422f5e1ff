package armax

import (
	"bytes"
	"errors"
	"fmt"
	"math/bits"
	"strings"

	"github.com/icza/bitio"

	"armax-decoder/internal/crypto"
)

// Alphabet maps ARMAX symbols to their 5-bit values. I, L, O and S are unused.
const Alphabet = "0123456789ABCDEFGHJKMNPQRTUVWXYZ"

// symbolsPerCode is 64 payload bits plus one parity bit, rounded up to 5-bit symbols.
const symbolsPerCode = 13

// ErrParity is returned for a code whose parity symbol does not match its payload.
var ErrParity = fmt.Errorf("armax: parity check failed: %w", crypto.ErrMalformedInput)

// IsCode reports whether s has the XXXX-XXXX-XXXXX shape of an ARMAX line.
func IsCode(s string) bool {
	if len(s) != 15 || s[4] != '-' || s[9] != '-' {
		return false
	}
	for i := 0; i < len(s); i++ {
		if i == 4 || i == 9 {
			continue
		}
		c := s[i]
		if !(c >= '0' && c <= '9' || c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z') {
			return false
		}
	}
	return true
}

// ParseCode decodes one ARMAX line into its encrypted address and value words.
// Dashes are ignored. The 13 symbols form a 65-bit MSB-first stream: address,
// value, then a parity bit that must equal the parity of the 64 payload bits.
func ParseCode(s string) (addr, val uint32, err error) {
	raw := strings.ToUpper(strings.ReplaceAll(s, "-", ""))
	if len(raw) != symbolsPerCode {
		return 0, 0, fmt.Errorf("armax: code %q has %d symbols, want %d: %w", s, len(raw), symbolsPerCode, crypto.ErrMalformedInput)
	}

	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	for i := 0; i < len(raw); i++ {
		v := strings.IndexByte(Alphabet, raw[i])
		if v < 0 {
			return 0, 0, fmt.Errorf("armax: code %q: invalid symbol %q at %d: %w", s, raw[i], i, crypto.ErrMalformedInput)
		}
		w.TryWriteBits(uint64(v), 5)
	}
	if err := w.Close(); err != nil {
		return 0, 0, fmt.Errorf("armax: code %q: %w", s, err)
	}
	if w.TryError != nil {
		return 0, 0, fmt.Errorf("armax: code %q: %w", s, w.TryError)
	}

	r := bitio.NewReader(&buf)
	addr = uint32(r.TryReadBits(32))
	val = uint32(r.TryReadBits(32))
	parity := uint32(r.TryReadBits(1))
	if r.TryError != nil {
		return 0, 0, fmt.Errorf("armax: code %q: %w", s, r.TryError)
	}

	if uint32(bits.OnesCount32(addr)+bits.OnesCount32(val))&1 != parity {
		return addr, val, fmt.Errorf("armax: code %q (%08X %08X): %w", s, addr, val, ErrParity)
	}
	return addr, val, nil
}

// ParseCodes decodes a sequence of ARMAX lines into a flat word stream.
func ParseCodes(lines []string) ([]uint32, error) {
	out := make([]uint32, 0, 2*len(lines))
	var errs []error
	for _, l := range lines {
		a, v, err := ParseCode(l)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, a, v)
	}
	return out, errors.Join(errs...)
}

// FormatRaw renders an address/value pair the way raw codes are listed.
func FormatRaw(addr, val uint32) string {
	return fmt.Sprintf("%08X %08X", addr, val)
}
