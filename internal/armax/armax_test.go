package armax

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/icza/bitio"

	"armax-decoder/internal/crypto"
)

var kingdomHearts = []struct {
	name    string
	lines   []string
	cheatID uint32
	enable  bool
	want    []uint32
}{
	{
		name: "Enable Code",
		lines: []string{
			"UQRN-ER36-M3RD5",
			"WC60-T93N-MGJBW",
			"7QTG-QEQB-YXP60",
			"VFE7-FK9B-M32EA",
			"KQEK-5ZFB-F8UP9",
		},
		cheatID: 0x6BC2,
		enable:  true,
		want: []uint32{
			0x014F06BC, 0x287869AB, 0x74680000, 0x00000000,
			0xC411F668, 0x00000800, 0x0C0F0094, 0x00000001,
			0xC4000000, 0x00010801,
		},
	},
	{
		name:    "Have All Trinities",
		lines:   []string{"PMGE-KJ9D-X4WRN", "QJNC-EWMH-UQ48H"},
		cheatID: 0x6BC5,
		want:    []uint32{0x014F06BC, 0x50800000, 0x003F38AB, 0x0000007F},
	},
	{
		name:    "Save Anywhere",
		lines:   []string{"3QYW-CWCU-R0BCC", "3WQR-X7EE-ADTJA"},
		cheatID: 0x6BC6,
		want:    []uint32{0x014F06BC, 0x60800000, 0x044865E0, 0x00114288},
	},
}

func TestDecryptCheat(t *testing.T) {
	for _, tc := range kingdomHearts {
		t.Run(tc.name, func(t *testing.T) {
			codes, err := ParseCodes(tc.lines)
			if err != nil {
				t.Fatalf("ParseCodes: %v", err)
			}
			got, err := DecryptCheat(codes, crypto.DefaultARMAXSchedule(), crypto.DefaultAR2Seeds())
			if err != nil {
				t.Fatalf("DecryptCheat: %v", err)
			}
			if len(got.Codes) != len(tc.want) {
				t.Fatalf("got %d words, want %d: %08X", len(got.Codes), len(tc.want), got.Codes)
			}
			for i := range tc.want {
				if got.Codes[i] != tc.want[i] {
					t.Errorf("word %d = %08X, want %08X", i, got.Codes[i], tc.want[i])
				}
			}
			m := got.Meta
			if m.GameID != 0x29E || m.CheatID != tc.cheatID || m.Enable != tc.enable || m.Region != RegionUSA {
				t.Errorf("metadata = %+v", m)
			}
		})
	}
}

func TestDecryptCheatVerifierWords(t *testing.T) {
	want := []int{4, 2, 2}
	for i, tc := range kingdomHearts {
		codes, _ := ParseCodes(tc.lines)
		got, err := DecryptCheat(codes, nil, crypto.DefaultAR2Seeds())
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if got.VerifierWords != want[i] {
			t.Errorf("%s: VerifierWords = %d, want %d", tc.name, got.VerifierWords, want[i])
		}
		if len(got.Pairs()) != len(tc.want)/2 {
			t.Errorf("%s: %d pairs", tc.name, len(got.Pairs()))
		}
	}
}

func TestDecryptCheatDoesNotModifyInput(t *testing.T) {
	codes, _ := ParseCodes(kingdomHearts[1].lines)
	orig := append([]uint32(nil), codes...)
	if _, err := DecryptCheat(codes, nil, crypto.DefaultAR2Seeds()); err != nil {
		t.Fatal(err)
	}
	for i := range orig {
		if codes[i] != orig[i] {
			t.Fatalf("input word %d changed: %08X -> %08X", i, orig[i], codes[i])
		}
	}
}

func TestDecryptCheatMalformed(t *testing.T) {
	for _, codes := range [][]uint32{nil, {1}, {1, 2, 3}} {
		_, err := DecryptCheat(codes, nil, crypto.DefaultAR2Seeds())
		if !errors.Is(err, crypto.ErrMalformedInput) {
			t.Errorf("DecryptCheat(%v) err = %v, want ErrMalformedInput", codes, err)
		}
	}
}

func TestDecryptCheatTruncatedVerifier(t *testing.T) {
	// The enable code's verifier spans two lines, so its first line alone is short.
	codes, _ := ParseCodes(kingdomHearts[0].lines[:1])
	_, err := DecryptCheat(codes, nil, crypto.DefaultAR2Seeds())
	if !errors.Is(err, crypto.ErrMalformedInput) {
		t.Fatalf("err = %v, want ErrMalformedInput", err)
	}
}

func TestParseCode(t *testing.T) {
	addr, val, err := ParseCode("UQRN-ER36-M3RD5")
	if err != nil {
		t.Fatal(err)
	}
	if addr != 3589363552 || val != 1721823442 {
		t.Fatalf("ParseCode = (%d, %d)", addr, val)
	}

	a2, v2, err := ParseCode("uqrner36m3rd5")
	if err != nil || a2 != addr || v2 != val {
		t.Fatalf("lower case without dashes = (%d, %d, %v)", a2, v2, err)
	}
}

func TestParseCodeErrors(t *testing.T) {
	cases := []struct {
		in   string
		want error
	}{
		{"UQRN-ER36-M3RD4", ErrParity},
		{"UQRN-ER36-M3RD", crypto.ErrMalformedInput},
		{"UQRN-ER36-M3RD55", crypto.ErrMalformedInput},
		{"UQRN-ER36-M3RDI", crypto.ErrMalformedInput},
	}
	for _, c := range cases {
		_, _, err := ParseCode(c.in)
		if !errors.Is(err, c.want) {
			t.Errorf("ParseCode(%q) err = %v, want %v", c.in, err, c.want)
		}
	}
	if _, _, err := ParseCode("UQRN-ER36-M3RD4"); !errors.Is(err, crypto.ErrMalformedInput) {
		t.Errorf("parity error does not wrap ErrMalformedInput")
	}
}

func TestParseCodesJoinsErrors(t *testing.T) {
	words, err := ParseCodes([]string{"PMGE-KJ9D-X4WRN", "bad", "QJNC-EWMH-UQ48H"})
	if err == nil {
		t.Fatal("expected an error")
	}
	if len(words) != 4 {
		t.Fatalf("got %d words, want 4 from the valid lines", len(words))
	}
}

func TestIsCode(t *testing.T) {
	cases := map[string]bool{
		"UQRN-ER36-M3RD5":  true,
		"uqrn-er36-m3rd5":  true,
		"UQRNER36M3RD5":    false,
		"UQRN-ER36-M3RD":   false,
		"UQRN ER36 M3RD5":  false,
		"UQRN-ER3!-M3RD5":  false,
		"014F06BC 00000000": false,
	}
	for in, want := range cases {
		if got := IsCode(in); got != want {
			t.Errorf("IsCode(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestFormatRaw(t *testing.T) {
	if got := FormatRaw(0x014F06BC, 0x7F); got != "014F06BC 0000007F" {
		t.Fatalf("FormatRaw = %q", got)
	}
}

func TestRegionString(t *testing.T) {
	want := map[Region]string{RegionUSA: "USA", RegionPAL: "PAL", RegionJapan: "Japan", RegionUnknown: "Unknown"}
	for r, s := range want {
		if r.String() != s {
			t.Errorf("Region(%d) = %q, want %q", r, r.String(), s)
		}
	}
}

func TestReadMetadata(t *testing.T) {
	// nibble 0xA | game 0x29E | cheat 0x6BC2 | enable 1 | unknown 0 | region 2
	w0 := uint32(0xA)<<28 | uint32(0x29E)<<15 | 0x6BC2>>4
	w1 := uint32(0x6BC2&0xF)<<28 | 1<<27 | 0<<26 | 2<<24
	m, err := ReadMetadata([]uint32{w0, w1})
	if err != nil {
		t.Fatal(err)
	}
	if m.GameID != 0x29E || m.CheatID != 0x6BC2 || !m.Enable || m.Region != RegionJapan {
		t.Fatalf("ReadMetadata = %+v", m)
	}

	if _, err := ReadMetadata([]uint32{w0}); !errors.Is(err, crypto.ErrMalformedInput) {
		t.Fatalf("single word err = %v", err)
	}
}

func TestVerifierLines(t *testing.T) {
	cases := []struct {
		name  string
		words []uint32
		want  int
	}{
		// terminator set immediately: one bit read
		{"empty verifier", []uint32{0, 0x00800000}, 1},
		// one 32-bit entry: 1+3+32+1 = 37 bits
		{"one wide entry", []uint32{0, 0x00700000, 0x00080000}, 2},
	}
	for _, c := range cases {
		got, err := VerifierLines(c.words)
		if err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		if got != c.want {
			t.Errorf("%s: VerifierLines = %d, want %d", c.name, got, c.want)
		}
	}

	if _, err := VerifierLines([]uint32{0, 0}); !errors.Is(err, crypto.ErrMalformedInput) {
		t.Fatalf("unterminated verifier err = %v", err)
	}
}

// verifierStream builds decrypted words whose verifier block holds one entry
// per selector. Payload bits are all set so only their width matters.
func verifierStream(t *testing.T, selectors ...int) []uint32 {
	t.Helper()
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	w.TryWriteBits(0, 32) // metadata word
	w.TryWriteBits(0, 8)
	for _, sel := range selectors {
		width := expansionWidths[sel]
		w.TryWriteBits(0, 1)
		w.TryWriteBits(uint64(sel), 3)
		w.TryWriteBits(1<<width-1, uint8(width))
	}
	w.TryWriteBits(1, 1)
	if err := w.Close(); err != nil || w.TryError != nil {
		t.Fatalf("building stream: %v %v", err, w.TryError)
	}

	raw := buf.Bytes()
	for len(raw)%4 != 0 {
		raw = append(raw, 0)
	}
	words := make([]uint32, len(raw)/4)
	for i := range words {
		words[i] = binary.BigEndian.Uint32(raw[4*i:])
	}
	return words
}

func TestVerifierLinesBoundaries(t *testing.T) {
	cases := []struct {
		name      string
		selectors []int
		bits      int
		want      int
	}{
		{"terminator only", nil, 1, 1},
		{"one bit short of the first line", []int{0, 5}, 23, 1},
		{"exactly the first line", []int{3}, 24, 2},
		{"one wide entry", []int{7}, 37, 2},
		{"three wide entries", []int{7, 7, 7}, 109, 3},
		{"one bit short of a full extra line", []int{7, 7, 7, 1, 1, 1}, 151, 3},
		{"full extra line", []int{7, 7, 7, 0, 0, 3}, 152, 4},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			sum := 1
			for _, sel := range c.selectors {
				sum += 4 + expansionWidths[sel]
			}
			if sum != c.bits {
				t.Fatalf("stream holds %d verifier bits, case expects %d", sum, c.bits)
			}

			got, err := VerifierLines(verifierStream(t, c.selectors...))
			if err != nil {
				t.Fatal(err)
			}
			if got != c.want {
				t.Errorf("VerifierLines over %d bits = %d, want %d", c.bits, got, c.want)
			}
		})
	}
}
