package crypto

import (
	"errors"
	"testing"
)

func TestAR2Seeds(t *testing.T) {
	if got := DefaultAR2Seeds(); got != (AR2Seeds{4, 3, 2, 9}) {
		t.Fatalf("DefaultAR2Seeds = %v, want [4 3 2 9]", got)
	}
	if got := RegenerateAR2Seeds(0x07040001); got != (AR2Seeds{7, 4, 0, 1}) {
		t.Fatalf("RegenerateAR2Seeds(07040001) = %v", got)
	}
}

func TestDecryptAR2CodeModes(t *testing.T) {
	const in = 0x12345678
	cases := []struct {
		control, seed byte
		want          uint32
	}{
		{0, 5, 0x92FDB6B2},
		{1, 5, 0xA1A3AF4E},
		{2, 5, 0x92FD3642},
		{3, 5, 0x48548DF8},
		{4, 5, 0x12C86878},
		{5, 5, 0xC99D6C32},
		{6, 5, 0x92B1403E},
		{0, 3, 0x7B4F1337},
	}
	for _, c := range cases {
		got, err := DecryptAR2Code(in, c.control, c.seed)
		if err != nil {
			t.Fatalf("mode %d: %v", c.control, err)
		}
		if got != c.want {
			t.Errorf("mode %d seed %d = %08X, want %08X", c.control, c.seed, got, c.want)
		}
	}
}

func TestDecryptAR2CodeMetaMode(t *testing.T) {
	words := []uint32{0x00000000, 0x12345678, 0xFFFFFFFF, 0xC411F668}
	for _, w := range words {
		for seed := byte(0); seed < 32; seed++ {
			got, err := DecryptAR2Code(w, 7, seed)
			if err != nil {
				t.Fatal(err)
			}
			if seed&1 == 0 {
				if got != ^w {
					t.Errorf("mode 7 even seed %d on %08X = %08X, want complement", seed, w, got)
				}
				continue
			}
			want, _ := DecryptAR2Code(w, 1, seed)
			if got != want {
				t.Errorf("mode 7 odd seed %d on %08X = %08X, want mode 1 result %08X", seed, w, got, want)
			}
		}
	}
}

func TestDecryptAR2CodeUnsupported(t *testing.T) {
	for _, control := range []byte{8, 9, 0x80, 0xFF} {
		_, err := DecryptAR2Code(0x12345678, control, 0)
		if !errors.Is(err, ErrUnsupportedMode) {
			t.Errorf("control %d: err = %v, want ErrUnsupportedMode", control, err)
		}
	}
	if AR2Mode(8).Valid() || !AR2ModeMeta.Valid() {
		t.Fatal("AR2Mode.Valid boundaries wrong")
	}
}

func TestDecryptAR2Cheat(t *testing.T) {
	// AR2 layer of the Kingdom Hearts enable code, after ARMAX and byte swapping.
	in := []uint32{0x328D0066, 0xBCA9A383, 0xCA8FFE0A, 0xBCA99B84, 0x32FEFEFE, 0xBCAAA384}
	want := []uint32{0xC411F668, 0x00000800, 0x0C0F0094, 0x00000001, 0xC4000000, 0x00010801}

	got, err := DecryptAR2Cheat(in, DefaultAR2Seeds())
	if err != nil {
		t.Fatal(err)
	}
	assertWords(t, got, want)
}

// Pair 1 decrypts to AR2Resync with key 07040001: address control 7, seed 4
// (complement) and value control 0, seed 1.
var resyncStream = []uint32{0xDE8EFEFE, 0xBCA99B82, 0x1C1104CC, 0xC3AD9B84, 0xDFEDCBA9, 0x1FAE1CDA}

func TestDecryptAR2CheatResync(t *testing.T) {
	seeds := DefaultAR2Seeds()
	got, err := DecryptAR2Cheat(resyncStream, seeds)
	if err != nil {
		t.Fatal(err)
	}
	assertWords(t, got, []uint32{0x20100000, 0x000000FF, 0x20123456, 0x0000FFFF})

	if seeds != DefaultAR2Seeds() {
		t.Fatalf("caller seeds changed to %v", seeds)
	}

	// Without the re-key the trailing address would decode differently.
	stale, _ := DecryptAR2Code(resyncStream[4], seeds[0], seeds[1])
	if stale == 0x20123456 {
		t.Fatal("trailing address decodes the same under the old seeds")
	}
}

func TestDecryptAR2CheatResyncAtEnd(t *testing.T) {
	got, err := DecryptAR2Cheat(resyncStream[:4], DefaultAR2Seeds())
	if err != nil {
		t.Fatal(err)
	}
	assertWords(t, got, []uint32{0x20100000, 0x000000FF})
}

func TestDecryptAR2CheatErrors(t *testing.T) {
	_, err := DecryptAR2Cheat([]uint32{1, 2, 3}, DefaultAR2Seeds())
	if !errors.Is(err, ErrMalformedInput) {
		t.Fatalf("odd stream: err = %v, want ErrMalformedInput", err)
	}

	_, err = DecryptAR2Cheat([]uint32{1, 2}, AR2Seeds{9, 0, 0, 0})
	if !errors.Is(err, ErrUnsupportedMode) {
		t.Fatalf("bad control: err = %v, want ErrUnsupportedMode", err)
	}

	got, err := DecryptAR2Cheat(nil, DefaultAR2Seeds())
	if err != nil || len(got) != 0 {
		t.Fatalf("empty stream = %v, %v", got, err)
	}
}

func assertWords(t *testing.T, got, want []uint32) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d words %08X, want %d words %08X", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("word %d = %08X, want %08X", i, got[i], want[i])
		}
	}
}
