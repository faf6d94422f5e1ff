package armax

import (
	"fmt"

	"armax-decoder/internal/bitstream"
)

// Region is the 2-bit region field of a cheat.
type Region uint8

const (
	RegionUSA Region = iota
	RegionPAL
	RegionJapan
	RegionUnknown
)

func (r Region) String() string {
	switch r {
	case RegionUSA:
		return "USA"
	case RegionPAL:
		return "PAL"
	case RegionJapan:
		return "Japan"
	default:
		return "Unknown"
	}
}

// Metadata is the header packed into the first decrypted words of a cheat.
type Metadata struct {
	GameID  uint32
	CheatID uint32
	Enable  bool
	Region  Region
}

// ReadMetadata extracts the cheat header. Reading starts at bit 4 of the
// first word; the top nibble is the CRC slot, which is not verified.
// The fields are contiguous, so the read order matters.
func ReadMetadata(words []uint32) (Metadata, error) {
	var m Metadata
	c := bitstream.New(words, 0, 4)

	fields := []struct {
		name  string
		width int
		set   func(uint32)
	}{
		{"game id", 13, func(v uint32) { m.GameID = v }},
		{"cheat id", 19, func(v uint32) { m.CheatID = v }},
		{"enable flag", 1, func(v uint32) { m.Enable = v == 1 }},
		{"unknown flag", 1, func(uint32) {}},
		{"region", 2, func(v uint32) { m.Region = Region(v) }},
	}
	for _, f := range fields {
		v, err := c.ReadBits(f.width)
		if err != nil {
			return Metadata{}, fmt.Errorf("armax: metadata %s: %w", f.name, err)
		}
		f.set(v)
	}
	return m, nil
}
