package cheatlist

import "armax-decoder/internal/armax"

// State tracks how far a cheat has been processed.
type State uint8

const (
	Unverified State = iota
	Parsed
	Decrypted
	Failed
)

func (s State) String() string {
	switch s {
	case Parsed:
		return "parsed"
	case Decrypted:
		return "decrypted"
	case Failed:
		return "failed"
	default:
		return "unverified"
	}
}

// DefaultName is given to a cheat whose block starts with a code line.
const DefaultName = "New Cheat"

// Cheat holds one cheat from a listing.
type Cheat struct {
	Name    string
	Comment string
	Codes   []uint32 // address/value words, encrypted until State is Decrypted
	GameID  uint32
	ID      uint32
	Enable  bool // the game's master code
	Region  armax.Region
	State   State

	// VerifierWords counts the leading decrypted words that are ARMAX verifier data.
	VerifierWords int

	Line int   // first line of the block, 1-based
	Err  error // first line that looked like a code but did not decode
}

// Game groups the cheats of one listing.
type Game struct {
	ID     uint32
	Name   string
	Region armax.Region
	Cheats []Cheat
}
