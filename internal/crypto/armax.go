package crypto

import "math/bits"

// ARMAXTrace records every intermediate state of one ARMAX pair decryption.
// Each field holds (address, value) as it leaves that stage.
type ARMAXTrace struct {
	Input       [2]uint32
	Swapped     [2]uint32
	Unscrambled [2]uint32
	Rounds      [2]uint32
	Rescrambled [2]uint32
	Output      [2]uint32
}

// DecryptARMAXPair decrypts one ARMAX address/value pair.
func DecryptARMAXPair(addr, val uint32, sched *ARMAXSchedule) (uint32, uint32) {
	t := TraceARMAXPair(addr, val, sched)
	return t.Output[0], t.Output[1]
}

// TraceARMAXPair decrypts one pair and keeps the state after every stage.
func TraceARMAXPair(addr, val uint32, sched *ARMAXSchedule) ARMAXTrace {
	t := ARMAXTrace{Input: [2]uint32{addr, val}}

	addr = bits.ReverseBytes32(addr)
	val = bits.ReverseBytes32(val)
	t.Swapped = [2]uint32{addr, val}

	addr, val = unscramble1(addr, val)
	t.Unscrambled = [2]uint32{addr, val}

	addr, val = armaxRounds(addr, val, sched)
	t.Rounds = [2]uint32{addr, val}

	addr, val = unscramble2(addr, val)
	t.Rescrambled = [2]uint32{addr, val}

	// The halves come out in swapped roles.
	t.Output = [2]uint32{bits.ReverseBytes32(val), bits.ReverseBytes32(addr)}
	return t
}

func armaxRounds(addr, val uint32, sched *ARMAXSchedule) (uint32, uint32) {
	for i := 0; i < len(sched); i += 4 {
		addr ^= octetMask(bits.RotateLeft32(val, -4)^sched[i], val^sched[i+1])
		val ^= octetMask(bits.RotateLeft32(addr, -4)^sched[i+2], addr^sched[i+3])
	}
	return addr, val
}

// octetMask is the round function. Only the low six bits of each byte index a table.
func octetMask(a, b uint32) uint32 {
	return armaxSP6[a&0x3F] ^ armaxSP4[(a>>8)&0x3F] ^
		armaxSP2[(a>>16)&0x3F] ^ armaxSP0[(a>>24)&0x3F] ^
		armaxSP7[b&0x3F] ^ armaxSP5[(b>>8)&0x3F] ^
		armaxSP3[(b>>16)&0x3F] ^ armaxSP1[(b>>24)&0x3F]
}

// unscramble1 is a delta-swap network permuting all 64 bits of the pair.
func unscramble1(addr, val uint32) (uint32, uint32) {
	val = bits.RotateLeft32(val, 4)

	tmp := (addr ^ val) & 0xF0F0F0F0
	addr ^= tmp
	val = bits.RotateLeft32(val^tmp, -20)

	tmp = (addr ^ val) & 0xFFFF0000
	addr ^= tmp
	val = bits.RotateLeft32(val^tmp, -18)

	tmp = (addr ^ val) & 0x33333333
	addr ^= tmp
	val = bits.RotateLeft32(val^tmp, -6)

	tmp = (addr ^ val) & 0x00FF00FF
	addr ^= tmp
	val = bits.RotateLeft32(val^tmp, 9)

	tmp = (addr ^ val) & 0xAAAAAAAA
	addr = bits.RotateLeft32(addr^tmp, 1)
	val ^= tmp

	return addr, val
}

// unscramble2 undoes unscramble1 with the halves' roles exchanged.
func unscramble2(addr, val uint32) (uint32, uint32) {
	val = bits.RotateLeft32(val, -1)

	tmp := (addr ^ val) & 0xAAAAAAAA
	val ^= tmp
	addr = bits.RotateLeft32(addr^tmp, -9)

	tmp = (addr ^ val) & 0x00FF00FF
	val ^= tmp
	addr = bits.RotateLeft32(addr^tmp, 6)

	tmp = (addr ^ val) & 0x33333333
	val ^= tmp
	addr = bits.RotateLeft32(addr^tmp, 18)

	tmp = (addr ^ val) & 0xFFFF0000
	val ^= tmp
	addr = bits.RotateLeft32(addr^tmp, 20)

	tmp = (addr ^ val) & 0xF0F0F0F0
	val ^= tmp
	addr = bits.RotateLeft32(addr^tmp, -4)

	return addr, val
}
