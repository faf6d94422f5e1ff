// Package bitstream reads bit fields out of decrypted code words.
//
// Words are addressed most significant bit first: bit 31 of words[0] is the
// first bit of the stream. Metadata and verifier layouts depend on this order.
package bitstream

import (
	"fmt"

	"armax-decoder/internal/crypto"
)

// ErrOutOfRange is returned when a read runs past the last word.
var ErrOutOfRange = fmt.Errorf("bit read past end of words: %w", crypto.ErrMalformedInput)

// Cursor is a sequential reader over a word slice it does not own.
type Cursor struct {
	words    []uint32
	index    int // current word
	offset   int // next bit within the current word, 0 = MSB
	consumed int
}

// New starts a cursor at the given word index and bit offset.
// Offsets past 31 carry into the following words and negative offsets borrow
// from the preceding ones. A position before the first word fails on read.
func New(words []uint32, wordIndex, bitOffset int) *Cursor {
	index, offset := wordIndex+bitOffset/32, bitOffset%32
	if offset < 0 {
		index--
		offset += 32
	}
	return &Cursor{words: words, index: index, offset: offset}
}

// Pos returns the current word index and bit offset.
func (c *Cursor) Pos() (wordIndex, bitOffset int) {
	return c.index, c.offset
}

// Consumed returns the number of bits read so far.
func (c *Cursor) Consumed() int {
	return c.consumed
}

// ReadBits reads n (0..32) bits and returns them right-aligned.
func (c *Cursor) ReadBits(n int) (uint32, error) {
	if n < 0 || n > 32 {
		return 0, fmt.Errorf("bitstream: read of %d bits: %w", n, crypto.ErrMalformedInput)
	}

	var out uint32
	for i := 0; i < n; i++ {
		if c.offset > 31 {
			c.offset = 0
			c.index++
		}
		word, err := c.WordAt(c.index * 4)
		if err != nil {
			return 0, fmt.Errorf("bitstream: reading %d bits at word %d bit %d: %w", n, c.index, c.offset, err)
		}
		out = out<<1 | (word>>(31-c.offset))&1
		c.offset++
		c.consumed++
	}
	return out, nil
}

// WordAt returns the 32 bits starting at byteOffset in the big-endian byte
// view of the words. Unaligned offsets join the tail of one word with the
// head of the next.
func (c *Cursor) WordAt(byteOffset int) (uint32, error) {
	if byteOffset < 0 {
		return 0, ErrOutOfRange
	}
	index, rem := byteOffset/4, byteOffset%4
	if index >= len(c.words) {
		return 0, ErrOutOfRange
	}
	if rem == 0 {
		return c.words[index], nil
	}
	if index+1 >= len(c.words) {
		return 0, ErrOutOfRange
	}
	shift := uint(rem * 8)
	return c.words[index]<<shift | c.words[index+1]>>(32-shift), nil
}
