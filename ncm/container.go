// SPDX-License-Identifier: EPL-2.0

package ncm

import (
	"encoding/binary"
	"fmt"
)

const (
	magicGap    = 2 // reserved bytes between the magic and the key block
	lengthSize  = 4
	checksumLen = 4
	reservedGap = 5
)

// Container holds the blocks of a parsed NCM file.
//
// Key and Meta are unmasked copies. Cover and Audio share memory with the
// buffer handed to Parse.
type Container struct {
	// Key is the AES encrypted key block with its XOR mask removed.
	Key []byte
	// Meta is the meta block with its XOR mask removed, nil when absent.
	Meta []byte
	// Checksum is stored by the encoder and never validated.
	Checksum uint32
	// Cover is the embedded cover image, nil when absent.
	Cover []byte
	// Audio is the encrypted audio payload.
	Audio []byte
}

// cursor walks the container front to back. pos never exceeds len(data).
type cursor struct {
	data []byte
	pos  int
}

func (c *cursor) remaining() int { return len(c.data) - c.pos }

func (c *cursor) skip(n int) {
	c.pos = min(c.pos+n, len(c.data))
}

func (c *cursor) length(field string) (uint32, error) {
	if c.remaining() < lengthSize {
		return 0, fmt.Errorf("%w: %s length field at offset %d", ErrTruncated, field, c.pos)
	}
	n := binary.LittleEndian.Uint32(c.data[c.pos:])
	c.pos += lengthSize
	return n, nil
}

func (c *cursor) within(n uint32) bool { return uint64(n) <= uint64(c.remaining()) }

// plausible reports whether an optional block of n bytes can be taken.
func (c *cursor) plausible(n uint32) bool { return n > 0 && c.within(n) }

// Parse splits an NCM file into its blocks.
//
// A wrong header fails with ErrInvalidMagic. A key block that does not fit in
// the buffer fails with ErrTruncated. Meta and cover blocks whose declared
// length is zero or larger than what remains are treated as absent and the
// cursor does not move past them.
func Parse(data []byte) (*Container, error) {
	if len(data) < len(Magic) || string(data[:len(Magic)]) != Magic {
		return nil, ErrInvalidMagic
	}

	c := &cursor{data: data, pos: len(Magic)}
	if c.remaining() < magicGap {
		return nil, fmt.Errorf("%w: missing header gap", ErrTruncated)
	}
	c.skip(magicGap)

	ct := &Container{}

	keyLen, err := c.length("key block")
	if err != nil {
		return nil, err
	}
	if !c.within(keyLen) {
		return nil, fmt.Errorf("%w: key block declares %d bytes, %d remain", ErrTruncated, keyLen, c.remaining())
	}
	ct.Key = unmask(data[c.pos:c.pos+int(keyLen)], KeyMask)
	c.skip(int(keyLen))

	metaLen, err := c.length("meta block")
	if err != nil {
		return nil, err
	}
	if c.plausible(metaLen) {
		ct.Meta = unmask(data[c.pos:c.pos+int(metaLen)], MetaMask)
		c.skip(int(metaLen))
	}

	if c.remaining() >= checksumLen {
		ct.Checksum = binary.LittleEndian.Uint32(data[c.pos:])
	}
	c.skip(checksumLen + reservedGap)

	coverLen, err := c.length("cover image")
	if err != nil {
		return nil, err
	}
	if c.plausible(coverLen) {
		ct.Cover = data[c.pos : c.pos+int(coverLen)]
		c.skip(int(coverLen))
	}

	ct.Audio = data[c.pos:]

	return ct, nil
}

func unmask(src []byte, mask byte) []byte {
	dst := make([]byte, len(src))
	for i, b := range src {
		dst[i] = b ^ mask
	}
	return dst
}
