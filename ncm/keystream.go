// SPDX-License-Identifier: EPL-2.0

package ncm

import "crypto/cipher"

// KeyBox is the 256-entry permutation scheduled from a stream key.
//
// It is read-only after NewKeyBox returns, so one box may serve any number
// of goroutines.
type KeyBox struct {
	box [256]byte
}

// NewKeyBox runs the key schedule over key.
func NewKeyBox(key []byte) (*KeyBox, error) {
	if len(key) == 0 {
		return nil, ErrEmptyKey
	}

	kb := &KeyBox{}
	for i := range kb.box {
		kb.box[i] = byte(i)
	}

	var j byte
	for i := range kb.box {
		j += kb.box[i] + key[i%len(key)]
		kb.box[i], kb.box[j] = kb.box[j], kb.box[i]
	}

	return kb, nil
}

// at returns the keystream byte for a 1-based payload position.
// Unlike RC4 the box is not permuted while generating output.
func (kb *KeyBox) at(pos int) byte {
	j := byte(pos)
	k := kb.box[j] + kb.box[kb.box[j]+j]
	return kb.box[k]
}

// Decrypt XORs src with the keystream from the start of the payload into dst.
// dst and src may overlap entirely. Encryption is the same operation.
func (kb *KeyBox) Decrypt(dst, src []byte) {
	kb.xor(dst, src, 0)
}

func (kb *KeyBox) xor(dst, src []byte, offset int) {
	if len(dst) < len(src) {
		panic("ncm: output smaller than input")
	}
	for i, b := range src {
		dst[i] = b ^ kb.at(offset+i+1)
	}
}

// Stream returns a cipher.Stream positioned at byte offset of the payload.
func (kb *KeyBox) Stream(offset int64) cipher.Stream {
	return &stream{kb: kb, offset: int(offset & 0xff)}
}

type stream struct {
	kb     *KeyBox
	offset int
}

func (s *stream) XORKeyStream(dst, src []byte) {
	s.kb.xor(dst, src, s.offset)
	s.offset = (s.offset + len(src)) & 0xff
}
