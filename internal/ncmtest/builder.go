// SPDX-License-Identifier: EPL-2.0

// Package ncmtest builds NCM containers for tests.
//
// It carries its own encoder and does not import the ncm package, so the
// decoder is always checked against an independent implementation.
package ncmtest

import (
	"bytes"
	"crypto/aes"
	"encoding/base64"
	"encoding/binary"
)

const (
	magic      = "CTENFDAM"
	coreKey    = "hzHRAmso5kInbaxW"
	metaKey    = "#14ljk_!\\]&0U<'("
	keyPrefix  = "neteasecloudmusic"
	metaPrefix = "163 key(Don't modify):"
	keyMask    = 0x64
	metaMask   = 0x63
)

// Builder assembles an NCM file. The zero value is not usable; call NewBuilder.
type Builder struct {
	magic    string
	keyBlock []byte
	key      []byte
	meta     []byte
	metaLen  *uint32
	checksum uint32
	cover    []byte
	coverLen *uint32
	audio    []byte
	tail     []byte
}

// NewBuilder returns a builder that encrypts audio under streamKey.
func NewBuilder(streamKey, audio []byte) *Builder {
	return &Builder{
		magic:    magic,
		key:      streamKey,
		keyBlock: EncryptKey(streamKey),
		audio:    audio,
	}
}

// Magic replaces the header bytes.
func (b *Builder) Magic(m string) *Builder { b.magic = m; return b }

// KeyBlock replaces the encrypted key block (before masking).
func (b *Builder) KeyBlock(block []byte) *Builder { b.keyBlock = block; return b }

// Meta sets the meta block (before masking). Use EncryptMeta for a real one.
func (b *Builder) Meta(block []byte) *Builder { b.meta = block; return b }

// MetaLength overrides the declared meta length.
func (b *Builder) MetaLength(n uint32) *Builder { b.metaLen = &n; return b }

// Checksum sets the unvalidated checksum field.
func (b *Builder) Checksum(c uint32) *Builder { b.checksum = c; return b }

// Cover sets the cover image.
func (b *Builder) Cover(img []byte) *Builder { b.cover = img; return b }

// CoverLength overrides the declared cover length.
func (b *Builder) CoverLength(n uint32) *Builder { b.coverLen = &n; return b }

// RawAudio appends bytes after the encrypted audio without encrypting them.
func (b *Builder) RawAudio(tail []byte) *Builder { b.tail = tail; return b }

// Bytes renders the container.
func (b *Builder) Bytes() []byte {
	var buf bytes.Buffer

	buf.WriteString(b.magic)
	buf.Write([]byte{0x01, 0x70}) // gap

	writeLen(&buf, uint32(len(b.keyBlock)))
	buf.Write(mask(b.keyBlock, keyMask))

	metaLen := uint32(len(b.meta))
	if b.metaLen != nil {
		metaLen = *b.metaLen
	}
	writeLen(&buf, metaLen)
	buf.Write(mask(b.meta, metaMask))

	writeLen(&buf, b.checksum)
	buf.Write(make([]byte, 5))

	coverLen := uint32(len(b.cover))
	if b.coverLen != nil {
		coverLen = *b.coverLen
	}
	writeLen(&buf, coverLen)
	buf.Write(b.cover)

	buf.Write(EncryptAudio(b.key, b.audio))
	buf.Write(b.tail)

	return buf.Bytes()
}

// EncryptKey produces the key block (before masking) for streamKey.
func EncryptKey(streamKey []byte) []byte {
	return encryptECB([]byte(coreKey), append([]byte(keyPrefix), streamKey...))
}

// EncryptMeta produces a meta block (before masking) carrying payload.
func EncryptMeta(payload []byte) []byte {
	enc := encryptECB([]byte(metaKey), append([]byte("music:"), payload...))
	return append([]byte(metaPrefix), base64.StdEncoding.EncodeToString(enc)...)
}

// EncryptAudio applies the audio keystream of streamKey to plain.
// With an empty key the audio is returned unchanged.
func EncryptAudio(streamKey, plain []byte) []byte {
	out := make([]byte, len(plain))
	if len(streamKey) == 0 {
		copy(out, plain)
		return out
	}

	box := make([]int, 256)
	for i := range box {
		box[i] = i
	}
	j := 0
	for i := range 256 {
		j = (j + box[i] + int(streamKey[i%len(streamKey)])) & 0xff
		box[i], box[j] = box[j], box[i]
	}

	for i := 1; i <= len(plain); i++ {
		j := i & 0xff
		k := (box[j] + box[(box[j]+j)&0xff]) & 0xff
		out[i-1] = plain[i-1] ^ byte(box[k])
	}
	return out
}

func encryptECB(key, plain []byte) []byte {
	block, err := aes.NewCipher(key)
	if err != nil {
		panic(err)
	}

	bs := block.BlockSize()
	pad := bs - len(plain)%bs
	src := append(append([]byte{}, plain...), bytes.Repeat([]byte{byte(pad)}, pad)...)

	dst := make([]byte, len(src))
	for i := 0; i < len(src); i += bs {
		block.Encrypt(dst[i:i+bs], src[i:i+bs])
	}
	return dst
}

func writeLen(buf *bytes.Buffer, n uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], n)
	buf.Write(b[:])
}

func mask(src []byte, m byte) []byte {
	dst := make([]byte, len(src))
	for i, v := range src {
		dst[i] = v ^ m
	}
	return dst
}
