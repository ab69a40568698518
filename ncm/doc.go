// SPDX-License-Identifier: EPL-2.0

// Package ncm reads the NCM encrypted audio container.
//
// An NCM file is laid out as:
//
//	"CTENFDAM"            8 bytes magic
//	gap                   2 bytes
//	key length            uint32 little endian
//	key block             XOR 0x64, AES-128-ECB under CoreKey
//	meta length           uint32 little endian
//	meta block            XOR 0x63, optional
//	checksum              4 bytes, not validated
//	gap                   5 bytes
//	cover length          uint32 little endian
//	cover image           verbatim, optional
//	audio                 everything that is left, keystream encrypted
//
// Decoding is three steps:
//
//	c, err := ncm.Parse(data)
//	key, err := ncm.UnwrapKey(c.Key)
//	kb, err := ncm.NewKeyBox(key)
//	audio := make([]byte, len(c.Audio))
//	kb.Decrypt(audio, c.Audio)
//
// All functions work on in-memory buffers and keep no state between calls,
// so separate files may be decoded in parallel.
//
// # Errors
//
// Every failure wraps one of the package sentinels and can be matched with
// errors.Is:
//   - ErrInvalidMagic: the header is not an NCM header
//   - ErrTruncated: a length field points past the end of the buffer
//   - ErrKeyUnwrapFailed: the key block does not decrypt under CoreKey
//   - ErrKeyTooShort: the decrypted key block is shorter than KeyPrefix
//   - ErrEmptyKey: the stream key is empty
//   - ErrMetaInvalid: the meta block does not decrypt under MetaKey
package ncm
