// SPDX-License-Identifier: EPL-2.0

package ncm

import (
	"bytes"
	"crypto/aes"
	"encoding/base64"
	"fmt"
)

// UnwrapKey recovers the stream key from an unmasked key block.
//
// The block is AES-128-ECB with PKCS#7 padding under CoreKey. The first
// len(KeyPrefix) bytes of the plaintext are dropped.
func UnwrapKey(block []byte) ([]byte, error) {
	plain, err := decryptECB([]byte(CoreKey), block)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKeyUnwrapFailed, err)
	}

	if len(plain) < len(KeyPrefix) {
		return nil, fmt.Errorf("%w: got %d bytes", ErrKeyTooShort, len(plain))
	}

	return plain[len(KeyPrefix):], nil
}

// UnwrapMeta decrypts an unmasked meta block and returns its payload as is.
func UnwrapMeta(block []byte) ([]byte, error) {
	if !bytes.HasPrefix(block, []byte(MetaPrefix)) {
		return nil, fmt.Errorf("%w: missing %q prefix", ErrMetaInvalid, MetaPrefix)
	}

	enc := block[len(MetaPrefix):]
	raw := make([]byte, base64.StdEncoding.DecodedLen(len(enc)))
	n, err := base64.StdEncoding.Decode(raw, enc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMetaInvalid, err)
	}

	plain, err := decryptECB([]byte(MetaKey), raw[:n])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMetaInvalid, err)
	}

	if !bytes.HasPrefix(plain, []byte(MetaPayloadPrefix)) {
		return nil, fmt.Errorf("%w: missing %q payload prefix", ErrMetaInvalid, MetaPayloadPrefix)
	}

	return plain[len(MetaPayloadPrefix):], nil
}

func decryptECB(key, src []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	bs := block.BlockSize()
	if len(src) == 0 || len(src)%bs != 0 {
		return nil, fmt.Errorf("ciphertext length %d is not a positive multiple of %d", len(src), bs)
	}

	dst := make([]byte, len(src))
	for i := 0; i < len(src); i += bs {
		block.Decrypt(dst[i:i+bs], src[i:i+bs])
	}

	return unpad(dst, bs)
}

func unpad(src []byte, bs int) ([]byte, error) {
	n := int(src[len(src)-1])
	if n == 0 || n > bs {
		return nil, fmt.Errorf("invalid padding length %d", n)
	}

	for _, b := range src[len(src)-n:] {
		if int(b) != n {
			return nil, fmt.Errorf("invalid padding byte %#x", b)
		}
	}

	return src[:len(src)-n], nil
}
