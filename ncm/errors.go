// SPDX-License-Identifier: EPL-2.0

package ncm

import "errors"

var (
	ErrInvalidMagic    = errors.New("not an NCM file")
	ErrTruncated       = errors.New("truncated NCM container")
	ErrKeyUnwrapFailed = errors.New("key block unwrap failed")
	ErrKeyTooShort     = errors.New("decrypted key shorter than prefix")
	ErrEmptyKey        = errors.New("empty stream key")
	ErrMetaInvalid     = errors.New("invalid meta block")
)
