// SPDX-License-Identifier: EPL-2.0

package format

import (
	"bytes"
	"strings"
)

// Sniff classifies decrypted audio by its leading bytes.
//
//   - MP3: "ID3" tag, or an MPEG frame sync (0xFF then three set bits)
//   - FLAC: "fLaC"
//   - M4A: "ftyp" at offset 4
//
// Anything shorter than 4 bytes is Unknown.
func Sniff(data []byte) Format {
	if len(data) < 4 {
		return Unknown
	}

	switch {
	case bytes.HasPrefix(data, []byte("ID3")), data[0] == 0xFF && data[1]&0xE0 == 0xE0:
		return MP3
	case bytes.HasPrefix(data, []byte("fLaC")):
		return FLAC
	case len(data) >= 8 && bytes.Equal(data[4:8], []byte("ftyp")):
		return M4A
	}

	return Unknown
}

// ReplaceExt swaps a trailing .mp3, .flac or .m4a (any case) in path for the
// extension of f. Unknown formats and paths without one of those suffixes
// are returned unchanged.
func ReplaceExt(path string, f Format) string {
	if f == Unknown {
		return path
	}

	lower := strings.ToLower(path)
	for _, known := range []Format{MP3, FLAC, M4A} {
		if strings.HasSuffix(lower, known.Ext()) {
			return path[:len(path)-len(known.Ext())] + f.Ext()
		}
	}

	return path
}

// SniffImage returns the extension of an embedded cover image, or "".
func SniffImage(data []byte) string {
	switch {
	case bytes.HasPrefix(data, []byte{0xFF, 0xD8, 0xFF}):
		return ".jpg"
	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return ".png"
	}
	return ""
}
