// SPDX-License-Identifier: EPL-2.0

// Package ncmdec recovers playable audio from NCM encrypted containers.
//
// An NCM file wraps an MP3, FLAC or M4A stream. The stream is XORed with a
// keystream derived from a per-file key, and that key is stored AES
// encrypted under a key compiled into every player. This package undoes
// both layers and tells the caller which container came out.
//
// # Quick Start
//
// The simplest way to decode a file is Decode:
//
//	data, _ := os.ReadFile("song.ncm")
//	res, err := ncmdec.Decode(data)
//	if err != nil {
//	    // errors.Is(err, ncm.ErrInvalidMagic) and friends
//	}
//	os.WriteFile("song"+res.Ext, res.Audio, 0o644)
//
// Decode never touches the filesystem. Reading the input and writing the
// output are left to the caller.
//
// # Packages
//
// For more control, the steps are available separately:
//   - ncm: container parsing, key unwrap, keystream
//   - format: sniffing, extension rewrite, prober registry
//   - formats/mp3: sample rate and duration of MP3 output via go-mp3
//   - formats/tags: tags embedded in the output via dhowden/tag
//
// # Batch Conversion
//
// The ncmconv command converts every .ncm file under a directory:
//
//	ncmconv -i ~/Music/ncm -o ~/Music/converted -j 4 -cover
//
// # Concurrency
//
// Decode keeps no state between calls. Separate files may be decoded from
// separate goroutines without synchronisation.
package ncmdec
