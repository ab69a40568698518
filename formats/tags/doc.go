// SPDX-License-Identifier: EPL-2.0

// Package tags reads the tags that recovered audio already carries.
//
// It uses github.com/dhowden/tag, which understands ID3v1/ID3v2 (MP3),
// Vorbis comments (FLAC) and MP4 atoms (M4A). The same Prober serves all
// three formats:
//
//	reg := format.NewRegistry()
//	for _, f := range []format.Format{format.MP3, format.FLAC, format.M4A} {
//	    reg.Register(f, tags.Prober{})
//	}
//
// The NCM meta block is a different thing and is not read here.
package tags
