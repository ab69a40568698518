// SPDX-License-Identifier: EPL-2.0

// Package mp3 probes MP3 audio recovered from an NCM container.
//
// This package uses github.com/hajimehoshi/go-mp3 to read the frame headers
// and report the sample rate and the playing time of the stream:
//
//	reg := format.NewRegistry()
//	reg.Register(format.MP3, mp3.Prober{})
//
//	info, err := reg.Probe(format.MP3, bytes.NewReader(audio))
//	if err != nil {
//	    // the payload sniffed as MP3 but go-mp3 could not read it
//	}
//	fmt.Println(info.SampleRate, info.Duration)
//
// # Output
//
// go-mp3 always decodes to 16-bit stereo, so Channels is reported as 2 and
// the duration is derived from the decoded PCM length. The reader must be
// seekable for the length to be known; otherwise Duration stays zero.
//
// # Limitations
//
// Only MPEG-1/2 Layer III streams are understood. Probing reads the whole
// stream once to count frames; the audio itself is never modified.
package mp3
