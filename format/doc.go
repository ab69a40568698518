// SPDX-License-Identifier: EPL-2.0

// Package format classifies audio recovered from an NCM container.
//
// # Sniffing
//
// Sniff looks at the first bytes only and never reads past the slice:
//
//	f := format.Sniff(audio)   // format.MP3, format.FLAC, format.M4A or format.Unknown
//	out := format.ReplaceExt("song.mp3", f)
//
// ReplaceExt rewrites only the three known suffixes, so a caller can
// pre-set a default extension such as .mp3 and keep
// it when the format cannot be determined.
//
// # Probing
//
// A Registry maps formats to Probers. Each prober reports what it can about
// the audio (sample rate, duration, embedded tags) and Probe merges them:
//
//	reg := format.NewRegistry()
//	reg.Register(format.MP3, mp3.Prober{})
//	reg.Register(format.MP3, tags.Prober{})
//	info, err := reg.Probe(format.MP3, bytes.NewReader(audio))
//
// Probing is informational: it never changes the audio.
package format
