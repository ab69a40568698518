// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"fmt"
	"io"
	"time"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/ncmdec/format"
)

// go-mp3 decodes to 16-bit little-endian PCM, always stereo.
const (
	channels      = 2
	bytesPerFrame = 2 * channels
)

// mp3Reader is the part of gomp3.Decoder the prober uses, to allow testing
type mp3Reader interface {
	SampleRate() int
	Length() int64
}

// Prober reports stream properties of recovered MP3 audio.
type Prober struct{}

func (Prober) Probe(r io.ReadSeeker) (format.Info, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return format.Info{}, fmt.Errorf("%w: %w", ErrNotMP3, err)
	}

	return info(dec), nil
}

func info(dec mp3Reader) format.Info {
	in := format.Info{
		Format:     format.MP3,
		SampleRate: dec.SampleRate(),
		Channels:   channels,
	}

	// Length is -1 when the source cannot seek
	if n := dec.Length(); n > 0 && in.SampleRate > 0 {
		frames := n / bytesPerFrame
		in.Duration = time.Duration(frames) * time.Second / time.Duration(in.SampleRate)
	}

	return in
}
