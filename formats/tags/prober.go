// SPDX-License-Identifier: EPL-2.0

package tags

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhowden/tag"
	"github.com/ik5/ncmdec/format"
)

var fileTypes = map[tag.FileType]format.Format{
	tag.MP3:  format.MP3,
	tag.FLAC: format.FLAC,
	tag.M4A:  format.M4A,
	tag.M4B:  format.M4A,
	tag.M4P:  format.M4A,
	tag.ALAC: format.M4A,
}

// Prober reports the title, artist and album already embedded in the audio:
// ID3 frames for MP3, Vorbis comments for FLAC and iTunes atoms for M4A.
type Prober struct{}

func (Prober) Probe(r io.ReadSeeker) (format.Info, error) {
	m, err := tag.ReadFrom(r)
	if err != nil {
		return format.Info{}, fmt.Errorf("%w: %w", ErrNoTags, err)
	}

	return format.Info{
		Format: fileTypes[m.FileType()],
		Title:  strings.TrimSpace(m.Title()),
		Artist: strings.TrimSpace(m.Artist()),
		Album:  strings.TrimSpace(m.Album()),
	}, nil
}
