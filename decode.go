// SPDX-License-Identifier: EPL-2.0

package ncmdec

import (
	"github.com/ik5/ncmdec/format"
	"github.com/ik5/ncmdec/ncm"
)

// Result is a decoded NCM file.
type Result struct {
	// Audio is the recovered audio, ready to be written as is.
	Audio []byte
	// Format is the sniffed container of Audio.
	Format format.Format
	// Ext is the suggested output extension, "" when Format is Unknown.
	Ext string
	// Cover is the embedded cover image, nil when the file has none.
	Cover []byte
	// Meta is the unmasked meta block, nil when the file has none.
	Meta []byte
}

// Decode recovers the audio of an NCM file held in memory.
//
// This function runs the whole pipeline:
//  1. Splits the container into its blocks (ncm.Parse)
//  2. Unwraps the stream key from the key block (ncm.UnwrapKey)
//  3. Schedules the key box and XORs the payload with its keystream
//  4. Sniffs the recovered bytes for MP3, FLAC or M4A
//
// input is not modified and is not referenced by Audio or Meta. Cover is
// a sub-slice of input.
//
// Errors wrap the ncm sentinels (ncm.ErrInvalidMagic, ncm.ErrTruncated,
// ncm.ErrKeyUnwrapFailed, ncm.ErrKeyTooShort, ncm.ErrEmptyKey) and can be
// matched with errors.Is.
//
// Example:
//
//	data, _ := os.ReadFile("song.ncm")
//	res, err := ncmdec.Decode(data)
//	if err != nil {
//	    return err
//	}
//	out := "song.mp3"
//	if res.Ext != "" {
//	    out = "song" + res.Ext
//	}
//	os.WriteFile(out, res.Audio, 0o644)
func Decode(input []byte) (*Result, error) {
	c, err := ncm.Parse(input)
	if err != nil {
		return nil, err
	}

	key, err := ncm.UnwrapKey(c.Key)
	if err != nil {
		return nil, err
	}

	kb, err := ncm.NewKeyBox(key)
	if err != nil {
		return nil, err
	}

	audio := make([]byte, len(c.Audio))
	kb.Decrypt(audio, c.Audio)

	f := format.Sniff(audio)

	return &Result{
		Audio:  audio,
		Format: f,
		Ext:    f.Ext(),
		Cover:  c.Cover,
		Meta:   c.Meta,
	}, nil
}
