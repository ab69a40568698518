// SPDX-License-Identifier: EPL-2.0

package ncmdec_test

import (
	"errors"
	"fmt"

	"github.com/ik5/ncmdec"
	"github.com/ik5/ncmdec/format"
	"github.com/ik5/ncmdec/internal/ncmtest"
	"github.com/ik5/ncmdec/ncm"
)

// Example_basicUsage decodes an NCM file held in memory.
func Example_basicUsage() {
	// Build an NCM file around a tiny FLAC header for demonstration
	data := ncmtest.NewBuilder([]byte("123456"), []byte("fLaC\x00\x00\x00\x22")).Bytes()

	res, err := ncmdec.Decode(data)
	if err != nil {
		fmt.Printf("decode error: %v\n", err)
		return
	}

	fmt.Printf("Recovered %d bytes of %s, save as %s\n", len(res.Audio), res.Format, res.Ext)
	// Output: Recovered 8 bytes of flac, save as .flac
}

// Example_outputName picks the output file name the way the converter does:
// start from .mp3 and let the sniffed format replace it.
func Example_outputName() {
	data := ncmtest.NewBuilder([]byte("key"), []byte("\x00\x00\x00\x20ftypM4A ")).Bytes()

	res, _ := ncmdec.Decode(data)
	fmt.Println(format.ReplaceExt("Artist - Title.mp3", res.Format))
	// Output: Artist - Title.m4a
}

// Example_errors shows how to tell failures apart.
func Example_errors() {
	_, err := ncmdec.Decode([]byte("ID3 this is a plain mp3"))

	switch {
	case errors.Is(err, ncm.ErrInvalidMagic):
		fmt.Println("not an NCM file, skipping")
	case err != nil:
		fmt.Println("corrupted:", err)
	}
	// Output: not an NCM file, skipping
}
