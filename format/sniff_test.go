package format

import (
	"bytes"
	"testing"
)

func TestSniff(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"nil", nil, Unknown},
		{"three bytes ID3", []byte("ID3"), Unknown},
		{"ID3 tag", []byte{0x49, 0x44, 0x33, 0xFF}, MP3},
		{"frame sync", []byte{0xFF, 0xFB, 0x90, 0x64}, MP3},
		{"frame sync minimum bits", []byte{0xFF, 0xE0, 0x00, 0x00}, MP3},
		{"almost frame sync", []byte{0xFF, 0xD0, 0x00, 0x00}, Unknown},
		{"flac", []byte{0x66, 0x4C, 0x61, 0x43}, FLAC},
		{"flac wrong case", []byte("FLAC"), Unknown},
		{"m4a", []byte{0x00, 0x00, 0x00, 0x20, 0x66, 0x74, 0x79, 0x70}, M4A},
		{"m4a cut short", []byte{0x00, 0x00, 0x00, 0x20, 0x66, 0x74, 0x79}, Unknown},
		{"ogg", []byte("OggS\x00\x02"), Unknown},
		{"zeros", make([]byte, 16), Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Sniff(tt.data); got != tt.want {
				t.Errorf("Sniff(% x) = %v, want %v", tt.data, got, tt.want)
			}
		})
	}
}

func TestSniff_Deterministic(t *testing.T) {
	t.Parallel()

	data := []byte("\x00\x00\x00\x18ftypM4A ")
	first := Sniff(data)
	for range 100 {
		if got := Sniff(data); got != first {
			t.Fatalf("Sniff() = %v, first call returned %v", got, first)
		}
	}
}

func TestSniff_DoesNotReadPastSlice(t *testing.T) {
	t.Parallel()

	// "ftyp" sits beyond len but inside cap
	backing := []byte("\x00\x00\x00\x18ftyp")
	if got := Sniff(backing[:6]); got != Unknown {
		t.Errorf("Sniff() = %v, want Unknown", got)
	}
}

func TestReplaceExt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		f    Format
		want string
	}{
		{"out/song.mp3", FLAC, "out/song.flac"},
		{"out/song.MP3", M4A, "out/song.m4a"},
		{"out/song.Flac", MP3, "out/song.mp3"},
		{"out/song.m4a", MP3, "out/song.mp3"},
		{"out/song.mp3", MP3, "out/song.mp3"},
		{"out/song.mp3", Unknown, "out/song.mp3"},
		{"out/song.ogg", FLAC, "out/song.ogg"},
		{"out/song", FLAC, "out/song"},
		{"out/mp3", FLAC, "out/mp3"},
		{"", MP3, ""},
	}

	for _, tt := range tests {
		t.Run(tt.path+"->"+tt.f.String(), func(t *testing.T) {
			t.Parallel()

			if got := ReplaceExt(tt.path, tt.f); got != tt.want {
				t.Errorf("ReplaceExt(%q, %v) = %q, want %q", tt.path, tt.f, got, tt.want)
			}
		})
	}
}

func TestSniffImage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00}, ".jpg"},
		{"png", []byte("\x89PNG\r\n\x1a\n...."), ".png"},
		{"gif", []byte("GIF89a"), ""},
		{"short", []byte{0xFF, 0xD8}, ""},
		{"empty", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := SniffImage(tt.data); got != tt.want {
				t.Errorf("SniffImage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func BenchmarkSniff(b *testing.B) {
	data := append([]byte("fLaC"), bytes.Repeat([]byte{0}, 1024)...)

	for b.Loop() {
		Sniff(data)
	}
}
