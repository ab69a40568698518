// SPDX-License-Identifier: EPL-2.0

package format

import (
	"io"
	"sync"
	"time"
)

// Format identifies a recovered audio container.
type Format int

const (
	Unknown Format = iota
	MP3
	FLAC
	M4A
)

var names = map[Format]string{
	Unknown: "unknown",
	MP3:     "mp3",
	FLAC:    "flac",
	M4A:     "m4a",
}

func (f Format) String() string {
	if n, ok := names[f]; ok {
		return n
	}
	return names[Unknown]
}

// Ext returns the file extension with its leading dot, or "" for Unknown.
func (f Format) Ext() string {
	n, ok := names[f]
	if !ok || f == Unknown {
		return ""
	}
	return "." + n
}

// MarshalText lets a Format appear by name in reports.
func (f Format) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

// Info describes recovered audio. Zero fields are unknown.
type Info struct {
	Format     Format
	SampleRate int
	Channels   int
	Duration   time.Duration
	Title      string
	Artist     string
	Album      string
}

// merge fills the zero fields of i from o.
func (i *Info) merge(o Info) {
	if i.Format == Unknown {
		i.Format = o.Format
	}
	if i.SampleRate == 0 {
		i.SampleRate = o.SampleRate
	}
	if i.Channels == 0 {
		i.Channels = o.Channels
	}
	if i.Duration == 0 {
		i.Duration = o.Duration
	}
	if i.Title == "" {
		i.Title = o.Title
	}
	if i.Artist == "" {
		i.Artist = o.Artist
	}
	if i.Album == "" {
		i.Album = o.Album
	}
}

// Prober inspects recovered audio without changing it.
type Prober interface {
	Probe(r io.ReadSeeker) (Info, error)
}

// Registry of probers by format.
type Registry struct {
	probers map[Format][]Prober

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		probers: make(map[Format][]Prober),
		mtx:     &sync.Mutex{},
	}
}

// Register adds p to the probers of f. Probers run in registration order.
func (r *Registry) Register(f Format, p Prober) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.probers[f] = append(r.probers[f], p)
}

func (r *Registry) Get(f Format) ([]Prober, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	p, ok := r.probers[f]
	return append([]Prober(nil), p...), ok
}

// Probe runs every prober registered for f over r and merges their results,
// earlier probers winning. It returns the first error only when no prober
// succeeded.
func (r *Registry) Probe(f Format, rs io.ReadSeeker) (Info, error) {
	probers, ok := r.Get(f)
	if !ok {
		return Info{Format: f}, ErrNoProber
	}

	info := Info{Format: f}
	var firstErr error
	succeeded := false

	for _, p := range probers {
		if _, err := rs.Seek(0, io.SeekStart); err != nil {
			return info, err
		}

		got, err := p.Probe(rs)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		succeeded = true
		info.merge(got)
	}

	if !succeeded {
		return info, firstErr
	}
	return info, nil
}
