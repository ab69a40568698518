// SPDX-License-Identifier: EPL-2.0

// Package batch converts every NCM file under a directory.
package batch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/ik5/ncmdec"
	"github.com/ik5/ncmdec/format"
	"github.com/ik5/ncmdec/ncm"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	inputExt      = ".ncm"
	defaultExt    = ".mp3"
	defaultCover  = ".jpg"
	metaExt       = ".json"
	writeFileMode = 0o644
	dirMode       = 0o755
)

// Options configures a Converter.
type Options struct {
	// Workers is the number of files decoded at once. Values below 1 mean 1.
	Workers int
	// SaveCover writes the embedded cover image next to the audio.
	SaveCover bool
	// SaveMeta writes the decrypted meta payload next to the audio.
	SaveMeta bool
	// Registry, when set, probes every recovered file and logs the result.
	Registry *format.Registry
	// Logger is an optional logger. If nil, logrus.New() is used.
	Logger *logrus.Logger
}

// Converter walks a directory and decodes the NCM files it finds.
type Converter struct {
	options Options
	log     *logrus.Logger
}

// New creates a Converter.
func New(options Options) *Converter {
	if options.Workers < 1 {
		options.Workers = 1
	}
	log := options.Logger
	if log == nil {
		log = logrus.New()
	}

	return &Converter{
		options: options,
		log:     log,
	}
}

// Run converts every .ncm file under inDir into outDir.
//
// Per-file failures are logged, counted and recorded in the summary; they
// never stop the run. The returned error covers only problems with the
// directories themselves, or ctx ending before all files were started.
func (c *Converter) Run(ctx context.Context, inDir, outDir string) (*Summary, error) {
	c.log.Infof("scanning: %s", inDir)

	info, err := os.Stat(inDir)
	if err != nil {
		return nil, fmt.Errorf("input directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input directory: %s is not a directory", inDir)
	}

	if err := os.MkdirAll(outDir, dirMode); err != nil {
		return nil, fmt.Errorf("output directory: %w", err)
	}

	files, err := FindFiles(inDir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", inDir, err)
	}

	summary := &Summary{Total: len(files), Results: make([]FileResult, len(files))}
	if len(files) == 0 {
		c.log.Info("no NCM files found")
		return summary, nil
	}
	c.log.Infof("found %d NCM files", len(files))

	var success, failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.options.Workers)

	for i, path := range files {
		// a file already started runs to completion; nothing new starts
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}

			c.log.Infof("[%d/%d] converting: %s", i+1, len(files), filepath.Base(path))

			res := c.ConvertFile(path, outDir)
			summary.Results[i] = res

			entry := c.log.WithField("file", filepath.Base(path))
			if res.Error != "" {
				failed.Add(1)
				entry.Errorf("  failed: %s", res.Error)
				return nil
			}

			success.Add(1)
			entry.WithField("format", res.Format).Infof("  ok: %s", filepath.Base(res.Output))
			return nil
		})
	}

	_ = g.Wait()

	summary.Success = int(success.Load())
	summary.Failed = int(failed.Load())
	summary.trim()

	c.log.Infof("conversion finished: success=%d failed=%d", summary.Success, summary.Failed)

	if err := ctx.Err(); err != nil {
		return summary, fmt.Errorf("conversion interrupted: %w", err)
	}
	return summary, nil
}

// ConvertFile decodes one NCM file into outDir.
func (c *Converter) ConvertFile(path, outDir string) FileResult {
	res := FileResult{Input: path}

	out, f, err := c.convert(path, outDir)
	res.Output = out
	res.Format = f
	if err != nil {
		c.log.WithError(err).Debugf("%s: conversion error chain", path)
		res.Error = err.Error()
	}

	return res
}

func (c *Converter) convert(path, outDir string) (string, format.Format, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", format.Unknown, fmt.Errorf("reading %s: %w", path, err)
	}

	dec, err := ncmdec.Decode(data)
	if err != nil {
		return "", format.Unknown, fmt.Errorf("decoding %s: %w", path, err)
	}

	stem := Stem(path)
	out := format.ReplaceExt(filepath.Join(outDir, stem+defaultExt), dec.Format)

	if err := os.WriteFile(out, dec.Audio, writeFileMode); err != nil {
		return "", dec.Format, fmt.Errorf("writing %s: %w", out, err)
	}

	if c.options.SaveCover && len(dec.Cover) > 0 {
		c.writeCover(filepath.Join(outDir, stem), dec.Cover)
	}

	if c.options.SaveMeta && len(dec.Meta) > 0 {
		c.writeMeta(filepath.Join(outDir, stem+metaExt), dec.Meta)
	}

	if c.options.Registry != nil {
		c.probe(out, dec)
	}

	return out, dec.Format, nil
}

// side artifacts never fail a conversion

func (c *Converter) writeCover(base string, cover []byte) {
	ext := format.SniffImage(cover)
	if ext == "" {
		ext = defaultCover
	}

	if err := os.WriteFile(base+ext, cover, writeFileMode); err != nil {
		c.log.WithError(err).Warnf("cover not saved: %s", base+ext)
	}
}

func (c *Converter) writeMeta(path string, meta []byte) {
	payload, err := ncm.UnwrapMeta(meta)
	if err != nil {
		c.log.WithError(err).Warnf("meta not saved: %s", path)
		return
	}

	if err := os.WriteFile(path, payload, writeFileMode); err != nil {
		c.log.WithError(err).Warnf("meta not saved: %s", path)
	}
}

func (c *Converter) probe(out string, dec *ncmdec.Result) {
	info, err := c.options.Registry.Probe(dec.Format, bytes.NewReader(dec.Audio))
	if err != nil {
		if !errors.Is(err, format.ErrNoProber) {
			c.log.WithError(err).Warnf("probe failed: %s", filepath.Base(out))
		}
		return
	}

	c.log.WithFields(logrus.Fields{
		"file":     filepath.Base(out),
		"rate":     info.SampleRate,
		"channels": info.Channels,
		"duration": info.Duration,
		"title":    info.Title,
		"artist":   info.Artist,
		"album":    info.Album,
	}).Info("  probed")
}

// FindFiles returns every regular file under root whose name ends in .ncm
// (any case), sorted.
func FindFiles(root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() && strings.EqualFold(filepath.Ext(path), inputExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// Stem returns the base name of path without a trailing .ncm (any case).
func Stem(path string) string {
	base := filepath.Base(path)
	if strings.EqualFold(filepath.Ext(base), inputExt) {
		return base[:len(base)-len(inputExt)]
	}
	return base
}
