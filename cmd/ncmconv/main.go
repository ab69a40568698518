// SPDX-License-Identifier: EPL-2.0

// Command ncmconv converts a directory of NCM files to playable audio.
//
// Usage:
//
//	ncmconv -i <input dir> [-o <output dir>] [-j workers] [-cover] [-meta] [-probe] [-report file.yaml] [-d]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ik5/ncmdec/format"
	"github.com/ik5/ncmdec/formats/mp3"
	"github.com/ik5/ncmdec/formats/tags"
	"github.com/ik5/ncmdec/internal/batch"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

const VERSION = "1.0.0"

const defaultOutput = "converted"

var errUsage = errors.New("usage error")

// config holds the parsed command line.
type config struct {
	input   string
	output  string
	workers int
	cover   bool
	meta    bool
	probe   bool
	report  string
	debug   bool
	version bool
}

func parseFlags(args []string, stderr io.Writer) (*config, error) {
	cfg := &config{}

	fs := flag.NewFlagSet("ncmconv", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.input, "i", "", "Input directory, searched recursively for .ncm files (required)")
	fs.StringVar(&cfg.output, "o", defaultOutput, "Output directory")
	fs.IntVar(&cfg.workers, "j", 1, "Number of files converted at once")
	fs.BoolVar(&cfg.cover, "cover", false, "Also save the embedded cover image")
	fs.BoolVar(&cfg.meta, "meta", false, "Also save the decrypted meta payload as <name>.json")
	fs.BoolVar(&cfg.probe, "probe", false, "Log sample rate, duration and tags of every recovered file")
	fs.StringVar(&cfg.report, "report", "", "Write a YAML report of the run to this file")
	fs.BoolVar(&cfg.debug, "d", false, "Debug mode")
	fs.BoolVar(&cfg.version, "version", false, "Display version information")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %w", errUsage, err)
	}
	if cfg.version {
		return cfg, nil
	}

	if cfg.input == "" {
		fs.Usage()
		return nil, fmt.Errorf("%w: input directory is required, use -i", errUsage)
	}
	if cfg.workers < 1 {
		return nil, fmt.Errorf("%w: -j must be at least 1, got %d", errUsage, cfg.workers)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected arguments %v", errUsage, fs.Args())
	}

	return cfg, nil
}

func newLogger(w io.Writer, debug bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)

	tty := false
	if f, ok := w.(*os.File); ok {
		tty = term.IsTerminal(int(f.Fd()))
	}
	log.SetFormatter(&logrus.TextFormatter{
		ForceColors:      tty,
		DisableColors:    !tty,
		DisableTimestamp: !debug,
		FullTimestamp:    debug,
	})

	if debug {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

// probers wires every prober this build knows about.
func probers() *format.Registry {
	reg := format.NewRegistry()
	reg.Register(format.MP3, mp3.Prober{})
	reg.Register(format.MP3, tags.Prober{})
	reg.Register(format.FLAC, tags.Prober{})
	reg.Register(format.M4A, tags.Prober{})
	return reg
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run is main without the process exit so it can be tested.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if cfg.version {
		fmt.Fprintf(stdout, "ncmconv version %s\n", VERSION)
		return 0
	}

	log := newLogger(stderr, cfg.debug)
	log.WithFields(logrus.Fields{
		"input":   cfg.input,
		"output":  cfg.output,
		"workers": cfg.workers,
	}).Debug("starting")

	opts := batch.Options{
		Workers:   cfg.workers,
		SaveCover: cfg.cover,
		SaveMeta:  cfg.meta,
		Logger:    log,
	}
	if cfg.probe {
		opts.Registry = probers()
	}

	summary, runErr := batch.New(opts).Run(ctx, cfg.input, cfg.output)
	if summary != nil && cfg.report != "" {
		if err := writeReport(cfg.report, summary); err != nil {
			log.WithError(err).Error("report not written")
			return 1
		}
		log.Infof("report written: %s", cfg.report)
	}

	if runErr != nil {
		log.Error(runErr)
		return 1
	}
	if summary.Total > 0 && summary.Success == 0 {
		log.Error("every file failed to convert")
		return 1
	}
	return 0
}

func writeReport(path string, summary *batch.Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}

	if err := summary.WriteYAML(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
