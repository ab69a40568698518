package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/ncmdec/format"
	"github.com/ik5/ncmdec/internal/ncmtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		want    *config
		wantErr bool
	}{
		{
			name: "defaults",
			args: []string{"-i", "in"},
			want: &config{input: "in", output: defaultOutput, workers: 1},
		},
		{
			name: "everything",
			args: []string{"-i", "in", "-o", "out", "-j", "4", "-cover", "-meta", "-probe", "-report", "r.yaml", "-d"},
			want: &config{input: "in", output: "out", workers: 4, cover: true, meta: true, probe: true, report: "r.yaml", debug: true},
		},
		{
			name: "version needs no input",
			args: []string{"-version"},
			want: &config{output: defaultOutput, workers: 1, version: true},
		},
		{name: "missing input", args: []string{"-o", "out"}, wantErr: true},
		{name: "zero workers", args: []string{"-i", "in", "-j", "0"}, wantErr: true},
		{name: "unknown flag", args: []string{"-i", "in", "-x"}, wantErr: true},
		{name: "stray argument", args: []string{"-i", "in", "extra"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var stderr bytes.Buffer
			got, err := parseFlags(tt.args, &stderr)
			if tt.wantErr {
				assert.True(t, errors.Is(err, errUsage), "err = %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRun_Version(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-version"}, &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Equal(t, "ncmconv version "+VERSION+"\n", stdout.String())
}

func TestRun_UsageError(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), nil, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "input directory is required")
}

func TestRun_ConvertsAndReports(t *testing.T) {
	t.Parallel()

	in, out := t.TempDir(), t.TempDir()
	report := filepath.Join(t.TempDir(), "report.yaml")

	audio := append([]byte("fLaC"), make([]byte, 64)...)
	require.NoError(t, os.WriteFile(filepath.Join(in, "song.ncm"), ncmtest.NewBuilder([]byte("k3y"), audio).Bytes(), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(in, "junk.ncm"), []byte("junk"), 0o644))

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-i", in, "-o", out, "-probe", "-report", report}, &stdout, &stderr)
	assert.Equal(t, 0, code, stderr.String())

	got, err := os.ReadFile(filepath.Join(out, "song.flac"))
	require.NoError(t, err)
	assert.Equal(t, audio, got)

	rep, err := os.ReadFile(report)
	require.NoError(t, err)
	assert.Contains(t, string(rep), "success: 1")
	assert.Contains(t, string(rep), "failed: 1")
	assert.Contains(t, stderr.String(), "conversion finished: success=1 failed=1")
}

func TestRun_AllFailed(t *testing.T) {
	t.Parallel()

	in := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(in, "junk.ncm"), []byte("junk"), 0o644))

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-i", in, "-o", t.TempDir()}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "every file failed to convert")
}

func TestRun_MissingInput(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-i", filepath.Join(t.TempDir(), "nope"), "-o", t.TempDir()}, &stdout, &stderr)

	assert.Equal(t, 1, code)
}

func TestProbers(t *testing.T) {
	t.Parallel()

	reg := probers()
	for f, want := range map[format.Format]int{format.MP3: 2, format.FLAC: 1, format.M4A: 1} {
		got, ok := reg.Get(f)
		assert.True(t, ok, f.String())
		assert.Len(t, got, want, f.String())
	}

	_, ok := reg.Get(format.Unknown)
	assert.False(t, ok)
}
