package batch

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ik5/ncmdec/format"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

func TestSummary_WriteYAML(t *testing.T) {
	t.Parallel()

	s := &Summary{
		Total:   2,
		Success: 1,
		Failed:  1,
		Results: []FileResult{
			{Input: "in/a.ncm", Output: "out/a.flac", Format: format.FLAC},
			{Input: "in/b.ncm", Error: "decoding in/b.ncm: not an NCM file"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, s.WriteYAML(&buf))

	out := buf.String()
	assert.Contains(t, out, "total: 2\n")
	assert.Contains(t, out, "failed: 1\n")
	assert.Contains(t, out, "format: flac\n")
	assert.Contains(t, out, "format: unknown\n")
	assert.Contains(t, out, "not an NCM file")

	var back struct {
		Total   int `yaml:"total"`
		Results []struct {
			Input  string `yaml:"input"`
			Output string `yaml:"output"`
			Format string `yaml:"format"`
		} `yaml:"results"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, 2, back.Total)
	require.Len(t, back.Results, 2)
	assert.Equal(t, "out/a.flac", back.Results[0].Output)
	assert.Equal(t, "flac", back.Results[0].Format)
	assert.Empty(t, back.Results[1].Output)
}

func TestSummary_WriteYAMLEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, (&Summary{}).WriteYAML(&buf))
	assert.Equal(t, "total: 0\nsuccess: 0\nfailed: 0\n", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestSummary_WriteYAMLWriterError(t *testing.T) {
	t.Parallel()

	err := (&Summary{}).WriteYAML(failingWriter{})
	assert.ErrorContains(t, err, "writing report: disk full")
}

func TestSummary_Trim(t *testing.T) {
	t.Parallel()

	s := &Summary{Results: []FileResult{{Input: "a"}, {}, {Input: "c"}, {}}}
	s.trim()

	assert.Equal(t, []FileResult{{Input: "a"}, {Input: "c"}}, s.Results)
}
