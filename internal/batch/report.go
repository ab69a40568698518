// SPDX-License-Identifier: EPL-2.0

package batch

import (
	"fmt"
	"io"

	"github.com/ik5/ncmdec/format"
	"gopkg.in/yaml.v2"
)

// Summary is the outcome of a Run.
type Summary struct {
	Total   int          `yaml:"total"`
	Success int          `yaml:"success"`
	Failed  int          `yaml:"failed"`
	Results []FileResult `yaml:"results,omitempty"`
}

// FileResult is the outcome of one file. Error is empty on success.
type FileResult struct {
	Input  string        `yaml:"input"`
	Output string        `yaml:"output,omitempty"`
	Format format.Format `yaml:"format"`
	Error  string        `yaml:"error,omitempty"`
}

// trim drops the slots of files that were never started.
func (s *Summary) trim() {
	kept := s.Results[:0]
	for _, r := range s.Results {
		if r.Input != "" {
			kept = append(kept, r)
		}
	}
	s.Results = kept
}

// WriteYAML writes the summary as a YAML document.
func (s *Summary) WriteYAML(w io.Writer) error {
	out, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}

	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
