// Package yamlfile loads a problem catalog from a YAML document.
package yamlfile

import (
	"context"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"gitlab.com/codejudge.net/internal/core/ports/primary"
	"gitlab.com/codejudge.net/internal/core/ports/secondary"
	"gitlab.com/codejudge.net/internal/domain"
)

var _ secondary.ProblemSource = (*Source)(nil)

// document is the file layout:
//
//	problems:
//	  - id: "1"
//	    title: Add Two Numbers
//	    params: [a, b]
//	    testCases:
//	      - input: [1, 2]
//	        expectedOutput: 3
type document struct {
	Problems []*domain.Problem `yaml:"problems"`
}

// Source reads problems from a YAML file
type Source struct {
	path   string
	logger primary.Logger
}

func NewSource(path string, logger primary.Logger) *Source {
	return &Source{path: path, logger: logger}
}

func (s *Source) LoadProblems(ctx context.Context) ([]*domain.Problem, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()

	problems, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	s.logger.Info("Loaded problem catalog", "file", s.path, "problems", len(problems))
	return problems, nil
}

// Decode parses a catalog document. Values are returned as yaml.v3 produced them;
// the catalog normalises numbers and maps.
func Decode(r io.Reader) ([]*domain.Problem, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return doc.Problems, nil
}
