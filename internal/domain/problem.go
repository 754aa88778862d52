package domain

import (
	"fmt"
	"regexp"
)

// DefaultParams is the parameter list used when a problem does not declare one.
var DefaultParams = []string{"a", "b"}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// reserved words that cannot name a parameter
var reservedParams = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true, "continue": true,
	"debugger": true, "default": true, "delete": true, "do": true, "else": true, "export": true,
	"extends": true, "false": true, "finally": true, "for": true, "function": true, "if": true,
	"import": true, "in": true, "instanceof": true, "new": true, "null": true, "return": true,
	"super": true, "switch": true, "this": true, "throw": true, "true": true, "try": true,
	"typeof": true, "var": true, "void": true, "while": true, "with": true, "yield": true,
	"let": true, "static": true, "enum": true, "await": true,
}

// Problem is a judging task. It is immutable once the catalog is loaded.
type Problem struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	Params      []string   `json:"params" yaml:"params"`
	TestCases   []TestCase `json:"testCases" yaml:"testCases"`
}

// TestCase is one input/expected output pair. Input holds one value per parameter.
type TestCase struct {
	Input          []interface{} `json:"input" yaml:"input"`
	ExpectedOutput interface{}   `json:"expectedOutput" yaml:"expectedOutput"`
}

// ProblemSummary is the listing view of a problem.
type ProblemSummary struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Params        []string `json:"params"`
	TestCaseCount int      `json:"testCaseCount"`
}

// Arity returns the number of arguments every test case must carry.
func (p *Problem) Arity() int {
	return len(p.Params)
}

// Summary returns the listing view of the problem.
func (p *Problem) Summary() ProblemSummary {
	return ProblemSummary{
		ID:            p.ID,
		Title:         p.Title,
		Description:   p.Description,
		Params:        append([]string(nil), p.Params...),
		TestCaseCount: len(p.TestCases),
	}
}

// Validate checks the structural contract the judge relies on.
func (p *Problem) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("problem id is empty")
	}
	seen := make(map[string]bool, len(p.Params))
	for _, param := range p.Params {
		if !identifierPattern.MatchString(param) || reservedParams[param] {
			return fmt.Errorf("problem %s: invalid parameter name %q", p.ID, param)
		}
		if seen[param] {
			return fmt.Errorf("problem %s: duplicate parameter name %q", p.ID, param)
		}
		seen[param] = true
	}
	for i, tc := range p.TestCases {
		if len(tc.Input) != p.Arity() {
			return fmt.Errorf("problem %s: test case %d has %d arguments, want %d", p.ID, i, len(tc.Input), p.Arity())
		}
	}
	return nil
}

// Normalize returns a deep copy of the problem with default params applied and every
// test value converted to its canonical form.
func (p *Problem) Normalize() (*Problem, error) {
	out := &Problem{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Params:      append([]string(nil), p.Params...),
		TestCases:   make([]TestCase, 0, len(p.TestCases)),
	}
	if len(out.Params) == 0 {
		out.Params = append([]string(nil), DefaultParams...)
	}
	for i, tc := range p.TestCases {
		input := make([]interface{}, 0, len(tc.Input))
		for j, arg := range tc.Input {
			v, err := NormalizeValue(arg)
			if err != nil {
				return nil, fmt.Errorf("problem %s: test case %d argument %d: %w", p.ID, i, j, err)
			}
			input = append(input, v)
		}
		expected, err := NormalizeValue(tc.ExpectedOutput)
		if err != nil {
			return nil, fmt.Errorf("problem %s: test case %d expected output: %w", p.ID, i, err)
		}
		out.TestCases = append(out.TestCases, TestCase{Input: input, ExpectedOutput: expected})
	}
	return out, nil
}
