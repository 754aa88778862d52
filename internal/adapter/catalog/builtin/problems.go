// Package builtin ships the problems available without any external catalog.
package builtin

import (
	"context"

	"gitlab.com/codejudge.net/internal/core/ports/secondary"
	"gitlab.com/codejudge.net/internal/domain"
)

var _ secondary.ProblemSource = (*Source)(nil)

type Source struct{}

func NewSource() *Source {
	return &Source{}
}

// LoadProblems returns a fresh copy of the builtin problems on every call
func (s *Source) LoadProblems(ctx context.Context) ([]*domain.Problem, error) {
	return Problems(), nil
}

// Problems returns the builtin problem set
func Problems() []*domain.Problem {
	return []*domain.Problem{
		{
			ID:          "1",
			Title:       "Add Two Numbers",
			Description: "Write a function that takes two numbers a and b and returns their sum.",
			Params:      []string{"a", "b"},
			TestCases: []domain.TestCase{
				{Input: []interface{}{1.0, 2.0}, ExpectedOutput: 3.0},
				{Input: []interface{}{10.0, 20.0}, ExpectedOutput: 30.0},
				{Input: []interface{}{0.0, 0.0}, ExpectedOutput: 0.0},
				{Input: []interface{}{-5.0, 5.0}, ExpectedOutput: 0.0},
			},
		},
		{
			ID:          "2",
			Title:       "Multiply Two Numbers",
			Description: "Write a function that takes two numbers a and b and returns their product.",
			Params:      []string{"a", "b"},
			TestCases: []domain.TestCase{
				{Input: []interface{}{2.0, 3.0}, ExpectedOutput: 6.0},
				{Input: []interface{}{10.0, 5.0}, ExpectedOutput: 50.0},
				{Input: []interface{}{0.0, 100.0}, ExpectedOutput: 0.0},
				{Input: []interface{}{-4.0, 5.0}, ExpectedOutput: -20.0},
			},
		},
	}
}
