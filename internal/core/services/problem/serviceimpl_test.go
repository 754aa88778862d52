package problem

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/codejudge.net/internal/domain"
	"gitlab.com/codejudge.net/internal/static/errs"
)

type staticSource struct {
	problems []*domain.Problem
	err      error
}

func (s staticSource) LoadProblems(ctx context.Context) ([]*domain.Problem, error) {
	return s.problems, s.err
}

func sampleProblems() []*domain.Problem {
	return []*domain.Problem{
		{
			ID:        "1",
			Title:     "Add Two Numbers",
			TestCases: []domain.TestCase{{Input: []interface{}{1, 2}, ExpectedOutput: 3}},
		},
		{
			ID:        "2",
			Title:     "Multiply Two Numbers",
			Params:    []string{"x", "y"},
			TestCases: []domain.TestCase{{Input: []interface{}{2, 3}, ExpectedOutput: 6}},
		},
	}
}

func TestNewCatalog(t *testing.T) {
	src := sampleProblems()
	c, err := NewCatalog(src)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	p, ok := c.LookupProblem("1")
	require.True(t, ok)
	assert.Equal(t, domain.DefaultParams, p.Params)
	assert.Equal(t, []interface{}{1.0, 2.0}, p.TestCases[0].Input)
	assert.Equal(t, 3.0, p.TestCases[0].ExpectedOutput)

	// changing the input afterwards does not leak into the catalog
	src[0].TestCases[0].Input[0] = 100
	p, _ = c.LookupProblem("1")
	assert.Equal(t, 1.0, p.TestCases[0].Input[0])

	_, ok = c.LookupProblem("3")
	assert.False(t, ok)
}

func TestListProblemsKeepsOrder(t *testing.T) {
	c, err := NewCatalog(sampleProblems())
	require.NoError(t, err)

	list := c.ListProblems()
	require.Len(t, list, 2)
	assert.Equal(t, "1", list[0].ID)
	assert.Equal(t, "2", list[1].ID)
	assert.Equal(t, []string{"x", "y"}, list[1].Params)
	assert.Equal(t, 1, list[1].TestCaseCount)
}

func TestNewCatalogRejectsInvalidProblems(t *testing.T) {
	cases := map[string][]*domain.Problem{
		"duplicate id":   append(sampleProblems(), &domain.Problem{ID: "1"}),
		"nil entry":      {nil},
		"arity mismatch": {{ID: "x", TestCases: []domain.TestCase{{Input: []interface{}{1}}}}},
		"bad value":      {{ID: "x", TestCases: []domain.TestCase{{Input: []interface{}{1, struct{}{}}}}}},
		"empty id":       {{Title: "no id"}},
	}
	for name, problems := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewCatalog(problems)
			assert.True(t, errors.Is(err, errs.InvalidCatalog), "got %v", err)
		})
	}
}

func TestNewCatalogFromSource(t *testing.T) {
	c, err := NewCatalogFromSource(context.Background(), staticSource{problems: sampleProblems()})
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	loadErr := errors.New("connection refused")
	_, err = NewCatalogFromSource(context.Background(), staticSource{err: loadErr})
	assert.ErrorIs(t, err, loadErr)
}
