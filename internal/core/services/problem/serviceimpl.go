package problem

import (
	"context"
	"fmt"

	"gitlab.com/codejudge.net/internal/core/ports/secondary"
	"gitlab.com/codejudge.net/internal/domain"
	"gitlab.com/codejudge.net/internal/static/errs"
)

var _ IProblemService = (*Catalog)(nil)

// Catalog holds the validated problems. It is never modified after construction,
// so it is shared between request goroutines without locking.
type Catalog struct {
	problems []*domain.Problem
	byID     map[string]*domain.Problem
}

// NewCatalog validates and normalises the given problems into a catalog.
// The catalog keeps its own deep copy; the input can be reused by the caller.
func NewCatalog(problems []*domain.Problem) (*Catalog, error) {
	c := &Catalog{
		problems: make([]*domain.Problem, 0, len(problems)),
		byID:     make(map[string]*domain.Problem, len(problems)),
	}
	for i, p := range problems {
		if p == nil {
			return nil, fmt.Errorf("%w: entry %d is empty", errs.InvalidCatalog, i)
		}
		normalized, err := p.Normalize()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errs.InvalidCatalog, err)
		}
		if err := normalized.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", errs.InvalidCatalog, err)
		}
		if _, dup := c.byID[normalized.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate problem id %q", errs.InvalidCatalog, normalized.ID)
		}
		c.problems = append(c.problems, normalized)
		c.byID[normalized.ID] = normalized
	}
	return c, nil
}

// NewCatalogFromSource loads problems from source and builds a catalog from them
func NewCatalogFromSource(ctx context.Context, source secondary.ProblemSource) (*Catalog, error) {
	problems, err := source.LoadProblems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load problems: %w", err)
	}
	return NewCatalog(problems)
}

// LookupProblem returns the problem with the given id. The returned problem
// belongs to the catalog and must not be modified.
func (c *Catalog) LookupProblem(id string) (*domain.Problem, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// ListProblems returns the summaries of every problem in catalog order
func (c *Catalog) ListProblems() []domain.ProblemSummary {
	out := make([]domain.ProblemSummary, 0, len(c.problems))
	for _, p := range c.problems {
		out = append(out, p.Summary())
	}
	return out
}

func (c *Catalog) Len() int {
	return len(c.problems)
}
