package secondary

import (
	"context"

	"gitlab.com/codejudge.net/internal/domain"
)

// ProblemSource loads problem definitions once at startup
type ProblemSource interface {
	LoadProblems(ctx context.Context) ([]*domain.Problem, error)
}

// ProblemCatalog is the read-only set of problems served by the process
type ProblemCatalog interface {
	// LookupProblem returns the problem with the given id
	LookupProblem(id string) (*domain.Problem, bool)

	// ListProblems returns every problem in catalog order
	ListProblems() []domain.ProblemSummary
}
