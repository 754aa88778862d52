package problem

import (
	"gitlab.com/codejudge.net/internal/core/ports/secondary"
)

// IProblemService is the read-only problem catalog used by handlers and the submission service
type IProblemService interface {
	secondary.ProblemCatalog

	// Len returns the number of problems in the catalog
	Len() int
}
