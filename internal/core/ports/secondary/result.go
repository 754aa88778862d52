package secondary

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/codejudge.net/internal/domain"
)

// ResultRepository defines the interface for keeping recently judged submissions
type ResultRepository interface {
	// SaveResult saves a judged submission
	SaveResult(ctx context.Context, result *domain.SubmissionResult) error

	// GetResult retrieves a judged submission by ID, nil when it is unknown or expired
	GetResult(ctx context.Context, submissionID uuid.UUID) (*domain.SubmissionResult, error)
}
