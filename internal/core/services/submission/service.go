package submission

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/codejudge.net/internal/domain"
)

// ISubmissionService is the entry point for judging submitted code
type ISubmissionService interface {
	// Submit validates the submission, judges it against its problem and keeps the result
	Submit(ctx context.Context, submission *domain.Submission) (*domain.SubmissionResult, error)

	// GetResult returns a recently judged submission
	GetResult(ctx context.Context, submissionID uuid.UUID) (*domain.SubmissionResult, error)
}
