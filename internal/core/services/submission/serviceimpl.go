package submission

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"gitlab.com/codejudge.net/internal/config"
	"gitlab.com/codejudge.net/internal/core/ports/primary"
	"gitlab.com/codejudge.net/internal/core/ports/secondary"
	"gitlab.com/codejudge.net/internal/core/services/judge"
	"gitlab.com/codejudge.net/internal/domain"
	"gitlab.com/codejudge.net/internal/static/errs"
)

var _ ISubmissionService = (*SubmissionService)(nil)

// SubmissionService implements ISubmissionService
type SubmissionService struct {
	catalog        secondary.ProblemCatalog
	judge          judge.IJudgeService
	resultRepo     secondary.ResultRepository
	slots          *semaphore.Weighted
	acquireTimeout time.Duration
	logger         primary.Logger
}

// NewSubmissionService creates a new submission service. resultRepo may be nil,
// in which case results are only returned to the caller.
func NewSubmissionService(
	catalog secondary.ProblemCatalog,
	judgeSvc judge.IJudgeService,
	resultRepo secondary.ResultRepository,
	cfg *config.JudgeSvcCfg,
	logger primary.Logger,
) *SubmissionService {
	maxConcurrent := cfg.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	return &SubmissionService{
		catalog:        catalog,
		judge:          judgeSvc,
		resultRepo:     resultRepo,
		slots:          semaphore.NewWeighted(maxConcurrent),
		acquireTimeout: cfg.AcquireTimeout,
		logger:         logger,
	}
}

// Submit judges the submission. Missing fields and unknown problems are rejected
// before any code runs.
func (s *SubmissionService) Submit(ctx context.Context, submission *domain.Submission) (*domain.SubmissionResult, error) {
	if submission == nil || submission.Code == "" || submission.ProblemID == "" {
		return nil, errs.MissingFields
	}

	problem, ok := s.catalog.LookupProblem(submission.ProblemID)
	if !ok {
		s.logger.Debug("Submission for unknown problem", "problemId", submission.ProblemID)
		return nil, errs.ProblemNotFound
	}

	if err := s.acquire(ctx); err != nil {
		return nil, err
	}
	defer s.slots.Release(1)

	s.logger.Info("Judging submission",
		"submissionId", submission.ID,
		"problemId", problem.ID,
		"testCases", len(problem.TestCases))

	report, err := s.judge.Judge(ctx, submission.Code, problem)
	if err != nil {
		s.logger.Error("Failed to judge submission", "submissionId", submission.ID, "error", err)
		return nil, fmt.Errorf("failed to judge submission: %w", err)
	}

	result := &domain.SubmissionResult{
		ID:          submission.ID,
		ProblemID:   problem.ID,
		Report:      *report,
		Verdict:     report.Verdict(),
		SubmittedAt: submission.SubmittedAt,
		CompletedAt: time.Now(),
	}

	if s.resultRepo != nil {
		if err := s.resultRepo.SaveResult(ctx, result); err != nil {
			s.logger.Warn("Submission result not stored", "submissionId", result.ID, "error", err)
		}
	}

	s.logger.Info("Submission judged",
		"submissionId", result.ID,
		"status", result.Verdict.Status)
	return result, nil
}

func (s *SubmissionService) acquire(ctx context.Context) error {
	acquireCtx := ctx
	if s.acquireTimeout > 0 {
		var cancel context.CancelFunc
		acquireCtx, cancel = context.WithTimeout(ctx, s.acquireTimeout)
		defer cancel()
	}

	if err := s.slots.Acquire(acquireCtx, 1); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.logger.Warn("No judge slot available", "waited", s.acquireTimeout)
		return errs.JudgeBusy
	}
	return nil
}

// GetResult returns a stored result
func (s *SubmissionService) GetResult(ctx context.Context, submissionID uuid.UUID) (*domain.SubmissionResult, error) {
	if s.resultRepo == nil {
		return nil, errs.ResultStoreOff
	}

	result, err := s.resultRepo.GetResult(ctx, submissionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get submission result: %w", err)
	}
	if result == nil {
		return nil, errs.ResultNotFound
	}
	return result, nil
}
