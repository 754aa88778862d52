package judge

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gitlab.com/codejudge.net/internal/config"
	"gitlab.com/codejudge.net/internal/core/ports/primary"
	"gitlab.com/codejudge.net/internal/core/ports/secondary"
	"gitlab.com/codejudge.net/internal/domain"
	"gitlab.com/codejudge.net/internal/static/errs"
)

var _ IJudgeService = (*JudgeService)(nil)

// JudgeService implements IJudgeService on top of a CodeExecutor
type JudgeService struct {
	executor    secondary.CodeExecutor
	caseTimeout time.Duration
	logger      primary.Logger
}

// NewJudgeService creates a new judge service
func NewJudgeService(executor secondary.CodeExecutor, cfg *config.ExecutorConfig, logger primary.Logger) *JudgeService {
	return &JudgeService{
		executor:    executor,
		caseTimeout: cfg.CaseTimeout,
		logger:      logger,
	}
}

// Judge runs every test case in order. It never stops at the first failure.
func (s *JudgeService) Judge(ctx context.Context, source string, problem *domain.Problem) (*domain.Report, error) {
	if problem == nil {
		return nil, fmt.Errorf("%w: problem is nil", errs.MalformedProblem)
	}
	if err := problem.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.MalformedProblem, err)
	}

	report := &domain.Report{Results: make([]domain.CaseResult, 0, len(problem.TestCases))}

	fn, prepErr := s.executor.Prepare(ctx, source, problem.Params)
	if prepErr != nil {
		s.logger.Debug("Submission failed to compile",
			"problemId", problem.ID,
			"error", prepErr)
	} else {
		defer fn.Close()
	}

	for i, tc := range problem.TestCases {
		var res domain.CaseResult
		if prepErr != nil {
			res = failedCase(tc, prepErr, 0)
		} else {
			res = s.runCase(ctx, fn, tc)
		}
		s.logger.Debug("Test case evaluated",
			"problemId", problem.ID,
			"case", i+1,
			"passed", res.Passed,
			"executionTimeMs", res.ExecutionTimeMs)
		report.Results = append(report.Results, res)
	}

	report.AllPassed = true
	for _, res := range report.Results {
		if !res.Passed {
			report.AllPassed = false
			break
		}
	}

	s.logger.Info("Submission judged",
		"problemId", problem.ID,
		"cases", len(report.Results),
		"allPassed", report.AllPassed)
	return report, nil
}

func (s *JudgeService) runCase(ctx context.Context, fn secondary.PreparedFunction, tc domain.TestCase) domain.CaseResult {
	caseCtx := ctx
	if s.caseTimeout > 0 {
		var cancel context.CancelFunc
		caseCtx, cancel = context.WithTimeout(ctx, s.caseTimeout)
		defer cancel()
	}

	start := time.Now()
	out, err := fn.Invoke(caseCtx, tc.Input)
	elapsed := time.Since(start).Milliseconds()
	if err != nil {
		return failedCase(tc, err, elapsed)
	}
	return domain.CaseResult{
		Input:           tc.Input,
		ExpectedOutput:  tc.ExpectedOutput,
		Output:          out,
		Passed:          domain.StrictEqual(out, tc.ExpectedOutput),
		ExecutionTimeMs: elapsed,
	}
}

func failedCase(tc domain.TestCase, err error, elapsed int64) domain.CaseResult {
	kind := domain.StatusRuntimeError
	msg := err.Error()

	var execErr *domain.ExecutionError
	if errors.As(err, &execErr) {
		kind = execErr.Kind
		msg = execErr.Message
	}
	if msg == "" {
		msg = "execution failed"
	}

	return domain.CaseResult{
		Input:           tc.Input,
		ExpectedOutput:  tc.ExpectedOutput,
		Output:          nil,
		Passed:          false,
		ErrorMessage:    &msg,
		ErrorKind:       kind,
		ExecutionTimeMs: elapsed,
	}
}
