package submission

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/codejudge.net/internal/adapter/catalog/builtin"
	"gitlab.com/codejudge.net/internal/adapter/jsruntime"
	"gitlab.com/codejudge.net/internal/adapter/logging"
	"gitlab.com/codejudge.net/internal/config"
	"gitlab.com/codejudge.net/internal/core/ports/secondary"
	"gitlab.com/codejudge.net/internal/core/services/judge"
	"gitlab.com/codejudge.net/internal/core/services/problem"
	"gitlab.com/codejudge.net/internal/domain"
	"gitlab.com/codejudge.net/internal/static/errs"
)

type spyJudge struct {
	mu      sync.Mutex
	calls   int
	block   chan struct{}
	started chan struct{}
	err     error
}

func (j *spyJudge) Judge(ctx context.Context, source string, p *domain.Problem) (*domain.Report, error) {
	j.mu.Lock()
	j.calls++
	j.mu.Unlock()
	if j.started != nil {
		j.started <- struct{}{}
	}
	if j.block != nil {
		<-j.block
	}
	if j.err != nil {
		return nil, j.err
	}
	return &domain.Report{Results: []domain.CaseResult{{Passed: true}}, AllPassed: true}, nil
}

func (j *spyJudge) Calls() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.calls
}

type memoryResults struct {
	mu      sync.Mutex
	results map[uuid.UUID]*domain.SubmissionResult
	saveErr error
}

func newMemoryResults() *memoryResults {
	return &memoryResults{results: make(map[uuid.UUID]*domain.SubmissionResult)}
}

func (m *memoryResults) SaveResult(ctx context.Context, result *domain.SubmissionResult) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[result.ID] = result
	return nil
}

func (m *memoryResults) GetResult(ctx context.Context, id uuid.UUID) (*domain.SubmissionResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.results[id], nil
}

func newCatalog(t *testing.T) *problem.Catalog {
	t.Helper()
	catalog, err := problem.NewCatalog(builtin.Problems())
	require.NoError(t, err)
	return catalog
}

func newRealService(t *testing.T, results secondary.ResultRepository) *SubmissionService {
	t.Helper()
	logger := logging.NewNopLogger()
	execCfg := &config.ExecutorConfig{CaseTimeout: time.Second, MaxCallStackSize: 512}
	judgeSvc := judge.NewJudgeService(jsruntime.NewExecutor(execCfg, logger), execCfg, logger)
	return NewSubmissionService(newCatalog(t), judgeSvc, results,
		&config.JudgeSvcCfg{MaxConcurrent: 2, AcquireTimeout: time.Second}, logger)
}

func TestSubmitAccepted(t *testing.T) {
	results := newMemoryResults()
	svc := newRealService(t, results)

	sub := domain.NewSubmission("1", "return a + b;")
	result, err := svc.Submit(context.Background(), sub)
	require.NoError(t, err)

	assert.Equal(t, sub.ID, result.ID)
	assert.Equal(t, "1", result.ProblemID)
	assert.True(t, result.Report.AllPassed)
	assert.Len(t, result.Report.Results, 4)
	assert.Equal(t, domain.StatusAccepted, result.Verdict.Status)
	assert.False(t, result.CompletedAt.Before(result.SubmittedAt))

	stored, err := svc.GetResult(context.Background(), sub.ID)
	require.NoError(t, err)
	assert.Equal(t, result, stored)
}

func TestSubmitWrongAnswer(t *testing.T) {
	svc := newRealService(t, nil)

	result, err := svc.Submit(context.Background(), domain.NewSubmission("2", "return a + b;"))
	require.NoError(t, err)
	assert.False(t, result.Report.AllPassed)
	assert.Equal(t, domain.StatusWrongAnswer, result.Verdict.Status)
	require.NotNil(t, result.Verdict.FailedCase)
	assert.Equal(t, 0, *result.Verdict.FailedCase)
}

func TestSubmitRejectsBeforeJudging(t *testing.T) {
	spy := &spyJudge{}
	svc := NewSubmissionService(newCatalog(t), spy, nil, &config.JudgeSvcCfg{MaxConcurrent: 1}, logging.NewNopLogger())

	_, err := svc.Submit(context.Background(), domain.NewSubmission("999", "return a + b;"))
	assert.ErrorIs(t, err, errs.ProblemNotFound)

	_, err = svc.Submit(context.Background(), domain.NewSubmission("1", ""))
	assert.ErrorIs(t, err, errs.MissingFields)

	_, err = svc.Submit(context.Background(), domain.NewSubmission("", "return 1;"))
	assert.ErrorIs(t, err, errs.MissingFields)

	_, err = svc.Submit(context.Background(), nil)
	assert.ErrorIs(t, err, errs.MissingFields)

	assert.Equal(t, 0, spy.Calls())
}

func TestSubmitJudgeFailure(t *testing.T) {
	spy := &spyJudge{err: errs.MalformedProblem}
	svc := NewSubmissionService(newCatalog(t), spy, nil, &config.JudgeSvcCfg{MaxConcurrent: 1}, logging.NewNopLogger())

	_, err := svc.Submit(context.Background(), domain.NewSubmission("1", "return 1;"))
	assert.ErrorIs(t, err, errs.MalformedProblem)
}

func TestSubmitIgnoresStoreFailure(t *testing.T) {
	results := newMemoryResults()
	results.saveErr = errors.New("redis down")
	svc := NewSubmissionService(newCatalog(t), &spyJudge{}, results, &config.JudgeSvcCfg{MaxConcurrent: 1}, logging.NewNopLogger())

	result, err := svc.Submit(context.Background(), domain.NewSubmission("1", "return 1;"))
	require.NoError(t, err)
	assert.NotNil(t, result)
}

func TestSubmitBusy(t *testing.T) {
	spy := &spyJudge{block: make(chan struct{}), started: make(chan struct{}, 1)}
	svc := NewSubmissionService(newCatalog(t), spy, nil,
		&config.JudgeSvcCfg{MaxConcurrent: 1, AcquireTimeout: 20 * time.Millisecond},
		logging.NewNopLogger())

	done := make(chan error, 1)
	go func() {
		_, err := svc.Submit(context.Background(), domain.NewSubmission("1", "return 1;"))
		done <- err
	}()
	<-spy.started

	_, err := svc.Submit(context.Background(), domain.NewSubmission("1", "return 1;"))
	assert.ErrorIs(t, err, errs.JudgeBusy)

	close(spy.block)
	require.NoError(t, <-done)
	assert.Equal(t, 1, spy.Calls())
}

func TestGetResult(t *testing.T) {
	svc := NewSubmissionService(newCatalog(t), &spyJudge{}, nil, &config.JudgeSvcCfg{MaxConcurrent: 1}, logging.NewNopLogger())
	_, err := svc.GetResult(context.Background(), uuid.New())
	assert.ErrorIs(t, err, errs.ResultStoreOff)

	svc = NewSubmissionService(newCatalog(t), &spyJudge{}, newMemoryResults(), &config.JudgeSvcCfg{MaxConcurrent: 1}, logging.NewNopLogger())
	_, err = svc.GetResult(context.Background(), uuid.New())
	assert.ErrorIs(t, err, errs.ResultNotFound)
}
