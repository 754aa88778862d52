package judge

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/codejudge.net/internal/adapter/jsruntime"
	"gitlab.com/codejudge.net/internal/adapter/logging"
	"gitlab.com/codejudge.net/internal/config"
	"gitlab.com/codejudge.net/internal/core/ports/secondary"
	"gitlab.com/codejudge.net/internal/domain"
	"gitlab.com/codejudge.net/internal/static/errs"
)

func addProblem() *domain.Problem {
	return &domain.Problem{
		ID:     "1",
		Title:  "Add Two Numbers",
		Params: []string{"a", "b"},
		TestCases: []domain.TestCase{
			{Input: []interface{}{1.0, 2.0}, ExpectedOutput: 3.0},
			{Input: []interface{}{10.0, 20.0}, ExpectedOutput: 30.0},
			{Input: []interface{}{0.0, 0.0}, ExpectedOutput: 0.0},
			{Input: []interface{}{-5.0, 5.0}, ExpectedOutput: 0.0},
		},
	}
}

func newService(timeout time.Duration) *JudgeService {
	cfg := &config.ExecutorConfig{CaseTimeout: timeout, MaxCallStackSize: 512}
	logger := logging.NewNopLogger()
	return NewJudgeService(jsruntime.NewExecutor(cfg, logger), cfg, logger)
}

func TestJudgeAccepted(t *testing.T) {
	report, err := newService(time.Second).Judge(context.Background(), "return a + b;", addProblem())
	require.NoError(t, err)

	assert.True(t, report.AllPassed)
	require.Len(t, report.Results, 4)
	for i, res := range report.Results {
		assert.True(t, res.Passed, "case %d", i)
		assert.Nil(t, res.ErrorMessage)
		assert.Equal(t, res.ExpectedOutput, res.Output)
	}
	assert.Equal(t, domain.StatusAccepted, report.Verdict().Status)
}

func TestJudgeWrongAnswer(t *testing.T) {
	report, err := newService(time.Second).Judge(context.Background(), "return a - b;", addProblem())
	require.NoError(t, err)

	assert.False(t, report.AllPassed)
	require.Len(t, report.Results, 4)
	assert.Equal(t, -1.0, report.Results[0].Output)
	assert.False(t, report.Results[0].Passed)
	assert.Nil(t, report.Results[0].ErrorMessage)
	// 0 - 0 == 0 still passes; evaluation does not stop at the first failure
	assert.True(t, report.Results[2].Passed)
	assert.Equal(t, domain.StatusWrongAnswer, report.Verdict().Status)
}

func TestJudgeCompilationError(t *testing.T) {
	report, err := newService(time.Second).Judge(context.Background(), "return a + b; }}", addProblem())
	require.NoError(t, err)

	assert.False(t, report.AllPassed)
	require.Len(t, report.Results, 4)
	for _, res := range report.Results {
		assert.False(t, res.Passed)
		assert.Nil(t, res.Output)
		require.NotNil(t, res.ErrorMessage)
		assert.NotEmpty(t, *res.ErrorMessage)
		assert.Equal(t, domain.StatusCompilationError, res.ErrorKind)
	}
	assert.Equal(t, domain.StatusCompilationError, report.Verdict().Status)
}

func TestJudgeRuntimeError(t *testing.T) {
	report, err := newService(time.Second).Judge(context.Background(), `throw new Error("boom");`, addProblem())
	require.NoError(t, err)

	assert.False(t, report.AllPassed)
	require.Len(t, report.Results, 4)
	for _, res := range report.Results {
		assert.False(t, res.Passed)
		assert.Nil(t, res.Output)
		require.NotNil(t, res.ErrorMessage)
		assert.Equal(t, "boom", *res.ErrorMessage)
		assert.Equal(t, domain.StatusRuntimeError, res.ErrorKind)
	}
}

func TestJudgeTimeoutIsPerCase(t *testing.T) {
	source := "if (a === 10) { while (true) {} } return a + b;"
	report, err := newService(50*time.Millisecond).Judge(context.Background(), source, addProblem())
	require.NoError(t, err)

	require.Len(t, report.Results, 4)
	assert.True(t, report.Results[0].Passed)
	assert.False(t, report.Results[1].Passed)
	assert.Equal(t, domain.StatusTimeout, report.Results[1].ErrorKind)
	assert.True(t, report.Results[2].Passed)
	assert.True(t, report.Results[3].Passed)
	assert.Equal(t, domain.StatusTimeout, report.Verdict().Status)
}

func TestJudgeSharedResultStaysWithinTimeout(t *testing.T) {
	source := "let x = [0]; for (let i = 0; i < 40; i++) { x = [x, x]; } return x;"

	start := time.Now()
	report, err := newService(100*time.Millisecond).Judge(context.Background(), source, addProblem())
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)

	require.Len(t, report.Results, 4)
	for i, res := range report.Results {
		assert.False(t, res.Passed, "case %d", i)
		assert.Nil(t, res.ErrorMessage, "case %d", i)
	}
	assert.Equal(t, domain.StatusWrongAnswer, report.Verdict().Status)
}

func TestJudgeDeterministic(t *testing.T) {
	svc := newService(time.Second)
	first, err := svc.Judge(context.Background(), "return a * 2 + b;", addProblem())
	require.NoError(t, err)
	second, err := svc.Judge(context.Background(), "return a * 2 + b;", addProblem())
	require.NoError(t, err)

	require.Len(t, second.Results, len(first.Results))
	for i := range first.Results {
		assert.Equal(t, first.Results[i].Output, second.Results[i].Output)
		assert.Equal(t, first.Results[i].Passed, second.Results[i].Passed)
	}
}

func TestJudgeEmptyProblem(t *testing.T) {
	report, err := newService(time.Second).Judge(context.Background(), "return 1;", &domain.Problem{ID: "empty", Params: []string{"a", "b"}})
	require.NoError(t, err)
	assert.Empty(t, report.Results)
	assert.True(t, report.AllPassed)
}

func TestJudgeMalformedProblem(t *testing.T) {
	svc := newService(time.Second)

	_, err := svc.Judge(context.Background(), "return 1;", nil)
	assert.True(t, errors.Is(err, errs.MalformedProblem))

	p := addProblem()
	p.TestCases[2].Input = []interface{}{1.0}
	_, err = svc.Judge(context.Background(), "return 1;", p)
	assert.True(t, errors.Is(err, errs.MalformedProblem))
}

type stubExecutor struct {
	prepareErr error
	outputs    []interface{}
	errs       []error
	calls      int
	closed     bool
}

func (s *stubExecutor) Prepare(ctx context.Context, source string, params []string) (secondary.PreparedFunction, error) {
	if s.prepareErr != nil {
		return nil, s.prepareErr
	}
	return s, nil
}

func (s *stubExecutor) Invoke(ctx context.Context, args []interface{}) (interface{}, error) {
	i := s.calls
	s.calls++
	return s.outputs[i], s.errs[i]
}

func (s *stubExecutor) Close() { s.closed = true }

func TestJudgeUsesExecutorResultsInOrder(t *testing.T) {
	stub := &stubExecutor{
		outputs: []interface{}{3.0, nil, "0", 0.0},
		errs:    []error{nil, errors.New("plain failure"), nil, nil},
	}
	logger := logging.NewNopLogger()
	svc := NewJudgeService(stub, &config.ExecutorConfig{}, logger)

	report, err := svc.Judge(context.Background(), "ignored", addProblem())
	require.NoError(t, err)

	assert.Equal(t, 4, stub.calls)
	assert.True(t, stub.closed)
	assert.True(t, report.Results[0].Passed)
	require.NotNil(t, report.Results[1].ErrorMessage)
	assert.Equal(t, "plain failure", *report.Results[1].ErrorMessage)
	assert.Equal(t, domain.StatusRuntimeError, report.Results[1].ErrorKind)
	// no coercion: "0" is not 0
	assert.False(t, report.Results[2].Passed)
	assert.True(t, report.Results[3].Passed)
	assert.False(t, report.AllPassed)
}

func TestJudgePrepareFailureWithoutKind(t *testing.T) {
	stub := &stubExecutor{prepareErr: errors.New("runtime unavailable")}
	svc := NewJudgeService(stub, &config.ExecutorConfig{}, logging.NewNopLogger())

	report, err := svc.Judge(context.Background(), "ignored", addProblem())
	require.NoError(t, err)
	require.Len(t, report.Results, 4)
	for _, res := range report.Results {
		require.NotNil(t, res.ErrorMessage)
		assert.Equal(t, "runtime unavailable", *res.ErrorMessage)
		assert.Equal(t, domain.StatusRuntimeError, res.ErrorKind)
	}
	assert.Equal(t, 0, stub.calls)
}
