package judge

import (
	"context"

	"gitlab.com/codejudge.net/internal/domain"
)

// IJudgeService runs a submission against every test case of a problem
type IJudgeService interface {
	// Judge evaluates source as the body of the problem's function. Execution failures are
	// reported per case in the report; a returned error means the problem itself is malformed.
	Judge(ctx context.Context, source string, problem *domain.Problem) (*domain.Report, error)
}
