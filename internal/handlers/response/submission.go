package response

import (
	"github.com/google/uuid"

	"gitlab.com/codejudge.net/internal/domain"
)

const (
	msgAllPassed  = "All test cases passed!"
	msgSomeFailed = "Some test cases failed."
)

// SubmitResponse is the body returned for a judged submission
type SubmitResponse struct {
	Success      bool                `json:"success"`
	Message      string              `json:"message"`
	AllPassed    bool                `json:"allPassed"`
	Results      []domain.CaseResult `json:"results"`
	SubmissionID uuid.UUID           `json:"submissionId"`
	ProblemID    string              `json:"problemId"`
	Verdict      domain.Verdict      `json:"verdict"`
}

func NewSubmitResponse(result *domain.SubmissionResult) SubmitResponse {
	message := msgSomeFailed
	if result.Report.AllPassed {
		message = msgAllPassed
	}
	results := result.Report.Results
	if results == nil {
		results = []domain.CaseResult{}
	}
	return SubmitResponse{
		Success:      true,
		Message:      message,
		AllPassed:    result.Report.AllPassed,
		Results:      results,
		SubmissionID: result.ID,
		ProblemID:    result.ProblemID,
		Verdict:      result.Verdict,
	}
}
