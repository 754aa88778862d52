package domain

import (
	"time"

	"github.com/google/uuid"
)

// Submission represents a code submission to be judged
type Submission struct {
	ID          uuid.UUID
	ProblemID   string
	Code        string
	SubmittedAt time.Time
}

// NewSubmission creates a new submission
func NewSubmission(problemID, code string) *Submission {
	return &Submission{
		ID:          uuid.New(),
		ProblemID:   problemID,
		Code:        code,
		SubmittedAt: time.Now(),
	}
}
