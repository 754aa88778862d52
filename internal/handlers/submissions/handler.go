package submissions

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"gitlab.com/codejudge.net/internal/core/ports/primary"
	"gitlab.com/codejudge.net/internal/core/services/submission"
	"gitlab.com/codejudge.net/internal/domain"
	"gitlab.com/codejudge.net/internal/handlers"
	"gitlab.com/codejudge.net/internal/handlers/response"
)

const maxBodyBytes = 1 << 20

// SubmissionHandler handles submission API requests
type SubmissionHandler struct {
	submissionService submission.ISubmissionService
	logger            primary.Logger
}

// NewSubmissionHandler creates a new submission handler
func NewSubmissionHandler(submissionService submission.ISubmissionService, logger primary.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		submissionService: submissionService,
		logger:            logger,
	}
}

// RegisterRoutes registers the submission routes behind auth
func (h *SubmissionHandler) RegisterRoutes(router *mux.Router, auth func(http.Handler) http.Handler) {
	submit := auth(http.HandlerFunc(h.Submit))
	router.Handle("/submit", submit).Methods("POST", "OPTIONS")
	router.Handle("/api/submissions", submit).Methods("POST", "OPTIONS")
	router.Handle("/api/submissions/{submissionId}", auth(http.HandlerFunc(h.GetSubmission))).Methods("GET", "OPTIONS")
}

// Submit judges the posted code against its problem
func (h *SubmissionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.logger.Debug("Failed to decode submission", "error", err)
		handlers.ResponseError(w, "Invalid request body.", http.StatusBadRequest)
		return
	}

	sub := domain.NewSubmission(string(req.Pid), req.Code)
	result, err := h.submissionService.Submit(r.Context(), sub)
	if err != nil {
		status := response.StatusFor(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("Failed to process submission", "submissionId", sub.ID, "error", err)
		}
		handlers.ResponseError(w, response.MessageFor(err), status)
		return
	}

	handlers.ResponseWithJson(w, http.StatusOK, response.NewSubmitResponse(result))
}

// GetSubmission returns a recently judged submission
func (h *SubmissionHandler) GetSubmission(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["submissionId"]
	id, err := uuid.Parse(idStr)
	if err != nil {
		handlers.ResponseError(w, "Invalid submission ID.", http.StatusBadRequest)
		return
	}

	result, err := h.submissionService.GetResult(r.Context(), id)
	if err != nil {
		status := response.StatusFor(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("Failed to get submission", "submissionId", id, "error", err)
			handlers.ResponseError(w, "Failed to get submission.", status)
			return
		}
		handlers.ResponseError(w, err.Error(), status)
		return
	}

	handlers.ResponseWithJson(w, http.StatusOK, result)
}
