package problems

import (
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/codejudge.net/internal/core/services/problem"
	"gitlab.com/codejudge.net/internal/handlers"
	"gitlab.com/codejudge.net/internal/static/errs"
)

// ProblemHandler serves the problem catalog
type ProblemHandler struct {
	catalog problem.IProblemService
}

func NewProblemHandler(catalog problem.IProblemService) *ProblemHandler {
	return &ProblemHandler{catalog: catalog}
}

func (h *ProblemHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/problems", h.ListProblems).Methods("GET")
	router.HandleFunc("/api/problems/{problemId}", h.GetProblem).Methods("GET")
}

// ListProblems returns the summary of every problem
func (h *ProblemHandler) ListProblems(w http.ResponseWriter, r *http.Request) {
	handlers.ResponseWithJson(w, http.StatusOK, map[string]interface{}{
		"problems": h.catalog.ListProblems(),
	})
}

// GetProblem returns one problem with its test cases
func (h *ProblemHandler) GetProblem(w http.ResponseWriter, r *http.Request) {
	p, ok := h.catalog.LookupProblem(mux.Vars(r)["problemId"])
	if !ok {
		handlers.ResponseError(w, errs.ProblemNotFound.Error(), http.StatusNotFound)
		return
	}
	handlers.ResponseWithJson(w, http.StatusOK, p)
}
