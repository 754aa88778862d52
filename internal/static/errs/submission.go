package errs

import "errors"

var (
	MissingFields      = errors.New("Code and problem ID are required.")
	ProblemNotFound    = errors.New("Problem not found.")
	JudgeBusy          = errors.New("judge is busy, try again later")
	ResultNotFound     = errors.New("submission result not found")
	ResultStoreOff     = errors.New("submission results are not stored")
	MalformedProblem   = errors.New("malformed problem")
	InvalidCatalog     = errors.New("invalid problem catalog")
	UnknownCatalogKind = errors.New("unknown catalog source")
)
