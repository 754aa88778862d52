package secondary

import (
	"context"
)

// CodeExecutor turns a submitted function body into something callable.
type CodeExecutor interface {
	// Prepare compiles source as the body of a function taking params, in order.
	// A syntax error is returned as a *domain.ExecutionError of kind COMPILATION_ERROR.
	Prepare(ctx context.Context, source string, params []string) (PreparedFunction, error)
}

// PreparedFunction is a compiled submission bound to its own execution context.
// It is not safe for concurrent use; cases of one submission are invoked in order.
type PreparedFunction interface {
	// Invoke calls the function with args and returns the value it produced.
	// Any failure is returned as a *domain.ExecutionError.
	Invoke(ctx context.Context, args []interface{}) (interface{}, error)

	// Close releases the execution context
	Close()
}
