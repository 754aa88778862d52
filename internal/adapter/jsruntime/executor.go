// Package jsruntime runs submitted JavaScript function bodies on the goja interpreter.
package jsruntime

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dop251/goja"
	"github.com/dop251/goja/ast"
	"github.com/dop251/goja/parser"

	"gitlab.com/codejudge.net/internal/config"
	"gitlab.com/codejudge.net/internal/core/ports/primary"
	"gitlab.com/codejudge.net/internal/core/ports/secondary"
	"gitlab.com/codejudge.net/internal/domain"
)

const submissionFile = "submission.js"

var _ secondary.CodeExecutor = (*Executor)(nil)

// Executor compiles submissions into functions bound to a private goja runtime.
// The runtime exposes the ECMAScript built-ins and a console, nothing from the host.
type Executor struct {
	maxCallStackSize int
	logger           primary.Logger
}

// NewExecutor creates a new goja backed executor
func NewExecutor(cfg *config.ExecutorConfig, logger primary.Logger) *Executor {
	return &Executor{
		maxCallStackSize: cfg.MaxCallStackSize,
		logger:           logger,
	}
}

// Prepare compiles source as the body of function(params...) and binds it to a fresh runtime.
func (e *Executor) Prepare(ctx context.Context, source string, params []string) (secondary.PreparedFunction, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.NewTimeoutError(interruptMessage(err))
	}

	program, err := compileFunction(source, params)
	if err != nil {
		return nil, err
	}

	vm := goja.New()
	if e.maxCallStackSize > 0 {
		vm.SetMaxCallStackSize(e.maxCallStackSize)
	}
	if err := vm.Set("console", newConsole(vm, e.logger)); err != nil {
		return nil, fmt.Errorf("failed to install console: %w", err)
	}

	value, err := vm.RunProgram(program)
	if err != nil {
		return nil, domain.NewCompilationError(err.Error())
	}
	fn, ok := goja.AssertFunction(value)
	if !ok {
		return nil, domain.NewCompilationError("SyntaxError: submission did not compile to a function")
	}

	return &preparedFunction{vm: vm, fn: fn}, nil
}

// compileFunction wraps the body in a function expression and makes sure the body
// cannot terminate the function early and smuggle statements into the outer script.
func compileFunction(source string, params []string) (*goja.Program, error) {
	wrapped := fmt.Sprintf("(function(%s) {\n%s\n})", strings.Join(params, ", "), source)

	prg, err := parser.ParseFile(nil, submissionFile, wrapped, 0)
	if err != nil {
		return nil, domain.NewCompilationError(syntaxMessage(err))
	}
	if !isSingleFunctionExpression(prg) {
		return nil, domain.NewCompilationError("SyntaxError: unexpected token '}' closes the function body")
	}

	program, err := goja.CompileAST(prg, false)
	if err != nil {
		return nil, domain.NewCompilationError(syntaxMessage(err))
	}
	return program, nil
}

func isSingleFunctionExpression(prg *ast.Program) bool {
	if len(prg.Body) != 1 {
		return false
	}
	stmt, ok := prg.Body[0].(*ast.ExpressionStatement)
	if !ok {
		return false
	}
	_, ok = stmt.Expression.(*ast.FunctionLiteral)
	return ok
}

func syntaxMessage(err error) string {
	msg := err.Error()
	if strings.HasPrefix(msg, "SyntaxError") {
		return msg
	}
	return "SyntaxError: " + msg
}

type preparedFunction struct {
	vm *goja.Runtime
	fn goja.Callable
}

// Invoke calls the compiled function. Cancellation of ctx interrupts the running script.
func (p *preparedFunction) Invoke(ctx context.Context, args []interface{}) (out interface{}, err error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, domain.NewTimeoutError(interruptMessage(ctxErr))
	}

	stop := make(chan struct{})
	watchdogDone := make(chan struct{})
	go func() {
		defer close(watchdogDone)
		select {
		case <-ctx.Done():
			p.vm.Interrupt(ctx.Err())
		case <-stop:
		}
	}()
	defer func() {
		close(stop)
		<-watchdogDone
		p.vm.ClearInterrupt()
	}()

	// values are exported under the watchdog too: getters and toString run user code
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = classifyPanic(r)
		}
	}()

	jsArgs := make([]goja.Value, len(args))
	for i, arg := range args {
		jsArgs[i] = toJS(p.vm, arg)
	}

	result, callErr := p.fn(p.vm.GlobalObject(), jsArgs...)
	if callErr != nil {
		return nil, classifyError(callErr)
	}
	out, err = exportValue(ctx, result)
	switch {
	case errors.Is(err, errExportTooLarge):
		return tooLargeResult, nil
	case err != nil:
		return nil, domain.NewTimeoutError(interruptMessage(err))
	}
	return out, nil
}

func (p *preparedFunction) Close() {
	p.vm.ClearInterrupt()
}

func classifyError(err error) *domain.ExecutionError {
	var interrupted *goja.InterruptedError
	if errors.As(err, &interrupted) {
		if cause, ok := interrupted.Value().(error); ok {
			return domain.NewTimeoutError(interruptMessage(cause))
		}
		return domain.NewTimeoutError("execution interrupted")
	}

	var overflow *goja.StackOverflowError
	if errors.As(err, &overflow) {
		return domain.NewRuntimeError("RangeError: Maximum call stack size exceeded")
	}

	var exception *goja.Exception
	if errors.As(err, &exception) {
		return domain.NewRuntimeError(exceptionMessage(exception))
	}

	if msg := err.Error(); msg != "" {
		return domain.NewRuntimeError(msg)
	}
	return domain.NewRuntimeError("execution failed")
}

func classifyPanic(r interface{}) *domain.ExecutionError {
	if err, ok := r.(error); ok {
		return classifyError(err)
	}
	return domain.NewRuntimeError(fmt.Sprint(r))
}

// exceptionMessage mirrors what error.message gives in JavaScript, falling back to the
// thrown value itself so the message is never empty.
func exceptionMessage(ex *goja.Exception) string {
	value := ex.Value()
	if obj, ok := value.(*goja.Object); ok {
		if msg := obj.Get("message"); msg != nil && !goja.IsUndefined(msg) && !goja.IsNull(msg) {
			if s := msg.String(); s != "" {
				return s
			}
		}
	}
	if value != nil {
		if s := value.String(); s != "" {
			return s
		}
	}
	return ex.Error()
}

func interruptMessage(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "execution timed out"
	}
	if errors.Is(err, context.Canceled) {
		return "execution cancelled"
	}
	return err.Error()
}

func newConsole(vm *goja.Runtime, logger primary.Logger) *goja.Object {
	console := vm.NewObject()
	for _, level := range []string{"log", "info", "warn", "error", "debug"} {
		level := level
		_ = console.Set(level, func(call goja.FunctionCall) goja.Value {
			parts := make([]string, len(call.Arguments))
			for i, arg := range call.Arguments {
				parts[i] = arg.String()
			}
			logger.Debug("Submission console output",
				"level", level,
				"message", strings.Join(parts, " "))
			return goja.Undefined()
		})
	}
	return console
}
