package btcfg

import (
	"errors"
	"fmt"
	"strings"
)

// EvalContext carries inputs for evaluating an interpolation expression.
type EvalContext struct {
	// Snapshot is the configuration mapping the expression may reference by
	// top-level key.
	Snapshot map[string]any
	// Vars holds extra bindings exposed under the `vars` name.
	Vars map[string]any
}

func (ctx EvalContext) withDefaults() EvalContext {
	if ctx.Snapshot == nil {
		ctx.Snapshot = map[string]any{}
	}
	if ctx.Vars == nil {
		ctx.Vars = map[string]any{}
	}
	return ctx
}

// Evaluator executes expressions against an evaluation context.
type Evaluator interface {
	Evaluate(ctx EvalContext, expr string) (any, error)
	Compile(expr string) (CompiledExpr, error)
}

// CompiledExpr represents a reusable expression program.
type CompiledExpr interface {
	Evaluate(ctx EvalContext) (any, error)
}

// EvaluationError captures evaluator metadata alongside the originating error.
type EvaluationError struct {
	Engine string
	Expr   string
	Err    error
}

func (e *EvaluationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("btcfg: %s evaluator expr=%q: %v", e.Engine, e.Expr, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func wrapEvaluatorError(engine string, err error) error {
	if err == nil {
		return nil
	}

	var evalErr *EvaluationError
	if errors.As(err, &evalErr) {
		return err
	}
	if strings.HasPrefix(err.Error(), "btcfg:") {
		return err
	}
	return fmt.Errorf("btcfg: %s evaluator: %w", engine, err)
}

func wrapEvaluationError(engine, expr string, err error) error {
	if err == nil {
		return nil
	}

	var evalErr *EvaluationError
	if errors.As(err, &evalErr) {
		if evalErr.Engine == "" {
			evalErr.Engine = engine
		}
		if evalErr.Expr == "" {
			evalErr.Expr = expr
		}
		return evalErr
	}

	return &EvaluationError{
		Engine: engine,
		Expr:   expr,
		Err:    err,
	}
}
