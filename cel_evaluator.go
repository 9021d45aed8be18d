package btcfg

import (
	"fmt"

	celgo "github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
)

// CELEvaluatorOption configures the CEL evaluator.
type CELEvaluatorOption func(*celEvaluator)

// CELWithProgramCache wires a ProgramCache into the CEL evaluator.
func CELWithProgramCache(cache ProgramCache) CELEvaluatorOption {
	return func(e *celEvaluator) {
		e.cache = cache
	}
}

// CELWithFunctions wires a FunctionRegistry into the CEL evaluator.
func CELWithFunctions(registry *FunctionRegistry) CELEvaluatorOption {
	return func(e *celEvaluator) {
		if registry == nil {
			return
		}
		e.registry = registry.Clone()
	}
}

type celProgram struct {
	env     *celgo.Env
	program celgo.Program
}

// celEvaluator executes interpolation expressions using cel-go. Offered as an
// alternative to the expr engine for deployments that standardize on CEL.
type celEvaluator struct {
	cache    ProgramCache
	registry *FunctionRegistry
}

// NewCELEvaluator constructs an Evaluator backed by cel-go.
func NewCELEvaluator(opts ...CELEvaluatorOption) Evaluator {
	e := &celEvaluator{}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

func (e *celEvaluator) Evaluate(ctx EvalContext, expression string) (any, error) {
	if expression == "" {
		return nil, wrapEvaluatorError("cel", fmt.Errorf("expression must not be empty"))
	}
	ctx = ctx.withDefaults()
	program, err := e.loadOrCompile(expression, ctx.Snapshot)
	if err != nil {
		return nil, err
	}
	out, _, err := program.program.Eval(e.activation(ctx))
	if err != nil {
		return nil, wrapEvaluationError("cel", expression, err)
	}
	return out.Value(), nil
}

func (e *celEvaluator) Compile(expression string) (CompiledExpr, error) {
	if expression == "" {
		return nil, wrapEvaluatorError("cel", fmt.Errorf("expression must not be empty"))
	}
	return &celCompiledExpr{
		evaluator:  e,
		expression: expression,
	}, nil
}

func (e *celEvaluator) loadOrCompile(expression string, snapshot map[string]any) (*celProgram, error) {
	if snapshot == nil {
		snapshot = map[string]any{}
	}
	if e.cache != nil {
		if cached, ok := e.cache.Get(expression); ok {
			if program, ok := cached.(*celProgram); ok {
				return program, nil
			}
		}
	}

	env, err := e.buildEnv(snapshot)
	if err != nil {
		return nil, wrapEvaluatorError("cel", err)
	}
	ast, issues := env.Parse(expression)
	if issues != nil && issues.Err() != nil {
		return nil, wrapEvaluationError("cel", expression, issues.Err())
	}
	checked, issues := env.Check(ast)
	if issues != nil && issues.Err() != nil {
		return nil, wrapEvaluationError("cel", expression, issues.Err())
	}
	prg, err := env.Program(checked)
	if err != nil {
		return nil, wrapEvaluationError("cel", expression, err)
	}

	bundle := &celProgram{
		env:     env,
		program: prg,
	}
	if e.cache != nil {
		e.cache.Set(expression, bundle)
	}
	return bundle, nil
}

func (e *celEvaluator) buildEnv(snapshot map[string]any) (*celgo.Env, error) {
	opts := []celgo.EnvOption{
		celgo.Variable("config", celgo.DynType),
		celgo.Variable("vars", celgo.DynType),
	}
	if e.registry != nil {
		// CEL overloads are fixed-arity, so "call" is declared once per
		// supported argument count over a shared variadic binding.
		binding := e.callBinding()
		callArgs := []*celgo.Type{celgo.StringType}
		overloads := make([]celgo.FunctionOpt, 0, 4)
		for i := 0; i < 4; i++ {
			overloads = append(overloads, celgo.Overload(
				fmt.Sprintf("call_dyn_%d", len(callArgs)),
				append([]*celgo.Type(nil), callArgs...),
				celgo.DynType,
				celgo.FunctionBinding(binding),
			))
			callArgs = append(callArgs, celgo.DynType)
		}
		opts = append(opts, celgo.Function("call", overloads...))
	}
	for key := range snapshot {
		opts = append(opts, celgo.Variable(key, celgo.DynType))
	}
	return celgo.NewEnv(opts...)
}

func (e *celEvaluator) activation(ctx EvalContext) map[string]any {
	activation := map[string]any{
		"config": ctx.Snapshot,
		"vars":   ctx.Vars,
	}
	for key, value := range ctx.Snapshot {
		activation[key] = value
	}
	if e.registry != nil {
		activation["call"] = func(name string, arguments ...any) (any, error) {
			return e.registry.Call(name, arguments...)
		}
	}
	return activation
}

type celCompiledExpr struct {
	evaluator  *celEvaluator
	expression string
}

func (r *celCompiledExpr) Evaluate(ctx EvalContext) (any, error) {
	if r.evaluator == nil {
		return nil, wrapEvaluatorError("cel", fmt.Errorf("compiled expression missing evaluator"))
	}
	ctx = ctx.withDefaults()
	program, err := r.evaluator.loadOrCompile(r.expression, ctx.Snapshot)
	if err != nil {
		return nil, err
	}
	out, _, err := program.program.Eval(r.evaluator.activation(ctx))
	if err != nil {
		return nil, wrapEvaluationError("cel", r.expression, err)
	}
	return out.Value(), nil
}

func (e *celEvaluator) callBinding() func(...ref.Val) ref.Val {
	return func(values ...ref.Val) ref.Val {
		if e.registry == nil {
			return types.NewErr("btcfg: function registry not configured")
		}
		if len(values) == 0 {
			return types.NewErr("btcfg: call requires function name")
		}
		name, ok := values[0].Value().(string)
		if !ok {
			return types.NewErr("btcfg: call name must be string")
		}
		args := make([]any, 0, len(values)-1)
		for _, val := range values[1:] {
			args = append(args, val.Value())
		}
		result, err := e.registry.Call(name, args...)
		if err != nil {
			return types.NewErr("%s", err.Error())
		}
		if result == nil {
			return types.NullValue
		}
		return types.DefaultTypeAdapter.NativeToValue(result)
	}
}
