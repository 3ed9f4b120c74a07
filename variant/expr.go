package variant

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
)

// ExprEvaluator compiles and caches the CEL expressions authored on variant
// conditions. Expressions see these variables:
//
//	theme       string
//	locale      string
//	experiments map(string, string)
//	platform    string
//	aspect      double (width / height, 0 when unknown)
type ExprEvaluator struct {
	env *cel.Env

	mu       sync.Mutex
	programs map[string]cel.Program
}

// NewExprEvaluator builds the CEL environment.
func NewExprEvaluator() (*ExprEvaluator, error) {
	env, err := cel.NewEnv(
		cel.Variable("theme", cel.StringType),
		cel.Variable("locale", cel.StringType),
		cel.Variable("experiments", cel.MapType(cel.StringType, cel.StringType)),
		cel.Variable("platform", cel.StringType),
		cel.Variable("aspect", cel.DoubleType),
	)
	if err != nil {
		return nil, fmt.Errorf("variant: create CEL environment: %w", err)
	}
	return &ExprEvaluator{env: env, programs: make(map[string]cel.Program)}, nil
}

// Eval evaluates expr against vars. The expression must yield a bool.
func (e *ExprEvaluator) Eval(expr string, vars map[string]any) (bool, error) {
	prg, err := e.program(expr)
	if err != nil {
		return false, err
	}
	out, _, err := prg.Eval(vars)
	if err != nil {
		return false, fmt.Errorf("variant: eval %q: %w", expr, err)
	}
	b, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("variant: expression %q returned %T, want bool", expr, out.Value())
	}
	return b, nil
}

func (e *ExprEvaluator) program(expr string) (cel.Program, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if prg, ok := e.programs[expr]; ok {
		return prg, nil
	}
	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("variant: compile %q: %w", expr, issues.Err())
	}
	prg, err := e.env.Program(ast, cel.CostLimit(10000))
	if err != nil {
		return nil, fmt.Errorf("variant: program %q: %w", expr, err)
	}
	e.programs[expr] = prg
	return prg, nil
}
