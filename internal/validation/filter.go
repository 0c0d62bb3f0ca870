package validation

import (
	"context"
	"fmt"
	"reflect"
)

// Messages reported by the filter itself.
const (
	NullArgumentMessage = "instance is null"
	FaultMessage        = "request could not be validated"
)

// Argument is one bound handler argument. Order matters: failures are
// reported in argument order.
type Argument struct {
	Name  string
	Value any
}

// Result is either the continuation's value or a validation short-circuit.
type Result[T any] struct {
	Value   T
	Problem *ProblemDetails
}

// ShortCircuited reports whether validation failed and the continuation was skipped.
func (r Result[T]) ShortCircuited() bool {
	return r.Problem != nil
}

// Filter validates handler arguments against the registered rulesets.
type Filter struct {
	registry *Registry
	engine   *Engine
}

func NewFilter(registry *Registry, engine *Engine) *Filter {
	return &Filter{registry: registry, engine: engine}
}

// Registry returns the registry the filter reads from.
func (f *Filter) Registry() *Registry {
	return f.registry
}

// Check validates every argument and returns all failures in argument order.
//
// A nil argument always fails, whether or not a ruleset exists for it.
// Arguments without a ruleset are skipped. A fault while validating one
// argument becomes a single failure for that argument; the others still run.
func (f *Filter) Check(ctx context.Context, args []Argument) []Failure {
	var failures []Failure

	for _, arg := range args {
		if isNil(arg.Value) {
			failures = append(failures, Failure{Field: "", Message: NullArgumentMessage})
			continue
		}

		outcome, err := f.checkArgument(ctx, arg)
		if err != nil {
			failures = append(failures, Failure{Field: "", Message: FaultMessage})
			continue
		}

		failures = append(failures, outcome.Failures...)
	}

	return failures
}

func (f *Filter) checkArgument(ctx context.Context, arg Argument) (outcome Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("validate argument %q: %v", arg.Name, r)
		}
	}()

	v, ok := f.registry.GetValidatorFor(reflect.TypeOf(arg.Value))
	if !ok {
		return Outcome{}, nil
	}

	return f.engine.Validate(ctx, v, arg.Value)
}

// Invoke runs next only when every argument is valid.
//
// With no arguments next runs unchanged. When any argument fails, next is
// not called and the result carries the problem details. Otherwise next
// runs exactly once and its value and error are returned as is.
func Invoke[T any](ctx context.Context, f *Filter, args []Argument, next func(ctx context.Context) (T, error)) (Result[T], error) {
	if len(args) == 0 {
		value, err := next(ctx)
		return Result[T]{Value: value}, err
	}

	if failures := f.Check(ctx, args); len(failures) > 0 {
		problem := ToProblemDetails(failures)
		return Result[T]{Problem: &problem}, nil
	}

	value, err := next(ctx)

	return Result[T]{Value: value}, err
}
