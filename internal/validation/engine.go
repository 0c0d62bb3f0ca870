package validation

import (
	"context"
	"fmt"
	"reflect"

	"golang.org/x/sync/errgroup"
)

// NullInstanceMessage is reported when the engine is handed a nil instance.
const NullInstanceMessage = "null instance"

// Failure is one failed rule.
type Failure struct {
	Field   string
	Message string
}

// Outcome is the result of validating one instance.
type Outcome struct {
	Failures []Failure
}

// IsValid reports whether no rule failed.
func (o Outcome) IsValid() bool {
	return len(o.Failures) == 0
}

// FaultError means a ruleset could not be evaluated: a rule returned an
// error or panicked, or the instance had the wrong type.
type FaultError struct {
	Target reflect.Type
	Err    error
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("validate %s: %v", e.Target, e.Err)
}

func (e *FaultError) Unwrap() error {
	return e.Err
}

// Engine evaluates rulesets.
type Engine struct {
	maxConcurrentRules int
}

// NewEngine returns an engine running at most maxConcurrentRules rules of one
// instance at a time. Zero or less means no limit.
func NewEngine(maxConcurrentRules int) *Engine {
	return &Engine{maxConcurrentRules: maxConcurrentRules}
}

// Validate runs every rule of v against instance.
//
// All rules run and are awaited; failures keep the rules' declaration order
// whatever order they complete in.
func (e *Engine) Validate(ctx context.Context, v Validator, instance any) (Outcome, error) {
	if isNil(instance) {
		return Outcome{Failures: []Failure{{Field: "", Message: NullInstanceMessage}}}, nil
	}

	checks, err := v.bind(instance)
	if err != nil {
		return Outcome{}, &FaultError{Target: v.Target(), Err: err}
	}

	passed := make([]bool, len(checks))

	g, gctx := errgroup.WithContext(ctx)
	if e.maxConcurrentRules > 0 {
		g.SetLimit(e.maxConcurrentRules)
	}

	for i, check := range checks {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("rule %q panicked: %v", check.field, r)
				}
			}()

			ok, err := check.run(gctx)
			if err != nil {
				return fmt.Errorf("rule %q: %w", check.field, err)
			}

			passed[i] = ok

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Outcome{}, &FaultError{Target: v.Target(), Err: err}
	}

	outcome := Outcome{}
	for i, check := range checks {
		if !passed[i] {
			outcome.Failures = append(outcome.Failures, Failure{Field: check.field, Message: check.message})
		}
	}

	return outcome, nil
}
