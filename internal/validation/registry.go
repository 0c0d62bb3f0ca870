package validation

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrDuplicateValidator is returned when two rulesets target the same type.
var ErrDuplicateValidator = errors.New("duplicate validator")

// Registry maps a request type to its ruleset.
//
// It is filled once at startup and never written afterwards, so lookups
// need no locking.
type Registry struct {
	validators map[reflect.Type]Validator
}

// NewRegistry registers validators by their target type.
func NewRegistry(validators ...Validator) (*Registry, error) {
	registry := &Registry{validators: make(map[reflect.Type]Validator, len(validators))}

	for _, v := range validators {
		if isNil(v) {
			return nil, errors.New("nil validator")
		}

		target := v.Target()
		if _, exists := registry.validators[target]; exists {
			return nil, fmt.Errorf("%w for %s", ErrDuplicateValidator, target)
		}

		registry.validators[target] = v
	}

	return registry, nil
}

// GetValidatorFor returns the ruleset registered for exactly t.
// There is no fallback to interfaces or embedded types.
func (r *Registry) GetValidatorFor(t reflect.Type) (Validator, bool) {
	v, ok := r.validators[t]

	return v, ok
}

// Len returns the number of registered rulesets.
func (r *Registry) Len() int {
	return len(r.validators)
}
