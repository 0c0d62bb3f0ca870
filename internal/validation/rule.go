package validation

import (
	"context"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// tags evaluates struct-tag expressions for Tag rules.
// *validator.Validate is safe for concurrent use once configured.
var tags = newTagValidator()

func newTagValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(fmt.Sprintf("register notblank validation: %v", err))
	}

	return v
}

// Check reports whether instance satisfies a rule.
//
// An error means the rule could not be evaluated at all (not that the value
// is invalid) and is reported by the engine as a fault.
type Check[T any] func(ctx context.Context, instance *T) (bool, error)

// Rule is one named check with the message reported when it fails.
type Rule[T any] struct {
	Field   string
	Message string
	Check   Check[T]
}

// Validator is a ruleset bound to exactly one target type.
// It is implemented by *Ruleset[T] only.
type Validator interface {
	// Target is the request type the ruleset validates, always a pointer type.
	Target() reflect.Type

	bind(instance any) ([]boundCheck, error)
}

// boundCheck is a rule already applied to one instance.
type boundCheck struct {
	field   string
	message string
	run     func(ctx context.Context) (bool, error)
}

// Ruleset holds the ordered rules for *T. It is immutable once built.
type Ruleset[T any] struct {
	rules []Rule[T]
}

// Target returns the *T type.
func (r *Ruleset[T]) Target() reflect.Type {
	return reflect.TypeOf((*T)(nil))
}

func (r *Ruleset[T]) bind(instance any) ([]boundCheck, error) {
	typed, ok := instance.(*T)
	if !ok {
		return nil, fmt.Errorf("ruleset for %s cannot validate %T", r.Target(), instance)
	}

	checks := make([]boundCheck, 0, len(r.rules))
	for _, rule := range r.rules {
		checks = append(checks, boundCheck{
			field:   rule.Field,
			message: rule.Message,
			run: func(ctx context.Context) (bool, error) {
				return rule.Check(ctx, typed)
			},
		})
	}

	return checks, nil
}

// Builder collects rules for *T.
//
// Example:
//
//	rules := validation.For[AddProductRequestDto]().
//		Tag("Id", "id is required", "required,notblank", func(r *AddProductRequestDto) any { return r.ID }).
//		Build()
type Builder[T any] struct {
	rules []Rule[T]
}

// For starts a ruleset for *T.
func For[T any]() *Builder[T] {
	return &Builder[T]{}
}

// Rule appends a fully specified rule.
func (b *Builder[T]) Rule(field, message string, check Check[T]) *Builder[T] {
	b.rules = append(b.rules, Rule[T]{Field: field, Message: message, Check: check})

	return b
}

// Must appends a synchronous predicate.
func (b *Builder[T]) Must(field, message string, predicate func(instance *T) bool) *Builder[T] {
	return b.Rule(field, message, func(_ context.Context, instance *T) (bool, error) {
		return predicate(instance), nil
	})
}

// MustAsync appends a check that may block; it must return when ctx is done.
func (b *Builder[T]) MustAsync(field, message string, check func(ctx context.Context, instance *T) (bool, error)) *Builder[T] {
	return b.Rule(field, message, check)
}

// Tag appends a rule backed by a `validator` tag expression applied to the
// value returned by value.
func (b *Builder[T]) Tag(field, message, tag string, value func(instance *T) any) *Builder[T] {
	return b.Rule(field, message, func(_ context.Context, instance *T) (bool, error) {
		err := tags.Var(value(instance), tag)
		if err == nil {
			return true, nil
		}

		if _, ok := err.(validator.ValidationErrors); ok {
			return false, nil
		}

		return false, err
	})
}

// Build returns the ruleset. Later calls on the builder do not affect it.
func (b *Builder[T]) Build() *Ruleset[T] {
	rules := make([]Rule[T], len(b.rules))
	copy(rules, b.rules)

	return &Ruleset[T]{rules: rules}
}
