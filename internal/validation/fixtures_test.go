package validation_test

import (
	"context"
	"errors"
	"strings"

	"github.com/deppfellow/products-api/internal/validation"
)

type widget struct {
	ID    string
	Name  string
	Count int
}

type gadget struct {
	Label string
}

var errLookup = errors.New("lookup unavailable")

func widgetRules() *validation.Ruleset[widget] {
	return validation.For[widget]().
		Tag("Id", "id is required", "required,notblank", func(w *widget) any { return w.ID }).
		Must("Name", "name is required", func(w *widget) bool { return strings.TrimSpace(w.Name) != "" }).
		Must("Count", "count must not be negative", func(w *widget) bool { return w.Count >= 0 }).
		Build()
}

func gadgetRules(check func(ctx context.Context, g *gadget) (bool, error)) *validation.Ruleset[gadget] {
	return validation.For[gadget]().
		MustAsync("Label", "label is required", check).
		Build()
}
