package product

import (
	"context"
	"strings"
	"time"

	"github.com/deppfellow/products-api/internal/lib/utils"
	"github.com/deppfellow/products-api/internal/validation"
)

// AddProductRules validates the add-product DTO.
//
// The name rule simulates a remote lookup taking nameCheckDelay.
func AddProductRules(nameCheckDelay time.Duration) *validation.Ruleset[AddProductRequestDto] {
	return validation.For[AddProductRequestDto]().
		Tag("Id", "id is required", "required,notblank", func(r *AddProductRequestDto) any {
			return r.ID
		}).
		MustAsync("Name", "name is required", func(ctx context.Context, r *AddProductRequestDto) (bool, error) {
			if err := utils.Sleep(ctx, nameCheckDelay); err != nil {
				return false, err
			}

			return strings.TrimSpace(r.Name) != "", nil
		}).
		Must("Price", "price must not be negative", func(r *AddProductRequestDto) bool {
			return !r.Price.IsNegative()
		}).
		Build()
}

// Rulesets returns every ruleset of the products API, ready for validation.NewRegistry.
//
// GetProductRequestDto has none: its only constraint (availability) is
// enforced while binding.
func Rulesets(nameCheckDelay time.Duration) []validation.Validator {
	return []validation.Validator{
		AddProductRules(nameCheckDelay),
	}
}
