package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/deppfellow/products-api/internal/lib/utils"
	"github.com/deppfellow/products-api/internal/model/product"
	"github.com/deppfellow/products-api/internal/server"
)

// CreateProductService accepts new products.
type CreateProductService interface {
	Execute(ctx context.Context, req product.AddProductRequest) error
}

// GetProductByIDService looks products up by id.
type GetProductByIDService interface {
	Execute(ctx context.Context, req product.GetProductRequest) (product.Product, error)
}

// CreateProduct is the stub create service.
type CreateProduct struct {
	logger *zerolog.Logger
	delay  time.Duration
}

func NewCreateProduct(s *server.Server) *CreateProduct {
	return &CreateProduct{
		logger: s.Logger,
		delay:  s.Config.Features.ServiceDelay,
	}
}

// Execute waits for the simulated downstream call and accepts the product.
func (p *CreateProduct) Execute(ctx context.Context, req product.AddProductRequest) error {
	if err := utils.Sleep(ctx, p.delay); err != nil {
		return fmt.Errorf("create product %q: %w", req.ID, err)
	}

	requestLogger(ctx, p.logger).Info().
		Str("correlation_id", req.CorrelationID).
		Str("product_id", req.ID).
		Str("price", req.Price.String()).
		Msg("product accepted")

	return nil
}

// ProductSearchByID is the stub search service.
type ProductSearchByID struct {
	logger *zerolog.Logger
	delay  time.Duration
	now    func() time.Time
}

func NewProductSearchByID(s *server.Server) *ProductSearchByID {
	return &ProductSearchByID{
		logger: s.Logger,
		delay:  s.Config.Features.ServiceDelay,
		now:    time.Now,
	}
}

// Execute returns the canned "keyboard" product for any id.
func (p *ProductSearchByID) Execute(ctx context.Context, req product.GetProductRequest) (product.Product, error) {
	if err := utils.Sleep(ctx, p.delay); err != nil {
		return product.Product{}, fmt.Errorf("search product %q: %w", req.ProductID, err)
	}

	requestLogger(ctx, p.logger).Debug().
		Str("correlation_id", req.CorrelationID).
		Str("product_id", req.ProductID).
		Msg("product found")

	return product.Product{
		CorrelationID:   req.CorrelationID,
		ProductID:       req.ProductID,
		ProductName:     "keyboard",
		UpdatedDateTime: p.now().UTC(),
	}, nil
}

// requestLogger prefers the request-scoped logger stored in ctx by the
// context enhancer middleware.
func requestLogger(ctx context.Context, fallback *zerolog.Logger) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}

	return fallback
}
