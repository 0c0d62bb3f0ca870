package handler

import (
	"fmt"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/products-api/internal/errs"
	"github.com/deppfellow/products-api/internal/middleware"
	"github.com/deppfellow/products-api/internal/model/product"
	"github.com/deppfellow/products-api/internal/server"
	"github.com/deppfellow/products-api/internal/service"
)

// ProductHandler maps product requests to the feature services.
type ProductHandler struct {
	Handler
	services *service.Services
}

func NewProductHandler(s *server.Server, services *service.Services) *ProductHandler {
	return &ProductHandler{
		Handler:  NewHandler(s),
		services: services,
	}
}

// AddProduct hands a validated product to the create service.
//
// Service failures are logged with the caller's correlation id and answered
// with a generic 500.
func (h *ProductHandler) AddProduct(c echo.Context, req *product.AddProductRequestDto) error {
	err := h.services.CreateProduct.Execute(c.Request().Context(), req.ToDomain(time.Now()))
	if err != nil {
		middleware.GetLogger(c).Warn().
			Err(err).
			Str("correlation_id", req.CorrelationID).
			Msg("adding product failed")

		return fmt.Errorf("add product: %w", err)
	}

	return nil
}

// GetProductByID returns the product, or 404 when the service finds none.
func (h *ProductHandler) GetProductByID(c echo.Context, req *product.GetProductRequestDto) (product.Product, error) {
	found, err := h.services.ProductSearchByID.Execute(c.Request().Context(), req.ToDomain())
	if err != nil {
		middleware.GetLogger(c).Warn().
			Err(err).
			Str("correlation_id", req.CorrelationID).
			Str("product_id", req.ProductID).
			Msg("product search failed")

		return product.Product{}, fmt.Errorf("get product: %w", err)
	}

	if found.ProductID == "" {
		return product.Product{}, errs.NewNotFoundError("product not found", false)
	}

	return found, nil
}
