package service

import (
	"github.com/deppfellow/products-api/internal/server"
)

// Services groups the feature services handlers depend on.
//
// Fields are interfaces so tests can swap in failing implementations.
type Services struct {
	CreateProduct     CreateProductService
	ProductSearchByID GetProductByIDService
}

func NewServices(s *server.Server) (*Services, error) {
	return &Services{
		CreateProduct:     NewCreateProduct(s),
		ProductSearchByID: NewProductSearchByID(s),
	}, nil
}
