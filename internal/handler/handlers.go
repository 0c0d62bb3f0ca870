package handler

import (
	"github.com/deppfellow/products-api/internal/server"
	"github.com/deppfellow/products-api/internal/service"
)

// Handlers is a container that groups all HTTP handlers, so router setup
// passes one object around instead of many.
type Handlers struct {
	Health  *HealthHandler  // Health serves the service status endpoint.
	OpenAPI *OpenAPIHandler // OpenAPI serves API documentation.
	Product *ProductHandler // Product serves the /api/products feature endpoints.
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
		Product: NewProductHandler(s, services),
	}
}
