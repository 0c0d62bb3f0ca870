package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/products-api/internal/handler"
)

// registerSystemRoutes registers endpoints that are not part of the products feature:
//  1. Health endpoint
//  2. Docs endpoint (OpenAPI UI)
//  3. Static files endpoint (openapi.json and any future docs assets)
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)

	r.Static("/static", "static")

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
