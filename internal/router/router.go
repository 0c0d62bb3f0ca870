// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/products-api/internal/handler"
	"github.com/deppfellow/products-api/internal/middleware"
	"github.com/deppfellow/products-api/internal/server"
)

// NewRouter builds the Echo instance with the global middleware chain,
// the error handler and every route.
//
// Middleware order matters:
//  1. RequestID first, so every later log line and response carries it.
//  2. New Relic transaction, then tracing attributes.
//  3. ContextEnhancer, which needs both the request id and the transaction.
//  4. Request logger, which reads the enhanced logger.
//  5. Recover last, closest to the handlers.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h)

	api := router.Group("/api")
	registerProductRoutes(api, h)

	return router
}
