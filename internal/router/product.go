package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/products-api/internal/handler"
	"github.com/deppfellow/products-api/internal/model/product"
)

// registerProductRoutes mounts the products feature under api.
func registerProductRoutes(api *echo.Group, h *handler.Handlers) {
	products := api.Group("/products")

	products.POST("", handler.HandleNoContent[product.AddProductRequestDto](
		h.Product.Handler,
		h.Product.AddProduct,
		http.StatusAccepted,
	))

	products.GET("", handler.Handle[product.GetProductRequestDto, product.Product](
		h.Product.Handler,
		h.Product.GetProductByID,
		http.StatusOK,
	))
}
