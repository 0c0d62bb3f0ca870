package router_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/products-api/internal/config"
	"github.com/deppfellow/products-api/internal/handler"
	"github.com/deppfellow/products-api/internal/model/product"
	"github.com/deppfellow/products-api/internal/router"
	"github.com/deppfellow/products-api/internal/server"
	"github.com/deppfellow/products-api/internal/service"
	"github.com/deppfellow/products-api/internal/validation"
)

type failingCreate struct{}

func (failingCreate) Execute(context.Context, product.AddProductRequest) error {
	return errors.New("inventory unavailable")
}

type emptySearch struct{}

func (emptySearch) Execute(context.Context, product.GetProductRequest) (product.Product, error) {
	return product.Product{}, nil
}

func newTestRouter(t *testing.T, override func(*service.Services)) *echo.Echo {
	t.Helper()

	registry, err := validation.NewRegistry(product.Rulesets(0)...)
	require.NoError(t, err)

	logger := zerolog.Nop()
	cfg := &config.Config{
		Primary: config.Primary{Env: "test"},
		Server:  config.ServerConfig{Port: "0", CORSAllowedOrigins: []string{"*"}},
	}

	s, err := server.New(cfg, &logger, nil, validation.NewFilter(registry, validation.NewEngine(0)))
	require.NoError(t, err)

	services, err := service.NewServices(s)
	require.NoError(t, err)

	if override != nil {
		override(services)
	}

	return router.NewRouter(s, handler.NewHandlers(s, services))
}

func do(r *echo.Echo, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	return rec
}

func TestAddProduct(t *testing.T) {
	t.Parallel()

	correlation := map[string]string{product.HeaderCorrelationID: gofakeit.UUID()}

	t.Run("accepted", func(t *testing.T) {
		t.Parallel()

		rec := do(newTestRouter(t, nil), http.MethodPost, "/api/products", `{"id":"1","name":"Keyboard","price":10.5}`, correlation)

		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.Empty(t, rec.Body.String())
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	})

	t.Run("empty name", func(t *testing.T) {
		t.Parallel()

		rec := do(newTestRouter(t, nil), http.MethodPost, "/api/products", `{"id":"1","name":"","price":10.5}`, correlation)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, validation.ContentTypeProblemJSON, rec.Header().Get(echo.HeaderContentType))

		var problem validation.ProblemDetails
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
		assert.Equal(t, "ValidationError", problem.Type)
		assert.Equal(t, "invalid request", problem.Title)
		assert.Equal(t, http.StatusBadRequest, problem.Status)
		assert.Equal(t, map[string]string{"Name": "name is required"}, problem.Errors)
	})

	t.Run("every field invalid", func(t *testing.T) {
		t.Parallel()

		rec := do(newTestRouter(t, nil), http.MethodPost, "/api/products", `{"id":" ","name":" ","price":-1}`, nil)

		var problem validation.ProblemDetails
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
		assert.Equal(t, map[string]string{
			"Id":    "id is required",
			"Name":  "name is required",
			"Price": "price must not be negative",
		}, problem.Errors)
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()

		rec := do(newTestRouter(t, nil), http.MethodPost, "/api/products", `{"id":`, nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"code":"BAD_REQUEST","message":"malformed JSON body","status":400,"override":false}`, rec.Body.String())
	})

	t.Run("binding errors hide decoder details", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name    string
			body    string
			message string
		}{
			{name: "wrong json type", body: `{"id":5,"name":"Keyboard","price":1}`, message: "invalid value for id"},
			{name: "undecodable price", body: `{"id":"1","name":"Keyboard","price":"abc"}`, message: "invalid request payload"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				rec := do(newTestRouter(t, nil), http.MethodPost, "/api/products", tt.body, nil)
				require.Equal(t, http.StatusBadRequest, rec.Code)

				var body struct {
					Code    string `json:"code"`
					Message string `json:"message"`
				}
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, "BAD_REQUEST", body.Code)
				assert.Equal(t, tt.message, body.Message)
				assert.NotContains(t, rec.Body.String(), "decimal")
				assert.NotContains(t, rec.Body.String(), "Unmarshal")
			})
		}
	})

	t.Run("service failure", func(t *testing.T) {
		t.Parallel()

		r := newTestRouter(t, func(s *service.Services) { s.CreateProduct = failingCreate{} })
		rec := do(r, http.MethodPost, "/api/products", `{"id":"1","name":"Keyboard","price":10.5}`, correlation)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "inventory")
	})
}

func TestGetProductByID(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()

		correlationID := gofakeit.UUID()
		rec := do(newTestRouter(t, nil), http.MethodGet, "/api/products?productId=42&availability=unavailable", "",
			map[string]string{product.HeaderCorrelationID: correlationID})

		require.Equal(t, http.StatusOK, rec.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, correlationID, body["correlationId"])
		assert.Equal(t, "42", body["productId"])
		assert.Equal(t, "keyboard", body["productName"])
		assert.NotEmpty(t, body["updatedDateTime"])
	})

	t.Run("missing product id", func(t *testing.T) {
		t.Parallel()

		rec := do(newTestRouter(t, nil), http.MethodGet, "/api/products", "", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "product not found")
	})

	t.Run("service returns nothing", func(t *testing.T) {
		t.Parallel()

		r := newTestRouter(t, func(s *service.Services) { s.ProductSearchByID = emptySearch{} })
		rec := do(r, http.MethodGet, "/api/products?productId=42", "", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("invalid availability", func(t *testing.T) {
		t.Parallel()

		rec := do(newTestRouter(t, nil), http.MethodGet, "/api/products?productId=42&availability=sold-out", "", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), `"message":"invalid value for availability"`)
		assert.NotContains(t, rec.Body.String(), "sold-out")
	})
}

func TestSystemRoutes(t *testing.T) {
	t.Parallel()

	t.Run("status", func(t *testing.T) {
		t.Parallel()

		rec := do(newTestRouter(t, nil), http.MethodGet, "/status", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Status      string `json:"status"`
			Environment string `json:"environment"`
			Checks      struct {
				Validation struct {
					Registered int `json:"registered_validators"`
				} `json:"validation"`
			} `json:"checks"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "healthy", body.Status)
		assert.Equal(t, "test", body.Environment)
		assert.Equal(t, 1, body.Checks.Validation.Registered)
	})

	t.Run("unknown route", func(t *testing.T) {
		t.Parallel()

		rec := do(newTestRouter(t, nil), http.MethodGet, "/nope", "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "Route not found")
	})

	t.Run("request id is echoed", func(t *testing.T) {
		t.Parallel()

		rec := do(newTestRouter(t, nil), http.MethodGet, "/status", "", map[string]string{"X-Request-ID": "abc-123"})
		assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
	})
}
