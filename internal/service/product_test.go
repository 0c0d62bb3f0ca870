package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/products-api/internal/config"
	"github.com/deppfellow/products-api/internal/model/product"
	"github.com/deppfellow/products-api/internal/server"
	"github.com/deppfellow/products-api/internal/service"
	"github.com/deppfellow/products-api/internal/validation"
)

func newServer(t *testing.T, delay time.Duration) *server.Server {
	t.Helper()

	registry, err := validation.NewRegistry()
	require.NoError(t, err)

	logger := zerolog.Nop()
	cfg := &config.Config{Features: config.FeaturesConfig{ServiceDelay: delay}}

	s, err := server.New(cfg, &logger, nil, validation.NewFilter(registry, validation.NewEngine(0)))
	require.NoError(t, err)

	return s
}

func TestCreateProduct_Execute(t *testing.T) {
	t.Parallel()

	req := product.AddProductRequest{
		CorrelationID: gofakeit.UUID(),
		ID:            gofakeit.UUID(),
		Name:          gofakeit.ProductName(),
		Price:         decimal.NewFromFloat(gofakeit.Price(1, 100)),
		CreatedOn:     time.Now().UTC(),
	}

	t.Run("accepts", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, service.NewCreateProduct(newServer(t, 0)).Execute(context.Background(), req))
	})

	t.Run("cancelled while waiting", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := service.NewCreateProduct(newServer(t, time.Hour)).Execute(ctx, req)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestProductSearchByID_Execute(t *testing.T) {
	t.Parallel()

	t.Run("returns canned product", func(t *testing.T) {
		t.Parallel()

		req := product.GetProductRequest{CorrelationID: gofakeit.UUID(), ProductID: gofakeit.UUID()}

		got, err := service.NewProductSearchByID(newServer(t, time.Millisecond)).Execute(context.Background(), req)
		require.NoError(t, err)

		assert.Equal(t, req.CorrelationID, got.CorrelationID)
		assert.Equal(t, req.ProductID, got.ProductID)
		assert.Equal(t, "keyboard", got.ProductName)
		assert.Equal(t, time.UTC, got.UpdatedDateTime.Location())
		assert.WithinDuration(t, time.Now(), got.UpdatedDateTime, time.Minute)
	})

	t.Run("deadline exceeded", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
		defer cancel()

		_, err := service.NewProductSearchByID(newServer(t, time.Hour)).Execute(ctx, product.GetProductRequest{})
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestNewServices(t *testing.T) {
	t.Parallel()

	services, err := service.NewServices(newServer(t, 0))
	require.NoError(t, err)
	assert.NotNil(t, services.CreateProduct)
	assert.NotNil(t, services.ProductSearchByID)
}
