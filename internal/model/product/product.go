// Package product holds the request and response shapes of the products
// API together with the rulesets that validate them.
package product

import (
	"time"

	"github.com/shopspring/decimal"
)

// HeaderCorrelationID carries the caller-supplied tracing token.
const HeaderCorrelationID = "X-Correlation-ID"

// AddProductRequestDto is bound from the X-Correlation-ID header and the JSON body.
type AddProductRequestDto struct {
	CorrelationID string          `header:"X-Correlation-ID" json:"-"`
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
}

// ToDomain maps the DTO to the request the create service understands.
func (d *AddProductRequestDto) ToDomain(now time.Time) AddProductRequest {
	return AddProductRequest{
		CorrelationID: d.CorrelationID,
		ID:            d.ID,
		Name:          d.Name,
		Price:         d.Price,
		CreatedOn:     now.UTC(),
	}
}

// GetProductRequestDto is bound from the X-Correlation-ID header and the query string.
type GetProductRequestDto struct {
	CorrelationID string       `header:"X-Correlation-ID"`
	ProductID     string       `query:"productId"`
	Availability  Availability `query:"availability"`
}

func (d *GetProductRequestDto) ToDomain() GetProductRequest {
	return GetProductRequest{
		CorrelationID: d.CorrelationID,
		ProductID:     d.ProductID,
	}
}

// AddProductRequest is what the create service receives.
type AddProductRequest struct {
	CorrelationID string
	ID            string
	Name          string
	Price         decimal.Decimal
	CreatedOn     time.Time
}

// GetProductRequest is what the search service receives.
type GetProductRequest struct {
	CorrelationID string
	ProductID     string
}

// Product is the payload returned by GET /api/products.
type Product struct {
	CorrelationID   string    `json:"correlationId"`
	ProductID       string    `json:"productId"`
	ProductName     string    `json:"productName"`
	UpdatedDateTime time.Time `json:"updatedDateTime"`
}
