package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para publicar um anúncio de produto.
type CreateProductRequest struct {
	Type         string          `json:"type" validate:"required,max=50"`
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Description  string          `json:"description" validate:"omitempty,max=2000"`
	Quantity     decimal.Decimal `json:"quantity" validate:"required"`
	Unit         string          `json:"unit" validate:"required,max=30"`
	PriceKz      decimal.Decimal `json:"price_kz" validate:"required"`
	HarvestDate  time.Time       `json:"harvest_date" validate:"required"`
	Province     string          `json:"province" validate:"required,max=100"`
	Municipality string          `json:"municipality" validate:"omitempty,max=100"`
	PhotoURLs    []string        `json:"photo_urls" validate:"omitempty,max=6,dive,url"`
}

// ProductFilterRequest filtros de catálogo via query string.
type ProductFilterRequest struct {
	Type     string `query:"type"`
	Province string `query:"province"`
	PageRequest
}

// ProductResponse anúncio no catálogo.
type ProductResponse struct {
	ID           string          `json:"id"`
	ProducerID   string          `json:"producer_id"`
	Type         string          `json:"type"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	PriceKz      decimal.Decimal `json:"price_kz"`
	HarvestDate  time.Time       `json:"harvest_date"`
	Province     string          `json:"province"`
	Municipality string          `json:"municipality,omitempty"`
	PhotoURLs    []string        `json:"photo_urls,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}
