package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLineRequest uma linha do carrinho.
type OrderLineRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  decimal.Decimal `json:"quantity" validate:"required"`
}

// PlaceOrderRequest carrinho completo: o mínimo de 1.000.000 Kz aplica-se
// ao total agregado das linhas, não a cada linha.
type PlaceOrderRequest struct {
	Lines        []OrderLineRequest `json:"lines" validate:"required,min=1,dive"`
	DeliveryDate time.Time          `json:"delivery_date" validate:"required"`
	CompanyName  string             `json:"company_name" validate:"required,max=200"`
	ContactName  string             `json:"contact_name" validate:"required,max=200"`
	ContactPhone string             `json:"contact_phone" validate:"required,max=30"`
}

// OrderResponse uma encomenda (linha de carrinho persistida).
type OrderResponse struct {
	ID           string          `json:"id"`
	CartID       string          `json:"cart_id"`
	BuyerID      string          `json:"buyer_id"`
	ProducerID   string          `json:"producer_id"`
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPriceKz  decimal.Decimal `json:"unit_price_kz"`
	TotalKz      decimal.Decimal `json:"total_kz"`
	Status       string          `json:"status"`
	DeliveryDate time.Time       `json:"delivery_date"`
	CompanyName  string          `json:"company_name,omitempty"`
	ContactName  string          `json:"contact_name,omitempty"`
	ContactPhone string          `json:"contact_phone,omitempty"`
	// CancelRemaining texto "Hh Mm restantes" enquanto a janela de
	// cancelamento de 3 horas estiver aberta; vazio depois.
	CancelRemaining string    `json:"cancel_remaining,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// PlaceOrderResponse resultado da colocação do carrinho.
type PlaceOrderResponse struct {
	CartID  string          `json:"cart_id"`
	TotalKz decimal.Decimal `json:"total_kz"`
	Orders  []OrderResponse `json:"orders"`
}

// UpdateOrderStatusRequest transição de estado pedida pelo produtor.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted in_progress completed cancelled"`
}
