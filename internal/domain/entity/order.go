package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados possíveis de uma encomenda.
const (
	OrderPending    = "pending"
	OrderAccepted   = "accepted"
	OrderInProgress = "in_progress"
	OrderCompleted  = "completed"
	OrderCancelled  = "cancelled"
)

// Order encomenda de um comprador sobre um produto.
// Um carrinho com várias linhas gera uma Order por linha, todas com o mesmo
// CartID e validadas em conjunto (o mínimo aplica-se ao total do carrinho).
type Order struct {
	ID           string
	CartID       string
	BuyerID      string
	ProducerID   string
	ProductID    string
	ProductName  string
	Quantity     decimal.Decimal
	UnitPriceKz  decimal.Decimal
	TotalKz      decimal.Decimal
	Status       string
	DeliveryDate time.Time
	CompanyName  string
	ContactName  string
	ContactPhone string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
