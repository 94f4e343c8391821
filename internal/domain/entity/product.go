package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product anúncio de um produtor: tipo de cultura, quantidade disponível,
// preço unitário em Kwanzas e data de colheita. As fotos vivem em storage
// externo; aqui guardamos apenas os URLs.
type Product struct {
	ID           string
	ProducerID   string
	Type         string // milho, feijão, café, mandioca, ...
	Name         string
	Description  string
	Quantity     decimal.Decimal // em Unit
	Unit         string          // kg, saco de 50kg, tonelada
	PriceKz      decimal.Decimal // preço unitário em AOA
	HarvestDate  time.Time
	Province     string
	Municipality string
	PhotoURLs    []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
