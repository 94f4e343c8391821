// Package order concentra as regras de negócio de encomendas que o resto da
// aplicação consome: admissibilidade do carrinho e janela de cancelamento.
package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/orbislink/agrilink-api/internal/domain"
)

// Rules parâmetros configuráveis das regras de encomenda.
type Rules struct {
	MinTotalKz         decimal.Decimal
	DeliveryWindowDays int
	CancelWindow       time.Duration
}

// DefaultRules valores de produção: mínimo de 1.000.000 Kz, entrega até 14 dias,
// cancelamento até 3 horas após a criação.
func DefaultRules() Rules {
	return Rules{
		MinTotalKz:         decimal.NewFromInt(1000000),
		DeliveryWindowDays: 14,
		CancelWindow:       3 * time.Hour,
	}
}

// Line uma linha do carrinho: quantidade × preço unitário.
type Line struct {
	Quantity    decimal.Decimal
	UnitPriceKz decimal.Decimal
}

// Subtotal devolve quantidade × preço unitário da linha.
func (l Line) Subtotal() decimal.Decimal {
	return l.Quantity.Mul(l.UnitPriceKz)
}

// CartTotal soma os subtotais de todas as linhas.
func CartTotal(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Admissibility resultado da verificação de admissibilidade de um carrinho.
type Admissibility struct {
	TotalKz decimal.Decimal
	Reasons []error
}

// OK indica se a encomenda pode ser submetida.
func (a Admissibility) OK() bool { return len(a.Reasons) == 0 }

// Err devolve o primeiro motivo de rejeição, ou nil.
func (a Admissibility) Err() error {
	if len(a.Reasons) == 0 {
		return nil
	}
	return a.Reasons[0]
}

// CheckAdmissibility aplica as três condições de submissão:
//   - total ≥ mínimo (total exatamente igual ao mínimo é admitido);
//   - data de entrega dentro de [hoje, hoje+DeliveryWindowDays], comparada
//     por dia de calendário (entrega a exatamente 14 dias é aceite, 15 não);
//   - todos os campos obrigatórios não vazios.
func (r Rules) CheckAdmissibility(lines []Line, deliveryDate time.Time, now time.Time, required map[string]string) Admissibility {
	result := Admissibility{TotalKz: CartTotal(lines)}

	if result.TotalKz.LessThan(r.MinTotalKz) {
		result.Reasons = append(result.Reasons, domain.ErrOrderBelowMinimum)
	}

	if deliveryDate.IsZero() || !r.DeliveryDateInWindow(deliveryDate, now) {
		result.Reasons = append(result.Reasons, domain.ErrDeliveryOutOfRange)
	}

	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			result.Reasons = append(result.Reasons, fmt.Errorf("%w: campo %q obrigatório", domain.ErrInvalidInput, field))
		}
	}

	return result
}

// DeliveryDateInWindow verifica hoje ≤ data ≤ hoje+DeliveryWindowDays por dia de calendário.
func (r Rules) DeliveryDateInWindow(deliveryDate, now time.Time) bool {
	today := truncateToDay(now)
	day := truncateToDay(deliveryDate)
	last := today.AddDate(0, 0, r.DeliveryWindowDays)
	return !day.Before(today) && !day.After(last)
}

// CanCancel indica se a encomenda criada em createdAt ainda pode ser cancelada
// em now. A fronteira é inclusiva: exatamente CancelWindow decorrido ainda permite.
func (r Rules) CanCancel(createdAt, now time.Time) bool {
	return now.Sub(createdAt) <= r.CancelWindow
}

// CancelRemaining devolve o tempo restante da janela de cancelamento (zero se fechada).
func (r Rules) CancelRemaining(createdAt, now time.Time) time.Duration {
	remaining := r.CancelWindow - now.Sub(createdAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// FormatRemaining formata o tempo restante como o frontend mostra: "Hh Mm restantes".
// Os minutos são truncados (2h59m decorridas de uma janela de 3h → "0h 1m restantes").
func FormatRemaining(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	h := int(remaining / time.Hour)
	m := int(remaining % time.Hour / time.Minute)
	return fmt.Sprintf("%dh %dm restantes", h, m)
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
