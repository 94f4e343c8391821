package order_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbislink/agrilink-api/internal/domain"
	"github.com/orbislink/agrilink-api/internal/domain/order"
)

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func kz(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func validRequired() map[string]string {
	return map[string]string{
		"company_name":  "Sonangol Alimentar Lda",
		"contact_name":  "Teresa Van-Dúnem",
		"contact_phone": "+244 923 000 111",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Admissibilidade: valor mínimo
// ──────────────────────────────────────────────────────────────────────────────

// Total exatamente igual ao mínimo deve ser admitido (fronteira T = M).
func TestAdmissibilidade_TotalIgualAoMinimo_Admite(t *testing.T) {
	rules := order.DefaultRules()
	// Três linhas que somam exatamente 1.000.000 Kz.
	lines := []order.Line{
		{Quantity: kz(100), UnitPriceKz: kz(4000)}, // 400.000
		{Quantity: kz(50), UnitPriceKz: kz(7000)},  // 350.000
		{Quantity: kz(10), UnitPriceKz: kz(25000)}, // 250.000
	}
	delivery := now.AddDate(0, 0, 10)

	result := rules.CheckAdmissibility(lines, delivery, now, validRequired())

	assert.True(t, result.OK(), "carrinho de exatamente 1.000.000 Kz deve ser admitido")
	assert.True(t, result.TotalKz.Equal(kz(1000000)))
}

// Um Kwanza abaixo do mínimo deve rejeitar.
func TestAdmissibilidade_UmKwanzaAbaixo_Rejeita(t *testing.T) {
	rules := order.DefaultRules()
	lines := []order.Line{{Quantity: kz(1), UnitPriceKz: kz(999999)}}

	result := rules.CheckAdmissibility(lines, now.AddDate(0, 0, 10), now, validRequired())

	require.False(t, result.OK())
	assert.ErrorIs(t, result.Err(), domain.ErrOrderBelowMinimum)
}

// O total é a soma de quantidade × preço unitário de cada linha.
func TestCartTotal_SomaLinhas(t *testing.T) {
	lines := []order.Line{
		{Quantity: decimal.NewFromFloat(2.5), UnitPriceKz: kz(100000)},
		{Quantity: kz(3), UnitPriceKz: kz(250000)},
	}
	assert.True(t, order.CartTotal(lines).Equal(kz(1000000)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Admissibilidade: janela de entrega
// ──────────────────────────────────────────────────────────────────────────────

func TestJanelaDeEntrega(t *testing.T) {
	rules := order.DefaultRules()
	cases := []struct {
		name     string
		delivery time.Time
		want     bool
	}{
		{"hoje", now, true},
		{"daqui a 10 dias", now.AddDate(0, 0, 10), true},
		{"exatamente 14 dias", now.AddDate(0, 0, 14), true},
		{"15 dias", now.AddDate(0, 0, 15), false},
		{"ontem", now.AddDate(0, 0, -1), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, rules.DeliveryDateInWindow(tc.delivery, now))
		})
	}
}

// A comparação é por dia de calendário: 14 dias à frente às 23h ainda cai na janela
// mesmo que o instante exato ultrapasse now+14×24h.
func TestJanelaDeEntrega_ComparaPorDia(t *testing.T) {
	rules := order.DefaultRules()
	delivery := time.Date(2026, 3, 24, 23, 30, 0, 0, time.UTC) // now+14 dias, fim do dia
	assert.True(t, rules.DeliveryDateInWindow(delivery, now))
}

func TestAdmissibilidade_SemDataDeEntrega_Rejeita(t *testing.T) {
	rules := order.DefaultRules()
	lines := []order.Line{{Quantity: kz(1), UnitPriceKz: kz(2000000)}}

	result := rules.CheckAdmissibility(lines, time.Time{}, now, validRequired())

	require.False(t, result.OK())
	assert.ErrorIs(t, result.Err(), domain.ErrDeliveryOutOfRange)
}

// ──────────────────────────────────────────────────────────────────────────────
// Admissibilidade: campos obrigatórios
// ──────────────────────────────────────────────────────────────────────────────

func TestAdmissibilidade_CampoObrigatorioVazio_Rejeita(t *testing.T) {
	rules := order.DefaultRules()
	lines := []order.Line{{Quantity: kz(1), UnitPriceKz: kz(2000000)}}
	required := validRequired()
	required["contact_phone"] = "   " // só espaços conta como vazio

	result := rules.CheckAdmissibility(lines, now.AddDate(0, 0, 5), now, required)

	require.False(t, result.OK())
	assert.ErrorIs(t, result.Err(), domain.ErrInvalidInput)
}

// Cenário completo do fluxo de compra: carrinho válido com tudo preenchido.
func TestAdmissibilidade_CenarioCompleto_Admite(t *testing.T) {
	rules := order.DefaultRules()
	lines := []order.Line{
		{Quantity: kz(200), UnitPriceKz: kz(3500)},
		{Quantity: kz(40), UnitPriceKz: kz(5000)},
		{Quantity: kz(20), UnitPriceKz: kz(5000)},
	}
	result := rules.CheckAdmissibility(lines, now.AddDate(0, 0, 10), now, validRequired())

	assert.True(t, result.OK())
	assert.NoError(t, result.Err())
}

// ──────────────────────────────────────────────────────────────────────────────
// Janela de cancelamento
// ──────────────────────────────────────────────────────────────────────────────

func TestCancelamento_Fronteiras(t *testing.T) {
	rules := order.DefaultRules()
	cases := []struct {
		name    string
		elapsed time.Duration
		want    bool
	}{
		{"acabada de criar", 0, true},
		{"2h59m", 2*time.Hour + 59*time.Minute, true},
		{"exatamente 3h", 3 * time.Hour, true}, // fronteira inclusiva
		{"3h e 1 segundo", 3*time.Hour + time.Second, false},
		{"um dia depois", 24 * time.Hour, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			createdAt := now.Add(-tc.elapsed)
			assert.Equal(t, tc.want, rules.CanCancel(createdAt, now))
		})
	}
}

func TestCancelamento_TempoRestante(t *testing.T) {
	rules := order.DefaultRules()

	createdAt := now.Add(-(2*time.Hour + 59*time.Minute))
	assert.Equal(t, time.Minute, rules.CancelRemaining(createdAt, now))

	// Janela fechada devolve zero, nunca negativo.
	createdAt = now.Add(-5 * time.Hour)
	assert.Equal(t, time.Duration(0), rules.CancelRemaining(createdAt, now))
}

func TestFormatRemaining(t *testing.T) {
	cases := []struct {
		remaining time.Duration
		want      string
	}{
		{time.Minute, "0h 1m restantes"},
		{2*time.Hour + 30*time.Minute, "2h 30m restantes"},
		{3 * time.Hour, "3h 0m restantes"},
		{45 * time.Second, "0h 0m restantes"}, // trunca segundos
		{0, "0h 0m restantes"},
		{-time.Minute, "0h 0m restantes"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, order.FormatRemaining(tc.remaining))
	}
}

// Cenário do fluxo real: encomenda criada há 2h59m mostra botão de cancelar
// com "0h 1m restantes"; um segundo depois das 3h já não mostra.
func TestCancelamento_CenarioCompleto(t *testing.T) {
	rules := order.DefaultRules()

	createdAt := now.Add(-(2*time.Hour + 59*time.Minute))
	require.True(t, rules.CanCancel(createdAt, now))
	assert.Equal(t, "0h 1m restantes", order.FormatRemaining(rules.CancelRemaining(createdAt, now)))

	createdAt = now.Add(-(3*time.Hour + time.Second))
	assert.False(t, rules.CanCancel(createdAt, now))
}
