// Package pdf implementa a geração do comprovativo de encomenda em PDF.
//
// Layout da página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: AgriLink  │  N° Carrinho + Data                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  COMPRADOR: Nome / Empresa / Contacto                       │
//	│  ENTREGA: Data de entrega prevista                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABELA: Qtd | Produto | Preço Unit. | Subtotal             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL DO CARRINHO (Kz)                                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RODAPÉ: QR com o CartID + nota legal                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/orbislink/agrilink-api/internal/application/ports"
	"github.com/orbislink/agrilink-api/internal/domain/entity"
)

// ── Paleta de cores ───────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 22, Green: 101, Blue: 52} // verde AgriLink
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Verificação em tempo de compilação.
var _ ports.ReceiptGenerator = (*MarotoReceiptGenerator)(nil)

// MarotoReceiptGenerator implementa ReceiptGenerator usando Maroto v2.
type MarotoReceiptGenerator struct{}

// NewMarotoReceiptGenerator constrói o gerador.
func NewMarotoReceiptGenerator() *MarotoReceiptGenerator { return &MarotoReceiptGenerator{} }

// GenerateOrderReceipt gera o PDF do carrinho e devolve os bytes.
// Assume len(orders) > 0 e todas com o mesmo CartID.
func (g *MarotoReceiptGenerator) GenerateOrderReceipt(
	_ context.Context,
	buyer *entity.User,
	orders []*entity.Order,
) ([]byte, error) {
	if len(orders) == 0 {
		return nil, fmt.Errorf("pdf: carrinho sem linhas")
	}
	first := orders[0]

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprovativo de Encomenda AgriLink", true).
		WithAuthor("AgriLink", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(first))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(buyerRow(buyer, first))
	m.AddRows(deliveryRow(first))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(orders) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(cartTotal(orders)))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range footerRows(first) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secções ───────────────────────────────────────────────────────────────────

// headerRow: marca (esq) e N° de carrinho + data (dir).
func headerRow(first *entity.Order) core.Row {
	data := first.CreatedAt.Format("02/01/2006 15:04")

	return row.New(18).Add(
		col.New(7).Add(
			text.New("AgriLink", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Mercado agrícola B2B de Angola", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("COMPROVATIVO DE ENCOMENDA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(shortID(first.CartID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Data: "+data, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// buyerRow: dados do comprador.
func buyerRow(buyer *entity.User, first *entity.Order) core.Row {
	company := first.CompanyName
	if company == "" {
		company = buyer.CompanyName
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("COMPRADOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(first.ContactName, buyer.FullName), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Empresa: %s   |   Tel: %s   |   Email: %s",
				nonEmpty(company, "—"),
				nonEmpty(first.ContactPhone, buyer.Phone),
				buyer.Email,
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// deliveryRow: data de entrega prevista (partilhada pelo carrinho).
func deliveryRow(first *entity.Order) core.Row {
	return row.New(8).Add(
		col.New(12).Add(
			text.New("Entrega prevista: "+first.DeliveryDate.Format("02/01/2006"), props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 2,
			}),
		),
	)
}

// tableHeaderRow: cabeçalho da tabela de linhas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qtd.", 2, align.Center),
		h("Produto", 5, align.Left),
		h("Preço Unit. (Kz)", 2, align.Right),
		h("Subtotal (Kz)", 3, align.Right),
	)
}

// tableLineRows: uma fila por linha do carrinho.
func tableLineRows(orders []*entity.Order) []core.Row {
	result := make([]core.Row, 0, len(orders))
	for _, o := range orders {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				o.Quantity.String(),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				o.ProductName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				formatMoney(o.UnitPriceKz.StringFixed(0)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				formatMoney(o.TotalKz.StringFixed(0)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalRow: total do carrinho alinhado à direita.
func totalRow(total decimal.Decimal) core.Row {
	return row.New(12).Add(
		col.New(6),
		col.New(3).Add(
			text.New("TOTAL DO CARRINHO:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 2, Top: 2,
			}),
		),
		col.New(3).Add(
			text.New(formatMoney(total.StringFixed(0))+" Kz", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 1, Top: 2,
			}),
		),
	)
}

// footerRows: QR com o identificador do carrinho + nota.
func footerRows(first *entity.Order) []core.Row {
	return []core.Row{
		row.New(40).Add(
			col.New(4).Add(code.NewQr("agrilink:cart:"+first.CartID, props.Rect{
				Percent: 90,
				Center:  true,
			})),
			col.New(8).Add(
				text.New("Apresente este código QR ao agente\nAgriLink na entrega.", props.Text{
					Size: 8, Top: 4, Left: 3, Color: colorGray,
				}),
				text.New("Este documento não é uma fatura.\nO pagamento é acordado entre as partes.", props.Text{
					Size: 7, Top: 20, Left: 3, Color: colorGray,
				}),
			),
		),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// shortID devolve os primeiros 8 caracteres de um UUID para exibição.
func shortID(id string) string {
	if len(id) > 8 {
		return "#" + id[:8]
	}
	return "#" + id
}

// formatMoney insere pontos de milhares num string numérico sem decimais.
// Ex: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}

func cartTotal(orders []*entity.Order) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.TotalKz)
	}
	return total
}
