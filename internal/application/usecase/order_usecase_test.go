package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbislink/agrilink-api/internal/application/dto"
	"github.com/orbislink/agrilink-api/internal/application/ports"
	"github.com/orbislink/agrilink-api/internal/application/usecase"
	"github.com/orbislink/agrilink-api/internal/domain"
	"github.com/orbislink/agrilink-api/internal/domain/entity"
	"github.com/orbislink/agrilink-api/internal/domain/order"
	"github.com/orbislink/agrilink-api/internal/domain/repository"
	"github.com/orbislink/agrilink-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória
// ──────────────────────────────────────────────────────────────────────────────

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*entity.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*entity.Order)}
}

func (r *fakeOrderRepo) Create(_ context.Context, o *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) ListByBuyer(_ context.Context, buyerID string, _, _ int) ([]*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Order
	for _, o := range r.orders {
		if o.BuyerID == buyerID {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) ListByCart(_ context.Context, cartID, buyerID string) ([]*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Order
	for _, o := range r.orders {
		if o.CartID == cartID && o.BuyerID == buyerID {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) ListByProducer(_ context.Context, producerID string, _, _ int) ([]*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Order
	for _, o := range r.orders {
		if o.ProducerID == producerID {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, orderID, ownerID, newStatus string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[orderID]
	if !ok || (o.BuyerID != ownerID && o.ProducerID != ownerID) {
		return domain.ErrNotFound
	}
	o.Status = newStatus
	return nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return r.products[id], nil
}

func (r *fakeProductRepo) List(_ context.Context, _ repository.ProductFilter, _, _ int) ([]*entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) ListByProducer(_ context.Context, _ string, _, _ int) ([]*entity.Product, error) {
	return nil, nil
}

type fakeUserRepo struct {
	users map[string]*entity.User
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.users[u.ID] = u
	return nil
}
func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.users[id], nil
}
func (r *fakeUserRepo) GetByEmail(_ context.Context, _ string) (*entity.User, error) {
	return nil, nil
}
func (r *fakeUserRepo) GetAgentByCode(_ context.Context, _ string) (*entity.User, error) {
	return nil, nil
}
func (r *fakeUserRepo) Update(_ context.Context, _ *entity.User) error          { return nil }
func (r *fakeUserRepo) SetEmailVerified(_ context.Context, _ string) error      { return nil }
func (r *fakeUserRepo) SetPasswordHash(_ context.Context, _, _ string) error    { return nil }

type fakeSubsRepo struct {
	mu      sync.Mutex
	subs    map[string][]*entity.PushSubscription // userID → subscrições
	deleted []string                              // endpoints removidos
}

func newFakeSubsRepo() *fakeSubsRepo {
	return &fakeSubsRepo{subs: make(map[string][]*entity.PushSubscription)}
}

func (r *fakeSubsRepo) Upsert(_ context.Context, sub *entity.PushSubscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.subs[sub.UserID] {
		if s.Endpoint == sub.Endpoint {
			return nil
		}
	}
	r.subs[sub.UserID] = append(r.subs[sub.UserID], sub)
	return nil
}

func (r *fakeSubsRepo) ListByUser(_ context.Context, userID string) ([]*entity.PushSubscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.subs[userID], nil
}

func (r *fakeSubsRepo) DeleteByEndpoint(_ context.Context, userID, endpoint string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.subs[userID][:0]
	for _, s := range r.subs[userID] {
		if s.Endpoint != endpoint {
			kept = append(kept, s)
		}
	}
	r.subs[userID] = kept
	return nil
}

func (r *fakeSubsRepo) DeleteEndpoint(_ context.Context, endpoint string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleted = append(r.deleted, endpoint)
	return nil
}

type fakeNotifRepo struct {
	mu      sync.Mutex
	created []*entity.Notification
}

func (r *fakeNotifRepo) Create(_ context.Context, n *entity.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, n)
	return nil
}
func (r *fakeNotifRepo) ListByUser(_ context.Context, _ string, _, _ int) ([]*entity.Notification, error) {
	return nil, nil
}
func (r *fakeNotifRepo) CountUnread(_ context.Context, _ string) (int64, error) { return 0, nil }
func (r *fakeNotifRepo) MarkRead(_ context.Context, _, _ string) error          { return nil }
func (r *fakeNotifRepo) MarkAllRead(_ context.Context, _ string) error          { return nil }

// fakeTxRunner executa o callback diretamente sobre os fakes, sem transação.
type fakeTxRunner struct {
	orderRepo *fakeOrderRepo
	notifRepo *fakeNotifRepo
}

func (r *fakeTxRunner) RunOrders(ctx context.Context, fn func(repository.OrderRepository, repository.NotificationRepository) error) error {
	return fn(r.orderRepo, r.notifRepo)
}

type fakePushSender struct {
	mu      sync.Mutex
	calls   int
	results []ports.PushResult
}

func (s *fakePushSender) SendAll(_ context.Context, subs []*entity.PushSubscription, _ ports.PushPayload) []ports.PushResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.results != nil {
		return s.results
	}
	out := make([]ports.PushResult, 0, len(subs))
	for _, sub := range subs {
		out = append(out, ports.PushResult{Endpoint: sub.Endpoint, Success: true})
	}
	return out
}

type fakeRealtime struct {
	mu       sync.Mutex
	notified []string
}

func (r *fakeRealtime) NotifyRefresh(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notified = append(r.notified, userID)
}

type fakeReceiptGen struct{}

func (g *fakeReceiptGen) GenerateOrderReceipt(_ context.Context, _ *entity.User, _ []*entity.Order) ([]byte, error) {
	return []byte("%PDF-1.7 fake"), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Cenário base
// ──────────────────────────────────────────────────────────────────────────────

type orderFixture struct {
	uc        *usecase.OrderUseCase
	orderRepo *fakeOrderRepo
	notifRepo *fakeNotifRepo
	subsRepo  *fakeSubsRepo
	realtime  *fakeRealtime
	products  *fakeProductRepo
}

const (
	buyerID     = "buyer-1"
	producerAID = "producer-a"
	producerBID = "producer-b"
)

func newOrderFixture() *orderFixture {
	orderRepo := newFakeOrderRepo()
	notifRepo := &fakeNotifRepo{}
	subsRepo := newFakeSubsRepo()
	realtime := &fakeRealtime{}
	products := &fakeProductRepo{products: map[string]*entity.Product{
		"p-milho": {
			ID: "p-milho", ProducerID: producerAID, Type: "milho", Name: "Milho branco",
			Quantity: decimal.NewFromInt(5000), Unit: "saco de 50kg",
			PriceKz: decimal.NewFromInt(20000),
		},
		"p-cafe": {
			ID: "p-cafe", ProducerID: producerBID, Type: "café", Name: "Café robusta",
			Quantity: decimal.NewFromInt(800), Unit: "saco de 50kg",
			PriceKz: decimal.NewFromInt(90000),
		},
	}}
	users := &fakeUserRepo{users: map[string]*entity.User{
		buyerID: {ID: buyerID, FullName: "Comprador Lda", Role: entity.RoleComprador},
	}}

	log := logger.New(logger.Config{Env: "development", Level: "error"})
	uc := usecase.NewOrderUseCase(
		orderRepo, products, users, subsRepo,
		&fakeTxRunner{orderRepo: orderRepo, notifRepo: notifRepo},
		&fakePushSender{}, realtime, &fakeReceiptGen{},
		order.DefaultRules(), log,
	)
	return &orderFixture{
		uc: uc, orderRepo: orderRepo, notifRepo: notifRepo,
		subsRepo: subsRepo, realtime: realtime, products: products,
	}
}

func validRequest() dto.PlaceOrderRequest {
	return dto.PlaceOrderRequest{
		Lines: []dto.OrderLineRequest{
			{ProductID: "p-milho", Quantity: decimal.NewFromInt(30)}, // 600.000 Kz
			{ProductID: "p-cafe", Quantity: decimal.NewFromInt(5)},   // 450.000 Kz
		},
		DeliveryDate: time.Now().AddDate(0, 0, 7),
		CompanyName:  "Distribuidora Kwanza",
		ContactName:  "Maria dos Santos",
		ContactPhone: "+244 923 000 000",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// PlaceOrder
// ──────────────────────────────────────────────────────────────────────────────

func TestPlaceOrder_Sucesso_UmaEncomendaPorLinha(t *testing.T) {
	f := newOrderFixture()

	out, err := f.uc.PlaceOrder(context.Background(), buyerID, validRequest())
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Len(t, out.Orders, 2, "cada linha do carrinho vira uma encomenda")
	assert.NotEmpty(t, out.CartID)
	for _, o := range out.Orders {
		assert.Equal(t, out.CartID, o.CartID, "todas as linhas partilham o cart_id")
		assert.Equal(t, entity.OrderPending, o.Status)
		assert.NotEmpty(t, o.CancelRemaining, "encomenda recém-criada ainda está na janela de cancelamento")
	}
	// Total = 30×20.000 + 5×90.000 = 1.050.000 Kz
	assert.True(t, out.TotalKz.Equal(decimal.NewFromInt(1050000)), "total: %s", out.TotalKz)

	// Uma notificação por produtor distinto, criada na mesma transação.
	assert.Len(t, f.notifRepo.created, 2)

	// Sinal realtime para cada produtor.
	f.realtime.mu.Lock()
	defer f.realtime.mu.Unlock()
	assert.ElementsMatch(t, []string{producerAID, producerBID}, f.realtime.notified)
}

func TestPlaceOrder_AbaixoDoMinimo(t *testing.T) {
	f := newOrderFixture()

	in := validRequest()
	// 10×20.000 = 200.000 Kz, abaixo de 1.000.000
	in.Lines = []dto.OrderLineRequest{{ProductID: "p-milho", Quantity: decimal.NewFromInt(10)}}

	_, err := f.uc.PlaceOrder(context.Background(), buyerID, in)
	assert.ErrorIs(t, err, domain.ErrOrderBelowMinimum)
	assert.Empty(t, f.orderRepo.orders, "nada deve ser persistido")
}

func TestPlaceOrder_TotalExatoNoMinimo_EhAdmissivel(t *testing.T) {
	f := newOrderFixture()

	in := validRequest()
	// 50×20.000 = exatamente 1.000.000 Kz; a fronteira é inclusiva.
	in.Lines = []dto.OrderLineRequest{{ProductID: "p-milho", Quantity: decimal.NewFromInt(50)}}

	out, err := f.uc.PlaceOrder(context.Background(), buyerID, in)
	require.NoError(t, err)
	assert.True(t, out.TotalKz.Equal(decimal.NewFromInt(1000000)))
}

func TestPlaceOrder_EntregaForaDaJanela(t *testing.T) {
	f := newOrderFixture()

	in := validRequest()
	in.DeliveryDate = time.Now().AddDate(0, 0, 20) // além dos 14 dias

	_, err := f.uc.PlaceOrder(context.Background(), buyerID, in)
	assert.ErrorIs(t, err, domain.ErrDeliveryOutOfRange)
}

func TestPlaceOrder_EntregaNoPassado(t *testing.T) {
	f := newOrderFixture()

	in := validRequest()
	in.DeliveryDate = time.Now().AddDate(0, 0, -1)

	_, err := f.uc.PlaceOrder(context.Background(), buyerID, in)
	assert.ErrorIs(t, err, domain.ErrDeliveryOutOfRange)
}

func TestPlaceOrder_ContactoEmFalta(t *testing.T) {
	f := newOrderFixture()

	in := validRequest()
	in.ContactPhone = ""

	_, err := f.uc.PlaceOrder(context.Background(), buyerID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPlaceOrder_QuantidadeZero(t *testing.T) {
	f := newOrderFixture()

	in := validRequest()
	in.Lines[0].Quantity = decimal.Zero

	_, err := f.uc.PlaceOrder(context.Background(), buyerID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPlaceOrder_ProdutoInexistente(t *testing.T) {
	f := newOrderFixture()

	in := validRequest()
	in.Lines[0].ProductID = "nao-existe"

	_, err := f.uc.PlaceOrder(context.Background(), buyerID, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cancel
// ──────────────────────────────────────────────────────────────────────────────

func seedOrder(f *orderFixture, createdAt time.Time, status string) *entity.Order {
	o := &entity.Order{
		ID: "o-1", CartID: "c-1", BuyerID: buyerID, ProducerID: producerAID,
		ProductID: "p-milho", ProductName: "Milho branco",
		Quantity: decimal.NewFromInt(60), UnitPriceKz: decimal.NewFromInt(20000),
		TotalKz: decimal.NewFromInt(1200000), Status: status,
		DeliveryDate: createdAt.AddDate(0, 0, 7),
		CreatedAt:    createdAt, UpdatedAt: createdAt,
	}
	_ = f.orderRepo.Create(context.Background(), o)
	return o
}

func TestCancel_DentroDaJanela(t *testing.T) {
	f := newOrderFixture()
	seedOrder(f, time.Now().Add(-1*time.Hour), entity.OrderPending)

	out, err := f.uc.Cancel(context.Background(), buyerID, "o-1")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderCancelled, out.Status)
}

func TestCancel_ExatamenteTresHoras_AindaPermite(t *testing.T) {
	f := newOrderFixture()
	// Margem de um segundo dentro da janela para não depender do relógio do teste.
	seedOrder(f, time.Now().Add(-3*time.Hour+time.Second), entity.OrderPending)

	_, err := f.uc.Cancel(context.Background(), buyerID, "o-1")
	assert.NoError(t, err, "a fronteira das 3 horas é inclusiva")
}

func TestCancel_JanelaFechada(t *testing.T) {
	f := newOrderFixture()
	seedOrder(f, time.Now().Add(-4*time.Hour), entity.OrderPending)

	_, err := f.uc.Cancel(context.Background(), buyerID, "o-1")
	assert.ErrorIs(t, err, domain.ErrCancelWindowClosed)
}

func TestCancel_DeOutroComprador(t *testing.T) {
	f := newOrderFixture()
	seedOrder(f, time.Now(), entity.OrderPending)

	_, err := f.uc.Cancel(context.Background(), "outro-comprador", "o-1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCancel_JaCancelada(t *testing.T) {
	f := newOrderFixture()
	seedOrder(f, time.Now(), entity.OrderCancelled)

	_, err := f.uc.Cancel(context.Background(), buyerID, "o-1")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateStatus
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateStatus_TransicaoValida(t *testing.T) {
	f := newOrderFixture()
	seedOrder(f, time.Now(), entity.OrderPending)

	out, err := f.uc.UpdateStatus(context.Background(), producerAID, "o-1", entity.OrderAccepted)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderAccepted, out.Status)

	// O comprador é sinalizado para atualizar o dashboard.
	f.realtime.mu.Lock()
	defer f.realtime.mu.Unlock()
	assert.Contains(t, f.realtime.notified, buyerID)
}

func TestUpdateStatus_SaltoInvalido(t *testing.T) {
	f := newOrderFixture()
	seedOrder(f, time.Now(), entity.OrderPending)

	// pending → completed salta accepted e in_progress.
	_, err := f.uc.UpdateStatus(context.Background(), producerAID, "o-1", entity.OrderCompleted)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUpdateStatus_DeOutroProdutor(t *testing.T) {
	f := newOrderFixture()
	seedOrder(f, time.Now(), entity.OrderPending)

	_, err := f.uc.UpdateStatus(context.Background(), producerBID, "o-1", entity.OrderAccepted)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Receipt
// ──────────────────────────────────────────────────────────────────────────────

func TestReceipt_DevolvePDFDoCarrinho(t *testing.T) {
	f := newOrderFixture()
	seedOrder(f, time.Now(), entity.OrderPending)

	pdf, err := f.uc.Receipt(context.Background(), buyerID, "o-1")
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
}

func TestReceipt_DeOutroComprador(t *testing.T) {
	f := newOrderFixture()
	seedOrder(f, time.Now(), entity.OrderPending)

	_, err := f.uc.Receipt(context.Background(), "outro-comprador", "o-1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
