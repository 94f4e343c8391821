package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/orbislink/agrilink-api/internal/application/dto"
	"github.com/orbislink/agrilink-api/internal/application/ports"
	"github.com/orbislink/agrilink-api/internal/domain"
	"github.com/orbislink/agrilink-api/internal/domain/entity"
	"github.com/orbislink/agrilink-api/internal/domain/order"
	"github.com/orbislink/agrilink-api/internal/domain/repository"
	"github.com/orbislink/agrilink-api/pkg/logger"
)

// Transições de estado permitidas ao produtor.
var statusTransitions = map[string]string{
	entity.OrderPending:    entity.OrderAccepted,
	entity.OrderAccepted:   entity.OrderInProgress,
	entity.OrderInProgress: entity.OrderCompleted,
}

// OrderUseCase colocação, consulta, cancelamento e avanço de encomendas.
type OrderUseCase struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	subsRepo    repository.PushSubscriptionRepository
	txRunner    OrderTxRunner
	pushSender  ports.PushSender
	realtime    ports.RealtimePublisher
	receiptGen  ports.ReceiptGenerator
	rules       order.Rules
	log         *logger.Logger
}

// NewOrderUseCase constrói o caso de uso.
func NewOrderUseCase(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	subsRepo repository.PushSubscriptionRepository,
	txRunner OrderTxRunner,
	pushSender ports.PushSender,
	realtime ports.RealtimePublisher,
	receiptGen ports.ReceiptGenerator,
	rules order.Rules,
	log *logger.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		subsRepo:    subsRepo,
		txRunner:    txRunner,
		pushSender:  pushSender,
		realtime:    realtime,
		receiptGen:  receiptGen,
		rules:       rules,
		log:         log,
	}
}

// PlaceOrder valida a admissibilidade do carrinho e grava uma encomenda por
// linha, todas com o mesmo CartID, numa transação junto das notificações dos
// produtores. O push aos produtores é melhor esforço, fora da transação.
func (uc *OrderUseCase) PlaceOrder(ctx context.Context, buyerID string, in dto.PlaceOrderRequest) (*dto.PlaceOrderResponse, error) {
	now := time.Now()

	// Resolver produtos e montar as linhas de regra.
	products := make([]*entity.Product, 0, len(in.Lines))
	lines := make([]order.Line, 0, len(in.Lines))
	for _, l := range in.Lines {
		if l.Quantity.IsNegative() || l.Quantity.IsZero() {
			return nil, domain.ErrInvalidInput
		}
		p, err := uc.productRepo.GetByID(ctx, l.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("%w: produto %s", domain.ErrNotFound, l.ProductID)
		}
		products = append(products, p)
		lines = append(lines, order.Line{Quantity: l.Quantity, UnitPriceKz: p.PriceKz})
	}

	adm := uc.rules.CheckAdmissibility(lines, in.DeliveryDate, now, map[string]string{
		"company_name":  in.CompanyName,
		"contact_name":  in.ContactName,
		"contact_phone": in.ContactPhone,
	})
	if !adm.OK() {
		return nil, adm.Err()
	}

	cartID := uuid.New().String()
	orders := make([]*entity.Order, 0, len(in.Lines))
	producers := make(map[string]struct{})
	for i, l := range in.Lines {
		p := products[i]
		orders = append(orders, &entity.Order{
			ID:           uuid.New().String(),
			CartID:       cartID,
			BuyerID:      buyerID,
			ProducerID:   p.ProducerID,
			ProductID:    p.ID,
			ProductName:  p.Name,
			Quantity:     l.Quantity,
			UnitPriceKz:  p.PriceKz,
			TotalKz:      lines[i].Subtotal(),
			Status:       entity.OrderPending,
			DeliveryDate: in.DeliveryDate,
			CompanyName:  in.CompanyName,
			ContactName:  in.ContactName,
			ContactPhone: in.ContactPhone,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		producers[p.ProducerID] = struct{}{}
	}

	err := uc.txRunner.RunOrders(ctx, func(orderRepo repository.OrderRepository, notifRepo repository.NotificationRepository) error {
		for _, o := range orders {
			if err := orderRepo.Create(ctx, o); err != nil {
				return err
			}
		}
		for producerID := range producers {
			n := &entity.Notification{
				ID:        uuid.New().String(),
				UserID:    producerID,
				Title:     "Nova encomenda",
				Body:      fmt.Sprintf("Recebeu uma nova encomenda de %s.", in.CompanyName),
				Kind:      "order",
				CreatedAt: now,
			}
			if err := notifRepo.Create(ctx, n); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for producerID := range producers {
		uc.notifyProducer(producerID, in.CompanyName)
	}

	items := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		items = append(items, *uc.toOrderResponse(o, now))
	}
	return &dto.PlaceOrderResponse{
		CartID:  cartID,
		TotalKz: adm.TotalKz,
		Orders:  items,
	}, nil
}

// List devolve as encomendas do utilizador: colocadas (comprador) ou recebidas (agricultor).
func (uc *OrderUseCase) List(ctx context.Context, userID, role string, limit, offset int) ([]dto.OrderResponse, error) {
	var (
		list []*entity.Order
		err  error
	)
	if role == entity.RoleAgricultor {
		list, err = uc.orderRepo.ListByProducer(ctx, userID, limit, offset)
	} else {
		list, err = uc.orderRepo.ListByBuyer(ctx, userID, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	now := time.Now()
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *uc.toOrderResponse(o, now))
	}
	return items, nil
}

// Cancel cancela uma encomenda do comprador dentro da janela de 3 horas.
// A fronteira é inclusiva: exatamente 3 h decorridas ainda permite cancelar.
func (uc *OrderUseCase) Cancel(ctx context.Context, buyerID, orderID string) (*dto.OrderResponse, error) {
	o, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	if o.BuyerID != buyerID {
		return nil, domain.ErrForbidden
	}
	if o.Status == entity.OrderCancelled || o.Status == entity.OrderCompleted {
		return nil, domain.ErrConflict
	}
	now := time.Now()
	if !uc.rules.CanCancel(o.CreatedAt, now) {
		return nil, domain.ErrCancelWindowClosed
	}
	if err := uc.orderRepo.UpdateStatus(ctx, orderID, buyerID, entity.OrderCancelled); err != nil {
		return nil, err
	}
	o.Status = entity.OrderCancelled
	o.UpdatedAt = now
	return uc.toOrderResponse(o, now), nil
}

// UpdateStatus avança o estado em nome do produtor: pending → accepted →
// in_progress → completed. Qualquer outro salto devolve ErrConflict.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, producerID, orderID, newStatus string) (*dto.OrderResponse, error) {
	o, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	if o.ProducerID != producerID {
		return nil, domain.ErrForbidden
	}
	if statusTransitions[o.Status] != newStatus {
		return nil, domain.ErrConflict
	}
	if err := uc.orderRepo.UpdateStatus(ctx, orderID, producerID, newStatus); err != nil {
		return nil, err
	}
	now := time.Now()
	o.Status = newStatus
	o.UpdatedAt = now
	uc.realtime.NotifyRefresh(o.BuyerID)
	return uc.toOrderResponse(o, now), nil
}

// Receipt gera o comprovativo PDF do carrinho a que a encomenda pertence,
// delimitado ao comprador dono.
func (uc *OrderUseCase) Receipt(ctx context.Context, buyerID, orderID string) ([]byte, error) {
	o, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	if o.BuyerID != buyerID {
		return nil, domain.ErrForbidden
	}
	cart, err := uc.orderRepo.ListByCart(ctx, o.CartID, buyerID)
	if err != nil {
		return nil, err
	}
	buyer, err := uc.userRepo.GetByID(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	if buyer == nil {
		return nil, domain.ErrNotFound
	}
	return uc.receiptGen.GenerateOrderReceipt(ctx, buyer, cart)
}

// notifyProducer envia o push "nova encomenda" a todas as subscrições do
// produtor e sinaliza o canal realtime. Corre desanexado do pedido HTTP.
func (uc *OrderUseCase) notifyProducer(producerID, companyName string) {
	uc.realtime.NotifyRefresh(producerID)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		subs, err := uc.subsRepo.ListByUser(ctx, producerID)
		if err != nil {
			uc.log.Warn().Err(err).Str("producer_id", producerID).Msg("carregar subscrições push falhou")
			return
		}
		if len(subs) == 0 {
			return
		}
		results := uc.pushSender.SendAll(ctx, subs, ports.PushPayload{
			Title: "Nova encomenda",
			Body:  fmt.Sprintf("Recebeu uma nova encomenda de %s.", companyName),
			Tag:   "order",
			Data:  map[string]any{"type": "order"},
		})
		for _, res := range results {
			if res.Gone {
				if err := uc.subsRepo.DeleteEndpoint(ctx, res.Endpoint); err != nil {
					uc.log.Warn().Err(err).Msg("remover endpoint morto falhou")
				}
			}
		}
	}()
}

func (uc *OrderUseCase) toOrderResponse(o *entity.Order, now time.Time) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:           o.ID,
		CartID:       o.CartID,
		BuyerID:      o.BuyerID,
		ProducerID:   o.ProducerID,
		ProductID:    o.ProductID,
		ProductName:  o.ProductName,
		Quantity:     o.Quantity,
		UnitPriceKz:  o.UnitPriceKz,
		TotalKz:      o.TotalKz,
		Status:       o.Status,
		DeliveryDate: o.DeliveryDate,
		CompanyName:  o.CompanyName,
		ContactName:  o.ContactName,
		ContactPhone: o.ContactPhone,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
	if o.Status == entity.OrderPending && uc.rules.CanCancel(o.CreatedAt, now) {
		resp.CancelRemaining = order.FormatRemaining(uc.rules.CancelRemaining(o.CreatedAt, now))
	}
	return resp
}
