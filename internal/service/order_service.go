package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"delivery-track/internal/dto"
	"delivery-track/internal/model"
)

// Interface que o repository deve implementar
type OrderRepository interface {
	Create(ctx context.Context, o *model.Order) error
	FindAll(ctx context.Context, ownerID string) ([]model.Order, error)
	FindByDay(ctx context.Context, start, end time.Time, skip, limit int64) ([]model.Order, int64, error)
	FindByID(ctx context.Context, id string) (*model.Order, error)
	Replace(ctx context.Context, id string, o *model.Order) error
	SetPaymentStatus(ctx context.Context, id string, status model.PaymentStatus) error
	Delete(ctx context.Context, id string) error
}

// EventPublisher publica eventos de pedido (implementado por rabbit).
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// Erros de negócio exportados (os usa o controller)
var (
	ErrProductNotFound      = errors.New("produto não encontrado")
	ErrInvalidStatus        = errors.New("status de pedido inválido")
	ErrInvalidPaymentStatus = errors.New("status de pagamento inválido")
	ErrInvalidPaymentMethod = errors.New("método de pagamento inválido")
)

// Valores válidos por enumeração. Transições de status são livres: qualquer
// status pode substituir qualquer outro numa edição.
var validStatuses = map[model.OrderStatus]bool{
	model.StatusPending:    true,
	model.StatusInDelivery: true,
	model.StatusDelivered:  true,
	model.StatusCancelled:  true,
}

var validPaymentStatuses = map[model.PaymentStatus]bool{
	model.PaymentPaid:    true,
	model.PaymentPending: true,
}

var validPaymentMethods = map[model.PaymentMethod]bool{
	model.PaymentCreditCard: true,
	model.PaymentDebitCard:  true,
	model.PaymentCash:       true,
	model.PaymentPix:        true,
}

const defaultPageSize = 10

type OrderService struct {
	orderRepo   OrderRepository
	productRepo ProductRepository
	clientRepo  ClientRepository
	userRepo    UserRepository
	publisher   EventPublisher
}

func NewOrderService(orderRepo OrderRepository, productRepo ProductRepository, clientRepo ClientRepository, userRepo UserRepository, publisher EventPublisher) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		clientRepo:  clientRepo,
		userRepo:    userRepo,
		publisher:   publisher,
	}
}

// priceItems calcula o preço de cada linha a partir do catálogo atual:
// preço da linha = quantidade x preço unitário do produto no momento da
// gravação. O total é a soma das linhas. Preços enviados pelo cliente são
// ignorados.
func (s *OrderService) priceItems(ctx context.Context, items []dto.OrderItemRequest) ([]model.OrderItem, float64, error) {
	var total float64
	priced := make([]model.OrderItem, 0, len(items))

	for _, item := range items {
		product, err := s.productRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %s", ErrProductNotFound, item.ProductID)
		}

		linePrice := product.Price * float64(item.Quantity)
		priced = append(priced, model.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     linePrice,
		})
		total += linePrice
	}
	return priced, total, nil
}

func (s *OrderService) Create(ctx context.Context, userID string, req dto.OrderRequest) (*model.Order, error) {
	status, paymentStatus, method, err := resolveStatuses(req, model.StatusPending, model.PaymentPending)
	if err != nil {
		return nil, err
	}

	items, total, err := s.priceItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	order := &model.Order{
		UserID:            userID,
		ClientID:          req.ClientID,
		Items:             items,
		TotalPrice:        total,
		Status:            status,
		PaymentStatus:     paymentStatus,
		PaymentMethod:     method,
		AdditionalAddress: req.AdditionalAddress,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("falha ao gravar pedido: %w", err)
	}

	s.publish("order.created", orderEvent(order))
	return order, nil
}

// Update substitui o documento inteiro. Os itens são reprecificados contra
// o catálogo atual; pedidos não editados permanecem com os preços da época.
func (s *OrderService) Update(ctx context.Context, id string, req dto.OrderRequest) (*model.Order, error) {
	existing, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	status, paymentStatus, method, err := resolveStatuses(req, existing.Status, existing.PaymentStatus)
	if err != nil {
		return nil, err
	}

	items, total, err := s.priceItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	order := &model.Order{
		UserID:            existing.UserID,
		ClientID:          req.ClientID,
		Items:             items,
		TotalPrice:        total,
		Status:            status,
		PaymentStatus:     paymentStatus,
		PaymentMethod:     method,
		AdditionalAddress: req.AdditionalAddress,
		CreatedAt:         existing.CreatedAt,
	}

	if err := s.orderRepo.Replace(ctx, id, order); err != nil {
		return nil, err
	}

	s.publish("order.updated", orderEvent(order))
	return order, nil
}

func (s *OrderService) Delete(ctx context.Context, id string) error {
	if err := s.orderRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.publish("order.deleted", map[string]interface{}{"orderId": id})
	return nil
}

func (s *OrderService) List(ctx context.Context, ownerID string) ([]model.Order, error) {
	return s.orderRepo.FindAll(ctx, ownerID)
}

func (s *OrderService) GetByID(ctx context.Context, id string) (*model.Order, error) {
	return s.orderRepo.FindByID(ctx, id)
}

// ListByDay pagina os pedidos criados dentro do dia civil de `day`
// (limites inclusivos: de 00:00:00 até antes da meia-noite seguinte).
func (s *OrderService) ListByDay(ctx context.Context, day time.Time, page, limit int) (*dto.OrdersPage, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageSize
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)
	skip := int64(page-1) * int64(limit)

	orders, total, err := s.orderRepo.FindByDay(ctx, start, end, skip, int64(limit))
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []model.Order{}
	}

	return &dto.OrdersPage{Orders: orders, Total: total}, nil
}

// ConfirmPayment marca o pedido como pago. Chamado pelo consumidor de
// confirmações de pagamento.
func (s *OrderService) ConfirmPayment(ctx context.Context, orderID string) error {
	return s.orderRepo.SetPaymentStatus(ctx, orderID, model.PaymentPaid)
}

func resolveStatuses(req dto.OrderRequest, defaultStatus model.OrderStatus, defaultPayment model.PaymentStatus) (model.OrderStatus, model.PaymentStatus, model.PaymentMethod, error) {
	status := defaultStatus
	if req.Status != "" {
		status = model.OrderStatus(req.Status)
		if !validStatuses[status] {
			return "", "", "", ErrInvalidStatus
		}
	}

	paymentStatus := defaultPayment
	if req.PaymentStatus != "" {
		paymentStatus = model.PaymentStatus(req.PaymentStatus)
		if !validPaymentStatuses[paymentStatus] {
			return "", "", "", ErrInvalidPaymentStatus
		}
	}

	var method model.PaymentMethod
	if req.PaymentMethod != "" {
		method = model.PaymentMethod(req.PaymentMethod)
		if !validPaymentMethods[method] {
			return "", "", "", ErrInvalidPaymentMethod
		}
	}

	return status, paymentStatus, method, nil
}

func orderEvent(o *model.Order) map[string]interface{} {
	return map[string]interface{}{
		"orderId":       o.ID.Hex(),
		"userId":        o.UserID,
		"clientId":      o.ClientID,
		"status":        o.Status,
		"paymentStatus": o.PaymentStatus,
		"total":         o.TotalPrice,
	}
}

// publish envia o evento sem derrubar a operação: falha de mensageria é
// registrada e seguimos em frente.
func (s *OrderService) publish(routingKey string, payload map[string]interface{}) {
	if s.publisher == nil {
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Falha ao serializar evento %s: %v", routingKey, err)
		return
	}
	if err := s.publisher.Publish(routingKey, body); err != nil {
		log.Printf("Aviso: falha ao publicar evento %s: %v", routingKey, err)
	}
}
