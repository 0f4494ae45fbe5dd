// Package orders заказы покупателя, продажи и checkout
package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	clientapi "github.com/iudanet/storefront/internal/client/api"
	"github.com/iudanet/storefront/internal/models"
	"github.com/iudanet/storefront/internal/validation"
	"github.com/iudanet/storefront/pkg/api"
)

// API вызовы backend для заказов. Реализуется api.Client.
type API interface {
	CreateOrder(ctx context.Context, req api.CreateOrderRequest) (*models.Order, error)
	ProcessPayment(ctx context.Context, orderID string, req api.ProcessPaymentRequest) (*models.Order, error)
	ListMyOrders(ctx context.Context) ([]models.Order, error)
	ListMySales(ctx context.Context) ([]models.Order, error)
	GetOrder(ctx context.Context, orderID string) (*models.Order, error)
	CancelOrder(ctx context.Context, orderID string) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status models.OrderStatus) (*models.Order, error)
}

// Service операции с заказами
type Service struct {
	api API
	log *zap.Logger
	now func() time.Time
}

// NewService создает сервис заказов
func NewService(ordersAPI API, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{api: ordersAPI, log: log.Named("orders"), now: time.Now}
}

// Create создает заказ из текущей корзины
func (s *Service) Create(ctx context.Context, req api.CreateOrderRequest) (*models.Order, error) {
	order, err := s.api.CreateOrder(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	s.log.Info("order created", zap.String("order_id", order.ID))
	return order, nil
}

// Pay оплачивает заказ
func (s *Service) Pay(ctx context.Context, orderID string, req api.ProcessPaymentRequest) (*models.Order, error) {
	order, err := s.api.ProcessPayment(ctx, orderID, req)
	if err != nil {
		return nil, fmt.Errorf("failed to pay order %s: %w", orderID, err)
	}
	s.log.Info("order paid", zap.String("order_id", orderID), zap.String("payment_status", string(order.PaymentStatus)))
	return order, nil
}

// Mine заказы покупателя
func (s *Service) Mine(ctx context.Context) ([]models.Order, error) {
	orders, err := s.api.ListMyOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// Sales продажи текущего пользователя
func (s *Service) Sales(ctx context.Context) ([]models.Order, error) {
	orders, err := s.api.ListMySales(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	return orders, nil
}

// Get детали заказа
func (s *Service) Get(ctx context.Context, orderID string) (*models.Order, error) {
	order, err := s.api.GetOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order %s: %w", orderID, err)
	}
	return order, nil
}

// Cancel отменяет заказ
func (s *Service) Cancel(ctx context.Context, orderID string) (*models.Order, error) {
	order, err := s.api.CancelOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel order %s: %w", orderID, err)
	}
	s.log.Info("order cancelled", zap.String("order_id", orderID))
	return order, nil
}

// UpdateStatus меняет статус заказа (продавец)
func (s *Service) UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, &validation.FieldError{Field: "status", Message: fmt.Sprintf("unknown order status %q", status)}
	}
	order, err := s.api.UpdateOrderStatus(ctx, orderID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update order %s status: %w", orderID, err)
	}
	return order, nil
}

// Receipt подтверждение оплаты
type Receipt struct {
	Timestamp       time.Time
	Order           *models.Order
	OrderID         string
	CardNumber      string
	ShippingAddress string
	Amount          float64
}

// msgPaymentFailed сообщение, если backend не объяснил причину
const msgPaymentFailed = "failed to process payment"

// CheckoutError ошибка checkout с сообщением для пользователя
type CheckoutError struct {
	Err     error
	Step    string
	Message string
}

func (e *CheckoutError) Error() string {
	return e.Step + ": " + e.Message
}

func (e *CheckoutError) Unwrap() error {
	return e.Err
}

func checkoutError(step string, err error) *CheckoutError {
	msg := msgPaymentFailed
	var httpErr *clientapi.HTTPError
	switch {
	case errors.As(err, &httpErr) && httpErr.Message != "":
		msg = httpErr.Message
	case errors.Is(err, clientapi.ErrServerUnreachable):
		msg = clientapi.Classify(err).Message
	}
	return &CheckoutError{Step: step, Message: msg, Err: err}
}

// ShippingAddress собирает адрес доставки: "адрес, город[, индекс]"
func ShippingAddress(form models.PaymentForm) string {
	parts := []string{strings.TrimSpace(form.Address), strings.TrimSpace(form.City)}
	if pc := strings.TrimSpace(form.PostalCode); pc != "" {
		parts = append(parts, pc)
	}
	return strings.Join(parts, ", ")
}

// Checkout проверяет форму, создает заказ из корзины и оплачивает его картой
func (s *Service) Checkout(ctx context.Context, form models.PaymentForm) (*Receipt, error) {
	if err := validation.ValidatePaymentForm(form); err != nil {
		return nil, err
	}

	address := ShippingAddress(form)
	order, err := s.api.CreateOrder(ctx, api.CreateOrderRequest{
		PaymentMethod:   models.PaymentCard,
		ShippingAddress: address,
		Notes:           strings.TrimSpace(form.Notes),
	})
	if err != nil {
		s.log.Warn("checkout: create order failed", zap.Error(err))
		return nil, checkoutError("create order", err)
	}
	if order == nil || order.ID == "" {
		return nil, &CheckoutError{Step: "create order", Message: "failed to create order"}
	}

	paid, err := s.api.ProcessPayment(ctx, order.ID, api.ProcessPaymentRequest{
		PaymentMethod: models.PaymentCard,
		CardNumber:    validation.NormalizeCardNumber(form.CardNumber),
		CVV:           form.CVV,
		ExpiryDate:    form.ExpiryDate,
	})
	if err != nil {
		s.log.Warn("checkout: payment failed", zap.String("order_id", order.ID), zap.Error(err))
		return nil, checkoutError("process payment", err)
	}

	amount := order.TotalAmount.Float()
	if paid != nil && paid.TotalAmount > 0 {
		amount = paid.TotalAmount.Float()
	}

	s.log.Info("checkout completed", zap.String("order_id", order.ID), zap.Float64("amount", amount))
	return &Receipt{
		OrderID:         order.ID,
		Order:           paid,
		CardNumber:      validation.MaskCardNumber(form.CardNumber),
		Amount:          amount,
		Timestamp:       s.now(),
		ShippingAddress: address,
	}, nil
}
