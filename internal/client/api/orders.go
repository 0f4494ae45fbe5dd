package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/iudanet/storefront/internal/models"
	"github.com/iudanet/storefront/pkg/api"
)

// CreateOrder создает заказ из текущей корзины
func (c *Client) CreateOrder(ctx context.Context, req api.CreateOrderRequest) (*models.Order, error) {
	var order models.Order
	if err := c.post(ctx, "/orders", req, &order); err != nil {
		return nil, fmt.Errorf("create order request failed: %w", err)
	}
	return &order, nil
}

// ProcessPayment оплачивает заказ
func (c *Client) ProcessPayment(ctx context.Context, orderID string, req api.ProcessPaymentRequest) (*models.Order, error) {
	var order models.Order
	if err := c.post(ctx, "/orders/"+url.PathEscape(orderID)+"/pay", req, &order); err != nil {
		return nil, fmt.Errorf("process payment request failed: %w", err)
	}
	return &order, nil
}

// ListMyOrders получает заказы покупателя
func (c *Client) ListMyOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := c.get(ctx, "/orders", &orders); err != nil {
		return nil, fmt.Errorf("list orders request failed: %w", err)
	}
	return orders, nil
}

// ListMySales получает продажи текущего пользователя
func (c *Client) ListMySales(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := c.get(ctx, "/orders/sales", &orders); err != nil {
		return nil, fmt.Errorf("list sales request failed: %w", err)
	}
	return orders, nil
}

// GetOrder получает детали заказа
func (c *Client) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	if err := c.get(ctx, "/orders/"+url.PathEscape(orderID), &order); err != nil {
		return nil, fmt.Errorf("get order request failed: %w", err)
	}
	return &order, nil
}

// CancelOrder отменяет заказ
func (c *Client) CancelOrder(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	if err := c.patch(ctx, "/orders/"+url.PathEscape(orderID)+"/cancel", struct{}{}, &order); err != nil {
		return nil, fmt.Errorf("cancel order request failed: %w", err)
	}
	return &order, nil
}

// UpdateOrderStatus меняет статус заказа
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID string, status models.OrderStatus) (*models.Order, error) {
	var order models.Order
	req := api.UpdateOrderStatusRequest{Status: status}
	if err := c.patch(ctx, "/orders/"+url.PathEscape(orderID)+"/status", req, &order); err != nil {
		return nil, fmt.Errorf("update order status request failed: %w", err)
	}
	return &order, nil
}
