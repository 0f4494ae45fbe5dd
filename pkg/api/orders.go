package api

import "github.com/iudanet/storefront/internal/models"

// AddToCartRequest запрос на добавление товара в корзину
type AddToCartRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// UpdateCartItemRequest запрос на изменение количества
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// CartTotalResponse сумма корзины, посчитанная сервером
type CartTotalResponse struct {
	Total float64 `json:"total"`
}

// CreateOrderRequest запрос на создание заказа из текущей корзины
type CreateOrderRequest struct {
	PaymentMethod   models.PaymentMethod `json:"paymentMethod"`
	ShippingAddress string               `json:"shippingAddress"`
	Notes           string               `json:"notes,omitempty"`
}

// ProcessPaymentRequest запрос на оплату заказа
type ProcessPaymentRequest struct {
	PaymentMethod models.PaymentMethod `json:"paymentMethod"`
	CardNumber    string               `json:"cardNumber"`
	CVV           string               `json:"cvv"`
	ExpiryDate    string               `json:"expiryDate"`
}

// UpdateOrderStatusRequest запрос на смену статуса заказа (продавец)
type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status"`
}
