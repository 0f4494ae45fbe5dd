package models

// OrderStatus статус заказа
type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderProcessing OrderStatus = "PROCESSING"
	OrderShipped    OrderStatus = "SHIPPED"
	OrderDelivered  OrderStatus = "DELIVERED"
	OrderCancelled  OrderStatus = "CANCELLED"
	OrderCompleted  OrderStatus = "COMPLETED"
)

// Valid проверяет, что статус входит в известный набор
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled, OrderCompleted:
		return true
	}
	return false
}

// PaymentStatus статус оплаты
type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "PENDING"
	PaymentProcessing PaymentStatus = "PROCESSING"
	PaymentCompleted  PaymentStatus = "COMPLETED"
	PaymentFailed     PaymentStatus = "FAILED"
	PaymentRefunded   PaymentStatus = "REFUNDED"
)

// PaymentMethod способ оплаты
type PaymentMethod string

const (
	PaymentCard         PaymentMethod = "CARD"
	PaymentPaypal       PaymentMethod = "PAYPAL"
	PaymentBankTransfer PaymentMethod = "BANK_TRANSFER"
)

// OrderItemProduct краткая информация о товаре в заказе
type OrderItemProduct struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	Images []string `json:"images"`
}

// OrderItem позиция заказа
type OrderItem struct {
	ID        string           `json:"id"`
	OrderID   string           `json:"orderId"`
	ProductID string           `json:"productId"`
	Product   OrderItemProduct `json:"product"`
	Quantity  int              `json:"quantity"`
	Price     Amount           `json:"price"`
}

// Order заказ покупателя
type Order struct {
	ID              string        `json:"id"`
	UserID          string        `json:"userId"`
	Status          OrderStatus   `json:"status"`
	PaymentStatus   PaymentStatus `json:"paymentStatus"`
	PaymentMethod   PaymentMethod `json:"paymentMethod"`
	ShippingAddress Address       `json:"shippingAddress"`
	Notes           string        `json:"notes,omitempty"`
	CreatedAt       string        `json:"createdAt"`
	UpdatedAt       string        `json:"updatedAt"`
	Items           []OrderItem   `json:"items"`
	TotalAmount     Amount        `json:"totalAmount"`
}

// PaymentForm данные формы оплаты на checkout
type PaymentForm struct {
	CardNumber string
	CardHolder string
	ExpiryDate string
	CVV        string
	Email      string
	Address    string
	City       string
	PostalCode string
	Notes      string
}
