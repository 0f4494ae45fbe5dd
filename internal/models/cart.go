package models

import (
	"strconv"
	"time"
)

// CartProduct товар внутри позиции корзины
// Backend отдает price строкой (decimal), поэтому храним как есть
type CartProduct struct {
	Category    *Category `json:"category,omitempty"`
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	Condition   string    `json:"condition"`
	Rating      string    `json:"rating"`
	SellerID    string    `json:"sellerId"`
	CategoryID  string    `json:"categoryId"`
	Images      []string  `json:"images"`
	Stock       int       `json:"stock"`
	IsSold      bool      `json:"isSold"`
	IsActive    bool      `json:"isActive"`
}

// PriceValue возвращает цену числом, нечисловая цена считается нулевой
func (p CartProduct) PriceValue() float64 {
	v, err := strconv.ParseFloat(p.Price, 64)
	if err != nil {
		return 0
	}
	return v
}

// CartItem позиция корзины
type CartItem struct {
	CreatedAt time.Time   `json:"createdAt"`
	ID        string      `json:"id"`
	CartID    string      `json:"cartId"`
	ProductID string      `json:"productId"`
	Product   CartProduct `json:"product"`
	Quantity  int         `json:"quantity"`
}

// Subtotal стоимость позиции
func (i CartItem) Subtotal() float64 {
	return i.Product.PriceValue() * float64(i.Quantity)
}

// Cart корзина пользователя
type Cart struct {
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Items     []CartItem `json:"items"`
}

// ItemCount суммарное количество единиц товара в корзине
func (c *Cart) ItemCount() int {
	if c == nil {
		return 0
	}
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// Total сумма корзины, посчитанная на клиенте
func (c *Cart) Total() float64 {
	if c == nil {
		return 0
	}
	var total float64
	for _, item := range c.Items {
		total += item.Subtotal()
	}
	return total
}

// FindItem ищет позицию по ID
func (c *Cart) FindItem(itemID string) (CartItem, bool) {
	if c == nil {
		return CartItem{}, false
	}
	for _, item := range c.Items {
		if item.ID == itemID {
			return item, true
		}
	}
	return CartItem{}, false
}
