package models

import "time"

// ProductCondition состояние товара в каталоге
type ProductCondition string

const (
	ConditionNew     ProductCondition = "new"
	ConditionUsed    ProductCondition = "used"
	ConditionLikeNew ProductCondition = "like_new"
)

// Valid проверяет, что состояние входит в известный набор
func (c ProductCondition) Valid() bool {
	switch c {
	case ConditionNew, ConditionUsed, ConditionLikeNew:
		return true
	}
	return false
}

// Product представляет товар в том виде, в котором его использует клиент
type Product struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	ImageURL    string           `json:"imageUrl"`
	Description string           `json:"description"`
	Condition   ProductCondition `json:"condition"`
	Price       float64          `json:"price"`
	Stock       int              `json:"stock"`
	IsSold      bool             `json:"isSold"`
}

// ProductPage страница товаров с общим количеством
type ProductPage struct {
	Products []Product
	Total    int
}

// SearchResult результат поиска товаров.
// Заменяется целиком на каждый примененный ответ сервера.
type SearchResult struct {
	Items      []Product
	TotalCount int
	Page       int
	PageSize   int
	TotalPages int
}

// Category категория товаров
type Category struct {
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug,omitempty"`
	Description string     `json:"description,omitempty"`
	IconURL     string     `json:"iconUrl,omitempty"`
	IsActive    bool       `json:"isActive"`
}
