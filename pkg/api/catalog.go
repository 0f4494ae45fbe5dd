package api

import (
	"time"

	"github.com/iudanet/storefront/internal/models"
)

// Product товар в том виде, в котором его отдает backend
type Product struct {
	CreatedAt   *time.Time              `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time              `json:"updatedAt,omitempty"`
	ID          string                  `json:"id"`
	Title       string                  `json:"title"`
	Slug        string                  `json:"slug,omitempty"`
	Description string                  `json:"description,omitempty"`
	Condition   models.ProductCondition `json:"condition,omitempty"`
	CategoryID  string                  `json:"categoryId,omitempty"`
	SellerID    string                  `json:"sellerId,omitempty"`
	Images      []string                `json:"images,omitempty"`
	Price       float64                 `json:"price"`
	Stock       int                     `json:"stock,omitempty"`
	IsSold      bool                    `json:"isSold,omitempty"`
}

// ProductsResponse ответ со списком товаров
type ProductsResponse struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
}

// CreateProductRequest запрос на создание товара
type CreateProductRequest struct {
	Title       string                  `json:"title"`
	Description string                  `json:"description,omitempty"`
	Condition   models.ProductCondition `json:"condition,omitempty"`
	CategoryID  string                  `json:"categoryId"`
	Images      []string                `json:"images,omitempty"`
	Price       float64                 `json:"price"`
	Stock       int                     `json:"stock,omitempty"`
}

// UpdateProductRequest запрос на частичное обновление товара
type UpdateProductRequest struct {
	Title       *string                  `json:"title,omitempty"`
	Description *string                  `json:"description,omitempty"`
	Condition   *models.ProductCondition `json:"condition,omitempty"`
	CategoryID  *string                  `json:"categoryId,omitempty"`
	Price       *float64                 `json:"price,omitempty"`
	Stock       *int                     `json:"stock,omitempty"`
	IsSold      *bool                    `json:"isSold,omitempty"`
	Images      []string                 `json:"images,omitempty"`
}

// SearchParams параметры запроса /products/search.
// Нулевые значения не отправляются, кроме SortBy, Page и Limit.
type SearchParams struct {
	Search     string
	Condition  string
	SortBy     string
	Categories []string
	MinPrice   float64
	MaxPrice   float64
	Page       int
	Limit      int
}

// SearchResponse ответ /products/search
type SearchResponse struct {
	Products   []Product `json:"products"`
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"totalPages"`
}

// CategoryRequest запрос на создание или обновление категории
type CategoryRequest struct {
	IsActive    *bool  `json:"isActive,omitempty"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	IconURL     string `json:"iconUrl,omitempty"`
}

// ToModel приводит товар backend к модели клиента.
// Пустые поля получают значения по умолчанию: состояние new, без картинки.
func (p Product) ToModel() models.Product {
	out := models.Product{
		ID:          p.ID,
		Name:        p.Title,
		Description: p.Description,
		Condition:   p.Condition,
		Price:       p.Price,
		Stock:       p.Stock,
		IsSold:      p.IsSold,
	}
	if len(p.Images) > 0 {
		out.ImageURL = p.Images[0]
	}
	if out.Condition == "" {
		out.Condition = models.ConditionNew
	}
	return out
}

// ToModels приводит список товаров, порядок сохраняется
func ToModels(products []Product) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		out = append(out, p.ToModel())
	}
	return out
}
