// Package catalog сервисы товаров и категорий поверх API клиента
package catalog

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/iudanet/storefront/internal/models"
	"github.com/iudanet/storefront/internal/validation"
	"github.com/iudanet/storefront/pkg/api"
)

// DefaultLimit размер страницы каталога
const DefaultLimit = 10

// ProductAPI вызовы backend для товаров. Реализуется api.Client.
type ProductAPI interface {
	ListProducts(ctx context.Context, limit, offset int) (*api.ProductsResponse, error)
	ListMyProducts(ctx context.Context, limit, offset int) (*api.ProductsResponse, error)
	GetProduct(ctx context.Context, term string) (*api.Product, error)
	CreateProduct(ctx context.Context, req api.CreateProductRequest) (*api.Product, error)
	UpdateProduct(ctx context.Context, term string, req api.UpdateProductRequest) (*api.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	SearchProducts(ctx context.Context, params api.SearchParams) (*api.SearchResponse, error)
}

// ProductService операции с товарами.
// Все ответы приводятся к models.Product.
type ProductService struct {
	api ProductAPI
	log *zap.Logger
}

// NewProductService создает сервис товаров
func NewProductService(productAPI ProductAPI, log *zap.Logger) *ProductService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProductService{api: productAPI, log: log.Named("products")}
}

// offset для страницы, нумерация с 1
func offset(page, size int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * size
}

func toPage(resp *api.ProductsResponse) *models.ProductPage {
	return &models.ProductPage{
		Products: api.ToModels(resp.Products),
		Total:    resp.Total,
	}
}

// List страница каталога по DefaultLimit товаров
func (s *ProductService) List(ctx context.Context, page int) (*models.ProductPage, error) {
	return s.ListPaged(ctx, DefaultLimit, offset(page, DefaultLimit))
}

// ListPaged каталог с явными limit и offset
func (s *ProductService) ListPaged(ctx context.Context, limit, off int) (*models.ProductPage, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if off < 0 {
		off = 0
	}
	resp, err := s.api.ListProducts(ctx, limit, off)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return toPage(resp), nil
}

// Mine товары текущего пользователя
func (s *ProductService) Mine(ctx context.Context, page, pageSize int) (*models.ProductPage, error) {
	if pageSize <= 0 {
		pageSize = DefaultLimit
	}
	resp, err := s.api.ListMyProducts(ctx, pageSize, offset(page, pageSize))
	if err != nil {
		return nil, fmt.Errorf("failed to list my products: %w", err)
	}
	return toPage(resp), nil
}

// Get товар по ID или slug
func (s *ProductService) Get(ctx context.Context, term string) (*models.Product, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, fmt.Errorf("product id is required: %w", validation.ErrInvalid)
	}
	p, err := s.api.GetProduct(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("failed to get product %s: %w", term, err)
	}
	out := p.ToModel()
	return &out, nil
}

// Create проверяет форму и создает товар
func (s *ProductService) Create(ctx context.Context, draft validation.ProductDraft, images []string) (*models.Product, error) {
	if err := validation.ValidateProduct(draft); err != nil {
		return nil, err
	}

	req := api.CreateProductRequest{
		Title:       strings.TrimSpace(draft.Title),
		Description: strings.TrimSpace(draft.Description),
		Condition:   draft.Condition,
		CategoryID:  strings.TrimSpace(draft.CategoryID),
		Images:      images,
		Price:       draft.Price,
		Stock:       draft.Stock,
	}
	p, err := s.api.CreateProduct(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.log.Info("product created", zap.String("product_id", p.ID))
	out := p.ToModel()
	return &out, nil
}

// Update проверяет форму и обновляет все ее поля у товара.
// images == nil оставляет картинки без изменений.
func (s *ProductService) Update(ctx context.Context, term string, draft validation.ProductDraft, images []string) (*models.Product, error) {
	if err := validation.ValidateProduct(draft); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(draft.Title)
	description := strings.TrimSpace(draft.Description)
	categoryID := strings.TrimSpace(draft.CategoryID)
	req := api.UpdateProductRequest{
		Title:       &title,
		Description: &description,
		CategoryID:  &categoryID,
		Price:       &draft.Price,
		Stock:       &draft.Stock,
		Images:      images,
	}
	if draft.Condition != "" {
		req.Condition = &draft.Condition
	}

	p, err := s.api.UpdateProduct(ctx, term, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update product %s: %w", term, err)
	}

	s.log.Info("product updated", zap.String("product_id", p.ID))
	out := p.ToModel()
	return &out, nil
}

// MarkSold помечает товар проданным
func (s *ProductService) MarkSold(ctx context.Context, id string) (*models.Product, error) {
	sold := true
	p, err := s.api.UpdateProduct(ctx, id, api.UpdateProductRequest{IsSold: &sold})
	if err != nil {
		return nil, fmt.Errorf("failed to mark product %s as sold: %w", id, err)
	}
	out := p.ToModel()
	return &out, nil
}

// Delete удаляет товар
func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.api.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, err)
	}
	s.log.Info("product deleted", zap.String("product_id", id))
	return nil
}

// Search разовый поиск без pipeline
func (s *ProductService) Search(ctx context.Context, params api.SearchParams) (*models.SearchResult, error) {
	resp, err := s.api.SearchProducts(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return &models.SearchResult{
		Items:      api.ToModels(resp.Products),
		TotalCount: resp.Total,
		Page:       resp.Page,
		PageSize:   resp.Limit,
		TotalPages: resp.TotalPages,
	}, nil
}

// ShortDescription обрезает описание для карточки списка
func ShortDescription(description string, limit int) string {
	runes := []rune(description)
	if len(runes) <= limit {
		return description
	}
	return string(runes[:limit]) + "..."
}
