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

// CategoryAPI вызовы backend для категорий. Реализуется api.Client.
type CategoryAPI interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id string) (*models.Category, error)
	CreateCategory(ctx context.Context, req api.CategoryRequest) (*models.Category, error)
	UpdateCategory(ctx context.Context, id string, req api.CategoryRequest) (*models.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

// CategoryInput поля формы категории
type CategoryInput struct {
	Name        string
	Description string
	IconURL     string
}

// CategoryService операции с категориями (админка)
type CategoryService struct {
	api CategoryAPI
	log *zap.Logger
}

// NewCategoryService создает сервис категорий
func NewCategoryService(categoryAPI CategoryAPI, log *zap.Logger) *CategoryService {
	if log == nil {
		log = zap.NewNop()
	}
	return &CategoryService{api: categoryAPI, log: log.Named("categories")}
}

// List все категории
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	categories, err := s.api.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// Get категория по ID
func (s *CategoryService) Get(ctx context.Context, id string) (*models.Category, error) {
	category, err := s.api.GetCategory(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get category %s: %w", id, err)
	}
	return category, nil
}

func (in CategoryInput) request() api.CategoryRequest {
	return api.CategoryRequest{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		IconURL:     strings.TrimSpace(in.IconURL),
	}
}

// Create создает категорию
func (s *CategoryService) Create(ctx context.Context, in CategoryInput) (*models.Category, error) {
	if err := validation.ValidateCategoryName(in.Name); err != nil {
		return nil, err
	}
	category, err := s.api.CreateCategory(ctx, in.request())
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	s.log.Info("category created", zap.String("category_id", category.ID))
	return category, nil
}

// Update обновляет категорию
func (s *CategoryService) Update(ctx context.Context, id string, in CategoryInput) (*models.Category, error) {
	if err := validation.ValidateCategoryName(in.Name); err != nil {
		return nil, err
	}
	category, err := s.api.UpdateCategory(ctx, id, in.request())
	if err != nil {
		return nil, fmt.Errorf("failed to update category %s: %w", id, err)
	}
	return category, nil
}

// Deactivate скрывает категорию. Backend выполняет soft delete.
func (s *CategoryService) Deactivate(ctx context.Context, id string) error {
	if err := s.api.DeleteCategory(ctx, id); err != nil {
		return fmt.Errorf("failed to deactivate category %s: %w", id, err)
	}
	s.log.Info("category deactivated", zap.String("category_id", id))
	return nil
}

// Activate возвращает категорию в каталог
func (s *CategoryService) Activate(ctx context.Context, id string) (*models.Category, error) {
	active := true
	category, err := s.api.UpdateCategory(ctx, id, api.CategoryRequest{IsActive: &active})
	if err != nil {
		return nil, fmt.Errorf("failed to activate category %s: %w", id, err)
	}
	s.log.Info("category activated", zap.String("category_id", id))
	return category, nil
}

// Filter ищет term в имени и описании без учета регистра.
// Пустой term возвращает все категории.
func Filter(categories []models.Category, term string) []models.Category {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return categories
	}

	out := make([]models.Category, 0, len(categories))
	for _, c := range categories {
		if strings.Contains(strings.ToLower(c.Name), term) ||
			strings.Contains(strings.ToLower(c.Description), term) {
			out = append(out, c)
		}
	}
	return out
}
