package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/iudanet/storefront/internal/models"
	"github.com/iudanet/storefront/pkg/api"
)

// ListCategories получает все категории
func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.get(ctx, "/categories", &categories); err != nil {
		return nil, fmt.Errorf("list categories request failed: %w", err)
	}
	return categories, nil
}

// GetCategory получает категорию по ID
func (c *Client) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	if err := c.get(ctx, "/categories/"+url.PathEscape(id), &category); err != nil {
		return nil, fmt.Errorf("get category request failed: %w", err)
	}
	return &category, nil
}

// CreateCategory создает категорию
func (c *Client) CreateCategory(ctx context.Context, req api.CategoryRequest) (*models.Category, error) {
	var category models.Category
	if err := c.post(ctx, "/categories", req, &category); err != nil {
		return nil, fmt.Errorf("create category request failed: %w", err)
	}
	return &category, nil
}

// UpdateCategory частично обновляет категорию
func (c *Client) UpdateCategory(ctx context.Context, id string, req api.CategoryRequest) (*models.Category, error) {
	var category models.Category
	if err := c.patch(ctx, "/categories/"+url.PathEscape(id), req, &category); err != nil {
		return nil, fmt.Errorf("update category request failed: %w", err)
	}
	return &category, nil
}

// DeleteCategory деактивирует категорию (на сервере это soft delete)
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	if err := c.delete(ctx, "/categories/"+url.PathEscape(id), nil); err != nil {
		return fmt.Errorf("delete category request failed: %w", err)
	}
	return nil
}
