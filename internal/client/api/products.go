package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/iudanet/storefront/pkg/api"
)

// productsList принимает оба формата списка: голый массив или {products,total}
type productsList api.ProductsResponse

func (l *productsList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var products []api.Product
		if err := json.Unmarshal(trimmed, &products); err != nil {
			return err
		}
		l.Products = products
		l.Total = len(products)
		return nil
	}

	var resp api.ProductsResponse
	if err := json.Unmarshal(trimmed, &resp); err != nil {
		return err
	}
	*l = productsList(resp)
	return nil
}

// ListProducts получает страницу каталога
func (c *Client) ListProducts(ctx context.Context, limit, offset int) (*api.ProductsResponse, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	if offset >= 0 {
		params.Set("offset", strconv.Itoa(offset))
	}

	var list productsList
	if err := c.get(ctx, "/products?"+params.Encode(), &list); err != nil {
		return nil, fmt.Errorf("list products request failed: %w", err)
	}
	resp := api.ProductsResponse(list)
	return &resp, nil
}

// ListMyProducts получает товары текущего пользователя
func (c *Client) ListMyProducts(ctx context.Context, limit, offset int) (*api.ProductsResponse, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))

	var list productsList
	if err := c.get(ctx, "/products/my-products?"+params.Encode(), &list); err != nil {
		return nil, fmt.Errorf("list my products request failed: %w", err)
	}
	resp := api.ProductsResponse(list)
	return &resp, nil
}

// GetProduct получает товар по ID или slug
func (c *Client) GetProduct(ctx context.Context, term string) (*api.Product, error) {
	var product api.Product
	if err := c.get(ctx, "/products/"+url.PathEscape(term), &product); err != nil {
		return nil, fmt.Errorf("get product request failed: %w", err)
	}
	return &product, nil
}

// CreateProduct создает новый товар
func (c *Client) CreateProduct(ctx context.Context, req api.CreateProductRequest) (*api.Product, error) {
	var product api.Product
	if err := c.post(ctx, "/products", req, &product); err != nil {
		return nil, fmt.Errorf("create product request failed: %w", err)
	}
	return &product, nil
}

// UpdateProduct частично обновляет товар
func (c *Client) UpdateProduct(ctx context.Context, term string, req api.UpdateProductRequest) (*api.Product, error) {
	var product api.Product
	if err := c.patch(ctx, "/products/"+url.PathEscape(term), req, &product); err != nil {
		return nil, fmt.Errorf("update product request failed: %w", err)
	}
	return &product, nil
}

// DeleteProduct удаляет товар
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	if err := c.delete(ctx, "/products/"+url.PathEscape(id), nil); err != nil {
		return fmt.Errorf("delete product request failed: %w", err)
	}
	return nil
}

// SearchProducts выполняет поиск по каталогу
func (c *Client) SearchProducts(ctx context.Context, params api.SearchParams) (*api.SearchResponse, error) {
	var resp api.SearchResponse
	if err := c.get(ctx, "/products/search?"+EncodeSearchParams(params).Encode(), &resp); err != nil {
		return nil, fmt.Errorf("search products request failed: %w", err)
	}
	return &resp, nil
}

// EncodeSearchParams собирает query string поиска.
// Отправляются только заданные поля, sortBy/page/limit - всегда.
func EncodeSearchParams(p api.SearchParams) url.Values {
	params := url.Values{}
	if p.Search != "" {
		params.Set("search", p.Search)
	}
	for _, id := range p.Categories {
		params.Add("categories", id)
	}
	if p.MinPrice > 0 {
		params.Set("minPrice", strconv.FormatFloat(p.MinPrice, 'f', -1, 64))
	}
	if p.MaxPrice > 0 {
		params.Set("maxPrice", strconv.FormatFloat(p.MaxPrice, 'f', -1, 64))
	}
	if p.Condition != "" {
		params.Set("condition", p.Condition)
	}
	if p.SortBy != "" {
		params.Set("sortBy", p.SortBy)
	}
	params.Set("page", strconv.Itoa(p.Page))
	params.Set("limit", strconv.Itoa(p.Limit))
	return params
}
