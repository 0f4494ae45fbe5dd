package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/iudanet/storefront/internal/models"
	"github.com/iudanet/storefront/pkg/api"
)

// GetCart получает корзину текущего пользователя
func (c *Client) GetCart(ctx context.Context) (*models.Cart, error) {
	var cart models.Cart
	if err := c.get(ctx, "/cart", &cart); err != nil {
		return nil, fmt.Errorf("get cart request failed: %w", err)
	}
	return &cart, nil
}

// AddToCart добавляет товар в корзину
func (c *Client) AddToCart(ctx context.Context, req api.AddToCartRequest) (*models.Cart, error) {
	var cart models.Cart
	if err := c.post(ctx, "/cart/add", req, &cart); err != nil {
		return nil, fmt.Errorf("add to cart request failed: %w", err)
	}
	return &cart, nil
}

// UpdateCartItem меняет количество в позиции корзины
func (c *Client) UpdateCartItem(ctx context.Context, itemID string, req api.UpdateCartItemRequest) (*models.Cart, error) {
	var cart models.Cart
	if err := c.patch(ctx, "/cart/items/"+url.PathEscape(itemID), req, &cart); err != nil {
		return nil, fmt.Errorf("update cart item request failed: %w", err)
	}
	return &cart, nil
}

// RemoveCartItem удаляет позицию из корзины
func (c *Client) RemoveCartItem(ctx context.Context, itemID string) (*models.Cart, error) {
	var cart models.Cart
	if err := c.delete(ctx, "/cart/items/"+url.PathEscape(itemID), &cart); err != nil {
		return nil, fmt.Errorf("remove cart item request failed: %w", err)
	}
	return &cart, nil
}

// ClearCart очищает корзину
func (c *Client) ClearCart(ctx context.Context) (*models.Cart, error) {
	var cart models.Cart
	if err := c.delete(ctx, "/cart/clear", &cart); err != nil {
		return nil, fmt.Errorf("clear cart request failed: %w", err)
	}
	return &cart, nil
}

// cartTotal принимает число или {"total": число}
type cartTotal float64

func (t *cartTotal) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	var number float64
	if err := json.Unmarshal(trimmed, &number); err == nil {
		*t = cartTotal(number)
		return nil
	}
	var resp api.CartTotalResponse
	if err := json.Unmarshal(trimmed, &resp); err != nil {
		return err
	}
	*t = cartTotal(resp.Total)
	return nil
}

// GetCartTotal получает сумму корзины, посчитанную сервером
func (c *Client) GetCartTotal(ctx context.Context) (float64, error) {
	var total cartTotal
	if err := c.get(ctx, "/cart/total", &total); err != nil {
		return 0, fmt.Errorf("get cart total request failed: %w", err)
	}
	return float64(total), nil
}
