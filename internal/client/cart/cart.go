// Package cart корзина текущего пользователя.
// Последняя полученная от backend корзина хранится и рассылается подписчикам.
package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/iudanet/storefront/internal/models"
	"github.com/iudanet/storefront/internal/validation"
	"github.com/iudanet/storefront/pkg/api"
)

// API вызовы backend для корзины. Реализуется api.Client.
type API interface {
	GetCart(ctx context.Context) (*models.Cart, error)
	AddToCart(ctx context.Context, req api.AddToCartRequest) (*models.Cart, error)
	UpdateCartItem(ctx context.Context, itemID string, req api.UpdateCartItemRequest) (*models.Cart, error)
	RemoveCartItem(ctx context.Context, itemID string) (*models.Cart, error)
	ClearCart(ctx context.Context) (*models.Cart, error)
	GetCartTotal(ctx context.Context) (float64, error)
}

// ErrItemNotFound позиции нет в последней полученной корзине
var ErrItemNotFound = errors.New("cart item not found")

// Service операции с корзиной
type Service struct {
	api     API
	log     *zap.Logger
	cart    *models.Cart
	subs    map[int]func(*models.Cart)
	mu      sync.Mutex
	nextSub int
}

// NewService создает сервис корзины
func NewService(cartAPI API, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		api:  cartAPI,
		log:  log.Named("cart"),
		subs: make(map[int]func(*models.Cart)),
	}
}

// Get загружает корзину
func (s *Service) Get(ctx context.Context) (*models.Cart, error) {
	c, err := s.api.GetCart(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	return s.replace(c), nil
}

// Add добавляет товар в корзину
func (s *Service) Add(ctx context.Context, productID string, quantity int) (*models.Cart, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, &validation.FieldError{Field: "productId", Message: "product is required"}
	}
	if quantity < 1 {
		return nil, &validation.FieldError{Field: "quantity", Message: "quantity must be at least 1"}
	}

	c, err := s.api.AddToCart(ctx, api.AddToCartRequest{ProductID: productID, Quantity: quantity})
	if err != nil {
		return nil, fmt.Errorf("failed to add product %s to cart: %w", productID, err)
	}
	s.log.Debug("product added to cart", zap.String("product_id", productID), zap.Int("quantity", quantity))
	return s.replace(c), nil
}

// UpdateItem задает количество позиции
func (s *Service) UpdateItem(ctx context.Context, itemID string, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, &validation.FieldError{Field: "quantity", Message: "quantity must be at least 1"}
	}
	c, err := s.api.UpdateCartItem(ctx, itemID, api.UpdateCartItemRequest{Quantity: quantity})
	if err != nil {
		return nil, fmt.Errorf("failed to update cart item %s: %w", itemID, err)
	}
	return s.replace(c), nil
}

// RemoveItem удаляет позицию
func (s *Service) RemoveItem(ctx context.Context, itemID string) (*models.Cart, error) {
	c, err := s.api.RemoveCartItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to remove cart item %s: %w", itemID, err)
	}
	return s.replace(c), nil
}

// Clear очищает корзину
func (s *Service) Clear(ctx context.Context) (*models.Cart, error) {
	c, err := s.api.ClearCart(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}
	s.log.Debug("cart cleared")
	return s.replace(c), nil
}

// ServerTotal сумма корзины, посчитанная backend
func (s *Service) ServerTotal(ctx context.Context) (float64, error) {
	total, err := s.api.GetCartTotal(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get cart total: %w", err)
	}
	return total, nil
}

// ChangeQuantity меняет количество позиции на delta.
// Если количество становится <= 0, позиция удаляется.
func (s *Service) ChangeQuantity(ctx context.Context, itemID string, delta int) (*models.Cart, error) {
	s.mu.Lock()
	item, ok := s.cart.FindItem(itemID)
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
	}

	next := item.Quantity + delta
	if next <= 0 {
		return s.RemoveItem(ctx, itemID)
	}
	return s.UpdateItem(ctx, itemID, next)
}

// Current последняя полученная корзина, nil до первой загрузки
func (s *Service) Current() *models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneCart(s.cart)
}

// ItemCount количество единиц товара в последней корзине
func (s *Service) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.ItemCount()
}

// LocalTotal сумма последней корзины, посчитанная на клиенте
func (s *Service) LocalTotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Total()
}

// Reset забывает корзину, например после выхода
func (s *Service) Reset() {
	s.replace(nil)
}

// Subscribe подписывает fn на смену корзины. Возвращает функцию отписки.
func (s *Service) Subscribe(fn func(*models.Cart)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// replace сохраняет корзину и уведомляет подписчиков вне блокировки
func (s *Service) replace(c *models.Cart) *models.Cart {
	s.mu.Lock()
	s.cart = c
	fns := make([]func(*models.Cart), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(cloneCart(c))
	}
	return cloneCart(c)
}

func cloneCart(c *models.Cart) *models.Cart {
	if c == nil {
		return nil
	}
	out := *c
	out.Items = append([]models.CartItem(nil), c.Items...)
	return &out
}
