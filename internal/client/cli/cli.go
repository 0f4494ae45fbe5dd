// Package cli терминальный клиент маркетплейса: команды cobra поверх сервисов клиента
package cli

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"github.com/iudanet/storefront/internal/client/api"
	"github.com/iudanet/storefront/internal/client/auth"
	"github.com/iudanet/storefront/internal/client/cart"
	"github.com/iudanet/storefront/internal/client/catalog"
	"github.com/iudanet/storefront/internal/client/iocli"
	"github.com/iudanet/storefront/internal/client/orders"
	"github.com/iudanet/storefront/internal/client/search"
	"github.com/iudanet/storefront/internal/validation"
)

// ErrAccessDenied guard не пустил в команду
var ErrAccessDenied = errors.New("access denied")

// Cli состояние одного запуска клиента
type Cli struct {
	io         iocli.IO
	log        *zap.Logger
	apiClient  *api.Client
	session    *auth.Manager
	products   *catalog.ProductService
	categories *catalog.CategoryService
	cart       *cart.Service
	orders     *orders.Service
	prices     *PriceFormatter
	searchCfg  search.Config
}

// New собирает Cli поверх API клиента и менеджера сессии
func New(io iocli.IO, apiClient *api.Client, session *auth.Manager, searchCfg search.Config, log *zap.Logger) *Cli {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cli{
		io:         io,
		log:        log,
		apiClient:  apiClient,
		session:    session,
		products:   catalog.NewProductService(apiClient, log),
		categories: catalog.NewCategoryService(apiClient, log),
		cart:       cart.NewService(apiClient, log),
		orders:     orders.NewService(apiClient, log),
		prices:     NewPriceFormatter(),
		searchCfg:  searchCfg,
	}
}

// Navigator печатает подсказку вместо перехода на экран
type Navigator struct {
	IO iocli.IO
}

// Navigate implements auth.Navigator
func (n Navigator) Navigate(path string) {
	u, err := url.Parse(path)
	if err != nil {
		return
	}
	switch u.Path {
	case auth.LoginPath:
		n.IO.Println("Run 'storefront login' to sign in.")
		if back := u.Query().Get("returnUrl"); back != "" {
			n.IO.Printf("Then retry 'storefront %s'.\n", back)
		}
	case auth.DashboardPath:
		n.IO.Println("Run 'storefront status' to see your account.")
	}
}

// guard применяет решение guard: печатает подсказку и возвращает ошибку, если доступ закрыт
func (c *Cli) guard(d auth.Decision) error {
	if d.Allowed {
		return nil
	}
	Navigator{IO: c.io}.Navigate(d.Redirect)
	return ErrAccessDenied
}

func (c *Cli) requireAuth(ctx context.Context, command string) error {
	return c.guard(c.session.RequireAuth(ctx, command))
}

func (c *Cli) requireAdmin(ctx context.Context) error {
	if err := c.requireAuth(ctx, ""); err != nil {
		return err
	}
	if err := c.guard(c.session.RequireAdmin(ctx)); err != nil {
		return fmt.Errorf("%w: admin role required", err)
	}
	return nil
}

// UserMessage текст ошибки для пользователя без технических подробностей
func UserMessage(err error) string {
	var authErr *auth.AuthError
	if errors.As(err, &authErr) {
		return authErr.Message
	}
	var checkoutErr *orders.CheckoutError
	if errors.As(err, &checkoutErr) {
		return checkoutErr.Message
	}
	if errors.Is(err, validation.ErrInvalid) {
		return validation.Message(err)
	}
	if errors.Is(err, ErrAccessDenied) {
		return err.Error()
	}
	if reqErr := api.Classify(err); reqErr != nil {
		if reqErr.Kind == api.KindUnknown && !errors.As(err, new(*api.HTTPError)) {
			return err.Error()
		}
		return reqErr.Message
	}
	return ""
}
