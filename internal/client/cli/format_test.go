package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iudanet/storefront/internal/client/api"
	"github.com/iudanet/storefront/internal/client/auth"
	"github.com/iudanet/storefront/internal/client/iocli"
	"github.com/iudanet/storefront/internal/client/orders"
	"github.com/iudanet/storefront/internal/validation"
)

func TestPriceFormatter(t *testing.T) {
	f := NewPriceFormatter()

	tests := []struct {
		want  string
		price float64
	}{
		{price: 0, want: "$ 0"},
		{price: 250000, want: "$ 250.000"},
		{price: 1250000, want: "$ 1.250.000"},
		{price: 1250000.4, want: "$ 1.250.000"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Format(tt.price))
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		err  error
		name string
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{
			name: "auth",
			err:  fmt.Errorf("login: %w", &auth.AuthError{Kind: auth.KindInvalidCredentials, Message: "invalid credentials"}),
			want: "invalid credentials",
		},
		{
			name: "checkout",
			err:  &orders.CheckoutError{Step: "process payment", Message: "card declined"},
			want: "card declined",
		},
		{
			name: "validation",
			err:  &validation.FieldError{Field: "quantity", Message: "quantity must be at least 1"},
			want: "quantity must be at least 1",
		},
		{
			name: "access denied",
			err:  fmt.Errorf("%w: admin role required", ErrAccessDenied),
			want: "access denied: admin role required",
		},
		{
			name: "backend message",
			err:  fmt.Errorf("get product request failed: %w", &api.HTTPError{StatusCode: 404, Message: "Product not found"}),
			want: "Product not found",
		},
		{
			name: "plain error",
			err:  errors.New("unknown sort key \"x\""),
			want: "unknown sort key \"x\"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err))
		})
	}
}

func TestNavigator(t *testing.T) {
	var lines []string
	mock := &iocli.IOMock{
		PrintlnFunc: func(a ...any) { lines = append(lines, strings.TrimSpace(fmt.Sprintln(a...))) },
		PrintfFunc:  func(format string, a ...any) { lines = append(lines, strings.TrimSpace(fmt.Sprintf(format, a...))) },
	}
	nav := Navigator{IO: mock}

	nav.Navigate(auth.LoginPath + "?returnUrl=orders+list")
	nav.Navigate(auth.DashboardPath)
	nav.Navigate("/elsewhere")

	assert.Equal(t, []string{
		"Run 'storefront login' to sign in.",
		"Then retry 'storefront orders list'.",
		"Run 'storefront status' to see your account.",
	}, lines)
}

func TestRequireAuth_WithoutSession(t *testing.T) {
	var printed []string
	mock := &iocli.IOMock{
		PrintlnFunc: func(a ...any) { printed = append(printed, fmt.Sprint(a...)) },
		PrintfFunc:  func(format string, a ...any) { printed = append(printed, fmt.Sprintf(format, a...)) },
	}
	c := &Cli{io: mock, session: auth.NewManager(nil, nil)}

	err := c.requireAuth(context.Background(), "checkout")
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Contains(t, printed, "Then retry 'storefront checkout'.\n")
}
