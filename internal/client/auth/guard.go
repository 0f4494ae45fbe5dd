package auth

import (
	"context"
	"net/url"
)

// Decision результат проверки guard
type Decision struct {
	Redirect string
	Allowed  bool
}

func allow() Decision { return Decision{Allowed: true} }

func redirect(path string) Decision { return Decision{Redirect: path} }

// RequireAuth пропускает только аутентифицированного пользователя.
// Остальных ведет на вход с returnUrl, чтобы вернуть после входа.
func (m *Manager) RequireAuth(ctx context.Context, returnURL string) Decision {
	if m.IsLoggedIn(ctx) {
		return allow()
	}
	if returnURL == "" {
		return redirect(LoginPath)
	}
	return redirect(LoginPath + "?" + url.Values{"returnUrl": {returnURL}}.Encode())
}

// RequireAdmin пропускает только администратора
func (m *Manager) RequireAdmin(ctx context.Context) Decision {
	if m.IsAdmin(ctx) {
		return allow()
	}
	m.log.Warn("access denied: admin role required")
	return redirect(DashboardPath)
}

// RequireAnonymous пропускает на экран входа только анонимного пользователя
func (m *Manager) RequireAnonymous(ctx context.Context) Decision {
	if m.IsLoggedIn(ctx) {
		return redirect(DashboardPath)
	}
	return allow()
}
