// Package auth управляет сессией пользователя: вход, регистрация, выход,
// срок действия токена, guards и HTTP interceptor.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/iudanet/storefront/internal/client/storage"
	"github.com/iudanet/storefront/internal/models"
	"github.com/iudanet/storefront/internal/validation"
	"github.com/iudanet/storefront/pkg/api"
)

// Пути, на которые ведут guards и выход
const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
)

//go:generate moq -out authenticator_mock.go . Authenticator

// Authenticator вызовы backend, которые нужны Manager
type Authenticator interface {
	Login(ctx context.Context, req api.LoginRequest) (*api.AuthResponse, error)
	Register(ctx context.Context, req api.RegisterRequest) (*api.AuthResponse, error)
}

// Navigator переход на другой экран. В CLI это подсказка пользователю.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc адаптер функции к Navigator
type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) { f(path) }

// Profile данные регистрации.
// ConfirmPassword, если задан, должен совпадать с Password.
type Profile = validation.Registration

// Manager владеет парой token+user.
// Состояний два: анонимный и аутентифицированный, пара меняется только целиком.
type Manager struct {
	api     Authenticator
	store   storage.SessionStorage
	nav     Navigator
	log     *zap.Logger
	now     func() time.Time
	subs    map[int]func(models.Session)
	session models.Session
	mu      sync.Mutex
	// persist упорядочивает запись пары в хранилище и ее удаление
	persist sync.Mutex
	nextSub int
}

// Option настраивает Manager
type Option func(*Manager)

// WithNavigator задает обработчик переходов
func WithNavigator(nav Navigator) Option {
	return func(m *Manager) { m.nav = nav }
}

// WithLogger задает logger
func WithLogger(log *zap.Logger) Option {
	return func(m *Manager) { m.log = log }
}

// WithClock подменяет часы (для тестов)
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager создает менеджер сессии. Сохраненная сессия загружается через Load.
func NewManager(authAPI Authenticator, store storage.SessionStorage, opts ...Option) *Manager {
	m := &Manager{
		api:   authAPI,
		store: store,
		nav:   NavigatorFunc(func(string) {}),
		log:   zap.NewNop(),
		now:   time.Now,
		subs:  make(map[int]func(models.Session)),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.log = m.log.Named("auth")
	return m
}

// Load восстанавливает сессию из хранилища.
// Поврежденная или истекшая запись удаляется, менеджер остается анонимным.
func (m *Manager) Load(ctx context.Context) error {
	stored, err := m.store.GetSession(ctx)
	if errors.Is(err, storage.ErrSessionNotFound) {
		return nil
	}
	if err != nil {
		m.log.Warn("stored session is unreadable, clearing", zap.Error(err))
		if delErr := m.store.DeleteSession(ctx); delErr != nil && !errors.Is(delErr, storage.ErrSessionNotFound) {
			return fmt.Errorf("failed to clear corrupt session: %w", delErr)
		}
		return nil
	}

	if IsExpired(stored.Token, m.now()) {
		m.log.Info("stored session expired, clearing")
		if err := m.store.DeleteSession(ctx); err != nil && !errors.Is(err, storage.ErrSessionNotFound) {
			return fmt.Errorf("failed to clear expired session: %w", err)
		}
		return nil
	}

	m.mu.Lock()
	m.session = models.Session{Token: stored.Token, User: stored.User}
	m.mu.Unlock()

	m.log.Debug("session restored", zap.String("user_id", stored.User.ID))
	m.publish()
	return nil
}

// Login выполняет вход. При ошибке состояние не меняется.
func (m *Manager) Login(ctx context.Context, email, password string) (*models.User, error) {
	if err := validation.ValidateCredentials(email, password); err != nil {
		return nil, validationError(err)
	}

	resp, err := m.api.Login(ctx, api.LoginRequest{Email: strings.TrimSpace(email), Password: password})
	if err != nil {
		authErr := loginError(err)
		m.log.Info("login failed", zap.Stringer("kind", authErr.Kind), zap.Error(err))
		return nil, authErr
	}

	return m.establish(ctx, resp)
}

// Register регистрирует пользователя и сразу открывает сессию
func (m *Manager) Register(ctx context.Context, profile Profile) (*models.User, error) {
	if profile.ConfirmPassword == "" {
		profile.ConfirmPassword = profile.Password
	}
	if err := validation.ValidateRegistration(profile); err != nil {
		return nil, validationError(err)
	}

	req := api.RegisterRequest{
		Name:     strings.TrimSpace(profile.Name),
		Email:    strings.TrimSpace(profile.Email),
		Password: profile.Password,
		Phone:    strings.TrimSpace(profile.Phone),
	}
	resp, err := m.api.Register(ctx, req)
	if err != nil {
		authErr := registerError(err)
		m.log.Info("register failed", zap.Stringer("kind", authErr.Kind), zap.Error(err))
		return nil, authErr
	}

	return m.establish(ctx, resp)
}

// establish сохраняет пару из ответа backend и публикует новую сессию
func (m *Manager) establish(ctx context.Context, resp *api.AuthResponse) (*models.User, error) {
	if resp == nil || resp.AccessToken == "" || resp.User == nil {
		return nil, &AuthError{Kind: KindUnknown, Message: msgMalformedSession}
	}

	user := *resp.User
	m.persist.Lock()
	if err := m.store.SaveSession(ctx, &storage.SessionData{Token: resp.AccessToken, User: &user}); err != nil {
		m.persist.Unlock()
		return nil, &AuthError{Kind: KindUnknown, Message: msgLoginFailed, Err: fmt.Errorf("failed to save session: %w", err)}
	}

	m.mu.Lock()
	m.session = models.Session{Token: resp.AccessToken, User: &user}
	m.mu.Unlock()
	m.persist.Unlock()

	m.log.Info("session established", zap.String("user_id", user.ID), zap.String("role", user.Role))
	m.publish()

	out := user
	return &out, nil
}

// Logout закрывает сессию и переводит на экран входа. Повторный вызов безопасен.
func (m *Manager) Logout(ctx context.Context) error {
	err := m.clear(ctx)
	m.nav.Navigate(LoginPath)
	return err
}

// Reject закрывает сессию, если backend отверг ее текущий токен, и переводит на экран входа.
// Отказ по токену, который уже заменен новым входом, сессию не трогает.
func (m *Manager) Reject(ctx context.Context, token string) (bool, error) {
	closed, err := m.clearIf(ctx, token)
	if closed {
		m.nav.Navigate(LoginPath)
	}
	return closed, err
}

// clear удаляет пару из памяти и хранилища. Память очищается даже при ошибке хранилища.
func (m *Manager) clear(ctx context.Context) error {
	_, err := m.reset(ctx, func(models.Session) bool { return true })
	return err
}

// clearIf как clear, но только пока активна сессия с этим токеном
func (m *Manager) clearIf(ctx context.Context, token string) (bool, error) {
	return m.reset(ctx, func(s models.Session) bool { return s.Token == token })
}

func (m *Manager) reset(ctx context.Context, match func(models.Session) bool) (bool, error) {
	m.persist.Lock()
	m.mu.Lock()
	if !match(m.session) {
		m.mu.Unlock()
		m.persist.Unlock()
		return false, nil
	}
	wasActive := !m.session.IsEmpty()
	m.session = models.Session{}
	m.mu.Unlock()

	var err error
	if delErr := m.store.DeleteSession(ctx); delErr != nil && !errors.Is(delErr, storage.ErrSessionNotFound) {
		m.log.Error("failed to delete stored session", zap.Error(delErr))
		err = fmt.Errorf("failed to delete session: %w", delErr)
	}
	m.persist.Unlock()

	if wasActive {
		m.log.Info("session closed")
		m.publish()
	}
	return true, err
}

// Token возвращает токен, только если он есть и не истек.
// Истекший токен закрывает сессию без перехода на экран входа.
func (m *Manager) Token(ctx context.Context) (string, bool) {
	m.mu.Lock()
	token := m.session.Token
	m.mu.Unlock()

	if token == "" {
		return "", false
	}
	if IsExpired(token, m.now()) {
		m.log.Info("token expired")
		if closed, _ := m.clearIf(ctx, token); !closed {
			// пару успели заменить, проверяем новую
			return m.Token(ctx)
		}
		return "", false
	}
	return token, true
}

// IsLoggedIn есть живой токен и пользователь
func (m *Manager) IsLoggedIn(ctx context.Context) bool {
	_, ok := m.CurrentUser(ctx)
	return ok
}

// IsAdmin пользователь активной сессии имеет роль admin
func (m *Manager) IsAdmin(ctx context.Context) bool {
	user, ok := m.CurrentUser(ctx)
	return ok && user.IsAdmin()
}

// CurrentUser возвращает копию пользователя активной сессии
func (m *Manager) CurrentUser(ctx context.Context) (*models.User, bool) {
	if _, ok := m.Token(ctx); !ok {
		return nil, false
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session.User == nil {
		return nil, false
	}
	user := *m.session.User
	return &user, true
}

// Subscribe подписывает fn на изменения сессии. Возвращает функцию отписки.
// fn вызывается вне блокировки, из горутины, изменившей сессию.
func (m *Manager) Subscribe(fn func(models.Session)) func() {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

func (m *Manager) publish() {
	m.mu.Lock()
	snapshot := m.session.Clone()
	fns := make([]func(models.Session), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(snapshot)
	}
}
