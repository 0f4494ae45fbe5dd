package storage

import (
	"context"

	"github.com/iudanet/storefront/internal/models"
)

//go:generate moq -out session_mock.go . SessionStorage

// SessionStorage хранит пару token+user.
// Это нижний слой: токен сохраняется как есть (возможно уже зашифрованным),
// само хранилище ничего не шифрует.
type SessionStorage interface {
	// SaveSession атомарно заменяет сохраненную пару
	SaveSession(ctx context.Context, session *SessionData) error

	// GetSession возвращает сохраненную пару.
	// Returns ErrSessionNotFound if nothing is stored
	GetSession(ctx context.Context) (*SessionData, error)

	// DeleteSession удаляет токен и пользователя одной транзакцией.
	// Returns ErrSessionNotFound if nothing is stored
	DeleteSession(ctx context.Context) error
}

// SessionData сессия в хранилище.
// Token может быть зашифрован слоем auth.
type SessionData struct {
	User  *models.User
	Token string
}
