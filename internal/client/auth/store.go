package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/storefront/internal/client/storage"
	"github.com/iudanet/storefront/internal/crypto"
)

// EncryptedStore шифрует токен перед записью в хранилище и расшифровывает при чтении.
// Пользователь хранится открыто.
type EncryptedStore struct {
	storage storage.SessionStorage
	key     []byte
}

// Compile-time check that EncryptedStore implements SessionStorage
var _ storage.SessionStorage = (*EncryptedStore)(nil)

// NewEncryptedStore создает слой шифрования поверх storage.
// key должен быть 32 байта (см. SessionKey).
func NewEncryptedStore(s storage.SessionStorage, key []byte) (*EncryptedStore, error) {
	if len(key) != crypto.KeySize {
		return nil, fmt.Errorf("session key must be %d bytes, got %d", crypto.KeySize, len(key))
	}
	return &EncryptedStore{storage: s, key: key}, nil
}

// SaveSession шифрует токен и передает пару в storage
func (s *EncryptedStore) SaveSession(ctx context.Context, session *storage.SessionData) error {
	if session == nil {
		return fmt.Errorf("session data is nil")
	}

	sealed, err := crypto.Seal(session.Token, s.key)
	if err != nil {
		return fmt.Errorf("failed to encrypt token: %w", err)
	}

	// копируем структуру, чтобы не менять входящую
	stored := *session
	stored.Token = sealed
	return s.storage.SaveSession(ctx, &stored)
}

// GetSession загружает пару и расшифровывает токен
func (s *EncryptedStore) GetSession(ctx context.Context) (*storage.SessionData, error) {
	stored, err := s.storage.GetSession(ctx)
	if err != nil {
		return nil, err
	}

	token, err := crypto.Open(stored.Token, s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt token: %w", err)
	}

	session := *stored
	session.Token = token
	return &session, nil
}

// DeleteSession удаляет пару
func (s *EncryptedStore) DeleteSession(ctx context.Context) error {
	return s.storage.DeleteSession(ctx)
}

// SessionKey выводит ключ шифрования сессии из passphrase.
// Соль создается при первом вызове и хранится в meta bucket.
func SessionKey(ctx context.Context, meta storage.MetadataStorage, passphrase string) ([]byte, error) {
	salt, err := meta.GetSalt(ctx)
	if errors.Is(err, storage.ErrSaltNotFound) {
		salt, err = crypto.GenerateSalt()
		if err != nil {
			return nil, err
		}
		if err := meta.SaveSalt(ctx, salt); err != nil {
			return nil, fmt.Errorf("failed to save salt: %w", err)
		}
	} else if err != nil {
		return nil, err
	}

	key, err := crypto.DeriveSessionKey(passphrase, salt)
	if err != nil {
		return nil, fmt.Errorf("failed to derive session key: %w", err)
	}
	return key, nil
}
