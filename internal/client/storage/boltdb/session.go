package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/storefront/internal/client/storage"
	"github.com/iudanet/storefront/internal/models"
)

var (
	keyToken = []byte("token")
	keyUser  = []byte("user")
)

// SaveSession сохраняет токен и пользователя в одной транзакции
func (s *Storage) SaveSession(ctx context.Context, session *storage.SessionData) error {
	if session == nil || session.Token == "" || session.User == nil {
		return fmt.Errorf("session must contain both token and user")
	}

	// Сериализуем пользователя в JSON
	userData, err := json.Marshal(session.User)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	return s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSession)
		if bucket == nil {
			return fmt.Errorf("session bucket not found")
		}

		if err := bucket.Put(keyToken, []byte(session.Token)); err != nil {
			return fmt.Errorf("failed to save token: %w", err)
		}
		if err := bucket.Put(keyUser, userData); err != nil {
			return fmt.Errorf("failed to save user: %w", err)
		}
		return nil
	})
}

// GetSession возвращает сохраненную пару.
// Если в bucket есть только одна половина пары, сессия считается отсутствующей.
func (s *Storage) GetSession(ctx context.Context) (*storage.SessionData, error) {
	var session *storage.SessionData

	err := s.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSession)
		if bucket == nil {
			return fmt.Errorf("session bucket not found")
		}

		token := bucket.Get(keyToken)
		userData := bucket.Get(keyUser)
		if token == nil || userData == nil {
			return storage.ErrSessionNotFound
		}

		var user models.User
		if err := json.Unmarshal(userData, &user); err != nil {
			return fmt.Errorf("failed to unmarshal user: %w", err)
		}

		// Значения bbolt валидны только внутри транзакции
		session = &storage.SessionData{
			Token: string(token),
			User:  &user,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return session, nil
}

// DeleteSession удаляет токен и пользователя (logout)
func (s *Storage) DeleteSession(ctx context.Context) error {
	return s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSession)
		if bucket == nil {
			return fmt.Errorf("session bucket not found")
		}

		if bucket.Get(keyToken) == nil && bucket.Get(keyUser) == nil {
			return storage.ErrSessionNotFound
		}

		if err := bucket.Delete(keyToken); err != nil {
			return fmt.Errorf("failed to delete token: %w", err)
		}
		if err := bucket.Delete(keyUser); err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		return nil
	})
}
