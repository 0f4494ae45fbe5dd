package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/storefront/internal/client/storage"
)

var keySalt = []byte("salt")

// SaveSalt сохраняет соль базы
func (s *Storage) SaveSalt(ctx context.Context, salt []byte) error {
	if len(salt) == 0 {
		return fmt.Errorf("salt cannot be empty")
	}
	return s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMeta)
		if bucket == nil {
			return fmt.Errorf("meta bucket not found")
		}
		if err := bucket.Put(keySalt, salt); err != nil {
			return fmt.Errorf("failed to save salt: %w", err)
		}
		return nil
	})
}

// GetSalt возвращает соль базы
func (s *Storage) GetSalt(ctx context.Context) ([]byte, error) {
	var salt []byte

	err := s.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMeta)
		if bucket == nil {
			return fmt.Errorf("meta bucket not found")
		}

		value := bucket.Get(keySalt)
		if value == nil {
			return storage.ErrSaltNotFound
		}
		salt = append([]byte(nil), value...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get salt: %w", err)
	}

	return salt, nil
}
