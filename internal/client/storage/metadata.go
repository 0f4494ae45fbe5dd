package storage

import "context"

// MetadataStorage хранит служебные данные клиента
type MetadataStorage interface {
	// SaveSalt сохраняет соль для вывода ключа шифрования сессии
	SaveSalt(ctx context.Context, salt []byte) error

	// GetSalt возвращает соль.
	// Returns ErrSaltNotFound if the salt was never saved
	GetSalt(ctx context.Context) ([]byte, error)
}
