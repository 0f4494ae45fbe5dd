package cli

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/iudanet/storefront/internal/client/api"
	"github.com/iudanet/storefront/internal/client/auth"
	"github.com/iudanet/storefront/internal/client/iocli"
	"github.com/iudanet/storefront/internal/client/search"
	"github.com/iudanet/storefront/internal/client/storage"
	"github.com/iudanet/storefront/internal/client/storage/boltdb"
	"github.com/iudanet/storefront/internal/config"
)

// Open открывает локальное хранилище, восстанавливает сессию и собирает Cli.
// Возвращаемая функция закрывает хранилище.
func Open(ctx context.Context, cfg config.Config, io iocli.IO, log *zap.Logger) (*Cli, func() error, error) {
	if log == nil {
		log = zap.NewNop()
	}

	db, err := boltdb.New(ctx, cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	closeDB := func() error {
		if err := db.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
		return nil
	}

	var store storage.SessionStorage = db
	if cfg.SessionPassphrase != "" {
		key, err := auth.SessionKey(ctx, db, cfg.SessionPassphrase)
		if err != nil {
			_ = closeDB()
			return nil, nil, err
		}
		encrypted, err := auth.NewEncryptedStore(db, key)
		if err != nil {
			_ = closeDB()
			return nil, nil, err
		}
		store = encrypted
	}

	client := api.NewClient(cfg.ServerURL, api.WithTimeout(cfg.HTTPTimeout))
	session := auth.NewManager(client, store,
		auth.WithLogger(log),
		auth.WithNavigator(Navigator{IO: io}),
	)
	// transport зависит от менеджера, а менеджер от клиента
	client.SetTransport(auth.NewTransport(session, client.BaseURL(), nil))

	if err := session.Load(ctx); err != nil {
		log.Warn("failed to restore session", zap.Error(err))
	}

	c := New(io, client, session, search.Config{
		Debounce: cfg.SearchDebounce,
		PageSize: cfg.SearchPageSize,
	}, log)
	return c, closeDB, nil
}
