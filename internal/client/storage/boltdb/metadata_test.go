package boltdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"github.com/iudanet/storefront/internal/client/storage"
)

func TestSaveAndGetSalt(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	// Соль еще не сохранена
	_, err := store.GetSalt(ctx)
	assert.ErrorIs(t, err, storage.ErrSaltNotFound)

	salt := []byte("0123456789abcdef0123456789abcdef")
	require.NoError(t, store.SaveSalt(ctx, salt))

	got, err := store.GetSalt(ctx)
	require.NoError(t, err)
	assert.Equal(t, salt, got)

	assert.Error(t, store.SaveSalt(ctx, nil))
}

func TestSalt_BucketMissing(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	err := store.db.Update(func(tx *bbolt.Tx) error {
		return tx.DeleteBucket(bucketMeta)
	})
	require.NoError(t, err)

	_, err = store.GetSalt(ctx)
	assert.ErrorContains(t, err, "meta bucket not found")

	err = store.SaveSalt(ctx, []byte("salt"))
	assert.ErrorContains(t, err, "meta bucket not found")
}
