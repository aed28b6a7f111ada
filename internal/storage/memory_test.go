package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikolayk812/storefront-go/internal/domain"
	"github.com/nikolayk812/storefront-go/internal/storage"
)

func TestMemory_LoadBeforeSave(t *testing.T) {
	mem := storage.NewMemory()

	items, err := mem.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, items)
}

func TestMemory_SaveLoadRoundTrip(t *testing.T) {
	mem := storage.NewMemory()
	ctx := context.Background()

	saved := []domain.CartItem{randomItem(), randomItem()}
	require.NoError(t, mem.Save(ctx, saved))

	loaded, err := mem.Load(ctx)
	require.NoError(t, err)
	assertItems(t, saved, loaded)
}

func TestMemory_SaveEmptyIsNotNothing(t *testing.T) {
	mem := storage.NewMemory()
	ctx := context.Background()

	// An explicitly saved empty cart differs from never having saved.
	require.NoError(t, mem.Save(ctx, nil))

	items, err := mem.Load(ctx)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestMemory_Clear(t *testing.T) {
	mem := storage.NewMemory()
	ctx := context.Background()

	require.NoError(t, mem.Save(ctx, []domain.CartItem{randomItem()}))
	require.NoError(t, mem.Clear(ctx))

	items, err := mem.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, items)
}

func TestMemory_LoadReturnsCopy(t *testing.T) {
	mem := storage.NewMemory()
	ctx := context.Background()

	require.NoError(t, mem.Save(ctx, []domain.CartItem{randomItem()}))

	loaded, err := mem.Load(ctx)
	require.NoError(t, err)
	loaded[0].Quantity = 99

	again, err := mem.Load(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, 99, again[0].Quantity)
}
