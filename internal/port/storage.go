package port

import (
	"context"

	"github.com/nikolayk812/storefront-go/internal/domain"
)

// CartStorage persists the guest cart so it survives a process restart.
// The cart store is the single writer.
type CartStorage interface {
	// Load returns nil items without error when nothing was persisted yet.
	Load(ctx context.Context) ([]domain.CartItem, error)
	Save(ctx context.Context, items []domain.CartItem) error
	Clear(ctx context.Context) error
}
