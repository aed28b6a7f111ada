package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"

	"github.com/nikolayk812/storefront-go/internal/domain"
)

// Postgres persists guest carts in a relational table, one row per line
// item, keyed by guest id.
type Postgres struct {
	pool    *pgxpool.Pool
	guestID string
}

func NewPostgres(pool *pgxpool.Pool, guestID string) (*Postgres, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}
	if guestID == "" {
		return nil, fmt.Errorf("guestID is empty")
	}

	return &Postgres{pool: pool, guestID: guestID}, nil
}

func (p *Postgres) Load(ctx context.Context) ([]domain.CartItem, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT product_id, name, price_amount, price_currency, image_url, quantity
		FROM guest_cart_items
		WHERE guest_id = $1
		ORDER BY position`,
		p.guestID)
	if err != nil {
		return nil, fmt.Errorf("pool.Query: %w", err)
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		var (
			item         domain.CartItem
			amount       decimal.Decimal
			currencyCode string
		)
		if err := rows.Scan(&item.ProductID, &item.Name, &amount, &currencyCode, &item.ImageURL, &item.Quantity); err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}

		parsedCurrency, err := currency.ParseISO(currencyCode)
		if err != nil {
			return nil, fmt.Errorf("currency[%s] is not valid: %w", currencyCode, err)
		}

		item.UnitPrice = domain.NewMoney(amount, parsedCurrency)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return items, nil
}

// Save replaces the persisted snapshot wholesale inside one transaction.
func (p *Postgres) Save(ctx context.Context, items []domain.CartItem) (txErr error) {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("pool.Begin: %w", err)
	}

	defer func() {
		if txErr != nil {
			rollbackErr := tx.Rollback(ctx)
			if rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				txErr = errors.Join(txErr, fmt.Errorf("tx.Rollback: %w", rollbackErr))
			}
		}
	}()

	if _, err := tx.Exec(ctx, `DELETE FROM guest_cart_items WHERE guest_id = $1`, p.guestID); err != nil {
		return fmt.Errorf("tx.Exec delete: %w", err)
	}

	for i, item := range items {
		_, err := tx.Exec(ctx, `
			INSERT INTO guest_cart_items
				(guest_id, position, product_id, name, price_amount, price_currency, image_url, quantity)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			p.guestID, i, item.ProductID, item.Name,
			item.UnitPrice.Amount, item.UnitPrice.Currency.String(),
			item.ImageURL, item.Quantity)
		if err != nil {
			return fmt.Errorf("tx.Exec insert: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("tx.Commit: %w", err)
	}

	return nil
}

func (p *Postgres) Clear(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, `DELETE FROM guest_cart_items WHERE guest_id = $1`, p.guestID); err != nil {
		return fmt.Errorf("pool.Exec: %w", err)
	}
	return nil
}
