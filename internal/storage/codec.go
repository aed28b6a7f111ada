package storage

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/nikolayk812/storefront-go/internal/domain"
)

// StorageKey is the fixed key the guest cart persists under, in every backend.
const StorageKey = "cart-storage"

type persistedItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	ImageURL string          `json:"image_url,omitempty"`
	Quantity int             `json:"quantity"`
}

type persistedCart struct {
	Items []persistedItem `json:"items"`
}

func encodeItems(items []domain.CartItem) ([]byte, error) {
	cart := persistedCart{Items: make([]persistedItem, 0, len(items))}
	for _, item := range items {
		cart.Items = append(cart.Items, persistedItem{
			ID:       item.ProductID,
			Name:     item.Name,
			Price:    item.UnitPrice.Amount,
			ImageURL: item.ImageURL,
			Quantity: item.Quantity,
		})
	}

	data, err := json.Marshal(cart)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}
	return data, nil
}

// decodeItems restores a snapshot. Persisted prices carry no currency code,
// they decode into DefaultCurrency.
func decodeItems(data []byte) ([]domain.CartItem, error) {
	var cart persistedCart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}

	var items []domain.CartItem
	for _, item := range cart.Items {
		items = append(items, domain.CartItem{
			ProductID: item.ID,
			Name:      item.Name,
			UnitPrice: domain.NewMoney(item.Price, domain.DefaultCurrency),
			ImageURL:  item.ImageURL,
			Quantity:  item.Quantity,
		})
	}

	return items, nil
}
