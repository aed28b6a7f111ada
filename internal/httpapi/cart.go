package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/nikolayk812/storefront-go/internal/domain"
)

type cartEntry struct {
	ProductID string `json:"product_id"`
	Product   struct {
		Name     string          `json:"name"`
		Price    decimal.Decimal `json:"price"`
		ImageURL string          `json:"image_url"`
	} `json:"product"`
	Quantity int `json:"quantity"`
}

type cartEnvelope struct {
	Cart *struct {
		CartItems []cartEntry `json:"cartItems"`
	} `json:"cart"`
}

// GetCart returns the server's authoritative cart representation.
func (c *Client) GetCart(ctx context.Context) (domain.Cart, error) {
	var envelope cartEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/cart", nil, &envelope); err != nil {
		return domain.Cart{}, fmt.Errorf("get cart: %w", err)
	}

	var cart domain.Cart
	if envelope.Cart == nil {
		return cart, nil
	}

	for _, entry := range envelope.Cart.CartItems {
		cart.Items = append(cart.Items, domain.CartItem{
			ProductID: entry.ProductID,
			Name:      entry.Product.Name,
			UnitPrice: domain.NewMoney(entry.Product.Price, c.currency),
			ImageURL:  entry.Product.ImageURL,
			Quantity:  entry.Quantity,
		})
	}

	return cart, nil
}

// UpsertItem sets the resulting total quantity for the product.
func (c *Client) UpsertItem(ctx context.Context, productID string, quantity int) error {
	body := struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	}{ProductID: productID, Quantity: quantity}

	if err := c.do(ctx, http.MethodPost, "/api/cart", body, nil); err != nil {
		return fmt.Errorf("upsert cart item: %w", err)
	}
	return nil
}

func (c *Client) SetItemQuantity(ctx context.Context, productID string, quantity int) error {
	body := struct {
		Quantity int `json:"quantity"`
	}{Quantity: quantity}

	if err := c.do(ctx, http.MethodPut, "/api/cart/"+url.PathEscape(productID), body, nil); err != nil {
		return fmt.Errorf("set cart item quantity: %w", err)
	}
	return nil
}

func (c *Client) RemoveItem(ctx context.Context, productID string) error {
	if err := c.do(ctx, http.MethodDelete, "/api/cart/"+url.PathEscape(productID), nil, nil); err != nil {
		return fmt.Errorf("remove cart item: %w", err)
	}
	return nil
}

func (c *Client) ClearCart(ctx context.Context) error {
	if err := c.do(ctx, http.MethodDelete, "/api/cart", nil, nil); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
